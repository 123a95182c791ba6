package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token wraps a JWT session token with convenience accessors for
// authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
// Token doubles as the claims object passed to jwt.ParseWithClaims, so the
// custom Email claim is decoded in the same pass as the registered set.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
//
// UserID is a cached, validated copy of the "sub" (subject) claim. It is
// populated during construction or after a successful call to
// [Token.GetUserID] and avoids repeated subject parsing.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// Email is the account email at issuance time. Informational only:
	// the session gate re-resolves the current email from storage and
	// never uses this copy for authorization.
	Email string `json:"email,omitempty"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	// Excluded from JSON serialization; use [Token.String] to retrieve it.
	SignedString string `json:"-"`

	// UserID is the account identifier extracted from the "sub" claim.
	// Excluded from JSON serialization; it is an internal server-side cache.
	UserID string `json:"-"`
}

// GetUserID extracts the account identifier from the token's "sub" (subject)
// claim, validates that it is a well-formed UUID, and returns it.
//
// Returns an error if the subject claim is missing, empty, or not a UUID.
func (t *Token) GetUserID() (string, error) {
	userID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting user ID from token: %w", err)
	}

	if _, err := uuid.Parse(userID); err != nil {
		return "", fmt.Errorf("error validating user ID from token: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token
// (the signed, base64url-encoded header.payload.signature string).
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
