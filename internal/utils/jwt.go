package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nexus-ide/nexus-api/models"
)

// clockSkewLeeway is the tolerance applied to time-based claims during
// verification. It absorbs small clock drift between the issuing and the
// verifying process without meaningfully extending the token lifetime.
const clockSkewLeeway = 30 * time.Second

// Sentinel errors returned by ValidateAndParseJWTToken. Callers should match
// with [errors.Is]; both map to the same unauthenticated outcome at the HTTP
// boundary.
var (
	// ErrTokenExpired marks a structurally valid token whose lifetime has
	// passed (beyond the clock-skew leeway).
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenInvalid marks a malformed, unsigned, or tampered token, or a
	// token signed with an unexpected method or issuer.
	ErrTokenInvalid = errors.New("token is invalid")
)

// GenerateJWTToken creates a signed HMAC-SHA256 session token.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the account UUID
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - email:           the account email at issuance time (informational)
//
// All parameters are required. Returns an error if any of them are empty or
// zero.
//
// Parameters:
//
//	issuer        - identifier of the token issuer (e.g. service name)
//	userID        - UUID of the account the token is issued for
//	email         - account email embedded as an informational claim
//	tokenDuration - how long the token remains valid
//	signKey       - secret key used to sign the token with HMAC-SHA256
//
// Returns:
//
//	models.Token - contains the signed token string and the jwt.Token object
//	error        - non-nil if parameters are invalid or signing fails
func GenerateJWTToken(issuer, userID, email string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || userID == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &models.Token{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims.RegisteredClaims,
		Email:            email,
		SignedString:     tokenString,
		UserID:           userID,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check with a 30-second clock-skew leeway
//   - Subject (sub) claim presence and UUID well-formedness
//
// Failures are normalised to two sentinels: [ErrTokenExpired] for a
// structurally valid but time-expired token, [ErrTokenInvalid] for
// everything else. Verification is pure: it never touches storage.
//
// Parameters:
//
//	tokenString  - the raw signed JWT string to validate and parse
//	tokenSignKey - secret key used to verify the token signature
//	tokenIssuer  - expected issuer value to validate against the iss claim
//
// Returns:
//
//	models.Token - contains the parsed jwt.Token and the extracted identity
//	error        - ErrTokenExpired or ErrTokenInvalid on any failure
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	parsed := &models.Token{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithLeeway(clockSkewLeeway),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	parsed.Token = token

	userID, err := parsed.GetUserID()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	parsed.UserID = userID

	return *parsed, nil
}

// ParseBearerToken extracts the credential part from a raw "Authorization"
// header value of the form "Bearer <token>". The scheme is matched
// case-insensitively; any other scheme is rejected.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
