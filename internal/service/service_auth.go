package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nexus-ide/nexus-api/internal/config"
	"github.com/nexus-ide/nexus-api/internal/logger"
	"github.com/nexus-ide/nexus-api/internal/store"
	"github.com/nexus-ide/nexus-api/internal/utils"
	"github.com/nexus-ide/nexus-api/models"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification, and the JWT
// session token lifecycle, using a UserRepository for persistence and bcrypt
// for password hashing.
type authService struct {
	// users is the data-access layer used to create and look up accounts.
	users store.UserRepository

	// audit records lifecycle events; appends are best-effort.
	audit *auditRecorder

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during
	// verification.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// passwordCost is the bcrypt work factor applied when hashing.
	passwordCost int

	// logger is the structured logger used for diagnostic output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(users store.UserRepository, audit store.AuditLogRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:         users,
		audit:         newAuditRecorder(audit, cfg.AuditTimeout),
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		passwordCost:  cfg.PasswordCost,
		logger:        logger,
	}
}

// Signup registers a new account and issues its first session token.
//
// The email is normalised to lower case before any lookup or write. A
// best-effort pre-check gives a fast conflict answer, but the database
// unique index remains the source of truth: a concurrent signup racing past
// the pre-check still fails with store.ErrEmailTaken on insert.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest, info models.RequestInfo) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if err := req.Validate(); err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	email := normalizeEmail(req.Email)

	if _, err := a.users.FindUserByEmail(ctx, email); err == nil {
		return models.User{}, models.Token{}, fmt.Errorf("signup rejected: %w", store.ErrEmailTaken)
	} else if !errors.Is(err, store.ErrUserNotFound) {
		log.Err(err).Str("func", "Signup").Msg("email pre-check failed")
		return models.User{}, models.Token{}, fmt.Errorf("email pre-check failed: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, a.passwordCost)
	if err != nil {
		log.Err(err).Str("func", "Signup").Msg("password hashing failed")
		return models.User{}, models.Token{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		ID:           utils.NewUUID(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(req.Name),
		IsActive:     true,
	}

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		if !errors.Is(err, store.ErrEmailTaken) {
			log.Err(err).Str("func", "Signup").Msg("account creation failed")
		}
		return models.User{}, models.Token{}, fmt.Errorf("account creation failed: %w", err)
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, created.ID, created.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "Signup").Msg("token issuance failed")
		return models.User{}, models.Token{}, fmt.Errorf("token issuance failed: %w", err)
	}

	a.audit.record(ctx, &created.ID, models.ActionSignup, "account created", info)

	return created, token, nil
}

// Login verifies credentials and issues a session token.
//
// Unknown email, missing password hash, and wrong password all collapse
// into the same ErrInvalidCredentials, so the response does not reveal
// whether the email is registered. A deactivated account is rejected
// before the password is checked: once the email resolves, the account's
// barred state takes precedence over credential verification.
func (a *authService) Login(ctx context.Context, req models.LoginRequest, info models.RequestInfo) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if err := req.Validate(); err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	user, err := a.users.FindUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Str("func", "Login").Msg("account lookup failed")
		return models.User{}, models.Token{}, fmt.Errorf("account lookup failed: %w", err)
	}

	if !user.HasPassword() {
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return models.User{}, models.Token{}, ErrAccountDeactivated
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	// A failed stamp must not block an otherwise valid login.
	if err := a.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		log.Err(err).Str("func", "Login").Msg("last login stamp failed")
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, user.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "Login").Msg("token issuance failed")
		return models.User{}, models.Token{}, fmt.Errorf("token issuance failed: %w", err)
	}

	a.audit.record(ctx, &user.ID, models.ActionLogin, "successful login", info)

	return user, token, nil
}

// Authenticate verifies a session token and re-resolves the account behind
// it. The account state is read on every call, so deactivation and deletion
// take effect immediately even for tokens issued before the change. Every
// failure maps to the single ErrUnauthenticated sentinel.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := a.users.FindUserByID(ctx, token.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Str("func", "Authenticate").Msg("account lookup failed")
		}
		return models.Identity{}, fmt.Errorf("%w: account lookup failed", ErrUnauthenticated)
	}

	if !user.IsActive {
		return models.Identity{}, fmt.Errorf("%w: account is deactivated", ErrUnauthenticated)
	}

	return models.Identity{ID: user.ID, Email: user.Email}, nil
}

// GetCurrentUser returns the account record of an authenticated user.
func (a *authService) GetCurrentUser(ctx context.Context, userID string) (models.User, error) {
	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("account lookup failed: %w", err)
	}

	return user, nil
}

// Logout records the logout event. The session token itself is stateless
// and simply expires; nothing is invalidated server-side.
func (a *authService) Logout(ctx context.Context, userID string, info models.RequestInfo) error {
	a.audit.record(ctx, &userID, models.ActionLogout, "user logged out", info)
	return nil
}

// normalizeEmail lower-cases and trims an email so lookups and uniqueness
// checks are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
