package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexus-ide/nexus-api/internal/config"
	"github.com/nexus-ide/nexus-api/internal/logger"
	"github.com/nexus-ide/nexus-api/internal/mock"
	"github.com/nexus-ide/nexus-api/internal/store"
	"github.com/nexus-ide/nexus-api/internal/utils"
	"github.com/nexus-ide/nexus-api/models"
)

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "nexus-api",
	TokenDuration: time.Hour,
	PasswordCost:  bcrypt.MinCost,
	AuditTimeout:  time.Second,
}

var testRequestInfo = models.RequestInfo{
	IPAddress: "203.0.113.7",
	UserAgent: "go-test",
}

func mustHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)

	return hash
}

func TestAuthService_Signup(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	audit := mock.NewMockAuditLogRepository(ctrl)
	svc := NewAuthService(users, audit, testAppConfig, logger.Nop())

	req := models.SignupRequest{
		Email:    "New.User@Example.COM",
		Password: "correct horse battery",
		Name:     "New User",
	}

	users.EXPECT().
		FindUserByEmail(gomock.Any(), "new.user@example.com").
		Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "new.user@example.com", user.Email)
			assert.Equal(t, "New User", user.Name)
			assert.True(t, user.IsActive)
			assert.NotEmpty(t, user.ID)
			assert.True(t, utils.CheckPasswordHash(req.Password, user.PasswordHash))

			user.CreatedAt = time.Now()
			return user, nil
		})
	audit.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.AuditLog) error {
			assert.Equal(t, models.ActionSignup, entry.Action)
			assert.Equal(t, testRequestInfo.IPAddress, entry.IPAddress)
			require.NotNil(t, entry.UserID)
			return nil
		})

	created, token, err := svc.Signup(context.Background(), req, testRequestInfo)
	require.NoError(t, err)
	assert.Equal(t, "new.user@example.com", created.Email)
	assert.NotEmpty(t, token.SignedString)

	// the issued token must verify against the same key and carry the
	// account id as subject
	parsed, err := utils.ValidateAndParseJWTToken(token.SignedString, testAppConfig.TokenSignKey, testAppConfig.TokenIssuer)
	require.NoError(t, err)
	assert.Equal(t, created.ID, parsed.UserID)
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	audit := mock.NewMockAuditLogRepository(ctrl)
	svc := NewAuthService(users, audit, testAppConfig, logger.Nop())

	req := models.SignupRequest{Email: "taken@example.com", Password: "long enough pass", Name: "Dup"}

	t.Run("pre-check hit", func(t *testing.T) {
		users.EXPECT().
			FindUserByEmail(gomock.Any(), "taken@example.com").
			Return(models.User{ID: "some-id"}, nil)

		_, _, err := svc.Signup(context.Background(), req, testRequestInfo)
		assert.ErrorIs(t, err, store.ErrEmailTaken)
	})

	t.Run("lost insert race", func(t *testing.T) {
		users.EXPECT().
			FindUserByEmail(gomock.Any(), "taken@example.com").
			Return(models.User{}, store.ErrUserNotFound)
		users.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			Return(models.User{}, store.ErrEmailTaken)

		_, _, err := svc.Signup(context.Background(), req, testRequestInfo)
		assert.ErrorIs(t, err, store.ErrEmailTaken)
	})
}

func TestAuthService_Signup_ConcurrentSameEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	audit := mock.NewMockAuditLogRepository(ctrl)
	svc := NewAuthService(users, audit, testAppConfig, logger.Nop())

	const attempts = 8

	// All attempts race past the pre-check; the insert enforces uniqueness
	// the way the database unique index does: first write wins, the rest
	// answer ErrEmailTaken.
	users.EXPECT().
		FindUserByEmail(gomock.Any(), "raced@example.com").
		Return(models.User{}, store.ErrUserNotFound).
		Times(attempts)

	var mu sync.Mutex
	inserted := false
	users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			mu.Lock()
			defer mu.Unlock()
			if inserted {
				return models.User{}, store.ErrEmailTaken
			}
			inserted = true
			return user, nil
		}).
		Times(attempts)

	audit.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	req := models.SignupRequest{Email: "raced@example.com", Password: "long enough pass", Name: "Racer"}

	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Signup(context.Background(), req, testRequestInfo)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, store.ErrEmailTaken):
			conflicted++
		default:
			t.Fatalf("unexpected signup error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one concurrent signup must win")
	assert.Equal(t, attempts-1, conflicted)
}

func TestAuthService_Signup_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewAuthService(mock.NewMockUserRepository(ctrl), mock.NewMockAuditLogRepository(ctrl), testAppConfig, logger.Nop())

	tests := []struct {
		name string
		req  models.SignupRequest
	}{
		{name: "missing email", req: models.SignupRequest{Password: "long enough pass", Name: "A"}},
		{name: "malformed email", req: models.SignupRequest{Email: "not-an-email", Password: "long enough pass", Name: "A"}},
		{name: "short password", req: models.SignupRequest{Email: "a@example.com", Password: "short", Name: "A"}},
		{name: "missing name", req: models.SignupRequest{Email: "a@example.com", Password: "long enough pass"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Signup(context.Background(), tt.req, testRequestInfo)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	audit := mock.NewMockAuditLogRepository(ctrl)
	svc := NewAuthService(users, audit, testAppConfig, logger.Nop())

	password := "correct horse battery"
	stored := models.User{
		ID:           utils.NewUUID(),
		Email:        "user@example.com",
		PasswordHash: mustHash(t, password),
		Name:         "User",
		IsActive:     true,
	}

	users.EXPECT().
		FindUserByEmail(gomock.Any(), "user@example.com").
		Return(stored, nil)
	users.EXPECT().
		UpdateLastLogin(gomock.Any(), stored.ID, gomock.Any()).
		Return(nil)
	audit.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.AuditLog) error {
			assert.Equal(t, models.ActionLogin, entry.Action)
			return nil
		})

	user, token, err := svc.Login(context.Background(), models.LoginRequest{Email: "User@Example.com", Password: password}, testRequestInfo)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)

	parsed, err := utils.ValidateAndParseJWTToken(token.SignedString, testAppConfig.TokenSignKey, testAppConfig.TokenIssuer)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, parsed.UserID)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, mock.NewMockAuditLogRepository(ctrl), testAppConfig, logger.Nop())

	stored := models.User{
		ID:           utils.NewUUID(),
		Email:        "user@example.com",
		PasswordHash: mustHash(t, "the real password"),
		IsActive:     true,
	}

	tests := []struct {
		name  string
		setup func()
		req   models.LoginRequest
	}{
		{
			name: "unknown email",
			setup: func() {
				users.EXPECT().
					FindUserByEmail(gomock.Any(), "ghost@example.com").
					Return(models.User{}, store.ErrUserNotFound)
			},
			req: models.LoginRequest{Email: "ghost@example.com", Password: "whatever pass"},
		},
		{
			name: "wrong password",
			setup: func() {
				users.EXPECT().
					FindUserByEmail(gomock.Any(), "user@example.com").
					Return(stored, nil)
			},
			req: models.LoginRequest{Email: "user@example.com", Password: "not the password"},
		},
		{
			name: "identity provider account without password",
			setup: func() {
				noHash := stored
				noHash.PasswordHash = ""
				users.EXPECT().
					FindUserByEmail(gomock.Any(), "user@example.com").
					Return(noHash, nil)
			},
			req: models.LoginRequest{Email: "user@example.com", Password: "the real password"},
		},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			_, _, err := svc.Login(context.Background(), tt.req, testRequestInfo)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			messages = append(messages, err.Error())
		})
	}

	// the three failure modes must be textually indistinguishable
	for _, msg := range messages {
		assert.Equal(t, messages[0], msg)
	}
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, mock.NewMockAuditLogRepository(ctrl), testAppConfig, logger.Nop())

	password := "correct horse battery"
	stored := models.User{
		ID:           utils.NewUUID(),
		Email:        "user@example.com",
		PasswordHash: mustHash(t, password),
		IsActive:     false,
	}

	users.EXPECT().
		FindUserByEmail(gomock.Any(), "user@example.com").
		Return(stored, nil).
		Times(2)

	// The barred state takes precedence over credential verification, so a
	// deactivated account answers the same way for right and wrong passwords.
	for _, attempt := range []string{password, "wrong password entirely"} {
		_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: attempt}, testRequestInfo)
		assert.ErrorIs(t, err, ErrAccountDeactivated)
	}
}

func TestAuthService_Login_AuditFailureDoesNotBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	audit := mock.NewMockAuditLogRepository(ctrl)
	svc := NewAuthService(users, audit, testAppConfig, logger.Nop())

	password := "correct horse battery"
	stored := models.User{
		ID:           utils.NewUUID(),
		Email:        "user@example.com",
		PasswordHash: mustHash(t, password),
		IsActive:     true,
	}

	users.EXPECT().FindUserByEmail(gomock.Any(), "user@example.com").Return(stored, nil)
	users.EXPECT().UpdateLastLogin(gomock.Any(), stored.ID, gomock.Any()).Return(nil)
	audit.EXPECT().Append(gomock.Any(), gomock.Any()).Return(store.ErrAuditLogNotSaved)

	_, token, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: password}, testRequestInfo)
	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, mock.NewMockAuditLogRepository(ctrl), testAppConfig, logger.Nop())

	userID := utils.NewUUID()
	token, err := utils.GenerateJWTToken(testAppConfig.TokenIssuer, userID, "user@example.com", time.Hour, testAppConfig.TokenSignKey)
	require.NoError(t, err)

	users.EXPECT().
		FindUserByID(gomock.Any(), userID).
		Return(models.User{ID: userID, Email: "user@example.com", IsActive: true}, nil)

	identity, err := svc.Authenticate(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.ID)
	assert.Equal(t, "user@example.com", identity.Email)
}

func TestAuthService_Authenticate_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, mock.NewMockAuditLogRepository(ctrl), testAppConfig, logger.Nop())

	userID := utils.NewUUID()
	validToken, err := utils.GenerateJWTToken(testAppConfig.TokenIssuer, userID, "user@example.com", time.Hour, testAppConfig.TokenSignKey)
	require.NoError(t, err)
	expiredToken, err := utils.GenerateJWTToken(testAppConfig.TokenIssuer, userID, "user@example.com", -2*time.Minute, testAppConfig.TokenSignKey)
	require.NoError(t, err)
	foreignToken, err := utils.GenerateJWTToken(testAppConfig.TokenIssuer, userID, "user@example.com", time.Hour, "some other key")
	require.NoError(t, err)

	tests := []struct {
		name        string
		setup       func()
		tokenString string
	}{
		{name: "garbage token", tokenString: "not.a.token"},
		{name: "expired token", tokenString: expiredToken.SignedString},
		{name: "wrong sign key", tokenString: foreignToken.SignedString},
		{
			name: "account deleted after issuance",
			setup: func() {
				users.EXPECT().
					FindUserByID(gomock.Any(), userID).
					Return(models.User{}, store.ErrUserNotFound)
			},
			tokenString: validToken.SignedString,
		},
		{
			name: "account deactivated after issuance",
			setup: func() {
				users.EXPECT().
					FindUserByID(gomock.Any(), userID).
					Return(models.User{ID: userID, IsActive: false}, nil)
			},
			tokenString: validToken.SignedString,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}
			_, err := svc.Authenticate(context.Background(), tt.tokenString)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, mock.NewMockAuditLogRepository(ctrl), testAppConfig, logger.Nop())

	userID := utils.NewUUID()
	users.EXPECT().
		FindUserByID(gomock.Any(), userID).
		Return(models.User{ID: userID, Email: "user@example.com"}, nil)

	user, err := svc.GetCurrentUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	users.EXPECT().
		FindUserByID(gomock.Any(), "missing").
		Return(models.User{}, store.ErrUserNotFound)

	_, err = svc.GetCurrentUser(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	audit := mock.NewMockAuditLogRepository(ctrl)
	svc := NewAuthService(mock.NewMockUserRepository(ctrl), audit, testAppConfig, logger.Nop())

	userID := utils.NewUUID()
	audit.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.AuditLog) error {
			assert.Equal(t, models.ActionLogout, entry.Action)
			require.NotNil(t, entry.UserID)
			assert.Equal(t, userID, *entry.UserID)
			return nil
		})

	err := svc.Logout(context.Background(), userID, testRequestInfo)
	assert.NoError(t, err)
}

func TestAuthService_Logout_AuditFailureIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	audit := mock.NewMockAuditLogRepository(ctrl)
	svc := NewAuthService(mock.NewMockUserRepository(ctrl), audit, testAppConfig, logger.Nop())

	audit.EXPECT().Append(gomock.Any(), gomock.Any()).Return(store.ErrAuditLogNotSaved)

	err := svc.Logout(context.Background(), utils.NewUUID(), testRequestInfo)
	assert.NoError(t, err)
}
