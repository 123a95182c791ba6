package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nexus-ide/nexus-api/models"
)

// TestAccountLifecycle walks the whole account story through the real
// router: signup, login, profile reads and writes, onboarding, password
// change, deletion, and the rejection of the now-dead token.
func TestAccountLifecycle(t *testing.T) {
	env := newTestEnv(t)

	signupReq := models.SignupRequest{Email: "dev@example.com", Password: "long enough pass", Name: "Dev"}
	loginReq := models.LoginRequest{Email: "dev@example.com", Password: "long enough pass"}

	account := models.User{ID: testUserID, Email: "dev@example.com", Name: "Dev", IsActive: true}

	env.auth.EXPECT().
		Signup(gomock.Any(), signupReq, gomock.Any()).
		Return(account, models.Token{SignedString: "first-token"}, nil)
	env.auth.EXPECT().
		Login(gomock.Any(), loginReq, gomock.Any()).
		Return(account, models.Token{SignedString: "second-token"}, nil)

	resp := env.do(t, http.MethodPost, "/api/auth/signup", "", signupReq)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", loginReq)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// authenticated phase: every call re-verifies the token
	allowAuth(env, "second-token")
	env.auth.EXPECT().GetCurrentUser(gomock.Any(), testUserID).Return(account, nil)
	resp = env.do(t, http.MethodGet, "/api/auth/me", "second-token", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	onboardingReq := models.OnboardingRequest{Role: strPtr("backend developer"), Languages: []string{"go"}}
	onboarded := account
	onboarded.Role = "backend developer"
	onboarded.Languages = []string{"go"}
	onboarded.HasCompletedOnboarding = true

	allowAuth(env, "second-token")
	env.users.EXPECT().
		CompleteOnboarding(gomock.Any(), testUserID, onboardingReq, gomock.Any()).
		Return(onboarded, nil)
	resp = env.do(t, http.MethodPut, "/api/users/onboarding", "second-token", onboardingReq)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	changeReq := models.ChangePasswordRequest{CurrentPassword: "long enough pass", NewPassword: "even longer password"}
	allowAuth(env, "second-token")
	env.users.EXPECT().
		ChangePassword(gomock.Any(), testUserID, changeReq, gomock.Any()).
		Return(nil)
	resp = env.do(t, http.MethodPost, "/api/users/change-password", "second-token", changeReq)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	allowAuth(env, "second-token")
	env.users.EXPECT().
		DeleteAccount(gomock.Any(), testUserID, gomock.Any()).
		Return(nil)
	resp = env.do(t, http.MethodDelete, "/api/users/account", "second-token", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the token survives the account only syntactically: the gate
	// re-resolves the account and rejects
	env.auth.EXPECT().
		Authenticate(gomock.Any(), "second-token").
		Return(models.Identity{}, assert.AnError)
	resp = env.do(t, http.MethodGet, "/api/auth/me", "second-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoutes_UnsupportedMethodHidesRoute(t *testing.T) {
	env := newTestEnv(t)

	// GET on a POST-only route answers 404, not 405
	resp := env.do(t, http.MethodGet, "/api/auth/signup", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRoutes_TraceID(t *testing.T) {
	env := newTestEnv(t)

	t.Run("generated when absent", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/health", "", nil)
		assert.NotEmpty(t, resp.Header.Get(traceIDHeader))
	})

	t.Run("echoed when supplied", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/health", nil)
		require.NoError(t, err)
		req.Header.Set(traceIDHeader, "trace-abc-123")

		resp, err := env.server.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, "trace-abc-123", resp.Header.Get(traceIDHeader))
	})
}
