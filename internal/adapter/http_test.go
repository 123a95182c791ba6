package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-ide/nexus-api/internal/logger"
	"github.com/nexus-ide/nexus-api/internal/utils"
	"github.com/nexus-ide/nexus-api/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) AccountClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHTTPAccountClient(server.URL, 5*time.Second, logger.Nop())
	require.NoError(t, err)

	return client
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare host:port", input: "localhost:3000", want: "http://localhost:3000"},
		{name: "full url", input: "https://api.example.com/", want: "https://api.example.com"},
		{name: "surrounding spaces", input: "  localhost:3000  ", want: "http://localhost:3000"},
		{name: "empty", input: "", wantErr: true},
		{name: "scheme only", input: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccountClient_Signup(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/signup", r.URL.Path)

		var req models.SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "new@example.com", req.Email)

		utils.WriteJSON(w, models.AuthResponse{
			Message: "User created successfully",
			User:    models.PublicUser{ID: "id-1", Email: req.Email, Name: req.Name},
			Token:   "issued-token",
		}, http.StatusCreated)
	})

	user, err := client.Signup(context.Background(), models.SignupRequest{
		Email:    "new@example.com",
		Password: "long enough pass",
		Name:     "New",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "issued-token", client.Token(), "signup must store the session token")
}

func TestAccountClient_Signup_Conflict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSONError(w, "email already registered", http.StatusConflict)
	})

	_, err := client.Signup(context.Background(), models.SignupRequest{
		Email:    "taken@example.com",
		Password: "long enough pass",
		Name:     "Dup",
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorContains(t, err, "email already registered")
}

func TestAccountClient_Login(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)

		utils.WriteJSON(w, models.AuthResponse{
			Message: "Login successful",
			User:    models.LoginUser{ID: "id-1", Email: "user@example.com", HasCompletedOnboarding: true},
			Token:   "fresh-token",
		}, http.StatusOK)
	})

	user, err := client.Login(context.Background(), models.LoginRequest{
		Email:    "user@example.com",
		Password: "long enough pass",
	})
	require.NoError(t, err)
	assert.True(t, user.HasCompletedOnboarding)
	assert.Equal(t, "fresh-token", client.Token())
}

func TestAccountClient_Login_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSONError(w, "invalid email or password", http.StatusUnauthorized)
	})

	_, err := client.Login(context.Background(), models.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong password!",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAccountClient_CurrentUser_SendsBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer stored-token", r.Header.Get("Authorization"))

		utils.WriteJSON(w, models.UserResponse{
			User: models.CurrentUser{ID: "id-1", Email: "user@example.com", Name: "User"},
		}, http.StatusOK)
	})

	client.SetToken("stored-token")

	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestAccountClient_Logout_ClearsToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, models.MessageResponse{Message: "Logout successful"}, http.StatusOK)
	})

	client.SetToken("stored-token")
	require.NoError(t, client.Logout(context.Background()))
	assert.Empty(t, client.Token())
}

func TestAccountClient_UpdateProfile(t *testing.T) {
	name := "Renamed"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/users/profile", r.URL.Path)

		utils.WriteJSON(w, models.UserMessageResponse{
			Message: "Profile updated successfully",
			User:    models.ProfileUser{ID: "id-1", Name: name},
		}, http.StatusOK)
	})

	client.SetToken("stored-token")

	user, err := client.UpdateProfile(context.Background(), models.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)
}

func TestAccountClient_CompleteOnboarding(t *testing.T) {
	role := "backend developer"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/onboarding", r.URL.Path)

		utils.WriteJSON(w, models.UserMessageResponse{
			Message: "Onboarding completed successfully",
			User:    models.OnboardingUser{ID: "id-1", Role: role, HasCompletedOnboarding: true},
		}, http.StatusOK)
	})

	client.SetToken("stored-token")

	user, err := client.CompleteOnboarding(context.Background(), models.OnboardingRequest{Role: &role})
	require.NoError(t, err)
	assert.True(t, user.HasCompletedOnboarding)
}

func TestAccountClient_ChangePassword_BadRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSONError(w, "account has no password set", http.StatusBadRequest)
	})

	client.SetToken("stored-token")

	err := client.ChangePassword(context.Background(), models.ChangePasswordRequest{
		CurrentPassword: "anything at all",
		NewPassword:     "a brand new password",
	})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestAccountClient_DeleteAccount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/users/account", r.URL.Path)

		utils.WriteJSON(w, models.MessageResponse{Message: "Account deleted successfully"}, http.StatusOK)
	})

	client.SetToken("stored-token")

	require.NoError(t, client.DeleteAccount(context.Background()))
	assert.Empty(t, client.Token(), "token must be cleared after the account is gone")
}
