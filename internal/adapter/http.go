package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/nexus-ide/nexus-api/internal/logger"
	"github.com/nexus-ide/nexus-api/internal/utils"
	"github.com/nexus-ide/nexus-api/models"
)

type httpAccountClient struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// authResponse mirrors the typed shape of the signup and login bodies; the
// user projection differs between the two, so each call decodes into its
// own struct below.
type signupResponse struct {
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
	Token   string            `json:"token"`
}

type loginResponse struct {
	Message string           `json:"message"`
	User    models.LoginUser `json:"user"`
	Token   string           `json:"token"`
}

type currentUserResponse struct {
	User models.CurrentUser `json:"user"`
}

type profileResponse struct {
	Message string             `json:"message,omitempty"`
	User    models.ProfileUser `json:"user"`
}

type onboardingResponse struct {
	Message string                `json:"message"`
	User    models.OnboardingUser `json:"user"`
}

// NewHTTPAccountClient constructs an HTTP/REST implementation of
// [AccountClient]. It normalises and validates the base URL and configures
// the underlying HTTP client with the resolved base URL and request timeout.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPAccountClient(address string, requestTimeout time.Duration, logger *logger.Logger) (AccountClient, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid account api address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout)

	return &httpAccountClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [AccountClient]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpAccountClient) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [AccountClient].
func (h *httpAccountClient) Token() string {
	return h.token
}

// Signup implements [AccountClient]. It POSTs the registration payload to
// POST /api/auth/signup and stores the returned session token via SetToken.
func (h *httpAccountClient) Signup(ctx context.Context, req models.SignupRequest) (models.PublicUser, error) {
	var result signupResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/auth/signup")
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("signup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicUser{}, err
	}

	h.SetToken(result.Token)
	return result.User, nil
}

// Login implements [AccountClient]. It POSTs the credentials to
// POST /api/auth/login and stores the returned session token via SetToken.
func (h *httpAccountClient) Login(ctx context.Context, req models.LoginRequest) (models.LoginUser, error) {
	var result loginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/auth/login")
	if err != nil {
		return models.LoginUser{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginUser{}, err
	}

	h.SetToken(result.Token)
	return result.User, nil
}

// CurrentUser implements [AccountClient] via GET /api/auth/me.
func (h *httpAccountClient) CurrentUser(ctx context.Context) (models.CurrentUser, error) {
	var result currentUserResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		SetResult(&result).
		Get("/api/auth/me")
	if err != nil {
		return models.CurrentUser{}, fmt.Errorf("current user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CurrentUser{}, err
	}

	return result.User, nil
}

// Logout implements [AccountClient] via POST /api/auth/logout. The stored
// token is cleared regardless of the server answer, because the session is
// stateless and the client-side copy is the only thing to discard.
func (h *httpAccountClient) Logout(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		Post("/api/auth/logout")

	h.SetToken("")

	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	return mapHTTPError(resp)
}

// Profile implements [AccountClient] via GET /api/users/profile.
func (h *httpAccountClient) Profile(ctx context.Context) (models.ProfileUser, error) {
	var result profileResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		SetResult(&result).
		Get("/api/users/profile")
	if err != nil {
		return models.ProfileUser{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ProfileUser{}, err
	}

	return result.User, nil
}

// UpdateProfile implements [AccountClient] via PUT /api/users/profile.
func (h *httpAccountClient) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.ProfileUser, error) {
	var result profileResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Put("/api/users/profile")
	if err != nil {
		return models.ProfileUser{}, fmt.Errorf("update profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ProfileUser{}, err
	}

	return result.User, nil
}

// CompleteOnboarding implements [AccountClient] via PUT /api/users/onboarding.
func (h *httpAccountClient) CompleteOnboarding(ctx context.Context, req models.OnboardingRequest) (models.OnboardingUser, error) {
	var result onboardingResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Put("/api/users/onboarding")
	if err != nil {
		return models.OnboardingUser{}, fmt.Errorf("complete onboarding request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.OnboardingUser{}, err
	}

	return result.User, nil
}

// ChangePassword implements [AccountClient] via POST /api/users/change-password.
func (h *httpAccountClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/users/change-password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteAccount implements [AccountClient] via DELETE /api/users/account.
// On success the stored token is cleared: the account it belonged to no
// longer exists.
func (h *httpAccountClient) DeleteAccount(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		Delete("/api/users/account")
	if err != nil {
		return fmt.Errorf("delete account request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}
