package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nexus-ide/nexus-api/internal/config"
	"github.com/nexus-ide/nexus-api/internal/logger"
	"github.com/nexus-ide/nexus-api/internal/store"
	"github.com/nexus-ide/nexus-api/internal/utils"
	"github.com/nexus-ide/nexus-api/models"
)

// userService is the concrete implementation of UserService. It manages the
// profile, onboarding, password, and deletion operations of authenticated
// accounts.
type userService struct {
	users store.UserRepository

	// audit records lifecycle events; appends are best-effort except for
	// account deletion, where the record is written before the row goes.
	audit *auditRecorder

	// passwordCost is the bcrypt work factor applied when hashing.
	passwordCost int

	logger *logger.Logger
}

// NewUserService constructs a UserService wired to the given repositories.
// The returned service is safe for concurrent use.
func NewUserService(users store.UserRepository, audit store.AuditLogRepository, cfg config.App, logger *logger.Logger) UserService {
	return &userService{
		users:        users,
		audit:        newAuditRecorder(audit, cfg.AuditTimeout),
		passwordCost: cfg.PasswordCost,
		logger:       logger,
	}
}

// GetProfile returns the full profile record.
func (u *userService) GetProfile(ctx context.Context, userID string) (models.User, error) {
	user, err := u.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("account lookup failed: %w", err)
	}

	return user, nil
}

// UpdateProfile applies a partial profile mutation. Supplying no fields at
// all is a read: the current record comes back unchanged and nothing is
// written or audited. Concurrent updates resolve last-writer-wins per field.
func (u *userService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest, info models.RequestInfo) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := req.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	update := models.UserUpdate{
		Name:   req.Name,
		Avatar: req.Avatar,
	}
	if update.IsEmpty() {
		return u.GetProfile(ctx, userID)
	}

	updated, err := u.users.UpdateUser(ctx, userID, update)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Str("func", "UpdateProfile").Msg("profile update failed")
		}
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	u.audit.record(ctx, &userID, models.ActionProfileUpdate, "profile updated", info)

	return updated, nil
}

// CompleteOnboarding stores the onboarding answers and marks onboarding as
// completed. All answers are optional; an empty payload still sets the
// flag. Replaying the call overwrites the answers and is harmless.
func (u *userService) CompleteOnboarding(ctx context.Context, userID string, req models.OnboardingRequest, info models.RequestInfo) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := req.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	updated, err := u.users.UpdateUser(ctx, userID, req.Update())
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Str("func", "CompleteOnboarding").Msg("onboarding update failed")
		}
		return models.User{}, fmt.Errorf("onboarding update failed: %w", err)
	}

	u.audit.record(ctx, &userID, models.ActionOnboardingCompleted, "onboarding completed", info)

	return updated, nil
}

// ChangePassword verifies the current password and replaces the stored hash
// with a freshly salted one. Accounts created through an external identity
// provider have no password and fail with ErrPasswordNotSet.
func (u *userService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest, info models.RequestInfo) error {
	log := logger.FromContext(ctx)

	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	user, err := u.users.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("account lookup failed: %w", err)
	}

	if !user.HasPassword() {
		return ErrPasswordNotSet
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	passwordHash, err := utils.HashPassword(req.NewPassword, u.passwordCost)
	if err != nil {
		log.Err(err).Str("func", "ChangePassword").Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := u.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		log.Err(err).Str("func", "ChangePassword").Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	u.audit.record(ctx, &userID, models.ActionPasswordChange, "password changed", info)

	return nil
}

// DeleteAccount permanently removes the account. The audit entry is
// appended before the delete so the trail records the event even though the
// account row is gone; audit rows carry no foreign key and are retained.
func (u *userService) DeleteAccount(ctx context.Context, userID string, info models.RequestInfo) error {
	log := logger.FromContext(ctx)

	if _, err := u.users.FindUserByID(ctx, userID); err != nil {
		return fmt.Errorf("account lookup failed: %w", err)
	}

	u.audit.record(ctx, &userID, models.ActionAccountDeleted, "account permanently deleted", info)

	if err := u.users.DeleteUser(ctx, userID); err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Str("func", "DeleteAccount").Msg("account deletion failed")
		}
		return fmt.Errorf("account deletion failed: %w", err)
	}

	return nil
}
