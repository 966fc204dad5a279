package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/backend/internal/config"
	"github.com/attendly/backend/internal/domain"
	"github.com/attendly/backend/internal/queue/client"
	"github.com/attendly/backend/internal/queue/task"
	"github.com/attendly/backend/internal/repository"
	"github.com/attendly/backend/pkg/auth"
	"github.com/attendly/backend/pkg/hash"
	"github.com/attendly/backend/pkg/logger"
	"github.com/attendly/backend/pkg/otp"
	"github.com/attendly/backend/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userService struct {
	userRepository repository.Users
	codeRepository repository.Codes
	hasher         hash.PasswordHasher
	tokenManager   auth.TokenManager
	otpGenerator   otp.Generator
	otpConfig      config.OTPConfig
}

func newUserService(
	userRepository repository.Users,
	codeRepository repository.Codes,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
	otpGenerator otp.Generator,
	otpConfig config.OTPConfig,
) *userService {
	return &userService{
		userRepository: userRepository,
		codeRepository: codeRepository,
		hasher:         hasher,
		tokenManager:   tokenManager,
		otpGenerator:   otpGenerator,
		otpConfig:      otpConfig,
	}
}

func (s *userService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user id failed: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		Verified:     false,
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	if err := s.issueCode(ctx, user, 0); err != nil {
		return nil, fmt.Errorf("issue verification code failed: %w", err)
	}

	return user, nil
}

func (s *userService) SignIn(ctx context.Context, email, password string) (*Token, *domain.User, error) {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("get user by email failed: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.Verified {
		// Re-issue a code so the stalled user can finish verification; the
		// login itself still fails.
		if err := s.issueCode(ctx, user, 0); err != nil {
			logger.Error("issue code on unverified login failed",
				zap.String("user_id", user.ID.String()), zap.Error(err))
		}
		return nil, user, ErrUserNotVerified
	}

	accessToken, ttl, err := s.tokenManager.NewJWT(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("generate access token failed: %w", err)
	}

	return &Token{AccessToken: accessToken, TTL: ttl}, user, nil
}

func (s *userService) VerifyEmail(ctx context.Context, email, suppliedCode string) error {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by email failed: %w", err)
	}

	code, err := s.codeRepository.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrCodeNotFound
		}
		return fmt.Errorf("get code failed: %w", err)
	}

	now := time.Now()

	if now.After(code.ExpiresAt) {
		if err := s.codeRepository.DeleteByUserID(ctx, user.ID); err != nil {
			return fmt.Errorf("delete expired code failed: %w", err)
		}
		return ErrCodeExpired
	}

	if code.Attempts >= s.otpConfig.MaxAttempts {
		if err := s.codeRepository.DeleteByUserID(ctx, user.ID); err != nil {
			return fmt.Errorf("delete exhausted code failed: %w", err)
		}
		return ErrTooManyAttempts
	}

	// Every attempt consumes budget before the comparison runs, so wrong
	// guesses cannot be retried for free. The increment is conditional on
	// the attempts value just read; losing that race means another request
	// already consumed this slot.
	if err := s.codeRepository.IncrementAttempts(ctx, code.ID, code.Attempts); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrCodeNotFound
		}
		return fmt.Errorf("increment attempts failed: %w", err)
	}

	if !s.hasher.Compare(code.CodeHash, suppliedCode) {
		return ErrCodeInvalid
	}

	if err := s.userRepository.SetVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("set user verified failed: %w", err)
	}

	if err := s.codeRepository.DeleteByUserID(ctx, user.ID); err != nil {
		return fmt.Errorf("delete used code failed: %w", err)
	}

	return nil
}

func (s *userService) ResendCode(ctx context.Context, email string) error {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by email failed: %w", err)
	}

	if user.Verified {
		return nil
	}

	resendCount := 0
	if code, err := s.codeRepository.GetByUserID(ctx, user.ID); err == nil {
		remaining := s.otpConfig.ResendCooldown - time.Since(code.LastSentAt)
		if remaining > 0 {
			wait := int((remaining.Milliseconds() + 999) / 1000)
			return &CooldownError{Wait: wait}
		}
		resendCount = code.ResendCount + 1
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get code failed: %w", err)
	}

	if err := s.issueCode(ctx, user, resendCount); err != nil {
		return fmt.Errorf("issue verification code failed: %w", err)
	}

	return nil
}

// issueCode stores a fresh hashed code for the user, replacing any previous
// one, and dispatches the plaintext by email. Dispatch is best effort: a
// failed enqueue is logged and the stored code stays valid.
func (s *userService) issueCode(ctx context.Context, user *domain.User, resendCount int) error {
	plain, err := s.otpGenerator.RandomCode(s.otpConfig.CodeLength)
	if err != nil {
		return fmt.Errorf("generate code failed: %w", err)
	}

	codeHash, err := s.hasher.Hash(plain)
	if err != nil {
		return fmt.Errorf("hash code failed: %w", err)
	}

	codeID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate code id failed: %w", err)
	}

	now := time.Now()
	code := &domain.OneTimeCode{
		ID:          codeID,
		UserID:      user.ID,
		CodeHash:    codeHash,
		ExpiresAt:   now.Add(s.otpConfig.TTL),
		ResendCount: resendCount,
		LastSentAt:  now,
	}

	if err := s.codeRepository.Upsert(ctx, code); err != nil {
		return fmt.Errorf("upsert code failed: %w", err)
	}

	t, err := task.NewSendVerificationEmailTask(user.Email, plain)
	if err != nil {
		logger.Error("build verification email task failed",
			zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil
	}

	if c := client.GetClient(ctx); c != nil {
		if _, err := c.EnqueueContext(ctx, t); err != nil {
			logger.Error("enqueue verification email failed",
				zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	}

	return nil
}

func (s *userService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id failed: %w", err)
	}

	return user, nil
}

func (s *userService) SetOrUpdatePin(ctx context.Context, userID uuid.UUID, input PinInput) (bool, error) {
	user, err := s.userRepository.GetOneByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("get user by id failed: %w", err)
	}

	if !user.HasPin() {
		// First-time set; the code accepts the PIN from either field the
		// clients use.
		pin := input.Pin
		if pin == "" {
			pin = input.NewPin
		}
		if !validator.IsPin(pin) {
			return false, ErrInvalidPin
		}

		pinHash, err := s.hasher.Hash(pin)
		if err != nil {
			return false, fmt.Errorf("hash pin failed: %w", err)
		}

		if err := s.userRepository.UpdatePinHash(ctx, userID, pinHash); err != nil {
			return false, fmt.Errorf("store pin failed: %w", err)
		}

		return true, nil
	}

	if !validator.IsPin(input.OldPin) || !validator.IsPin(input.NewPin) || !validator.IsPin(input.ConfirmNewPin) {
		return false, ErrInvalidPin
	}

	// The mismatch check runs before any hash comparison, so a confused
	// caller never burns a compare against the stored PIN.
	if input.NewPin != input.ConfirmNewPin {
		return false, ErrPinMismatch
	}

	if !s.hasher.Compare(user.PinHash.String, input.OldPin) {
		return false, ErrWrongOldPin
	}

	pinHash, err := s.hasher.Hash(input.NewPin)
	if err != nil {
		return false, fmt.Errorf("hash pin failed: %w", err)
	}

	if err := s.userRepository.UpdatePinHash(ctx, userID, pinHash); err != nil {
		return false, fmt.Errorf("store pin failed: %w", err)
	}

	return false, nil
}

func (s *userService) UpdatePreferredOfflineBalance(ctx context.Context, userID uuid.UUID, value float64) error {
	if value < 0 {
		return ErrInvalidInput
	}

	if _, err := s.userRepository.GetOneByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by id failed: %w", err)
	}

	return s.userRepository.UpdatePreferredOfflineBalance(ctx, userID, value)
}

func (s *userService) List(ctx context.Context, page, limit int) ([]*domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total, err := s.userRepository.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count users failed: %w", err)
	}

	users, err := s.userRepository.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users failed: %w", err)
	}

	return users, total, nil
}
