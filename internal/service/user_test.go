package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/attendly/backend/internal/config"
	"github.com/attendly/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testOTPConfig() config.OTPConfig {
	return config.OTPConfig{
		CodeLength:     6,
		TTL:            5 * time.Minute,
		MaxAttempts:    5,
		ResendCooldown: 60 * time.Second,
	}
}

type userServiceMocks struct {
	users  *MockUserRepository
	codes  *MockCodeRepository
	hasher *MockHasher
	tokens *MockTokenManager
	otp    *MockOtpGenerator
}

func newTestUserService() (*userService, userServiceMocks) {
	m := userServiceMocks{
		users:  new(MockUserRepository),
		codes:  new(MockCodeRepository),
		hasher: new(MockHasher),
		tokens: new(MockTokenManager),
		otp:    new(MockOtpGenerator),
	}
	svc := newUserService(m.users, m.codes, m.hasher, m.tokens, m.otp, testOTPConfig())
	return svc, m
}

func verifiedUser(email string) *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		Name:         "Jane Doe",
		Email:        email,
		PasswordHash: "hashed-password",
		Role:         domain.RoleUser,
		Verified:     true,
	}
}

func TestUserService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an unverified user and issues one code", func(t *testing.T) {
		svc, m := newTestUserService()

		m.hasher.On("Hash", "password123").Return("hashed-password", nil)
		m.users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		m.otp.On("RandomCode", 6).Return("482913", nil)
		m.hasher.On("Hash", "482913").Return("hashed-code", nil)
		m.codes.On("Upsert", ctx, mock.AnythingOfType("*domain.OneTimeCode")).Return(nil)

		user, err := svc.SignUp(ctx, SignUpInput{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.False(t, user.Verified)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.Equal(t, "hashed-password", user.PasswordHash)
		m.codes.AssertNumberOfCalls(t, "Upsert", 1)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, m := newTestUserService()

		m.hasher.On("Hash", "password123").Return("hashed-password", nil)
		m.users.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicateEntry)

		_, err := svc.SignUp(ctx, SignUpInput{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		m.codes.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _ := newTestUserService()

		_, err := svc.SignUp(ctx, SignUpInput{Email: "jane@example.com"})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUserService_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		svc, m := newTestUserService()

		m.users.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)

		_, _, err := svc.SignIn(ctx, "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password maps to invalid credentials", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.hasher.On("Compare", user.PasswordHash, "wrong").Return(false)

		_, _, err := svc.SignIn(ctx, user.Email, "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		m.tokens.AssertNotCalled(t, "NewJWT", mock.Anything)
	})

	t.Run("unverified user gets a fresh code and no token", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")
		user.Verified = false

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.hasher.On("Compare", user.PasswordHash, "password123").Return(true)
		m.otp.On("RandomCode", 6).Return("482913", nil)
		m.hasher.On("Hash", "482913").Return("hashed-code", nil)
		m.codes.On("Upsert", ctx, mock.Anything).Return(nil)

		token, got, err := svc.SignIn(ctx, user.Email, "password123")

		assert.ErrorIs(t, err, ErrUserNotVerified)
		assert.Nil(t, token)
		assert.Equal(t, user, got)
		m.codes.AssertNumberOfCalls(t, "Upsert", 1)
		m.tokens.AssertNotCalled(t, "NewJWT", mock.Anything)
	})

	t.Run("verified user gets a token", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.hasher.On("Compare", user.PasswordHash, "password123").Return(true)
		m.tokens.On("NewJWT", user.ID).Return("jwt-token", 24*time.Hour, nil)

		token, got, err := svc.SignIn(ctx, user.Email, "password123")

		require.NoError(t, err)
		assert.Equal(t, "jwt-token", token.AccessToken)
		assert.Equal(t, 24*time.Hour, token.TTL)
		assert.Equal(t, user, got)
	})
}

func TestUserService_VerifyEmail(t *testing.T) {
	ctx := context.Background()

	liveCode := func(userID uuid.UUID, attempts int) *domain.OneTimeCode {
		return &domain.OneTimeCode{
			ID:        uuid.New(),
			UserID:    userID,
			CodeHash:  "hashed-code",
			ExpiresAt: time.Now().Add(4 * time.Minute),
			Attempts:  attempts,
		}
	}

	t.Run("correct code verifies once and deletes the row", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")
		user.Verified = false
		code := liveCode(user.ID, 0)

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.codes.On("GetByUserID", ctx, user.ID).Return(code, nil)
		m.codes.On("IncrementAttempts", ctx, code.ID, 0).Return(nil)
		m.hasher.On("Compare", "hashed-code", "482913").Return(true)
		m.users.On("SetVerified", ctx, user.ID).Return(nil)
		m.codes.On("DeleteByUserID", ctx, user.ID).Return(nil)

		err := svc.VerifyEmail(ctx, user.Email, "482913")

		require.NoError(t, err)
		m.users.AssertCalled(t, "SetVerified", ctx, user.ID)
		m.codes.AssertCalled(t, "DeleteByUserID", ctx, user.ID)
	})

	t.Run("second verify finds no code", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.codes.On("GetByUserID", ctx, user.ID).Return(nil, domain.ErrNotFound)

		err := svc.VerifyEmail(ctx, user.Email, "482913")

		assert.ErrorIs(t, err, ErrCodeNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, m := newTestUserService()

		m.users.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)

		err := svc.VerifyEmail(ctx, "nobody@example.com", "482913")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong code consumes an attempt", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")
		user.Verified = false
		code := liveCode(user.ID, 2)

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.codes.On("GetByUserID", ctx, user.ID).Return(code, nil)
		m.codes.On("IncrementAttempts", ctx, code.ID, 2).Return(nil)
		m.hasher.On("Compare", "hashed-code", "000000").Return(false)

		err := svc.VerifyEmail(ctx, user.Email, "000000")

		assert.ErrorIs(t, err, ErrCodeInvalid)
		m.codes.AssertCalled(t, "IncrementAttempts", ctx, code.ID, 2)
		m.users.AssertNotCalled(t, "SetVerified", mock.Anything, mock.Anything)
		m.codes.AssertNotCalled(t, "DeleteByUserID", mock.Anything, mock.Anything)
	})

	t.Run("expired code is deleted", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")
		user.Verified = false
		code := liveCode(user.ID, 0)
		code.ExpiresAt = time.Now().Add(-time.Minute)

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.codes.On("GetByUserID", ctx, user.ID).Return(code, nil)
		m.codes.On("DeleteByUserID", ctx, user.ID).Return(nil)

		err := svc.VerifyEmail(ctx, user.Email, "482913")

		assert.ErrorIs(t, err, ErrCodeExpired)
		m.codes.AssertCalled(t, "DeleteByUserID", ctx, user.ID)
	})

	t.Run("attempt budget exhausted", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")
		user.Verified = false
		code := liveCode(user.ID, 5)

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.codes.On("GetByUserID", ctx, user.ID).Return(code, nil)
		m.codes.On("DeleteByUserID", ctx, user.ID).Return(nil)

		err := svc.VerifyEmail(ctx, user.Email, "482913")

		assert.ErrorIs(t, err, ErrTooManyAttempts)
		m.codes.AssertNotCalled(t, "IncrementAttempts", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost increment race reads as missing code", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")
		user.Verified = false
		code := liveCode(user.ID, 4)

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.codes.On("GetByUserID", ctx, user.ID).Return(code, nil)
		m.codes.On("IncrementAttempts", ctx, code.ID, 4).Return(domain.ErrNoRowsAffected)

		err := svc.VerifyEmail(ctx, user.Email, "482913")

		assert.ErrorIs(t, err, ErrCodeNotFound)
	})
}

func TestUserService_ResendCode(t *testing.T) {
	ctx := context.Background()

	t.Run("verified user is a no-op", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)

		err := svc.ResendCode(ctx, user.Email)

		require.NoError(t, err)
		m.codes.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("cooldown still running returns positive wait", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")
		user.Verified = false
		code := &domain.OneTimeCode{
			ID:         uuid.New(),
			UserID:     user.ID,
			LastSentAt: time.Now().Add(-10 * time.Second),
		}

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.codes.On("GetByUserID", ctx, user.ID).Return(code, nil)

		err := svc.ResendCode(ctx, user.Email)

		var cooldown *CooldownError
		require.ErrorAs(t, err, &cooldown)
		assert.Greater(t, cooldown.Wait, 0)
		assert.LessOrEqual(t, cooldown.Wait, 50)
		m.codes.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("cooldown elapsed bumps the resend count", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")
		user.Verified = false
		code := &domain.OneTimeCode{
			ID:          uuid.New(),
			UserID:      user.ID,
			LastSentAt:  time.Now().Add(-2 * time.Minute),
			ResendCount: 1,
		}

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.codes.On("GetByUserID", ctx, user.ID).Return(code, nil)
		m.otp.On("RandomCode", 6).Return("771205", nil)
		m.hasher.On("Hash", "771205").Return("hashed-code", nil)

		var stored *domain.OneTimeCode
		m.codes.On("Upsert", ctx, mock.AnythingOfType("*domain.OneTimeCode")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*domain.OneTimeCode)
			}).
			Return(nil)

		err := svc.ResendCode(ctx, user.Email)

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, 2, stored.ResendCount)
		assert.Equal(t, "hashed-code", stored.CodeHash)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, m := newTestUserService()

		m.users.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)

		err := svc.ResendCode(ctx, "nobody@example.com")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_SetOrUpdatePin(t *testing.T) {
	ctx := context.Background()

	t.Run("first set accepts pin field", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")

		m.users.On("GetOneByID", ctx, user.ID).Return(user, nil)
		m.hasher.On("Hash", "1234").Return("hashed-pin", nil)
		m.users.On("UpdatePinHash", ctx, user.ID, "hashed-pin").Return(nil)

		created, err := svc.SetOrUpdatePin(ctx, user.ID, PinInput{Pin: "1234"})

		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("first set rejects non-digit pin", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")

		m.users.On("GetOneByID", ctx, user.ID).Return(user, nil)

		_, err := svc.SetOrUpdatePin(ctx, user.ID, PinInput{Pin: "12ab"})

		assert.ErrorIs(t, err, ErrInvalidPin)
	})

	t.Run("update rejects mismatched confirmation before comparing", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")
		user.PinHash = sql.NullString{String: "hashed-old-pin", Valid: true}

		m.users.On("GetOneByID", ctx, user.ID).Return(user, nil)

		_, err := svc.SetOrUpdatePin(ctx, user.ID, PinInput{
			OldPin:        "1234",
			NewPin:        "5678",
			ConfirmNewPin: "8765",
		})

		assert.ErrorIs(t, err, ErrPinMismatch)
		m.hasher.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
	})

	t.Run("update rejects wrong old pin", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")
		user.PinHash = sql.NullString{String: "hashed-old-pin", Valid: true}

		m.users.On("GetOneByID", ctx, user.ID).Return(user, nil)
		m.hasher.On("Compare", "hashed-old-pin", "0000").Return(false)

		_, err := svc.SetOrUpdatePin(ctx, user.ID, PinInput{
			OldPin:        "0000",
			NewPin:        "5678",
			ConfirmNewPin: "5678",
		})

		assert.ErrorIs(t, err, ErrWrongOldPin)
		m.users.AssertNotCalled(t, "UpdatePinHash", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("update rotates the pin", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")
		user.PinHash = sql.NullString{String: "hashed-old-pin", Valid: true}

		m.users.On("GetOneByID", ctx, user.ID).Return(user, nil)
		m.hasher.On("Compare", "hashed-old-pin", "1234").Return(true)
		m.hasher.On("Hash", "5678").Return("hashed-new-pin", nil)
		m.users.On("UpdatePinHash", ctx, user.ID, "hashed-new-pin").Return(nil)

		created, err := svc.SetOrUpdatePin(ctx, user.ID, PinInput{
			OldPin:        "1234",
			NewPin:        "5678",
			ConfirmNewPin: "5678",
		})

		require.NoError(t, err)
		assert.False(t, created)
	})
}

func TestUserService_UpdatePreferredOfflineBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("negative value rejected", func(t *testing.T) {
		svc, m := newTestUserService()

		err := svc.UpdatePreferredOfflineBalance(ctx, uuid.New(), -1)

		assert.ErrorIs(t, err, ErrInvalidInput)
		m.users.AssertNotCalled(t, "UpdatePreferredOfflineBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stores non-negative value", func(t *testing.T) {
		svc, m := newTestUserService()
		user := verifiedUser("jane@example.com")

		m.users.On("GetOneByID", ctx, user.ID).Return(user, nil)
		m.users.On("UpdatePreferredOfflineBalance", ctx, user.ID, 250.0).Return(nil)

		err := svc.UpdatePreferredOfflineBalance(ctx, user.ID, 250)

		require.NoError(t, err)
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults page and limit", func(t *testing.T) {
		svc, m := newTestUserService()

		m.users.On("Count", ctx).Return(int64(25), nil)
		m.users.On("List", ctx, 0, 10).Return([]*domain.User{verifiedUser("a@example.com")}, nil)

		users, total, err := svc.List(ctx, 0, 0)

		require.NoError(t, err)
		assert.Equal(t, int64(25), total)
		assert.Len(t, users, 1)
	})

	t.Run("offsets by page", func(t *testing.T) {
		svc, m := newTestUserService()

		m.users.On("Count", ctx).Return(int64(25), nil)
		m.users.On("List", ctx, 20, 10).Return([]*domain.User{}, nil)

		_, _, err := svc.List(ctx, 3, 10)

		require.NoError(t, err)
		m.users.AssertCalled(t, "List", ctx, 20, 10)
	})
}
