package service

import (
	"errors"
	"fmt"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotVerified    = errors.New("email not verified")

	ErrCodeNotFound    = errors.New("verification code not found")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrCodeInvalid     = errors.New("invalid verification code")
	ErrTooManyAttempts = errors.New("too many verification attempts")

	ErrInvalidPin  = errors.New("pin must be a 4-digit number")
	ErrPinMismatch = errors.New("new pin and confirm pin do not match")
	ErrWrongOldPin = errors.New("old pin is incorrect")

	ErrInvalidInput = errors.New("invalid input")

	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrBreakAlreadyOpen = errors.New("a break is already open")
)

// CooldownError is returned by ResendCode while the resend throttle is
// active; Wait is the remaining time rounded up to whole seconds.
type CooldownError struct {
	Wait int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("resend throttled, retry in %d seconds", e.Wait)
}
