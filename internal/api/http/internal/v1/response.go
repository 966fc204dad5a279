package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/attendly/backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type userResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Verified       bool      `json:"verified"`
	Balance        float64   `json:"balance"`
	Currency       *string   `json:"currency"`
	ProfilePicture *string   `json:"profilePicture"`
	Address        *string   `json:"address"`
	Phone          *string   `json:"phone"`
	CreatedAt      time.Time `json:"createdAt"`
} // @name UserResponse

// toUserResponse is the public projection: balance defaults to zero, the
// optional columns stay null when unset, hashes never leave the server.
func toUserResponse(u *domain.User) userResponse {
	out := userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
	}
	if u.Balance.Valid {
		out.Balance = u.Balance.Float64
	}
	if u.Currency.Valid {
		out.Currency = &u.Currency.String
	}
	if u.ProfilePicture.Valid {
		out.ProfilePicture = &u.ProfilePicture.String
	}
	if u.Address.Valid {
		out.Address = &u.Address.String
	}
	if u.Phone.Valid {
		out.Phone = &u.Phone.String
	}
	return out
}

type messageResponse struct {
	Message string `json:"message"`
} // @name MessageResponse

type listMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
} // @name ListMeta

type ValidationErrorStruct struct {
	Message string            `json:"message"`
	Errors  []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		out := make([]ValidationError, len(verr))
		for i, ferr := range verr {
			out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorStruct{
			Message: "validation error",
			Errors:  out,
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorStruct{Message: "invalid request body"})
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "min":
		return fmt.Sprintf("must be at least %v characters", value)
	case "max":
		return fmt.Sprintf("must be at most %v characters", value)
	case "pin":
		return "pin must be exactly 4 digits"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %v", value)
	}
	return tag
}
