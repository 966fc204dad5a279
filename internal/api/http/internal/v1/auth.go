package v1

import (
	"net/http"

	"github.com/attendly/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")

	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/verify", h.verifyEmail)
	auth.POST("/resend-otp", h.resendOTP)
	auth.GET("/me", h.userIdentityMiddleware, h.me)
}

type registerInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// @Summary Register
// @Tags Auth
// @Description Create an unverified account and mail a verification code
// @Accept json
// @Produce json
// @Param input body registerInput true "registration payload"
// @Success 201 {object} UserResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	user, err := h.services.Users.SignUp(c.Request.Context(), service.SignUpInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registered, check your email for the verification code",
		"data":    toUserResponse(user),
	})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	TTL   int64        `json:"expires_in"`
	User  userResponse `json:"user"`
} // @name LoginResponse

// @Summary Login
// @Tags Auth
// @Description Exchange credentials for a bearer token
// @Accept json
// @Produce json
// @Param input body loginInput true "credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	token, user, err := h.services.Users.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"data": loginResponse{
			Token: token.AccessToken,
			TTL:   int64(token.TTL.Seconds()),
			User:  toUserResponse(user),
		},
	})
}

type verifyInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// @Summary Verify email
// @Tags Auth
// @Description Confirm the emailed one-time code
// @Accept json
// @Produce json
// @Param input body verifyInput true "email and code"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Router /auth/verify [post]
func (h *Handler) verifyEmail(c *gin.Context) {
	var input verifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Users.VerifyEmail(c.Request.Context(), input.Email, input.OTP); err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "email verified successfully"})
}

type resendInput struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary Resend verification code
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body resendInput true "email"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Router /auth/resend-otp [post]
func (h *Handler) resendOTP(c *gin.Context) {
	var input resendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Users.ResendCode(c.Request.Context(), input.Email); err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "a new verification code has been sent if needed"})
}

// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorStruct
// @Security UserAuth
// @Router /auth/me [get]
func (h *Handler) me(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorStruct{Message: "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toUserResponse(user)})
}
