package v1

import (
	"net/http"

	"github.com/attendly/backend/internal/domain"
	"github.com/attendly/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initUsersRoutes(api *gin.RouterGroup) {
	users := api.Group("/users", h.userIdentityMiddleware, h.requireRole(domain.RoleUser))

	users.PUT("/pin", h.setOrUpdatePin)
	users.PUT("/preferred-offline-balance", h.updatePreferredOfflineBalance)
}

type pinInput struct {
	Pin           string `json:"pin"`
	OldPin        string `json:"oldPin"`
	NewPin        string `json:"newPin"`
	ConfirmNewPin string `json:"confirmNewPin"`
}

// @Summary Set or update the wallet PIN
// @Tags Users
// @Description First call sets the PIN; later calls rotate it against the old one
// @Accept json
// @Produce json
// @Param input body pinInput true "pin payload"
// @Success 200 {object} MessageResponse
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Security UserAuth
// @Router /users/pin [put]
func (h *Handler) setOrUpdatePin(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorStruct{Message: "unauthorized"})
		return
	}

	var input pinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	created, err := h.services.Users.SetOrUpdatePin(c.Request.Context(), user.ID, service.PinInput{
		Pin:           input.Pin,
		OldPin:        input.OldPin,
		NewPin:        input.NewPin,
		ConfirmNewPin: input.ConfirmNewPin,
	})
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, messageResponse{Message: "pin set successfully"})
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "pin updated successfully"})
}

type preferredOfflineBalanceInput struct {
	Value *float64 `json:"value" binding:"required,gte=0"`
}

// @Summary Update preferred offline balance
// @Tags Users
// @Accept json
// @Produce json
// @Param input body preferredOfflineBalanceInput true "non-negative amount"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /users/preferred-offline-balance [put]
func (h *Handler) updatePreferredOfflineBalance(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorStruct{Message: "unauthorized"})
		return
	}

	var input preferredOfflineBalanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	err = h.services.Users.UpdatePreferredOfflineBalance(c.Request.Context(), user.ID, *input.Value)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "preferred offline balance updated"})
}
