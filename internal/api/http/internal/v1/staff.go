package v1

import (
	"net/http"

	"github.com/attendly/backend/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initStaffRoutes(api *gin.RouterGroup) {
	staff := api.Group("/staff", h.userIdentityMiddleware, h.requireRole(domain.RoleStaff))

	staff.POST("/checkin", h.checkIn)
	staff.POST("/checkout", h.checkOut)
	staff.POST("/break/start", h.startBreak)
	staff.POST("/break/end", h.endBreak)
	staff.GET("/attendance/today", h.attendanceToday)
}

// @Summary Check in
// @Tags Staff
// @Produce json
// @Success 201 {object} domain.Attendance
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /staff/checkin [post]
func (h *Handler) checkIn(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorStruct{Message: "unauthorized"})
		return
	}

	attendance, err := h.services.Attendances.CheckIn(c.Request.Context(), user.ID)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "checked in", "data": attendance})
}

// @Summary Check out
// @Tags Staff
// @Produce json
// @Success 200 {object} domain.Attendance
// @Failure 404 {object} ErrorStruct
// @Security UserAuth
// @Router /staff/checkout [post]
func (h *Handler) checkOut(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorStruct{Message: "unauthorized"})
		return
	}

	attendance, err := h.services.Attendances.CheckOut(c.Request.Context(), user.ID)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "checked out", "data": attendance})
}

// @Summary Start a break
// @Tags Staff
// @Produce json
// @Success 201 {object} domain.Break
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /staff/break/start [post]
func (h *Handler) startBreak(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorStruct{Message: "unauthorized"})
		return
	}

	brk, err := h.services.Attendances.StartBreak(c.Request.Context(), user.ID)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "break started", "data": brk})
}

// @Summary End the open break
// @Tags Staff
// @Produce json
// @Success 200 {object} domain.Break
// @Failure 404 {object} ErrorStruct
// @Security UserAuth
// @Router /staff/break/end [post]
func (h *Handler) endBreak(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorStruct{Message: "unauthorized"})
		return
	}

	brk, err := h.services.Attendances.EndBreak(c.Request.Context(), user.ID)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "break ended", "data": brk})
}

// @Summary Today's attendance record
// @Tags Staff
// @Produce json
// @Success 200 {object} domain.Attendance
// @Failure 404 {object} ErrorStruct
// @Security UserAuth
// @Router /staff/attendance/today [get]
func (h *Handler) attendanceToday(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorStruct{Message: "unauthorized"})
		return
	}

	attendance, err := h.services.Attendances.Today(c.Request.Context(), user.ID)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": attendance})
}
