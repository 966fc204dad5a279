package v1

import (
	"net/http"
	"strconv"

	"github.com/attendly/backend/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin", h.userIdentityMiddleware, h.requireRole(domain.RoleAdmin))

	admin.GET("/users", h.listUsers)
	admin.GET("/attendance-times", h.getAttendanceTimes)
	admin.PUT("/attendance-times", h.updateAttendanceTimes)
}

// @Summary List users
// @Tags Admin
// @Description Paginated user listing, newest first
// @Produce json
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} ListMeta
// @Failure 403 {object} ErrorStruct
// @Security AdminAuth
// @Router /admin/users [get]
func (h *Handler) listUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	users, total, err := h.services.Users.List(c.Request.Context(), page, limit)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	data := make([]userResponse, len(users))
	for i, u := range users {
		data[i] = toUserResponse(u)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"meta": listMeta{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: pages,
		},
	})
}

// @Summary Read attendance times
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.AttendanceTimes
// @Security AdminAuth
// @Router /admin/attendance-times [get]
func (h *Handler) getAttendanceTimes(c *gin.Context) {
	times, err := h.services.Attendances.GetAttendanceTimes(c.Request.Context())
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": times})
}

type attendanceTimesInput struct {
	CheckInTime  string `json:"check_in_time" binding:"required"`
	CheckOutTime string `json:"check_out_time" binding:"required"`
}

// @Summary Update attendance times
// @Tags Admin
// @Accept json
// @Produce json
// @Param input body attendanceTimesInput true "wall-clock times, HH:MM or HH:MM:SS"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorStruct
// @Security AdminAuth
// @Router /admin/attendance-times [put]
func (h *Handler) updateAttendanceTimes(c *gin.Context) {
	var input attendanceTimesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	err := h.services.Attendances.UpdateAttendanceTimes(c.Request.Context(), &domain.AttendanceTimes{
		CheckInTime:  input.CheckInTime,
		CheckOutTime: input.CheckOutTime,
	})
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "attendance times updated"})
}
