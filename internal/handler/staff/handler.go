package staff

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openvet/clinic-api/internal/middleware"
	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/internal/service/staff"
	"github.com/openvet/clinic-api/pkg/errors"
	"github.com/openvet/clinic-api/pkg/httputil"
)

type Handler struct {
	service *staff.Service
}

func NewHandler(service *staff.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the staff directory. Single-member lookup is open
// to any authenticated caller for the appointment flow; administration
// requires the admin role.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authmw *middleware.AuthMiddleware) {
	g := r.Group("/staff")
	g.GET("/:id", h.Get)

	staffOnly := g.Group("", authmw.RequireStaff())
	staffOnly.GET("", h.List)
	staffOnly.GET("/dni/:dni", h.GetByDNI)
	staffOnly.GET("/:id/schedules", h.ListSchedules)

	admin := g.Group("", authmw.RequireRoles(model.RoleAdmin))
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
	admin.POST("/:id/schedules", h.AddSchedule)
	admin.DELETE("/:id/schedules/:scheduleID", h.RemoveSchedule)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "staff member created", created)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	found, err := h.service.GetWithSchedules(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) GetByDNI(c *gin.Context) {
	found, err := h.service.GetByDNI(c.Request.Context(), c.Param("dni"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "staff member deactivated")
}

func (h *Handler) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithList(c, members, len(members))
}

func (h *Handler) AddSchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.AddScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	schedule, err := h.service.AddSchedule(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "schedule added", schedule)
}

func (h *Handler) ListSchedules(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	schedules, err := h.service.ListSchedules(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithList(c, schedules, len(schedules))
}

func (h *Handler) RemoveSchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	scheduleID, ok := parseID(c, "scheduleID")
	if !ok {
		return
	}
	if err := h.service.RemoveSchedule(c.Request.Context(), id, scheduleID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "schedule removed")
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid ID", err))
		return 0, false
	}
	return id, true
}
