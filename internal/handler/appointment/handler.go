package appointment

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openvet/clinic-api/internal/middleware"
	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/internal/service/appointment"
	"github.com/openvet/clinic-api/pkg/errors"
	"github.com/openvet/clinic-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the booking API. Booking, viewing and cancelling
// are open to any authenticated caller (listing is scoped per role inside
// the service); clinical updates and stats are staff-only.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authmw *middleware.AuthMiddleware) {
	g := r.Group("/appointments")
	g.POST("", h.Book)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Cancel)

	staff := g.Group("", authmw.RequireStaff())
	staff.PUT("/:id", h.Update)
	staff.PATCH("/:id/status", h.SetStatus)
	staff.GET("/stats/summary", h.Stats)
}

func (h *Handler) Book(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	apt, err := h.service.Book(c.Request.Context(), caller(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "appointment booked", apt)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	withDetails := c.Query("details") == "true"

	apt, err := h.service.Get(c.Request.Context(), caller(c), id, withDetails)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) List(c *gin.Context) {
	filter := model.AppointmentFilter{
		Status:    c.Query("status"),
		Date:      c.Query("date"),
		ClientDNI: c.Query("client_dni"),
		PetID:     c.Query("pet_id"),
	}
	if v := c.Query("vet_id"); v != "" {
		vetID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httputil.RespondWithError(c, errors.Validation("invalid vet ID", err))
			return
		}
		filter.VetID = vetID
	}

	appointments, err := h.service.List(c.Request.Context(), caller(c), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithList(c, appointments, len(appointments))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	apt, err := h.service.Update(c.Request.Context(), caller(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	apt, err := h.service.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	apt, err := h.service.Cancel(c.Request.Context(), caller(c), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, stats)
}

func caller(c *gin.Context) appointment.Caller {
	return appointment.Caller{
		UserID: c.GetInt64(middleware.ContextUserID),
		Email:  c.GetString(middleware.ContextUserEmail),
		Role:   model.UserRole(c.GetString(middleware.ContextUserRole)),
		Token:  c.GetString(middleware.ContextToken),
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid appointment ID", err))
		return 0, false
	}
	return id, true
}
