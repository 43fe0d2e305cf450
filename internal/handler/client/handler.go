package client

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openvet/clinic-api/internal/middleware"
	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/internal/service/client"
	"github.com/openvet/clinic-api/pkg/errors"
	"github.com/openvet/clinic-api/pkg/httputil"
)

type Handler struct {
	service *client.Service
}

func NewHandler(service *client.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the client directory. Lookups are open to any
// authenticated caller because the appointment flow resolves clients with
// the requester's own token; mutations are staff-only.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authmw *middleware.AuthMiddleware) {
	g := r.Group("/clients")
	g.GET("/:id", h.Get)
	g.GET("/dni/:dni", h.GetByDNI)
	g.GET("/email/:email", h.GetByEmail)

	staff := g.Group("", authmw.RequireStaff())
	staff.POST("", h.Create)
	staff.GET("", h.List)
	staff.PUT("/:id", h.Update)
	staff.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "client created", created)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.service.Get(c.Request.Context(), id)
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

func (h *Handler) GetByEmail(c *gin.Context) {
	found, err := h.service.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.UpdateClientRequest
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
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "client deactivated")
}

func (h *Handler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	clients, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithList(c, clients, len(clients))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid client ID", err))
		return 0, false
	}
	return id, true
}
