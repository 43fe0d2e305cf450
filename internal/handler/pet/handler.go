package pet

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openvet/clinic-api/internal/middleware"
	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/internal/service/pet"
	"github.com/openvet/clinic-api/pkg/errors"
	"github.com/openvet/clinic-api/pkg/httputil"
)

type Handler struct {
	service *pet.Service
}

func NewHandler(service *pet.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the pet registry. Single-pet lookup is open to any
// authenticated caller; everything else is staff-only.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authmw *middleware.AuthMiddleware) {
	g := r.Group("/pets")
	g.GET("/:id", h.Get)

	staff := g.Group("", authmw.RequireStaff())
	staff.POST("", h.Create)
	staff.GET("", h.List)
	staff.GET("/:id/history", h.GetWithHistory)
	staff.PUT("/:id", h.Update)
	staff.DELETE("/:id", h.Delete)
	staff.POST("/:id/medical-records", h.AddMedicalRecord)
	staff.GET("/:id/medical-records", h.ListMedicalRecords)
	staff.POST("/:id/vaccinations", h.AddVaccination)
	staff.GET("/:id/vaccinations", h.ListVaccinations)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), c.GetString(middleware.ContextToken), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "pet registered", created)
}

// Get returns the pet with its medical records and vaccinations embedded,
// the same shape the registry has always served for a single-pet fetch.
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.service.GetWithHistory(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) GetWithHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.service.GetWithHistory(c.Request.Context(), id)
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
	var req model.UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.GetString(middleware.ContextToken), id, &req)
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
	httputil.RespondWithMessage(c, "pet deactivated")
}

func (h *Handler) List(c *gin.Context) {
	pets, err := h.service.List(c.Request.Context(), c.Query("owner_dni"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithList(c, pets, len(pets))
}

func (h *Handler) AddMedicalRecord(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.AddMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	rec, err := h.service.AddMedicalRecord(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "medical record added", rec)
}

func (h *Handler) ListMedicalRecords(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	records, err := h.service.ListMedicalRecords(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithList(c, records, len(records))
}

func (h *Handler) AddVaccination(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.AddVaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	vac, err := h.service.AddVaccination(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "vaccination recorded", vac)
}

func (h *Handler) ListVaccinations(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	vaccinations, err := h.service.ListVaccinations(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithList(c, vaccinations, len(vaccinations))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid pet ID", err))
		return uuid.Nil, false
	}
	return id, true
}
