package product

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openvet/clinic-api/internal/middleware"
	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/internal/service/product"
	"github.com/openvet/clinic-api/pkg/errors"
	"github.com/openvet/clinic-api/pkg/httputil"
)

type Handler struct {
	service *product.Service
}

func NewHandler(service *product.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the inventory, entirely staff-only.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authmw *middleware.AuthMiddleware) {
	g := r.Group("/products", authmw.RequireStaff())
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/low-stock", h.ListLowStock)
	g.GET("/categories", h.ListCategories)
	g.GET("/search/:term", h.Search)
	g.GET("/barcode/:barcode", h.GetByBarcode)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.PATCH("/:id/stock", h.AdjustStock)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "product created", created)
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

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.UpdateProductRequest
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
	httputil.RespondWithMessage(c, "product deactivated")
}

func (h *Handler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithList(c, products, len(products))
}

func (h *Handler) ListLowStock(c *gin.Context) {
	products, err := h.service.ListLowStock(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithList(c, products, len(products))
}

func (h *Handler) GetByBarcode(c *gin.Context) {
	found, err := h.service.GetByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) Search(c *gin.Context) {
	products, err := h.service.Search(c.Request.Context(), c.Param("term"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithList(c, products, len(products))
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithList(c, categories, len(categories))
}

func (h *Handler) AdjustStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	updated, err := h.service.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid product ID", err))
		return 0, false
	}
	return id, true
}
