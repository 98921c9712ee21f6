package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tarikuzuma/ShelfSmart/internal/catalog/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/catalog/service"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(cs service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	retailerRoutes := router.Group("/retailers")
	{
		retailerRoutes.POST("", h.CreateRetailer)
		retailerRoutes.GET("", h.ListRetailers)
	}
	userRoutes := router.Group("/users")
	{
		userRoutes.POST("", h.CreateUser)
		userRoutes.GET("", h.ListUsers)
	}
	productRoutes := router.Group("/products")
	{
		productRoutes.POST("", h.CreateProduct)
		productRoutes.GET("", h.ListProducts)
		productRoutes.GET("/:id", h.GetProduct)
		productRoutes.GET("/:id/cheapest-batch", h.GetCheapestBatch)
	}
	batchRoutes := router.Group("/product-batches")
	{
		batchRoutes.POST("", h.CreateBatch)
		batchRoutes.GET("", h.ListBatches)
		batchRoutes.GET("/:id", h.GetBatch)
	}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id parameter"})
		return 0, false
	}
	return id, true
}

func (h *CatalogHandler) CreateRetailer(c *gin.Context) {
	var req domain.CreateRetailerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	retailer, err := h.catalogService.CreateRetailer(c.Request.Context(), req)
	if err != nil {
		logger.Error("CreateRetailer Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create retailer"})
		return
	}
	c.JSON(http.StatusCreated, retailer)
}

func (h *CatalogHandler) ListRetailers(c *gin.Context) {
	retailers, err := h.catalogService.ListRetailers(c.Request.Context())
	if err != nil {
		logger.Error("ListRetailers Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve retailers"})
		return
	}
	c.JSON(http.StatusOK, retailers)
}

func (h *CatalogHandler) CreateUser(c *gin.Context) {
	var req domain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	user, err := h.catalogService.CreateUser(c.Request.Context(), req)
	if err != nil {
		logger.Error("CreateUser Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *CatalogHandler) ListUsers(c *gin.Context) {
	users, err := h.catalogService.ListUsers(c.Request.Context())
	if err != nil {
		logger.Error("ListUsers Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	product, err := h.catalogService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrRetailerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("CreateProduct Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter := domain.ProductFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}
	products, err := h.catalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		logger.Error("ListProducts Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("GetProduct Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) GetCheapestBatch(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	batch, err := h.catalogService.GetCheapestBatch(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No batch found for product"})
			return
		}
		logger.Error("GetCheapestBatch Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cheapest batch"})
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *CatalogHandler) CreateBatch(c *gin.Context) {
	var req domain.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	batch, err := h.catalogService.CreateBatch(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidBatchDates) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("CreateBatch Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product batch"})
		return
	}
	c.JSON(http.StatusCreated, batch)
}

func (h *CatalogHandler) ListBatches(c *gin.Context) {
	var productID int64
	if raw := c.Query("product_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id parameter"})
			return
		}
		productID = parsed
	}
	batches, err := h.catalogService.ListBatches(c.Request.Context(), productID)
	if err != nil {
		logger.Error("ListBatches Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product batches"})
		return
	}
	c.JSON(http.StatusOK, batches)
}

func (h *CatalogHandler) GetBatch(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	batch, err := h.catalogService.GetBatch(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("GetBatch Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product batch"})
		return
	}
	c.JSON(http.StatusOK, batch)
}
