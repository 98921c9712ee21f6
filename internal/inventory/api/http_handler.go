package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tarikuzuma/ShelfSmart/internal/inventory/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/inventory/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/inventory/service"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(is service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	inventoryRoutes := router.Group("/inventories")
	{
		inventoryRoutes.POST("", h.CreateSnapshot)
		inventoryRoutes.GET("", h.ListSnapshots)
	}
}

func (h *InventoryHandler) CreateSnapshot(c *gin.Context) {
	var req domain.CreateSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	snapshot, err := h.inventoryService.CreateSnapshot(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSnapshot) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("CreateSnapshot Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inventory snapshot"})
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

func (h *InventoryHandler) ListSnapshots(c *gin.Context) {
	query := domain.SnapshotQuery{}
	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id parameter"})
			return
		}
		query.ProductID = id
	}
	for _, bound := range []struct {
		param string
		dst   *time.Time
	}{
		{"date_from", &query.DateFrom},
		{"date_to", &query.DateTo},
	} {
		if raw := c.Query(bound.param); raw != "" {
			d, err := time.Parse("2006-01-02", raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + bound.param + " parameter"})
				return
			}
			*bound.dst = d
		}
	}

	snapshots, err := h.inventoryService.ListSnapshots(c.Request.Context(), query)
	if err != nil {
		logger.Error("ListSnapshots Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve inventory snapshots"})
		return
	}
	c.JSON(http.StatusOK, snapshots)
}
