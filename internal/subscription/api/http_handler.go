package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	catalogRepo "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
	"github.com/tarikuzuma/ShelfSmart/internal/subscription/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/subscription/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/subscription/service"
)

type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(ss service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: ss}
}

func (h *SubscriptionHandler) RegisterRoutes(router *gin.RouterGroup) {
	subRoutes := router.Group("/subscriptions")
	{
		subRoutes.POST("", h.Subscribe)
		subRoutes.GET("", h.ListSubscriptions)
		subRoutes.DELETE("/:id", h.Unsubscribe)
	}
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req domain.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	sub, err := h.subscriptionService.Subscribe(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrUserNotFound) || errors.Is(err, catalogRepo.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, repository.ErrAlreadySubscribed) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Subscribe Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id parameter"})
		return
	}
	if err := h.subscriptionService.Unsubscribe(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Unsubscribe Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subscription"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription removed"})
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id parameter"})
			return
		}
		subs, err := h.subscriptionService.ListForUser(c.Request.Context(), userID)
		if err != nil {
			logger.Error("ListSubscriptions Hdl: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subscriptions"})
			return
		}
		c.JSON(http.StatusOK, subs)
		return
	}
	if raw := c.Query("product_id"); raw != "" {
		productID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id parameter"})
			return
		}
		subs, err := h.subscriptionService.ListForProduct(c.Request.Context(), productID)
		if err != nil {
			logger.Error("ListSubscriptions Hdl: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subscriptions"})
			return
		}
		c.JSON(http.StatusOK, subs)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "user_id or product_id query parameter is required"})
}
