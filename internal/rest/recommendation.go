package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"customerAgent/domain"
	"customerAgent/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RecommendationService interface {
	GetOrGenerate(ctx context.Context, customerID string, limit int) (domain.RecommendationSet, error)
	OnInteraction(ctx context.Context, customerID string, kind string, payload any) (domain.InteractionAck, error)
}

type RecommendationHandler struct {
	recommendationService RecommendationService
	validator             *validator.Validate
	timeout               time.Duration
}

func NewRecommendationHandler(recommendationService RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		validator:             validator.New(),
		timeout:               10 * time.Second,
	}
}

type (
	RecommendationQuery struct {
		CustomerID string `param:"customer_id" validate:"required"`
		Limit      int    `query:"limit" validate:"gte=0,lte=100"`
	}

	BrowsingInteractionRequest struct {
		CustomerID string  `json:"customer_id" validate:"required"`
		Category   string  `json:"category" validate:"required"`
		ProductID  *uint64 `json:"product_id,omitempty"`
	}

	PurchaseItemRequest struct {
		ProductID       uint64  `json:"product_id" validate:"required"`
		ProductName     string  `json:"product_name" validate:"required"`
		ProductCategory string  `json:"product_category" validate:"required"`
		Price           float64 `json:"price" validate:"gte=0"`
	}

	PurchaseInteractionRequest struct {
		CustomerID string                `json:"customer_id" validate:"required"`
		Items      []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
	}
)

// GET /recommendations/:customer_id?limit=10
func (h *RecommendationHandler) GetRecommendations(c echo.Context) error {
	var q RecommendationQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	set, err := h.recommendationService.GetOrGenerate(ctx, q.CustomerID, q.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, customerNotFound)
		}
		logger.Error("Failed to get recommendations", "customer_id", q.CustomerID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, set)
}

// POST /recommendations/process-browsing
func (h *RecommendationHandler) ProcessBrowsing(c echo.Context) error {
	var req BrowsingInteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	payload := map[string]any{
		"category":   req.Category,
		"product_id": req.ProductID,
	}

	ack, err := h.recommendationService.OnInteraction(ctx, req.CustomerID, domain.InteractionBrowsing, payload)
	if err != nil {
		logger.Error("Failed to process browsing interaction", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, ack)
}

// POST /recommendations/process-purchase
func (h *RecommendationHandler) ProcessPurchase(c echo.Context) error {
	var req PurchaseInteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ack, err := h.recommendationService.OnInteraction(ctx, req.CustomerID, domain.InteractionPurchase, map[string]any{"items": req.Items})
	if err != nil {
		logger.Error("Failed to process purchase interaction", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, ack)
}
