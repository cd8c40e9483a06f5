package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"customerAgent/domain"
	"customerAgent/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, profile *domain.CustomerProfile) error
	AddAddresses(ctx context.Context, addresses []domain.CustomerAddress) (int, error)
	GetProfile(ctx context.Context, customerID string) (domain.CustomerDetail, error)
	UpdateBehavior(ctx context.Context, update domain.BehaviorUpdate) (string, error)
}

type CustomerHandler struct {
	customerService CustomerService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type (
	CreateCustomerRequest struct {
		CustomerID  string `json:"customer_id" validate:"required"`
		FullName    string `json:"full_name" validate:"required"`
		Email       string `json:"email" validate:"required,email"`
		Username    string `json:"username" validate:"required"`
		PhoneNumber string `json:"phone_number"`
		Age         int    `json:"age" validate:"gte=0,lte=150"`
		Gender      string `json:"gender"`
		Location    string `json:"location"`
	}

	AddressRequest struct {
		CustomerID  string `json:"customer_id" validate:"required"`
		AddressType string `json:"address_type" validate:"required,oneof=shipping billing"`
		Address     string `json:"address" validate:"required"`
	}

	PurchaseRequest struct {
		ProductName     string    `json:"product_name" validate:"required"`
		ProductCategory string    `json:"product_category" validate:"required"`
		Price           float64   `json:"price" validate:"gte=0"`
		OrderDate       time.Time `json:"order_date"`
	}

	UpdateBehaviorRequest struct {
		CustomerID       string            `json:"customer_id" validate:"required"`
		BrowsingCategory string            `json:"browsing_category"`
		Purchases        []PurchaseRequest `json:"purchases" validate:"omitempty,dive"`
	}
)

// POST /customer/create
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var req CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate create customer request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile := &domain.CustomerProfile{
		CustomerID:  req.CustomerID,
		FullName:    req.FullName,
		Email:       req.Email,
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
		Gender:      req.Gender,
		Location:    req.Location,
	}

	if err := h.customerService.CreateCustomer(ctx, profile); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(map[string]interface{}{
		"message":     "Customer created successfully",
		"customer_id": profile.CustomerID,
	}))
}

// POST /customer/add-address
func (h *CustomerHandler) AddAddresses(c echo.Context) error {
	var req []AddressRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Var(req, "required,min=1,dive"); err != nil {
		logger.Error("Failed to validate address request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	addresses := make([]domain.CustomerAddress, 0, len(req))
	for _, a := range req {
		addresses = append(addresses, domain.CustomerAddress{
			CustomerID:  a.CustomerID,
			AddressType: a.AddressType,
			Address:     a.Address,
		})
	}

	n, err := h.customerService.AddAddresses(ctx, addresses)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(map[string]interface{}{
		"message": fmt.Sprintf("%d address(es) added successfully", n),
	}))
}

// GET /customer/get-profile/:customer_id
func (h *CustomerHandler) GetProfile(c echo.Context) error {
	customerID := c.Param("customer_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	detail, err := h.customerService.GetProfile(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, customerNotFound)
		}
		logger.Error("Failed to get customer profile", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(detail))
}

// POST /customer/update-behavior
func (h *CustomerHandler) UpdateBehavior(c echo.Context) error {
	var req UpdateBehaviorRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate update behavior request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	update := domain.BehaviorUpdate{
		CustomerID:       req.CustomerID,
		BrowsingCategory: req.BrowsingCategory,
	}
	for _, p := range req.Purchases {
		update.Purchases = append(update.Purchases, domain.PurchaseHistory{
			ProductName:     p.ProductName,
			ProductCategory: p.ProductCategory,
			Price:           p.Price,
			OrderDate:       p.OrderDate,
		})
	}

	msg, err := h.customerService.UpdateBehavior(ctx, update)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, customerNotFound)
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"message": msg,
	}))
}
