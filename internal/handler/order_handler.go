package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockdrill/mockdrill-backend/internal/middleware"
	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/response"
	"github.com/mockdrill/mockdrill-backend/internal/service"
	"github.com/mockdrill/mockdrill-backend/internal/validator"
)

// OrderHandler handles checkout, payment verification and enrollment
// endpoints.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder godoc
// POST /api/v1/student/orders
// Reuses an existing pending order for the same item when one exists.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateOrderRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, err := h.orderService.CreateOrder(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemIsFree):
			response.Fail(c, http.StatusBadRequest, response.ErrItemIsFree)
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
		case failNotFound(c, err):
		default:
			response.Fail(c, http.StatusBadGateway, response.ErrGatewayFailure)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"checkout": session})
}

// VerifyPayment godoc
// POST /api/v1/student/orders/verify
// Re-verifies the gateway signature server-side before any enrollment is
// created. A bad signature marks the order failed.
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.VerifyPaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.orderService.VerifyPayment(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSignatureMismatch):
			response.Fail(c, http.StatusBadRequest, response.ErrSignatureMismatch)
		case errors.Is(err, service.ErrNotOrderOwner):
			response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		case errors.Is(err, service.ErrOrderNotPending):
			response.Fail(c, http.StatusConflict, response.ErrOrderNotPending)
		case failNotFound(c, err):
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrollment": enrollment})
}

// CancelOrder godoc
// POST /api/v1/student/orders/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CancelOrderRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), claims.UserID, req.OrderID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotOrderOwner):
			response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		case errors.Is(err, service.ErrOrderNotPending):
			response.Fail(c, http.StatusConflict, response.ErrOrderNotPending)
		case failNotFound(c, err):
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "order cancelled"})
}

// EnrollFree godoc
// POST /api/v1/student/enrollments
// Grants access to free content without an order.
func (h *OrderHandler) EnrollFree(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateOrderRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.orderService.EnrollFree(c.Request.Context(), claims.UserID, model.ItemType(req.ItemType), req.ItemID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentRequired):
			response.Fail(c, http.StatusPaymentRequired, response.ErrPaymentRequired)
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
		case failNotFound(c, err):
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// ListEnrollments godoc
// GET /api/v1/student/enrollments
func (h *OrderHandler) ListEnrollments(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	enrollments, err := h.orderService.ListEnrollments(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}

// ListOrders godoc
// GET /api/v1/student/orders?page=&per_page=
func (h *OrderHandler) ListOrders(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, perPage := pageQuery(c)
	orders, pagination, err := h.orderService.ListOrders(c.Request.Context(), claims.UserID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"orders": orders}, pagination)
}

// AdminListOrders godoc
// GET /api/v1/admin/orders?page=&per_page=
func (h *OrderHandler) AdminListOrders(c *gin.Context) {
	page, perPage := pageQuery(c)
	orders, pagination, err := h.orderService.ListAllOrders(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"orders": orders}, pagination)
}
