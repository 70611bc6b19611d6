package handlers

import (
	"net/http"
	"strconv"

	"github.com/dstrelka/marketcart/internal/auth"
	"github.com/dstrelka/marketcart/internal/models"
	"github.com/dstrelka/marketcart/internal/store"
	"github.com/gin-gonic/gin"
)

//
// --- Order Handlers ---
//

func caller(c *gin.Context) auth.Identity {
	return auth.Identity{UserID: callerID(c), Role: callerRole(c)}
}

func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return 0, false
	}
	return id, true
}

// CreateOrderInput defines the JSON for checkout. The payment method is
// recorded verbatim, nothing is charged here.
type CreateOrderInput struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	ShippingMethod  string `json:"shipping_method" binding:"required"`
	PaymentMethod   string `json:"payment_method" binding:"required"`
}

// CreateOrder is the handler for POST /v1/orders
func (h *Handlers) CreateOrder(c *gin.Context) {
	userID := callerID(c)

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindingError(c, err)
		return
	}

	order, err := h.Orders.CreateFromCart(c, userID, store.Checkout{
		ShippingAddress: input.ShippingAddress,
		ShippingMethod:  input.ShippingMethod,
		PaymentMethod:   input.PaymentMethod,
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetMyOrders is the handler for GET /v1/orders
func (h *Handlers) GetMyOrders(c *gin.Context) {
	userID := callerID(c)

	orders, err := h.Orders.ListUserOrders(c, userID)
	if err != nil {
		errorResponse(c, err)
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder is the handler for GET /v1/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.Orders.GetOrder(c, caller(c), orderID)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder is the handler for POST /v1/orders/:id/cancel
func (h *Handlers) CancelOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.Orders.Cancel(c, caller(c), orderID)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatusInput defines the JSON for an admin status update.
type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus is the handler for PATCH /v1/admin/orders/:id/status
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindingError(c, err)
		return
	}

	order, err := h.Orders.UpdateStatus(c, caller(c), orderID, models.OrderStatus(input.Status))
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
