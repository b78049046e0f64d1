// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dscommerce/dscommerce-backend/internal/i18n"
	"github.com/dscommerce/dscommerce-backend/internal/services"
	"github.com/dscommerce/dscommerce-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "order")
	if !ok {
		return
	}

	order, err := h.orderService.FindByID(c.Request.Context(), utils.GetPrincipalFromContext(c), id)
	if err != nil {
		respondError(c, err, i18n.KeyOrderNotFound)
		return
	}

	utils.SuccessResponse(c, order)
}

// GET /orders/my-orders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.ListForClient(c.Request.Context(), utils.GetPrincipalFromContext(c), params)
	if err != nil {
		respondError(c, err, i18n.KeyOrderNotFound)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(orders, total, params))
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Insert(c.Request.Context(), utils.GetPrincipalFromContext(c), &req)
	if err != nil {
		respondError(c, err, i18n.KeyProductNotFound)
		return
	}

	c.Header("Location", "/orders/"+order.ID.String())
	utils.CreatedResponse(c, order)
}
