package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kidstore/internal/models"
	"kidstore/internal/store"
)

/* =========================
   REQUEST DTOs
========================= */

type customerRequest struct {
	Name    *string `json:"name" binding:"required"`
	Email   *string `json:"email" binding:"required,email"`
	Address *string `json:"address" binding:"required"`
	Phone   *string `json:"phone"`
}

type orderItemRequest struct {
	ProductID *string  `json:"product_id" binding:"required"`
	Title     *string  `json:"title" binding:"required"`
	Image     *string  `json:"image"`
	Quantity  *int     `json:"quantity" binding:"required,gte=1"`
	Price     *float64 `json:"price" binding:"required,gte=0"`
}

type createOrderRequest struct {
	Customer *customerRequest   `json:"customer" binding:"required"`
	Items    []orderItemRequest `json:"items" binding:"required,dive"`
	Subtotal *float64           `json:"subtotal" binding:"required,gte=0"`
	Shipping *float64           `json:"shipping" binding:"omitempty,gte=0"`
	Total    *float64           `json:"total" binding:"required,gte=0"`
	Status   *string            `json:"status"`
}

/* =========================
   CREATE ORDER
========================= */

// CreateOrder stores the order as submitted. Items are snapshots; their
// product ids are not looked up.
func CreateOrder(orders store.OrderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		var req createOrderRequest
		if !bindJSON(c, route, &req) {
			return
		}

		order := buildOrderFromRequest(req)
		if !models.IsKnownOrderStatus(order.Status) {
			zap.L().Warn("unrecognized order status", zap.String("route", route), zap.String("status", order.Status))
		}

		id, err := orders.Create(c.Request.Context(), order)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, err.Error())
			return
		}

		zap.L().Info("order created", zap.String("route", route), zap.String("id", id), zap.Int("items", len(order.Items)))
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

/* =========================
   BUILD ORDER
========================= */

func buildOrderFromRequest(req createOrderRequest) models.Order {
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: *item.ProductID,
			Title:     *item.Title,
			Image:     item.Image,
			Quantity:  *item.Quantity,
			Price:     *item.Price,
		})
	}

	order := models.Order{
		Customer: models.Customer{
			Name:    *req.Customer.Name,
			Email:   *req.Customer.Email,
			Address: *req.Customer.Address,
			Phone:   req.Customer.Phone,
		},
		Items:    items,
		Subtotal: *req.Subtotal,
		Total:    *req.Total,
		Status:   models.OrderStatusPending,
	}
	if req.Shipping != nil {
		order.Shipping = *req.Shipping
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	return order
}
