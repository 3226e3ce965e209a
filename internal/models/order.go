package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// OrderCollection is the collection orders are persisted in.
const OrderCollection = "order"

// Recognized order lifecycle values. Status is not restricted to these.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Customer is embedded in an order and never stored on its own.
type Customer struct {
	Name    string  `bson:"name" json:"name"`
	Email   string  `bson:"email" json:"email"`
	Address string  `bson:"address" json:"address"`
	Phone   *string `bson:"phone" json:"phone"`
}

// OrderItem is a snapshot of a product taken when the order was placed.
// ProductID is kept as the external string and is not checked against the
// product collection.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Title     string  `bson:"title" json:"title"`
	Image     *string `bson:"image" json:"image"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
}

// Order defines the persisted order document.
type Order struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Customer Customer           `bson:"customer" json:"customer"`
	Items    []OrderItem        `bson:"items" json:"items"`
	Subtotal float64            `bson:"subtotal" json:"subtotal"`
	Shipping float64            `bson:"shipping" json:"shipping"`
	Total    float64            `bson:"total" json:"total"`
	Status   string             `bson:"status" json:"status"`
}

// IsKnownOrderStatus reports whether status is one of the documented values.
func IsKnownOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
