package store

import (
	"context"

	"kidstore/internal/models"
)

type orderRepository struct {
	docs DocumentStore
}

func NewOrderRepository(docs DocumentStore) OrderRepository {
	return &orderRepository{docs: docs}
}

func (r *orderRepository) Create(ctx context.Context, order models.Order) (string, error) {
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}

	id, err := r.docs.InsertOne(ctx, models.OrderCollection, order)
	if err != nil {
		return "", err
	}
	return ToExternal(id), nil
}
