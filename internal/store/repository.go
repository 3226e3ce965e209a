package store

import (
	"context"

	"kidstore/internal/models"
)

//go:generate mockgen -destination=mocks/repository.go -package=mocks kidstore/internal/store DocumentStore,ProductRepository,OrderRepository

// ProductRepository persists and queries catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (string, error)
	Search(ctx context.Context, query ProductQuery) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (models.Product, error)
}

// OrderRepository persists orders.
type OrderRepository interface {
	Create(ctx context.Context, order models.Order) (string, error)
}
