package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"kidstore/internal/models"
)

type productRepository struct {
	docs DocumentStore
}

func NewProductRepository(docs DocumentStore) ProductRepository {
	return &productRepository{docs: docs}
}

func (r *productRepository) Create(ctx context.Context, product models.Product) (string, error) {
	product.Normalize()

	id, err := r.docs.InsertOne(ctx, models.ProductCollection, product)
	if err != nil {
		return "", err
	}
	return ToExternal(id), nil
}

func (r *productRepository) Search(ctx context.Context, query ProductQuery) ([]models.Product, error) {
	raw, err := r.docs.Find(ctx, models.ProductCollection, query.Filter(), query.Limit())
	if err != nil {
		return nil, err
	}
	return decodeProducts(raw)
}

// FindByID fails with ErrInvalidIdentifier before touching the store when id
// is malformed, and with ErrNotFound when nothing matches.
func (r *productRepository) FindByID(ctx context.Context, id string) (models.Product, error) {
	objectID, err := ToNative(id)
	if err != nil {
		return models.Product{}, err
	}

	raw, err := r.docs.Find(ctx, models.ProductCollection, bson.D{{Key: "_id", Value: objectID}}, 1)
	if err != nil {
		return models.Product{}, err
	}
	if len(raw) == 0 {
		return models.Product{}, ErrNotFound
	}
	return normalizeProductDocument(raw[0])
}

// normalizeProductDocument tolerates documents written outside the API:
// numeric stock of any BSON number type and missing boolean flags.
func normalizeProductDocument(raw bson.M) (models.Product, error) {
	if val, ok := raw["stock"]; ok {
		switch typed := val.(type) {
		case int32:
			raw["stock"] = int(typed)
		case int64:
			raw["stock"] = int(typed)
		case float64:
			raw["stock"] = int(typed)
		case int:
			// already int
		default:
			raw["stock"] = 0
		}
	} else {
		raw["stock"] = 0
	}

	if _, ok := raw["in_stock"].(bool); !ok {
		raw["in_stock"] = true
	}
	if _, ok := raw["featured"].(bool); !ok {
		raw["featured"] = false
	}

	data, err := bson.Marshal(raw)
	if err != nil {
		return models.Product{}, wrapErr("decode", models.ProductCollection, err)
	}

	var p models.Product
	if err := bson.Unmarshal(data, &p); err != nil {
		return models.Product{}, wrapErr("decode", models.ProductCollection, err)
	}

	p.Normalize()
	return p, nil
}

func decodeProducts(raw []bson.M) ([]models.Product, error) {
	products := make([]models.Product, 0, len(raw))

	for _, doc := range raw {
		product, err := normalizeProductDocument(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}
