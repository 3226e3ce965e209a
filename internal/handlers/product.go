package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"kidstore/internal/models"
	"kidstore/internal/store"
)

/* =======================
   REQUEST / RESPONSE
======================= */

type createProductRequest struct {
	Title       *string  `json:"title" binding:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Category    *string  `json:"category" binding:"required"`
	Images      []string `json:"images"`
	InStock     *bool    `json:"in_stock"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	Rating      *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
	AgeRange    *string  `json:"age_range"`
	Materials   []string `json:"materials"`
	Featured    *bool    `json:"featured"`
}

type searchProductsRequest struct {
	Category *string `json:"category"`
	Featured *bool   `json:"featured"`
	Search   *string `json:"search"`
	Limit    *int64  `json:"limit" binding:"omitempty,gte=0"` // 0 means DefaultSearchLimit
}

// productResponse is a product with its identifier in external form.
type productResponse struct {
	ID string `json:"_id"`
	models.Product
}

func renderProduct(p models.Product) productResponse {
	p.Normalize()
	return productResponse{ID: store.ToExternal(p.ID), Product: p}
}

// buildProduct applies the documented defaults to a validated request.
func buildProduct(req createProductRequest) models.Product {
	product := models.Product{
		Title:       *req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Category:    *req.Category,
		Images:      models.StringList(req.Images),
		InStock:     true,
		Rating:      req.Rating,
		AgeRange:    req.AgeRange,
		Materials:   models.StringList(req.Materials),
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	product.Normalize()
	return product
}

func (r searchProductsRequest) query() store.ProductQuery {
	q := store.NewProductQuery()
	if r.Category != nil {
		q = q.WithCategory(*r.Category)
	}
	if r.Featured != nil {
		q = q.WithFeatured(*r.Featured)
	}
	if r.Search != nil {
		q = q.WithSearch(*r.Search)
	}
	if r.Limit != nil {
		q = q.WithLimit(*r.Limit)
	}
	return q
}

/* =======================
   CREATE
======================= */

func CreateProduct(products store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/products"
		defer handlePanic(c, route)

		var req createProductRequest
		if !bindJSON(c, route, &req) {
			return
		}

		id, err := products.Create(c.Request.Context(), buildProduct(req))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, err.Error())
			return
		}

		zap.L().Info("product created", zap.String("route", route), zap.String("id", id))
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

/* =======================
   SEARCH
======================= */

func SearchProducts(products store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/products/search"
		defer handlePanic(c, route)

		var req searchProductsRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil && !errors.Is(err, io.EOF) {
			respondValidation(c, route, describeBindError(err, requestBody(c)))
			return
		}

		query := req.query()
		zap.L().Debug("search", zap.String("route", route), zap.Any("filter", query.Filter()), zap.Int64("limit", query.Limit()))

		found, err := products.Search(c.Request.Context(), query)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, err.Error())
			return
		}

		items := make([]productResponse, 0, len(found))
		for _, p := range found {
			items = append(items, renderProduct(p))
		}

		zap.L().Info("returning products", zap.String("route", route), zap.Int("count", len(items)))
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

/* =======================
   GET BY ID
======================= */

func GetProduct(products store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/:id"
		defer handlePanic(c, route)

		id := c.Param("id")
		if !store.IsValidID(id) {
			respondWithError(c, http.StatusBadRequest, route, "Invalid product id")
			return
		}

		product, err := products.FindByID(c.Request.Context(), id)
		switch {
		case errors.Is(err, store.ErrInvalidIdentifier):
			respondWithError(c, http.StatusBadRequest, route, "Invalid product id")
			return
		case errors.Is(err, store.ErrNotFound):
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		case err != nil:
			respondWithError(c, http.StatusInternalServerError, route, err.Error())
			return
		}

		c.JSON(http.StatusOK, renderProduct(product))
	}
}
