package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kidstore/internal/handlers"
	"kidstore/internal/middleware"
	"kidstore/internal/store"
)

type Deps struct {
	Docs         store.DocumentStore
	Products     store.ProductRepository
	Orders       store.OrderRepository
	Env          handlers.DiagnosticsEnv
	AllowOrigins []string
	Logger       *zap.Logger
}

func New(d Deps) *gin.Engine {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.CORS(d.AllowOrigins),
	)

	r.GET("/", handlers.Home())
	r.GET("/test", handlers.Diagnostics(d.Docs, d.Env))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health())

		api.POST("/products", handlers.CreateProduct(d.Products))
		api.POST("/products/search", handlers.SearchProducts(d.Products))
		api.GET("/products/:id", handlers.GetProduct(d.Products))

		api.POST("/orders", handlers.CreateOrder(d.Orders))
	}

	return r
}
