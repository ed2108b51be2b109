package router

import (
	"time"

	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/config"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/handler"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/middleware"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/repository"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/service"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	clienteRepo := repository.NewClienteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	facturaRepo := repository.NewFacturaRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	clienteSvc := service.NewClienteService(clienteRepo)
	productoSvc := service.NewProductoService(productoRepo)
	facturaSvc := service.NewFacturaService(facturaRepo, clienteRepo, productoRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	clientesH := handler.NewClientesHandler(clienteSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	facturasH := handler.NewFacturasHandler(facturaSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Price check — read-only, redis-cached
	r.GET("/v1/precio/:nombre", consultaH.GetPrecioPorNombre)

	v1 := r.Group("/v1")
	{
		v1.POST("/clientes", clientesH.Registrar)
		v1.GET("/clientes", clientesH.Listar)

		v1.POST("/productos", productosH.Registrar)
		v1.GET("/productos", productosH.Listar)

		v1.POST("/facturas", facturasH.Registrar)
		v1.GET("/facturas", facturasH.Listar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
