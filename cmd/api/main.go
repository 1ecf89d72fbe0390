package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	"github.com/jhoicas/metamorphocus-api/docs"
	"github.com/jhoicas/metamorphocus-api/internal/application/catalog"
	"github.com/jhoicas/metamorphocus-api/internal/application/finance"
	"github.com/jhoicas/metamorphocus-api/internal/application/inventory"
	"github.com/jhoicas/metamorphocus-api/internal/application/sales"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
	"github.com/jhoicas/metamorphocus-api/internal/infrastructure/memory"
	"github.com/jhoicas/metamorphocus-api/internal/infrastructure/observability"
	infrapdf "github.com/jhoicas/metamorphocus-api/internal/infrastructure/pdf"
	"github.com/jhoicas/metamorphocus-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/metamorphocus-api/internal/interfaces/http"
	"github.com/jhoicas/metamorphocus-api/pkg/config"
	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

// txRunner lo cumplen postgres.TxRunner y memory.Store.
type txRunner interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	shutdownTracing, err := observability.InitTracing(ctx, log, cfg.OTel, cfg.App.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	var (
		runner txRunner
		repos  repository.UnitOfWork
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store, err := memory.New()
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento en memoria")
		}
		runner, repos = store, store.Repos()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.Store.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		runner, repos = postgres.NewTxRunner(pool), postgres.NewUnitOfWork(pool)
	}

	hourlyRate := inventory.NewHourlyRate(repos.Settings, cfg.Labor.DefaultHourlyRate)
	orderUC := sales.NewOrderUseCase(runner, repos, log)
	receiptUC := sales.NewReceiptUseCase(orderUC, infrapdf.NewReceiptGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	httpRouter.UseMiddleware(app, log, cfg.HTTP.CORSOrigins)

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile(cfg.HTTP.SwaggerFile, log),
			Path:     "docs",
			Title:    "Metamorphocus API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Products:      catalog.NewProductUseCase(runner, repos, log),
		Materials:     catalog.NewMaterialUseCase(runner, repos, log),
		BOM:           inventory.NewBOMUseCase(runner, repos, log),
		Production:    inventory.NewProductionUseCase(runner, repos, log),
		Labor:         inventory.NewLaborUseCase(repos, hourlyRate, log),
		Costing:       inventory.NewCostingUseCase(repos, hourlyRate),
		Replenishment: inventory.NewReplenishmentUseCase(repos),
		Orders:        orderUC,
		Receipts:      receiptUC,
		Finance:       finance.NewTransactionUseCase(repos, log),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre de trazas")
	}

	log.Info().Msg("aplicación detenida")
}

// swaggerFile devuelve path si existe; si no, escribe el documento embebido en el directorio temporal.
func swaggerFile(path string, log *logger.Logger) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		log.Warn().Err(err).Msg("documento swagger embebido")
		return path
	}
	tmp := filepath.Join(os.TempDir(), "metamorphocus-swagger.json")
	if err := os.WriteFile(tmp, []byte(doc), 0o644); err != nil {
		log.Warn().Err(err).Msg("escribir swagger.json temporal")
		return path
	}
	return tmp
}
