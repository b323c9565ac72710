package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jdramirez/farmapos-api/internal/application/inventory"
	"github.com/jdramirez/farmapos-api/internal/application/pos"
	"github.com/jdramirez/farmapos-api/internal/application/usecase"
	"github.com/jdramirez/farmapos-api/internal/infrastructure/cache"
	infrapdf "github.com/jdramirez/farmapos-api/internal/infrastructure/pdf"
	"github.com/jdramirez/farmapos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jdramirez/farmapos-api/internal/interfaces/http"
	"github.com/jdramirez/farmapos-api/pkg/config"
	"github.com/jdramirez/farmapos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de productos: Redis si está configurado, no-op en caso contrario.
	var productCache cache.ProductCache = cache.NewNoop()
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).
				Msg("Redis no disponible; la caché de productos queda desactivada")
		} else {
			productCache = cache.NewRedis(client, cfg.Redis.TTL)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de productos activa")
		}
	}

	policy := pos.Policy{AllowNegativeStock: cfg.POS.AllowNegativeStock}

	productUC := usecase.NewProductUseCase(productRepo, productCache)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)
	adjustUC := inventory.NewAdjustStockUseCase(productRepo, productCache, cfg.POS.AllowNegativeStock, log.Component("inventory"))
	commitUC := pos.NewCommitSaleUseCase(txRunner, productRepo, saleRepo, productCache, policy, log.Component("pos"))
	reverseUC := pos.NewReverseSaleUseCase(txRunner, saleRepo, productCache, log.Component("pos"))

	receiptGen := infrapdf.NewReceiptGenerator(cfg.POS.ReceiptFooter)
	receiptUC := pos.NewReceiptUseCase(saleRepo, receiptGen)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FarmaPOS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		CustomerUC: customerUC,
		LedgerUC:   ledgerUC,
		AdjustUC:   adjustUC,
		CommitUC:   commitUC,
		ReverseUC:  reverseUC,
		ReceiptUC:  receiptUC,
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

	log.Info().Msg("aplicación detenida")
}
