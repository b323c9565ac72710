// seed puebla la base de datos con un catálogo de farmacia y clientes de
// demostración para desarrollo local.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que el API (DATABASE_URL o DB_*). Los productos
// se identifican por SKU y los clientes por documento: si ya existen se
// omiten, así el seed es re-ejecutable.
package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/segment"
	"github.com/jdramirez/farmapos-api/internal/infrastructure/postgres"
	"github.com/jdramirez/farmapos-api/pkg/config"
	"github.com/jdramirez/farmapos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name + "-seed",
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})

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

	inserted := 0
	for _, p := range demoProducts() {
		existing, err := productRepo.GetBySKU(p.SKU)
		if err != nil {
			log.Fatal().Err(err).Str("sku", p.SKU).Msg("consultar producto")
		}
		if existing != nil {
			continue
		}
		p.ID = uuid.New().String()
		if err := productRepo.Create(p); err != nil {
			log.Fatal().Err(err).Str("sku", p.SKU).Msg("crear producto")
		}
		inserted++
	}
	log.Info().Int("insertados", inserted).Int("total", len(demoProducts())).
		Msg("catálogo de productos")

	existing, err := customerRepo.List(1000, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("listar clientes")
	}
	byDocument := make(map[string]bool, len(existing))
	for _, c := range existing {
		byDocument[c.DocumentID] = true
	}

	customers := 0
	for _, c := range demoCustomers() {
		if byDocument[c.DocumentID] {
			continue
		}
		c.ID = uuid.New().String()
		if err := customerRepo.Create(c); err != nil {
			log.Fatal().Err(err).Str("nombre", c.Name).Msg("crear cliente")
		}
		customers++
	}
	log.Info().Int("insertados", customers).Msg("clientes de demostración")
}

func cop(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func demoProducts() []*entity.Product {
	return []*entity.Product{
		{SKU: "ANL-001", Barcode: "7701234500011", Name: "Acetaminofén 500mg x 16 tabletas", Category: "analgésicos", Price: cop(5900), Cost: cop(3200), Quantity: 120, ReorderLevel: 25},
		{SKU: "ANL-002", Barcode: "7701234500028", Name: "Ibuprofeno 400mg x 10 tabletas", Category: "analgésicos", Price: cop(7200), Cost: cop(4100), Quantity: 80, ReorderLevel: 20},
		{SKU: "ANL-003", Barcode: "7701234500035", Name: "Acetaminofén jarabe pediátrico 150ml", Category: "pediátricos", Price: cop(12500), Cost: cop(7800), Quantity: 35, ReorderLevel: 10},
		{SKU: "ATB-001", Barcode: "7701234500110", Name: "Amoxicilina 500mg x 10 cápsulas", Category: "antibióticos", Price: cop(9800), Cost: cop(5600), Quantity: 60, ReorderLevel: 15, RequiresPrescription: true},
		{SKU: "ATB-002", Barcode: "7701234500127", Name: "Azitromicina 500mg x 3 tabletas", Category: "antibióticos", Price: cop(15400), Cost: cop(9300), Quantity: 40, ReorderLevel: 10, RequiresPrescription: true},
		{SKU: "CRD-001", Barcode: "7701234500219", Name: "Losartán 50mg x 30 tabletas", Category: "antihipertensivos", Price: cop(18900), Cost: cop(11200), Quantity: 50, ReorderLevel: 12, RequiresPrescription: true},
		{SKU: "GIT-001", Barcode: "7701234500318", Name: "Omeprazol 20mg x 14 cápsulas", Category: "gastrointestinales", Price: cop(8700), Cost: cop(4900), Quantity: 70, ReorderLevel: 15},
		{SKU: "ALG-001", Barcode: "7701234500417", Name: "Loratadina 10mg x 10 tabletas", Category: "antialérgicos", Price: cop(6400), Cost: cop(3500), Quantity: 90, ReorderLevel: 20},
		{SKU: "RSP-001", Barcode: "7701234500516", Name: "Salbutamol inhalador 100mcg", Category: "respiratorios", Price: cop(24800), Cost: cop(15900), Quantity: 25, ReorderLevel: 8, RequiresPrescription: true},
		{SKU: "HDR-001", Barcode: "7701234500615", Name: "Suero oral sabor natural 500ml", Category: "hidratación", Price: cop(4300), Cost: cop(2400), Quantity: 150, ReorderLevel: 30},
		{SKU: "ANT-001", Barcode: "7701234500714", Name: "Alcohol antiséptico 700ml", Category: "antisépticos", Price: cop(8900), Cost: cop(5100), Quantity: 65, ReorderLevel: 15},
		{SKU: "VIT-001", Barcode: "7701234500813", Name: "Vitamina C 1g x 10 efervescentes", Category: "vitaminas", Price: cop(11200), Cost: cop(6700), Quantity: 55, ReorderLevel: 12},
	}
}

func demoCustomers() []*entity.Customer {
	return []*entity.Customer{
		{Name: "María Gómez", DocumentID: "1032456789", Email: "maria.gomez@example.com", Phone: "3001234567", Segment: segment.SegmentNew, TotalSpent: decimal.Zero, AverageOrderValue: decimal.Zero},
		{Name: "Jorge Ramírez", DocumentID: "79845123", Email: "jorge.ramirez@example.com", Phone: "3109876543", Segment: segment.SegmentNew, TotalSpent: decimal.Zero, AverageOrderValue: decimal.Zero},
		{Name: "Ana Lucía Torres", DocumentID: "52367894", Phone: "3205551234", Segment: segment.SegmentNew, TotalSpent: decimal.Zero, AverageOrderValue: decimal.Zero},
	}
}
