package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Catálogo inicial del almacén. Las claves son categorías y los valores los
// productos que arrancan en ellas; las categorías sin productos también se
// crean para que aparezcan en los filtros.
var seedData = map[string][]string{
	"Cookies":   {},
	"Cervezas":  {},
	"Refrescos": {"Guaraná", "Pepsi Zero"},
	"Cápsulas":  {},
	"Snacks":    {"Cheetos", "Cebolitos", "Doritos", "Torcida Churrasco", "Torcida Costela c Limao"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	log.Info().Msg("poblando catálogo inicial")

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	defaultPrice := decimal.NewFromFloat(5.00)
	now := time.Now()

	for categoryName, productNames := range seedData {
		category, err := categoryRepo.GetByName(categoryName)
		if err != nil {
			log.Fatal().Err(err).Str("categoria", categoryName).Msg("consultar categoría")
		}
		if category == nil {
			category = &entity.Category{ID: uuid.NewString(), Name: categoryName, CreatedAt: now, UpdatedAt: now}
			if err := categoryRepo.Create(category); err != nil {
				log.Fatal().Err(err).Str("categoria", categoryName).Msg("crear categoría")
			}
			log.Info().Str("categoria", categoryName).Msg("categoría creada")
		} else {
			log.Info().Str("categoria", categoryName).Msg("categoría ya existe")
		}

		prefix := strings.ToUpper(string([]rune(categoryName)[:3]))
		for i, productName := range productNames {
			// SKU determinista para que re-ejecutar el seed no duplique.
			sku := fmt.Sprintf("%s-%d", prefix, 1000+i)
			existing, err := productRepo.GetBySKU(sku)
			if err != nil {
				log.Fatal().Err(err).Str("sku", sku).Msg("consultar producto")
			}
			if existing != nil {
				log.Info().Str("producto", productName).Str("sku", sku).Msg("producto ya existe")
				continue
			}

			price := defaultPrice
			product := &entity.Product{
				ID:         uuid.NewString(),
				Name:       productName,
				SKU:        sku,
				CategoryID: category.ID,
				Price:      &price,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := productRepo.Create(product); err != nil {
				log.Fatal().Err(err).Str("producto", productName).Msg("crear producto")
			}
			log.Info().Str("producto", productName).Str("sku", sku).Msg("producto creado")
		}
	}

	log.Info().Msg("catálogo inicial listo")
}
