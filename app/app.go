package app

import (
	"context"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"nk-catalog/app/controller"
	"nk-catalog/app/router"
	"nk-catalog/config"
	"nk-catalog/db"
	"nk-catalog/metrics"
	"nk-catalog/repository"
	"nk-catalog/service"
)

// Initialize connects the database, wires services and controllers and returns the HTTP handler
func Initialize(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	// Initialize database connection
	if err := db.InitDB(ctx, cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	settings, err := config.LoadCatalogSettings(cfg.CatalogConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog settings: %w", err)
	}

	if cfg.MoySklad.Token == "" {
		log.Printf("⚠️  MS_TOKEN is not set, МойСклад requests will be rejected")
	}
	if cfg.NK.APIKey == "" {
		log.Printf("⚠️  NC_API_KEY is not set, national catalog requests will be rejected")
	}

	// Initialize repository
	submissionRepo := repository.NewFeedSubmissionRepository()

	// Initialize services
	moySklad := service.NewMoySkladService(cfg.MoySklad)
	nk := service.NewNKService(cfg.NK)
	source := service.NewAssortmentService(moySklad, settings)
	resolver := service.NewCategoryResolver(nk, settings)
	builder := service.NewCardBuilder(resolver, settings)
	validator := service.NewDictionaryValidator(nk, resolver, settings)
	submissions := service.NewSubmissionService(source, nk, resolver, builder, validator, submissionRepo)
	catalog := service.NewCatalogService(cfg.HTTP.BaseURL, cfg.ChromePath)

	// Create controllers
	controllers := &router.Controllers{
		Catalog:    controller.NewCatalogController(source, catalog),
		Assortment: controller.NewAssortmentController(source, moySklad, validator),
		NK:         controller.NewNKController(submissions),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)

	return metrics.Middleware(mux), nil
}
