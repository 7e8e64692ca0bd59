// Package app wires configuration to the catalog store and the selection services.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/sathishthangasamy/healthcare-product-selector/config"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/domain"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/infrastructure/catalog"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/infrastructure/remote"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/usecase"
)

// Services bundles everything a presenter needs
type Services struct {
	Store    *catalog.Store
	Products *usecase.ProductService
	Plans    *usecase.PlanService
}

// Build loads the configured catalogs and creates the services over them.
// Catalogs that fail to load are reported as unavailable; Build does not fail.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}

	loadCtx := ctx
	if cfg.Catalog.FetchTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, cfg.Catalog.FetchTimeout)
		defer cancel()
	}

	client := remote.NewClient(cfg.Catalog.FetchTimeout, cfg.Catalog.FetchRPS, logger)
	store := catalog.Load(loadCtx, catalog.NewReader(client), catalog.Sources{
		Products:  cfg.Catalog.Products,
		Plans:     cfg.Catalog.Plans,
		PlanTypes: cfg.Catalog.PlanTypes,
	}, logger)

	return NewServices(cfg, store, logger)
}

// NewServices creates the services over an already loaded store
func NewServices(cfg *config.Config, store *catalog.Store, logger *zap.Logger) *Services {
	return &Services{
		Store: store,
		Products: usecase.NewProductService(store, usecase.ProductServiceConfig{
			ResultLimit: cfg.Selection.ProductLimit,
			Denylist:    Denylist(cfg.Selection),
		}, logger),
		Plans: usecase.NewPlanService(store, usecase.PlanServiceConfig{
			ResultLimit: cfg.Selection.PlanLimit,
		}, logger),
	}
}

// Denylist builds the age denylist from configuration. A nil list keeps the defaults.
func Denylist(cfg config.SelectionConfig) usecase.AgeDenylist {
	if cfg.ChildDenylist == nil {
		return usecase.DefaultAgeDenylist()
	}
	return usecase.AgeDenylist{
		domain.AgeGroupChild: cfg.ChildDenylist,
	}
}
