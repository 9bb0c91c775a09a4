package service

import (
	"context"
	"fmt"
	"time"

	"mini-inventory/internal/config"
	"mini-inventory/internal/inventory"
	"mini-inventory/internal/model"
	"mini-inventory/internal/report"

	"github.com/rs/zerolog"
)

// inventoryService implements InventoryService.
type inventoryService struct {
	manager   *inventory.Manager
	validator Validator
	policy    config.InventoryConfig
	now       func() time.Time
	logger    zerolog.Logger
}

// NewInventoryService creates a new inventory service over manager.
func NewInventoryService(manager *inventory.Manager, validator Validator, policy config.InventoryConfig, logger zerolog.Logger) InventoryService {
	if policy.LowStockThreshold < 1 {
		policy.LowStockThreshold = model.DefaultLowStockThreshold
	}
	return &inventoryService{
		manager:   manager,
		validator: validator,
		policy:    policy,
		now:       time.Now,
		logger:    logger.With().Str("service", "inventory").Logger(),
	}
}

// List returns every product, in insertion order, decorated for display.
func (s *inventoryService) List(ctx context.Context) ([]model.ProductView, error) {
	snap := s.manager.Snapshot()

	views := make([]model.ProductView, 0, len(snap.Products))
	for _, p := range snap.Products {
		views = append(views, model.ProductView{
			Product:    p,
			StockLevel: model.LevelFor(p.Quantity, s.policy.LowStockThreshold),
			Editing:    snap.Editing != nil && snap.Editing.ID == p.ID,
			Deletable:  s.deletable(p),
		})
	}

	s.logger.Debug().Int("count", len(views)).Msg("listed products")

	return views, nil
}

// GetByID retrieves a single product by ID.
func (s *inventoryService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	p, ok := s.manager.Lookup(id)
	if !ok {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return &p, nil
}

// Create validates fields and adds a new product.
func (s *inventoryService) Create(ctx context.Context, fields model.ProductFields) (model.Product, error) {
	if err := s.validator.Validate(fields); err != nil {
		s.logger.Debug().Err(err).Msg("rejected product create")
		return model.Product{}, err
	}

	p := s.manager.Add(fields)

	s.logger.Info().
		Str("product_id", p.ID).
		Str("name", p.Name).
		Int("quantity", p.Quantity).
		Msg("product created")

	return p, nil
}

// Update validates and replaces an existing product.
func (s *inventoryService) Update(ctx context.Context, product model.Product) (model.Product, error) {
	if product.ID == "" {
		return model.Product{}, model.ErrProductNotFound
	}

	// Unknown targets are rejected here so the open edit-selection survives.
	if _, ok := s.manager.Lookup(product.ID); !ok {
		s.logger.Debug().Str("product_id", product.ID).Msg("update target not found")
		return model.Product{}, model.ErrProductNotFound
	}

	if err := s.validator.Validate(product.Fields()); err != nil {
		s.logger.Debug().Err(err).Str("product_id", product.ID).Msg("rejected product update")
		return model.Product{}, err
	}

	if !s.manager.Update(product) {
		s.logger.Debug().Str("product_id", product.ID).Msg("update target not found")
		return model.Product{}, model.ErrProductNotFound
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Str("name", product.Name).
		Int("quantity", product.Quantity).
		Msg("product updated")

	return product, nil
}

// Save dispatches a create or update intent.
func (s *inventoryService) Save(ctx context.Context, intent model.SaveIntent) (model.Product, error) {
	switch in := intent.(type) {
	case model.CreateIntent:
		return s.Create(ctx, in.Fields)
	case model.UpdateIntent:
		return s.Update(ctx, in.Product)
	default:
		return model.Product{}, model.NewDomainError(model.ErrCodeInvalidIntent, fmt.Sprintf("unsupported save intent %T", intent))
	}
}

// Delete removes a product. With the zero-stock policy on, only products
// with no remaining quantity can be deleted.
func (s *inventoryService) Delete(ctx context.Context, id string) error {
	p, ok := s.manager.Lookup(id)
	if !ok {
		s.logger.Debug().Str("product_id", id).Msg("delete of absent product ignored")
		return nil
	}

	if !s.deletable(p) {
		s.logger.Warn().
			Str("product_id", id).
			Int("quantity", p.Quantity).
			Msg("refused to delete product with stock")
		return model.ErrStockNotEmpty
	}

	if s.manager.Delete(id) {
		s.logger.Info().Str("product_id", id).Msg("product deleted")
	}
	return nil
}

// SetQuantity replaces a product's quantity. Negative values are stored as zero.
func (s *inventoryService) SetQuantity(ctx context.Context, id string, quantity int) (model.Product, error) {
	return s.changeQuantity(id, func() (model.Product, bool) {
		return s.manager.SetQuantity(id, quantity)
	})
}

// AdjustQuantity changes a product's quantity by delta, never below zero.
func (s *inventoryService) AdjustQuantity(ctx context.Context, id string, delta int) (model.Product, error) {
	return s.changeQuantity(id, func() (model.Product, bool) {
		return s.manager.AdjustQuantity(id, delta)
	})
}

func (s *inventoryService) changeQuantity(id string, apply func() (model.Product, bool)) (model.Product, error) {
	if _, ok := s.manager.Lookup(id); !ok {
		return model.Product{}, model.ErrProductNotFound
	}

	if editing, ok := s.manager.Editing(); ok && editing.ID == id {
		s.logger.Debug().Str("product_id", id).Msg("quantity change refused while editing")
		return model.Product{}, model.ErrProductBeingEdited
	}

	p, ok := apply()
	if !ok {
		return model.Product{}, model.ErrProductNotFound
	}

	s.logger.Info().
		Str("product_id", id).
		Int("quantity", p.Quantity).
		Msg("quantity changed")

	return p, nil
}

// SelectForEdit makes the product with the given ID the edit-selection.
func (s *inventoryService) SelectForEdit(ctx context.Context, id string) (model.Product, error) {
	p, ok := s.manager.Lookup(id)
	if !ok {
		return model.Product{}, model.ErrProductNotFound
	}

	s.manager.SelectForEdit(p)

	s.logger.Debug().Str("product_id", id).Msg("product selected for edit")

	return p, nil
}

// CancelEdit clears the edit-selection.
func (s *inventoryService) CancelEdit(ctx context.Context) error {
	s.manager.CancelEdit()
	return nil
}

// Editing returns the current edit-selection, or nil.
func (s *inventoryService) Editing(ctx context.Context) (*model.Product, error) {
	p, ok := s.manager.Editing()
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Maintenance resolves the form for id. An empty or unknown id yields an
// empty create form.
func (s *inventoryService) Maintenance(ctx context.Context, id string) (model.MaintenanceView, error) {
	if id != "" {
		if p, ok := s.manager.Lookup(id); ok {
			return model.MaintenanceView{Mode: model.ModeEdit, ID: p.ID, Product: p.Fields()}, nil
		}
		s.logger.Debug().Str("product_id", id).Msg("maintenance for unknown product, using create mode")
	}
	return model.MaintenanceView{Mode: model.ModeCreate}, nil
}

// StockReport summarises current stock levels.
func (s *inventoryService) StockReport(ctx context.Context) (model.StockReport, error) {
	snap := s.manager.Snapshot()
	return report.Build(snap.Products, snap.Editing, s.policy.LowStockThreshold, s.now()), nil
}

func (s *inventoryService) deletable(p model.Product) bool {
	return !s.policy.DeleteRequiresZero || p.Quantity == 0
}
