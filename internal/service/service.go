package service

import (
	"context"

	"mini-inventory/internal/model"
)

// InventoryService defines the validated operations offered over the inventory.
type InventoryService interface {
	// List returns every product, in insertion order, decorated for display.
	List(ctx context.Context) ([]model.ProductView, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create validates fields and adds a new product.
	Create(ctx context.Context, fields model.ProductFields) (model.Product, error)

	// Update validates and replaces an existing product. Clears the edit-selection.
	Update(ctx context.Context, product model.Product) (model.Product, error)

	// Save dispatches a create or update intent.
	Save(ctx context.Context, intent model.SaveIntent) (model.Product, error)

	// Delete removes a product. Deleting an absent product succeeds.
	Delete(ctx context.Context, id string) error

	// SetQuantity replaces a product's quantity.
	SetQuantity(ctx context.Context, id string, quantity int) (model.Product, error)

	// AdjustQuantity changes a product's quantity by delta, never below zero.
	AdjustQuantity(ctx context.Context, id string, delta int) (model.Product, error)

	// SelectForEdit makes the product with the given ID the edit-selection.
	SelectForEdit(ctx context.Context, id string) (model.Product, error)

	// CancelEdit clears the edit-selection.
	CancelEdit(ctx context.Context) error

	// Editing returns the current edit-selection, or nil.
	Editing(ctx context.Context) (*model.Product, error)

	// Maintenance resolves the create-or-edit form for an optional product ID.
	Maintenance(ctx context.Context, id string) (model.MaintenanceView, error)

	// StockReport summarises current stock levels.
	StockReport(ctx context.Context) (model.StockReport, error)
}

// ActivityService reads the activity journal.
type ActivityService interface {
	// Recent returns the latest events, newest first.
	Recent(ctx context.Context, limit int) ([]model.Event, error)

	// ForProduct returns the latest events of one product, newest first.
	ForProduct(ctx context.Context, productID string, limit int) ([]model.Event, error)
}

// Validator checks submitted product fields.
type Validator interface {
	Validate(fields model.ProductFields) error
}
