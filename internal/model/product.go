package model

// Product represents a single stock item held by the inventory.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
}

// ProductFields carries every product attribute except the identifier.
// It is the input of a create request; the inventory assigns the ID.
type ProductFields struct {
	Name        string  `json:"name" validate:"notblank"`
	Price       float64 `json:"price" validate:"gt=0"`
	Description string  `json:"description" validate:"notblank"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
}

// Fields returns the product without its identifier.
func (p Product) Fields() ProductFields {
	return ProductFields{
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Quantity:    p.Quantity,
	}
}

// WithID builds a product from the fields and the given identifier.
func (f ProductFields) WithID(id string) Product {
	return Product{
		ID:          id,
		Name:        f.Name,
		Price:       f.Price,
		Description: f.Description,
		Quantity:    f.Quantity,
	}
}

// StockLevel classifies a product quantity for display.
type StockLevel string

const (
	StockOutOfStock StockLevel = "out_of_stock"
	StockLow        StockLevel = "low"
	StockIn         StockLevel = "in_stock"
)

// DefaultLowStockThreshold is the quantity below which stock is reported as low.
const DefaultLowStockThreshold = 10

// LevelFor returns the stock level of a quantity given the low-stock threshold.
func LevelFor(quantity, lowThreshold int) StockLevel {
	switch {
	case quantity <= 0:
		return StockOutOfStock
	case quantity < lowThreshold:
		return StockLow
	default:
		return StockIn
	}
}

// ProductView is a product as rendered in the list view.
type ProductView struct {
	Product
	StockLevel StockLevel `json:"stockLevel"`
	Editing    bool       `json:"editing"`
	Deletable  bool       `json:"deletable"`
}

// MaintenanceMode tells whether the maintenance view creates or edits a product.
type MaintenanceMode string

const (
	ModeCreate MaintenanceMode = "create"
	ModeEdit   MaintenanceMode = "edit"
)

// MaintenanceView is the create-or-edit form resolved from an optional product ID.
type MaintenanceView struct {
	Mode    MaintenanceMode `json:"mode"`
	ID      string          `json:"id,omitempty"`
	Product ProductFields   `json:"product"`
}

// QuantityRequest represents the request payload for setting a product quantity.
type QuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// EditingResponse wraps the edit-selection; Editing is null when nothing is selected.
type EditingResponse struct {
	Editing *Product `json:"editing"`
}
