package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mini-inventory/internal/config"
	"mini-inventory/internal/inventory"
	"mini-inventory/internal/model"
	"mini-inventory/internal/validation"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var widget = model.ProductFields{Name: "Widget", Price: 2.5, Description: "Small widget", Quantity: 5}

func newTestService(t *testing.T, policy config.InventoryConfig) (*inventoryService, *inventory.Manager) {
	t.Helper()
	m := inventory.NewManager(inventory.NewSequenceGenerator("p"))
	svc := NewInventoryService(m, validation.NewProductValidator(), policy, zerolog.Nop()).(*inventoryService)
	return svc, m
}

var defaultPolicy = config.InventoryConfig{DeleteRequiresZero: true, LowStockThreshold: 10}

func TestInventoryService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		fields      model.ProductFields
		expectError bool
		wantFields  []string
	}{
		{name: "Valid product", fields: widget},
		{
			name:        "Missing name and zero price",
			fields:      model.ProductFields{Description: "x", Quantity: 1},
			expectError: true,
			wantFields:  []string{"name", "price"},
		},
		{
			name:        "Zero quantity",
			fields:      model.ProductFields{Name: "A", Price: 1, Description: "x"},
			expectError: true,
			wantFields:  []string{"quantity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, defaultPolicy)

			p, err := svc.Create(ctx, tt.fields)

			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				var ve *model.ValidationError
				require.True(t, errors.As(err, &ve))
				for _, f := range tt.wantFields {
					assert.Contains(t, ve.Fields, f)
				}
				assert.Zero(t, m.Len(), "invalid input never reaches the manager")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "p-1", p.ID)
			assert.Equal(t, tt.fields.WithID("p-1"), p)
			assert.Equal(t, 1, m.Len())
		})
	}
}

func TestInventoryService_GetByID(t *testing.T) {
	svc, _ := newTestService(t, defaultPolicy)
	ctx := context.Background()

	created, err := svc.Create(ctx, widget)
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, *got)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrProductNotFound)

	_, err = svc.GetByID(ctx, "")
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestInventoryService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Replaces in place and clears edit-selection", func(t *testing.T) {
		svc, m := newTestService(t, defaultPolicy)
		a, _ := svc.Create(ctx, widget)
		b, _ := svc.Create(ctx, model.ProductFields{Name: "B", Price: 1, Description: "b", Quantity: 1})
		_, err := svc.SelectForEdit(ctx, a.ID)
		require.NoError(t, err)

		changed := a
		changed.Name = "Renamed"
		changed.Quantity = 7

		got, err := svc.Update(ctx, changed)
		require.NoError(t, err)
		assert.Equal(t, changed, got)

		products := m.Products()
		assert.Equal(t, []model.Product{changed, b}, products)
		_, editing := m.Editing()
		assert.False(t, editing)
	})

	t.Run("Unknown ID", func(t *testing.T) {
		svc, m := newTestService(t, defaultPolicy)
		_, _ = svc.Create(ctx, widget)

		_, err := svc.Update(ctx, widget.WithID("missing"))
		assert.ErrorIs(t, err, model.ErrProductNotFound)
		assert.Equal(t, "Widget", m.Products()[0].Name)
	})

	t.Run("Unknown ID keeps edit selection", func(t *testing.T) {
		svc, m := newTestService(t, defaultPolicy)
		a, _ := svc.Create(ctx, widget)
		_, err := svc.SelectForEdit(ctx, a.ID)
		require.NoError(t, err)

		_, err = svc.Update(ctx, widget.WithID("missing"))
		assert.ErrorIs(t, err, model.ErrProductNotFound)

		editing, ok := m.Editing()
		require.True(t, ok)
		assert.Equal(t, a.ID, editing.ID)
	})

	t.Run("Invalid fields", func(t *testing.T) {
		svc, m := newTestService(t, defaultPolicy)
		a, _ := svc.Create(ctx, widget)

		bad := a
		bad.Price = 0
		_, err := svc.Update(ctx, bad)
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Equal(t, a, m.Products()[0])
	})

	t.Run("Empty ID", func(t *testing.T) {
		svc, _ := newTestService(t, defaultPolicy)

		_, err := svc.Update(ctx, widget.WithID(""))
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})
}

func TestInventoryService_Save(t *testing.T) {
	svc, m := newTestService(t, defaultPolicy)
	ctx := context.Background()

	created, err := svc.Save(ctx, model.CreateIntent{Fields: widget})
	require.NoError(t, err)
	assert.Equal(t, "p-1", created.ID)

	updated := created
	updated.Description = "Updated"
	got, err := svc.Save(ctx, model.UpdateIntent{Product: updated})
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Equal(t, []model.Product{updated}, m.Products())

	_, err = svc.Save(ctx, model.UpdateIntent{Product: widget.WithID("missing")})
	assert.ErrorIs(t, err, model.ErrProductNotFound)

	_, err = svc.Save(ctx, nil)
	require.Error(t, err)
	var de *model.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, model.ErrCodeInvalidIntent, de.Code)
}

func TestInventoryService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		policy      config.InventoryConfig
		quantity    int
		expectError error
		wantRemoved bool
	}{
		{name: "Zero stock with policy", policy: defaultPolicy, quantity: 0, wantRemoved: true},
		{name: "Stock left with policy", policy: defaultPolicy, quantity: 3, expectError: model.ErrStockNotEmpty},
		{name: "Stock left without policy", policy: config.InventoryConfig{LowStockThreshold: 10}, quantity: 3, wantRemoved: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, tt.policy)
			p, err := svc.Create(ctx, widget)
			require.NoError(t, err)
			m.SetQuantity(p.ID, tt.quantity)

			err = svc.Delete(ctx, p.ID)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, !tt.wantRemoved, m.Len() == 1)
		})
	}

	t.Run("Absent is a no-op", func(t *testing.T) {
		svc, _ := newTestService(t, defaultPolicy)
		assert.NoError(t, svc.Delete(ctx, "missing"))
		assert.NoError(t, svc.Delete(ctx, "missing"))
	})
}

func TestInventoryService_SetQuantity(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		quantity    int
		selectFirst bool
		id          string
		want        int
		expectError error
	}{
		{name: "Set to new value", quantity: 12, want: 12},
		{name: "Set to zero", quantity: 0, want: 0},
		{name: "Negative clamps to zero", quantity: -4, want: 0},
		{name: "Unknown product", id: "missing", quantity: 1, expectError: model.ErrProductNotFound},
		{name: "Being edited", selectFirst: true, quantity: 1, expectError: model.ErrProductBeingEdited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, defaultPolicy)
			p, err := svc.Create(ctx, widget)
			require.NoError(t, err)
			if tt.selectFirst {
				_, err := svc.SelectForEdit(ctx, p.ID)
				require.NoError(t, err)
			}
			id := p.ID
			if tt.id != "" {
				id = tt.id
			}

			got, err := svc.SetQuantity(ctx, id, tt.quantity)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Equal(t, widget.Quantity, m.Products()[0].Quantity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Quantity)
			assert.Equal(t, tt.want, m.Products()[0].Quantity)
		})
	}
}

func TestInventoryService_AdjustQuantity(t *testing.T) {
	svc, m := newTestService(t, defaultPolicy)
	ctx := context.Background()

	p, _ := svc.Create(ctx, model.ProductFields{Name: "A", Price: 1, Description: "a", Quantity: 1})

	got, err := svc.AdjustQuantity(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)

	for i := 0; i < 3; i++ {
		got, err = svc.AdjustQuantity(ctx, p.ID, -1)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, got.Quantity, "decrement stops at zero")
	assert.Equal(t, 0, m.Products()[0].Quantity)

	_, err = svc.AdjustQuantity(ctx, "missing", 1)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestInventoryService_EditSelection(t *testing.T) {
	svc, _ := newTestService(t, defaultPolicy)
	ctx := context.Background()

	editing, err := svc.Editing(ctx)
	require.NoError(t, err)
	assert.Nil(t, editing)

	a, _ := svc.Create(ctx, widget)
	b, _ := svc.Create(ctx, model.ProductFields{Name: "B", Price: 1, Description: "b", Quantity: 1})

	_, err = svc.SelectForEdit(ctx, a.ID)
	require.NoError(t, err)
	_, err = svc.SelectForEdit(ctx, b.ID)
	require.NoError(t, err)

	editing, err = svc.Editing(ctx)
	require.NoError(t, err)
	require.NotNil(t, editing)
	assert.Equal(t, b, *editing, "a new selection replaces the previous one")

	_, err = svc.SelectForEdit(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrProductNotFound)

	require.NoError(t, svc.CancelEdit(ctx))
	editing, err = svc.Editing(ctx)
	require.NoError(t, err)
	assert.Nil(t, editing)
}

func TestInventoryService_List(t *testing.T) {
	svc, m := newTestService(t, defaultPolicy)
	ctx := context.Background()

	empty, _ := svc.Create(ctx, model.ProductFields{Name: "Empty", Price: 1, Description: "e", Quantity: 1})
	m.SetQuantity(empty.ID, 0)
	low, _ := svc.Create(ctx, model.ProductFields{Name: "Low", Price: 1, Description: "l", Quantity: 9})
	_, _ = svc.Create(ctx, model.ProductFields{Name: "Plenty", Price: 1, Description: "p", Quantity: 10})
	_, _ = svc.SelectForEdit(ctx, low.ID)

	views, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "Empty", views[0].Name)
	assert.Equal(t, model.StockOutOfStock, views[0].StockLevel)
	assert.True(t, views[0].Deletable)
	assert.False(t, views[0].Editing)

	assert.Equal(t, model.StockLow, views[1].StockLevel)
	assert.False(t, views[1].Deletable)
	assert.True(t, views[1].Editing)

	assert.Equal(t, model.StockIn, views[2].StockLevel)
}

func TestInventoryService_List_Empty(t *testing.T) {
	svc, _ := newTestService(t, defaultPolicy)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestInventoryService_Maintenance(t *testing.T) {
	svc, _ := newTestService(t, defaultPolicy)
	ctx := context.Background()

	p, _ := svc.Create(ctx, widget)

	tests := []struct {
		name string
		id   string
		want model.MaintenanceView
	}{
		{name: "No ID", id: "", want: model.MaintenanceView{Mode: model.ModeCreate}},
		{name: "Known ID", id: p.ID, want: model.MaintenanceView{Mode: model.ModeEdit, ID: p.ID, Product: widget}},
		{name: "Unknown ID", id: "missing", want: model.MaintenanceView{Mode: model.ModeCreate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Maintenance(ctx, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInventoryService_StockReport(t *testing.T) {
	svc, _ := newTestService(t, config.InventoryConfig{LowStockThreshold: 6})
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, _ = svc.Create(ctx, widget)
	_, _ = svc.Create(ctx, model.ProductFields{Name: "B", Price: 1, Description: "b", Quantity: 8})

	r, err := svc.StockReport(ctx)
	require.NoError(t, err)

	assert.Equal(t, now, r.GeneratedAt)
	assert.Equal(t, 6, r.Threshold)
	assert.Equal(t, 2, r.Products)
	assert.Equal(t, 13, r.Units)
	assert.Equal(t, 1, r.Levels[model.StockLow])
	assert.Equal(t, 1, r.Levels[model.StockIn])
}

func TestNewInventoryService_DefaultThreshold(t *testing.T) {
	svc, _ := newTestService(t, config.InventoryConfig{})
	assert.Equal(t, model.DefaultLowStockThreshold, svc.policy.LowStockThreshold)
}

// The full lifecycle from the product card: add, sell out, delete.
func TestInventoryService_WidgetLifecycle(t *testing.T) {
	svc, m := newTestService(t, defaultPolicy)
	ctx := context.Background()

	p, err := svc.Create(ctx, widget)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, p.ID), model.ErrStockNotEmpty)

	_, err = svc.SetQuantity(ctx, p.ID, 0)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.Zero(t, m.Len())
}
