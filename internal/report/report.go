// Package report summarises stock levels across the inventory.
package report

import (
	"time"

	"mini-inventory/internal/model"
)

// Build computes a stock report from a product list and the optional
// edit-selection. threshold is the low-stock bound.
func Build(products []model.Product, editing *model.Product, threshold int, now time.Time) model.StockReport {
	r := model.StockReport{
		GeneratedAt: now,
		Threshold:   threshold,
		Products:    len(products),
		Levels: map[model.StockLevel]int{
			model.StockOutOfStock: 0,
			model.StockLow:        0,
			model.StockIn:         0,
		},
		OutOfStock: []model.Product{},
		LowStock:   []model.Product{},
	}

	for _, p := range products {
		r.Units += p.Quantity

		level := model.LevelFor(p.Quantity, threshold)
		r.Levels[level]++

		switch level {
		case model.StockOutOfStock:
			r.OutOfStock = append(r.OutOfStock, p)
		case model.StockLow:
			r.LowStock = append(r.LowStock, p)
		}
	}

	if editing != nil {
		e := *editing
		r.Editing = &e
	}

	return r
}
