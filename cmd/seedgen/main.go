package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"mini-inventory/internal/model"
	"mini-inventory/internal/seed"
)

// seedgen writes a sample catalogue for the start-up import.
// Two lines are deliberately invalid so the import summary shows skipped records.
func main() {
	out := flag.String("out", "data/seed/products.jsonl.gz", "output file")
	flag.Parse()

	products := []model.ProductFields{
		{Name: "Widget", Price: 2.5, Description: "A small widget", Quantity: 40},
		{Name: "Gadget", Price: 12.99, Description: "General purpose gadget", Quantity: 8},
		{Name: "Sprocket", Price: 0.75, Description: "Steel sprocket, 24 teeth", Quantity: 250},
		{Name: "Flange", Price: 4.2, Description: "Pipe flange", Quantity: 3},
		{Name: "Gizmo", Price: 19, Description: "Gizmo with a spare battery", Quantity: 15},
		// Rejected by validation: blank name.
		{Name: "", Price: 1, Description: "Nameless part", Quantity: 1},
		// Rejected by validation: zero quantity.
		{Name: "Bracket", Price: 3, Description: "Wall bracket", Quantity: 0},
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	file, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	defer file.Close()

	if err := seed.Write(file, products); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d products (%d invalid)\n", *out, len(products), 2)
}
