package seeders

import (
	"context"

	"github.com/shashiranjanraj/inventory/app/models"
)

func init() {
	Register("demo_products", seedDemoProducts)
}

// DemoProducts is the sample stock written by the demo_products seeder.
var DemoProducts = []models.Product{
	models.NewProduct("Water 1.5L", "5449000000996", 24, "Acme Beverages"),
	models.NewProduct("Nutella", "3017620422003", 6, "Ferrero"),
	models.NewProduct("Sea Salt Crisps", "5000328000000", 12, ""),
	models.NewProduct(`O'Brien, "Snacks" Mix`, "4006381333931", 3, "O'Brien & Sons"),
}

// seedDemoProducts skips barcodes that already exist, so reseeding is safe.
func seedDemoProducts(ctx context.Context, store Store) error {
	for _, p := range DemoProducts {
		if _, err := store.Add(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
