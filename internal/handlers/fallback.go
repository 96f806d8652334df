package handlers

import (
	"github.com/zarascrunch/storefront/internal/models"
)

// fallbackProducts keeps the menu browsable when the products table is
// empty or unreachable.
var fallbackProducts = []models.Product{
	{
		ID:          9001,
		Name:        "Fried Samosa (10 pcs)",
		Description: "Crunchy and golden samosa, great for events and iftar packs.",
		Price:       3000,
		ImageURL:    "https://images.unsplash.com/photo-1601050690597-df0568f70950?q=80&w=1200&auto=format&fit=crop",
		Category:    models.CategorySmallChops,
		IsAvailable: true,
	},
	{
		ID:          9002,
		Name:        "Pepper Chicken",
		Description: "Spicy peppered chicken bowl.",
		Price:       3500,
		ImageURL:    "https://images.unsplash.com/photo-1527477396000-e27163b481c2?q=80&w=1200&auto=format&fit=crop",
		Category:    models.CategorySmallChops,
		IsAvailable: true,
	},
	{
		ID:          9003,
		Name:        "Shawarma (Extra Meat)",
		Description: "No sausage, packed with extra meat.",
		Price:       3000,
		ImageURL:    "https://images.unsplash.com/photo-1529006557810-274b9b2fc783?q=80&w=1200&auto=format&fit=crop",
		Category:    models.CategoryShawarma,
		IsAvailable: true,
	},
	{
		ID:          9004,
		Name:        "Red Velvet Cupcakes (50 pcs)",
		Description: "Soft and rich cupcakes for celebrations.",
		Price:       18000,
		ImageURL:    "https://images.unsplash.com/photo-1486427944299-d1955d23e34d?q=80&w=1200&auto=format&fit=crop",
		Category:    models.CategoryCakes,
		IsAvailable: true,
	},
	{
		ID:          9005,
		Name:        "Milkshake",
		Description: "Creamy chilled bottle milkshake.",
		Price:       2000,
		ImageURL:    "https://images.unsplash.com/photo-1572490122747-3968b75cc699?q=80&w=1200&auto=format&fit=crop",
		Category:    models.CategoryDrinks,
		IsAvailable: true,
	},
}
