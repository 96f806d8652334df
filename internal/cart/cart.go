package cart

import (
	"github.com/zarascrunch/storefront/internal/models"
)

// Item is one cart line: a product snapshot plus a quantity.
// There is at most one Item per product id and quantity never drops below 1.
type Item struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	ImageURL  string `json:"image_url"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
}

// Cart holds a shopper's in-progress selection. The zero value is an
// empty cart ready for use.
type Cart struct {
	Items []Item `json:"items"`
}

// Add increments the quantity for an already-selected product by one,
// otherwise appends a new line with quantity 1.
func (c *Cart) Add(p models.Product) {
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Category:  p.Category,
		Quantity:  1,
	})
}

// SetQuantity sets the quantity for the matching line, flooring at 1.
// Absent product ids are a no-op.
func (c *Cart) SetQuantity(productID uint, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the matching line if present.
func (c *Cart) Remove(productID uint) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

// Total is the exact sum of price times quantity across all lines.
func (c *Cart) Total() int {
	total := 0
	for _, it := range c.Items {
		total += it.Price * it.Quantity
	}
	return total
}

// Count is the sum of quantities across all lines.
func (c *Cart) Count() int {
	count := 0
	for _, it := range c.Items {
		count += it.Quantity
	}
	return count
}
