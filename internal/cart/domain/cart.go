package domain

import "time"

// defaultItemWeightGrams is assumed for catalog items with no recorded
// weight so shipping can still be rated.
const defaultItemWeightGrams = 1000

// Cart represents a shopping cart.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	Currency  string     `json:"currency"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// CartItem is a single product variant in the cart. Variants are keyed by
// product, size and color.
type CartItem struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	WeightGrams int    `json:"weight_grams"`
	ImageURL    string `json:"image_url,omitempty"`
}

// EffectiveWeightGrams returns the per-unit weight, falling back to the
// default when the catalog never recorded one.
func (i CartItem) EffectiveWeightGrams() int {
	if i.WeightGrams <= 0 {
		return defaultItemWeightGrams
	}
	return i.WeightGrams
}

// Subtotal calculates the total price of all items in rupiah.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// ItemCount returns the total number of units in the cart.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// TotalWeightGrams sums the shippable weight of every unit in the cart.
func (c *Cart) TotalWeightGrams() int {
	var grams int
	for _, item := range c.Items {
		grams += item.EffectiveWeightGrams() * item.Quantity
	}
	return grams
}

// FindItemIndex returns the index of the item matching the given variant,
// or -1 when absent.
func (c *Cart) FindItemIndex(productID, size, color string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size && c.Items[i].Color == color {
			return i
		}
	}
	return -1
}
