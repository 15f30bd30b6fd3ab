package payment

import "time"

// Payment records a completed checkout. It is written once and never
// updated; CartIDs reference the cart items that were purchased and are
// deleted right after the payment is stored.
type Payment struct {
	ID            string    `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string    `bson:"email" json:"email"`
	Price         float64   `bson:"price" json:"price"`
	TransactionID string    `bson:"transactionId" json:"transactionId"`
	Date          time.Time `bson:"date" json:"date"`
	CartIDs       []string  `bson:"cartIds" json:"cartIds"`
	MenuItemIDs   []string  `bson:"menuItemIds" json:"menuItemIds"`
	Status        string    `bson:"status" json:"status"`
}

// AdminStats is the collection-count and revenue report.
type AdminStats struct {
	Users     int64   `json:"users"`
	MenuItems int64   `json:"menuItems"`
	Orders    int64   `json:"orders"`
	Revenue   float64 `json:"revenue"`
}

// CategorySales is one group of the category-level sales breakdown: how many
// purchased line items resolved to the category and the summed menu prices.
type CategorySales struct {
	Category string  `bson:"category" json:"category"`
	Quantity int64   `bson:"quantity" json:"quantity"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
}
