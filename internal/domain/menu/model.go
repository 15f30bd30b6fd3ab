package menu

// Item is a dish on the menu. Readable by anyone, written only by admins.
type Item struct {
	ID       string  `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string  `bson:"name" json:"name"`
	Category string  `bson:"category" json:"category"`
	Price    float64 `bson:"price" json:"price"`
	Recipe   string  `bson:"recipe" json:"recipe"`
	Image    string  `bson:"image" json:"image"`
}

// Update carries the mutable fields of an item. A PATCH replaces exactly
// these fields and nothing else.
type Update struct {
	Name     string  `bson:"name" json:"name"`
	Category string  `bson:"category" json:"category"`
	Price    float64 `bson:"price" json:"price"`
	Recipe   string  `bson:"recipe" json:"recipe"`
	Image    string  `bson:"image" json:"image"`
}
