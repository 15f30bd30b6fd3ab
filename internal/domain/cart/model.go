package cart

// Item is a menu item placed in a cart, keyed by the owner's email. Name,
// image and price are snapshots taken at add time; nothing enforces that the
// referenced menu item still exists.
type Item struct {
	ID         string  `bson:"_id,omitempty" json:"_id,omitempty"`
	Email      string  `bson:"email" json:"email"`
	MenuItemID string  `bson:"menuItemId" json:"menuItemId"`
	Name       string  `bson:"name" json:"name"`
	Image      string  `bson:"image" json:"image"`
	Price      float64 `bson:"price" json:"price"`
}
