package review

// Review is customer feedback. The API exposes no write path for reviews;
// they are seeded out of band.
type Review struct {
	ID      string  `bson:"_id,omitempty" json:"_id,omitempty"`
	Name    string  `bson:"name" json:"name"`
	Details string  `bson:"details" json:"details"`
	Rating  float64 `bson:"rating" json:"rating"`
}
