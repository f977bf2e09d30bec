package models

// Authority is a governing contact record responsible for a geographic
// area and issue category. Loaded from a static directory, never mutated.
type Authority struct {
	Area        string `bson:"area" json:"area"`
	Name        string `bson:"name,omitempty" json:"name,omitempty"`
	Designation string `bson:"designation" json:"designation"`
	Phone       string `bson:"phone" json:"phone"`
	Email       string `bson:"email" json:"email"`
}
