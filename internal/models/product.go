package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ProductCollection is the collection products are persisted in.
const ProductCollection = "product"

// Product is the persisted catalog document. Optional fields are stored as
// null when absent so reads mirror what was written.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Title       string             `bson:"title" json:"title"`
	Description *string            `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Images      StringList         `bson:"images" json:"images"`
	InStock     bool               `bson:"in_stock" json:"in_stock"`
	Stock       int                `bson:"stock" json:"stock"`
	Rating      *float64           `bson:"rating" json:"rating"`
	AgeRange    *string            `bson:"age_range" json:"age_range"`
	Materials   StringList         `bson:"materials" json:"materials"`
	Featured    bool               `bson:"featured" json:"featured"`
}

// Normalize replaces nil lists with empty ones so they encode as [] rather
// than null.
func (p *Product) Normalize() {
	if p.Images == nil {
		p.Images = StringList{}
	}
	if p.Materials == nil {
		p.Materials = StringList{}
	}
}
