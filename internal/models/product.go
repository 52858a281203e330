package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is looked up everywhere by ProductID, a short application-generated
// alphanumeric key, never by the store's native _id.
type Product struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ProductID        string             `bson:"productId" json:"productId"`
	Name             string             `bson:"name" json:"name"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	Category         string             `bson:"category" json:"category"`
	Price            float64            `bson:"price" json:"price"`
	StrikeoutPrice   float64            `bson:"strikeoutPrice,omitempty" json:"strikeoutPrice,omitempty"`
	Images           []string           `bson:"images" json:"images"`
	Bestseller       bool               `bson:"bestseller" json:"bestseller"`
	Sizes            []string           `bson:"sizes" json:"sizes"`
	Specifications   string             `bson:"specifications,omitempty" json:"specifications,omitempty"`
	WashInstructions string             `bson:"washInstructions,omitempty" json:"washInstructions,omitempty"`
	Quantity         int                `bson:"quantity" json:"quantity"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
