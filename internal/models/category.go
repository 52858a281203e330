package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category parents.
const (
	ParentCollection = "collection"
	ParentAccessory  = "accessory"
)

// Category carries both a unique name and a unique slug. The slug is derived
// once at creation time and is not re-derived on rename.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Slug      string             `bson:"slug" json:"slug"`
	Parent    string             `bson:"parent" json:"parent"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
