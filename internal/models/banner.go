package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Banner placements. AboveHeader is undeclared in the admin form but the
// storefront renders it, so it stays in the allow-list.
const (
	PlacementTop         = "top-of-page"
	PlacementAfterSect   = "after-section"
	PlacementBottom      = "bottom-of-page"
	PlacementAboveHeader = "above-header"
)

// Banner is a storefront display banner.
type Banner struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	TextColor       string             `bson:"textColor,omitempty" json:"textColor,omitempty"`
	BackgroundColor string             `bson:"backgroundColor,omitempty" json:"backgroundColor,omitempty"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	ButtonText      string             `bson:"buttonText,omitempty" json:"buttonText,omitempty"`
	ButtonLink      string             `bson:"buttonLink,omitempty" json:"buttonLink,omitempty"`
	Placement       string             `bson:"placement" json:"placement"`
	Pages           []string           `bson:"pages" json:"pages"`
	Order           int                `bson:"order" json:"order"`
	Active          bool               `bson:"active" json:"active"`
	StartsAt        *time.Time         `bson:"startsAt,omitempty" json:"startsAt,omitempty"`
	EndsAt          *time.Time         `bson:"endsAt,omitempty" json:"endsAt,omitempty"`
	Animation       string             `bson:"animation,omitempty" json:"animation,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
