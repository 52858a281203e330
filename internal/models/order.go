package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is an immutable snapshot of a product line taken at checkout.
// Later product edits never change it. ReturnStatus is the one mutable
// field, written when a return is filed against this line.
type OrderItem struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	ProductID    string             `bson:"productId" json:"productId"`
	Name         string             `bson:"name" json:"name"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	Price        float64            `bson:"price" json:"price"`
	Size         string             `bson:"size,omitempty" json:"size,omitempty"`
	ReturnStatus string             `bson:"returnStatus,omitempty" json:"returnStatus,omitempty"`
}

// Order defines the persisted order document.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	ShippingAddress string             `bson:"shippingAddress" json:"shippingAddress"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderUserSummary is the joined user block on admin order listings.
type OrderUserSummary struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Email     string `bson:"email" json:"email"`
}

// OrderWithUser is the admin list shape: the order plus a user summary.
type OrderWithUser struct {
	Order `bson:",inline"`
	User  OrderUserSummary `bson:"user" json:"user"`
}
