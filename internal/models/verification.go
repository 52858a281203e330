package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Verification is a pending-registration record. A TTL index on createdAt
// removes stale documents after 600 seconds; the authoritative expiry is the
// 5-minute application check in the verify handler.
type Verification struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	OTPHash      string             `bson:"otpHash" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// PasswordReset mirrors Verification for the forgot-password flow. The
// record survives the OTP-verification step and is only deleted by the
// final reset (or the TTL sweep).
type PasswordReset struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	OTPHash   string             `bson:"otpHash" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
