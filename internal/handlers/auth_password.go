package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/mail"
	"backend/internal/models"
)

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyPasswordOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ForgotPassword stages a PasswordReset record and mails a code. A repeat
// request replaces the pending record and resets its window.
func ForgotPassword(db *mongo.Database, mailer mail.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/forgot-password"
		defer handlePanic(c, route)

		var req ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		if count == 0 {
			respondWithError(c, http.StatusNotFound, route, "no account found for this email")
			return
		}

		otp, err := generateOTP(6)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		otpHash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		_, err = db.Collection("password_resets").UpdateOne(
			ctx,
			bson.M{"email": email},
			bson.M{"$set": bson.M{
				"email":     email,
				"otpHash":   string(otpHash),
				"createdAt": time.Now(),
			}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		if err := mailer.SendOTP(email, "Reset your password", otp); err != nil {
			log.Println("[AUTH] [ERROR] reset mail dispatch failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Server Error")
			return
		}

		log.Println("[AUTH] [INFO] password reset code sent:", email)
		c.JSON(http.StatusOK, gin.H{"msg": "OTP sent to email"})
	}
}

// VerifyPasswordOTP checks the reset code without consuming the record; only
// the final reset deletes it, so the code stays valid within its window.
func VerifyPasswordOTP(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/verify-password-otp"
		defer handlePanic(c, route)

		var req VerifyPasswordOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		pending, status, msg, err := loadPasswordReset(ctx, db, email, req.OTP)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		if pending == nil {
			respondWithError(c, status, route, msg)
			return
		}

		c.JSON(http.StatusOK, gin.H{"msg": "OTP verified"})
	}
}

// ResetPassword re-validates the code, overwrites the user's password hash
// and deletes the staging record.
func ResetPassword(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/reset-password"
		defer handlePanic(c, route)

		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		pending, status, msg, err := loadPasswordReset(ctx, db, email, req.OTP)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		if pending == nil {
			respondWithError(c, status, route, msg)
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		res, err := db.Collection("users").UpdateOne(ctx, bson.M{"email": email}, bson.M{
			"$set": bson.M{
				"passwordHash": string(passwordHash),
				"updatedAt":    time.Now(),
			},
		})
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "no account found for this email")
			return
		}

		_, _ = db.Collection("password_resets").DeleteOne(ctx, bson.M{"_id": pending.ID})

		log.Println("[AUTH] [INFO] password reset completed:", email)
		c.JSON(http.StatusOK, gin.H{"msg": "password updated"})
	}
}

// loadPasswordReset fetches and validates a pending reset. It returns a nil
// record plus the HTTP status and message to surface when validation fails.
// Expired records are deleted on sight.
func loadPasswordReset(ctx context.Context, db *mongo.Database, email, otp string) (*models.PasswordReset, int, string, error) {
	var pending models.PasswordReset
	err := db.Collection("password_resets").FindOne(ctx, bson.M{"email": email}).Decode(&pending)
	if err == mongo.ErrNoDocuments {
		return nil, http.StatusNotFound, "no pending reset for this email", nil
	}
	if err != nil {
		return nil, 0, "", err
	}

	if otpExpired(pending.CreatedAt, time.Now()) {
		_, _ = db.Collection("password_resets").DeleteOne(ctx, bson.M{"_id": pending.ID})
		return nil, http.StatusBadRequest, "OTP expired, please request a new one", nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(pending.OTPHash), []byte(otp)); err != nil {
		return nil, http.StatusBadRequest, "Invalid OTP", nil
	}

	return &pending, 0, "", nil
}
