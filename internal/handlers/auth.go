package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/mail"
	"backend/internal/models"
)

type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register starts the OTP-gated signup: it stages a Verification record and
// mails a 6-digit code. A second attempt for the same email replaces the
// pending record rather than erroring.
func Register(db *mongo.Database, mailer mail.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/register"
		defer handlePanic(c, route)

		var req RegisterRequest
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
		if count > 0 {
			respondWithError(c, http.StatusBadRequest, route, "email already registered")
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondServerError(c, route, err)
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

		update := bson.M{"$set": bson.M{
			"email":        email,
			"firstName":    strings.TrimSpace(req.FirstName),
			"lastName":     strings.TrimSpace(req.LastName),
			"passwordHash": string(passwordHash),
			"otpHash":      string(otpHash),
			"createdAt":    time.Now(),
		}}
		_, err = db.Collection("verifications").UpdateOne(
			ctx,
			bson.M{"email": email},
			update,
			options.Update().SetUpsert(true),
		)
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		if err := mailer.SendOTP(email, "Verify your email", otp); err != nil {
			// The staged record stays; resend-otp reissues a code for it.
			log.Println("[AUTH] [ERROR] verification mail dispatch failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Server Error")
			return
		}

		log.Println("[AUTH] [INFO] verification code sent:", email)
		c.JSON(http.StatusOK, gin.H{"msg": "OTP sent to email"})
	}
}

// VerifyOTP consumes a Verification record: past 5 minutes the record is
// deleted and an expiry error returned; on an OTP match the User is
// materialized from the staged fields and the record removed.
func VerifyOTP(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/verify-otp"
		defer handlePanic(c, route)

		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var pending models.Verification
		err := db.Collection("verifications").FindOne(ctx, bson.M{"email": email}).Decode(&pending)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "no pending registration for this email")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		if otpExpired(pending.CreatedAt, time.Now()) {
			_, _ = db.Collection("verifications").DeleteOne(ctx, bson.M{"_id": pending.ID})
			respondWithError(c, http.StatusBadRequest, route, "OTP expired, please register again")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(pending.OTPHash), []byte(req.OTP)); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid OTP")
			return
		}

		now := time.Now()
		user := models.User{
			FirstName:    pending.FirstName,
			LastName:     pending.LastName,
			Email:        pending.Email,
			PasswordHash: pending.PasswordHash,
			Addresses:    []models.Address{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		user.ID, _ = res.InsertedID.(primitive.ObjectID)

		_, _ = db.Collection("verifications").DeleteOne(ctx, bson.M{"_id": pending.ID})

		token, err := issueUserToken(user.ID, user.Email, jwtSecret, accessTTL)
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		log.Println("[AUTH] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
	}
}

// ResendOTP reissues a code for an existing pending registration, resetting
// its expiry window.
func ResendOTP(db *mongo.Database, mailer mail.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/resend-otp"
		defer handlePanic(c, route)

		var req ResendOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("verifications").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		if count == 0 {
			respondWithError(c, http.StatusNotFound, route, "no pending registration for this email")
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

		_, err = db.Collection("verifications").UpdateOne(ctx, bson.M{"email": email}, bson.M{
			"$set": bson.M{
				"otpHash":   string(otpHash),
				"createdAt": time.Now(),
			},
		})
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		if err := mailer.SendOTP(email, "Verify your email", otp); err != nil {
			log.Println("[AUTH] [ERROR] verification mail dispatch failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Server Error")
			return
		}

		log.Println("[AUTH] [INFO] verification code resent:", email)
		c.JSON(http.StatusOK, gin.H{"msg": "OTP resent to email"})
	}
}

// Login checks credentials and returns the user with a signed token. The
// failure message is identical for unknown email and wrong password.
func Login(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/login"
		defer handlePanic(c, route)

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusBadRequest, route, "invalid credentials")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid credentials")
			return
		}

		token, err := issueUserToken(user.ID, user.Email, jwtSecret, accessTTL)
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		log.Println("[AUTH] [INFO] login succeeded:", email)
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

// SilentRegister creates an account without OTP verification. Checkout uses
// it for first-time buyers; email ownership stays unverified on this path.
func SilentRegister(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/silent-register"
		defer handlePanic(c, route)

		var req RegisterRequest
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
		if count > 0 {
			respondWithError(c, http.StatusBadRequest, route, "email already registered")
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		now := time.Now()
		user := models.User{
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Email:        email,
			PasswordHash: string(passwordHash),
			Addresses:    []models.Address{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		user.ID, _ = res.InsertedID.(primitive.ObjectID)

		token, err := issueUserToken(user.ID, user.Email, jwtSecret, accessTTL)
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		log.Println("[AUTH] [INFO] silent registration:", email)
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
	}
}

func issueUserToken(userID primitive.ObjectID, email, secret string, accessTTL time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID.Hex(),
		"email":  email,
		"exp":    time.Now().Add(accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
