package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin checks the configured staff credentials and issues a role=admin
// token. Admin accounts live in the environment, not the database.
func AdminLogin(adminEmail, adminPassword, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/login"
		defer handlePanic(c, route)

		var req AdminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(strings.ToLower(adminEmail))) == 1
		passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(adminPassword)) == 1
		if adminEmail == "" || adminPassword == "" || !emailOK || !passOK {
			respondWithError(c, http.StatusBadRequest, route, "invalid credentials")
			return
		}

		claims := jwt.MapClaims{
			"sub":   "admin",
			"role":  "admin",
			"email": email,
			"exp":   time.Now().Add(accessTTL).Unix(),
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": signed})
	}
}

// AdminStats aggregates dashboard counters: entity counts plus total revenue
// across non-cancelled orders.
func AdminStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/stats"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		stats := gin.H{}
		for _, name := range []string{"users", "products", "orders", "returns", "requests"} {
			count, err := db.Collection(name).CountDocuments(ctx, bson.M{})
			if err != nil {
				respondServerError(c, route, err)
				return
			}
			stats[name] = count
		}

		pipeline := mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": OrderCancelled}}}},
			{{Key: "$group", Value: bson.M{
				"_id":     nil,
				"revenue": bson.M{"$sum": "$totalAmount"},
			}}},
		}
		cursor, err := db.Collection("orders").Aggregate(ctx, pipeline)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		var totals []struct {
			Revenue float64 `bson:"revenue"`
		}
		if err := cursor.All(ctx, &totals); err != nil {
			respondServerError(c, route, err)
			return
		}
		if len(totals) > 0 {
			stats["revenue"] = totals[0].Revenue
		} else {
			stats["revenue"] = 0.0
		}

		c.JSON(http.StatusOK, stats)
	}
}

// AdminListUsers returns all users, newest first, passwords stripped by the
// model's json tags.
func AdminListUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/users"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("users").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		if err := cursor.All(ctx, &users); err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// AdminUserDetails returns one user together with their order history.
func AdminUserDetails(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/user-details/:id"
		defer handlePanic(c, route)

		userID, ok := userIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{"userId": userID}, opts)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user, "orders": orders})
	}
}
