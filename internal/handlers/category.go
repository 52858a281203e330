package handlers

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type categoryCreateRequest struct {
	Name   string `json:"name" binding:"required"`
	Parent string `json:"parent" binding:"required,oneof=collection accessory"`
}

type categoryUpdateRequest struct {
	Name   *string `json:"name"`
	Parent *string `json:"parent"`
}

var nonWordChars = regexp.MustCompile(`[^a-z0-9 ]+`)
var spaceRuns = regexp.MustCompile(` +`)

// slugify derives the URL slug from a category name: lowercased, non-word
// characters stripped, space runs collapsed to single hyphens. Computed once
// at creation; a rename does not re-derive it.
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonWordChars.ReplaceAllString(slug, "")
	slug = spaceRuns.ReplaceAllString(strings.TrimSpace(slug), "-")
	return slug
}

func GetCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/categories"
		defer handlePanic(c, route)

		filter := bson.M{}
		if parent := strings.TrimSpace(c.Query("parent")); parent != "" {
			filter["parent"] = parent
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("categories").Find(ctx, filter, opts)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		categories := make([]models.Category, 0)
		if err := cursor.All(ctx, &categories); err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, categories)
	}
}

func CreateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/categories"
		defer handlePanic(c, route)

		var req categoryCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		name := strings.TrimSpace(req.Name)
		slug := slugify(name)
		if slug == "" {
			respondWithError(c, http.StatusBadRequest, route, "name must contain letters or digits")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("categories").CountDocuments(ctx, bson.M{
			"$or": []bson.M{{"name": name}, {"slug": slug}},
		})
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		if count > 0 {
			respondWithError(c, http.StatusBadRequest, route, "category already exists")
			return
		}

		category := models.Category{
			Name:      name,
			Slug:      slug,
			Parent:    req.Parent,
			CreatedAt: time.Now(),
		}

		res, err := db.Collection("categories").InsertOne(ctx, category)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		category.ID = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, category)
	}
}

func UpdateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/categories/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "category not found")
			return
		}

		var req categoryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		update := bson.M{}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "name cannot be empty")
				return
			}
			// The slug is intentionally left as created.
			update["name"] = name
		}
		if req.Parent != nil {
			if *req.Parent != models.ParentCollection && *req.Parent != models.ParentAccessory {
				respondWithError(c, http.StatusBadRequest, route, "invalid parent")
				return
			}
			update["parent"] = *req.Parent
		}
		if len(update) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Category
		err = db.Collection("categories").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "category not found")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/categories/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "category not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("categories").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		if res.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "category not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"msg": "category deleted"})
	}
}
