package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type bannerCreateRequest struct {
	Title           string     `json:"title" binding:"required"`
	TextColor       string     `json:"textColor"`
	BackgroundColor string     `json:"backgroundColor"`
	Image           string     `json:"image"`
	ButtonText      string     `json:"buttonText"`
	ButtonLink      string     `json:"buttonLink"`
	Placement       string     `json:"placement" binding:"required"`
	Pages           []string   `json:"pages"`
	Order           int        `json:"order"`
	Active          *bool      `json:"active"`
	StartsAt        *time.Time `json:"startsAt"`
	EndsAt          *time.Time `json:"endsAt"`
	Animation       string     `json:"animation"`
}

type bannerUpdateRequest struct {
	Title           *string    `json:"title"`
	TextColor       *string    `json:"textColor"`
	BackgroundColor *string    `json:"backgroundColor"`
	Image           *string    `json:"image"`
	ButtonText      *string    `json:"buttonText"`
	ButtonLink      *string    `json:"buttonLink"`
	Placement       *string    `json:"placement"`
	Pages           *[]string  `json:"pages"`
	Order           *int       `json:"order"`
	Active          *bool      `json:"active"`
	StartsAt        *time.Time `json:"startsAt"`
	EndsAt          *time.Time `json:"endsAt"`
	Animation       *string    `json:"animation"`
}

func validPlacement(value string) bool {
	switch value {
	case models.PlacementTop, models.PlacementAfterSect, models.PlacementBottom, models.PlacementAboveHeader:
		return true
	}
	return false
}

func GetBanners(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/banners"
		defer handlePanic(c, route)

		filter := bson.M{}
		if page := strings.TrimSpace(c.Query("page")); page != "" {
			filter["pages"] = page
		}
		if v := strings.TrimSpace(c.Query("active")); v != "" {
			filter["active"] = v == "true"
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
		cursor, err := db.Collection("banners").Find(ctx, filter, opts)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		banners := make([]models.Banner, 0)
		if err := cursor.All(ctx, &banners); err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, banners)
	}
}

func CreateBanner(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/banners"
		defer handlePanic(c, route)

		var req bannerCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if !validPlacement(req.Placement) {
			respondWithError(c, http.StatusBadRequest, route, "invalid placement")
			return
		}

		active := true
		if req.Active != nil {
			active = *req.Active
		}

		banner := models.Banner{
			Title:           strings.TrimSpace(req.Title),
			TextColor:       strings.TrimSpace(req.TextColor),
			BackgroundColor: strings.TrimSpace(req.BackgroundColor),
			Image:           strings.TrimSpace(req.Image),
			ButtonText:      strings.TrimSpace(req.ButtonText),
			ButtonLink:      strings.TrimSpace(req.ButtonLink),
			Placement:       req.Placement,
			Pages:           req.Pages,
			Order:           req.Order,
			Active:          active,
			StartsAt:        req.StartsAt,
			EndsAt:          req.EndsAt,
			Animation:       strings.TrimSpace(req.Animation),
			CreatedAt:       time.Now(),
		}
		if banner.Pages == nil {
			banner.Pages = []string{}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("banners").InsertOne(ctx, banner)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		banner.ID = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, banner)
	}
}

func UpdateBanner(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/banners/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "banner not found")
			return
		}

		var req bannerUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		update := bson.M{}
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				respondWithError(c, http.StatusBadRequest, route, "title cannot be empty")
				return
			}
			update["title"] = title
		}
		if req.TextColor != nil {
			update["textColor"] = strings.TrimSpace(*req.TextColor)
		}
		if req.BackgroundColor != nil {
			update["backgroundColor"] = strings.TrimSpace(*req.BackgroundColor)
		}
		if req.Image != nil {
			update["image"] = strings.TrimSpace(*req.Image)
		}
		if req.ButtonText != nil {
			update["buttonText"] = strings.TrimSpace(*req.ButtonText)
		}
		if req.ButtonLink != nil {
			update["buttonLink"] = strings.TrimSpace(*req.ButtonLink)
		}
		if req.Placement != nil {
			if !validPlacement(*req.Placement) {
				respondWithError(c, http.StatusBadRequest, route, "invalid placement")
				return
			}
			update["placement"] = *req.Placement
		}
		if req.Pages != nil {
			update["pages"] = *req.Pages
		}
		if req.Order != nil {
			update["order"] = *req.Order
		}
		if req.Active != nil {
			update["active"] = *req.Active
		}
		if req.StartsAt != nil {
			update["startsAt"] = *req.StartsAt
		}
		if req.EndsAt != nil {
			update["endsAt"] = *req.EndsAt
		}
		if req.Animation != nil {
			update["animation"] = strings.TrimSpace(*req.Animation)
		}
		if len(update) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Banner
		err = db.Collection("banners").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "banner not found")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteBanner(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/banners/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "banner not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("banners").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		if res.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "banner not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"msg": "banner deleted"})
	}
}
