package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/savourie/recettes-api/internal/domain/entity"
)

// RecipeQuery describes an optional filter, sort and page over recipes.
// Ingredient and Auteur are case-insensitive substring filters combined
// with a logical AND. Tri is one of date, -date, popularite, -popularite;
// anything else falls back to -date.
type RecipeQuery struct {
	Ingredient string
	Auteur     string
	Tri        string
	Page       int
	Limite     int
}

// RecipeRepository defines the store operations for recipes and their
// embedded comments.
type RecipeRepository interface {
	Create(ctx context.Context, r *entity.Recipe) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Recipe, error)
	// Find returns one page of matching recipes plus the total match count
	// ignoring pagination.
	Find(ctx context.Context, q RecipeQuery) ([]entity.Recipe, int64, error)
	// Update applies a partial $set and returns the updated document.
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*entity.Recipe, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Like atomically increments popularite and returns the updated document.
	Like(ctx context.Context, id primitive.ObjectID) (*entity.Recipe, error)
	// Replace rewrites the whole document; used for comment mutations where
	// the comment list and the popularity counter change together.
	Replace(ctx context.Context, r *entity.Recipe) error
}
