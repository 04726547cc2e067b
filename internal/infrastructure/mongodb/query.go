package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/savourie/recettes-api/internal/domain/repository"
)

// buildFilter translates the optional substring filters into a Mongo
// filter document. Absent filters impose no constraint; supplied filters
// are AND-combined. The pattern is quoted so the match is a literal
// substring, not a user-supplied regex.
func buildFilter(q repository.RecipeQuery) bson.M {
	filter := bson.M{}
	if q.Ingredient != "" {
		filter["ingredients"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Ingredient), Options: "i"}
	}
	if q.Auteur != "" {
		filter["auteur"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Auteur), Options: "i"}
	}
	return filter
}

// buildSort maps the tri parameter to a sort document. Unknown values
// silently fall back to the default ordering, newest first.
func buildSort(tri string) bson.D {
	switch tri {
	case "date":
		return bson.D{{Key: "date", Value: 1}}
	case "-date":
		return bson.D{{Key: "date", Value: -1}}
	case "popularite":
		return bson.D{{Key: "popularite", Value: 1}}
	case "-popularite":
		return bson.D{{Key: "popularite", Value: -1}}
	default:
		return bson.D{{Key: "date", Value: -1}}
	}
}
