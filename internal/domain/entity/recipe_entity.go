package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a subdocument embedded in a recipe. It has no independent
// lifecycle: it is created, listed and deleted through its parent recipe.
type Comment struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Auteur  string             `bson:"auteur" json:"auteur"`
	Contenu string             `bson:"contenu" json:"contenu"`
	Date    time.Time          `bson:"date" json:"date"`
}

// Recipe is a document in the recettes collection.
// Popularite counts likes plus comments and never goes below zero.
type Recipe struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Titre        string             `bson:"titre" json:"titre"`
	Ingredients  []string           `bson:"ingredients" json:"ingredients"`
	Etapes       []string           `bson:"etapes" json:"etapes"`
	Auteur       string             `bson:"auteur" json:"auteur"`
	Date         time.Time          `bson:"date" json:"date"`
	Popularite   int                `bson:"popularite" json:"popularite"`
	Commentaires []Comment          `bson:"commentaires" json:"commentaires"`
}
