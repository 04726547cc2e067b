package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/savourie/recettes-api/config"
	"github.com/savourie/recettes-api/internal/application"
	"github.com/savourie/recettes-api/internal/domain/repository"
	"github.com/savourie/recettes-api/internal/infrastructure/mongodb"
	"github.com/savourie/recettes-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = db.Client().Disconnect(ctx) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	email := "demo@exemple.fr"
	password := "motdepasse123"
	nom := "Utilisateur Démo"

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now()
	upsert := options.Update().SetUpsert(true)
	_, err = db.Collection("utilisateurs").UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set":         bson.M{"nom": nom, "motDePasse": hash, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		upsert,
	)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: email=%s password=%s\n", email, password)

	repo := mongodb.NewRecipeRepository(db)
	count, err := db.Collection("recettes").CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("failed to count recipes: %v", err)
	}
	if count > 0 {
		fmt.Printf("recipes already present (%d), skipping\n", count)
		return
	}

	seedRecipes(ctx, repo)
	fmt.Println("seeded sample recipes")
}

func seedRecipes(ctx context.Context, repo repository.RecipeRepository) {
	svc := application.NewRecipeService(repo, helpers.NewLogger("seed", "development"))
	samples := []application.CreateRecipeInput{
		{
			Titre:       "Tarte aux pommes",
			Ingredients: []string{"pommes", "pâte brisée", "sucre", "beurre"},
			Etapes:      []string{"Préchauffer le four à 180°C", "Éplucher les pommes", "Garnir la pâte", "Cuire 35 minutes"},
			Auteur:      "Utilisateur Démo",
		},
		{
			Titre:       "Ratatouille",
			Ingredients: []string{"aubergines", "courgettes", "tomates", "poivrons", "oignons"},
			Etapes:      []string{"Couper les légumes", "Faire revenir les oignons", "Mijoter 45 minutes"},
			Auteur:      "Utilisateur Démo",
		},
		{
			Titre:       "Crêpes bretonnes",
			Ingredients: []string{"farine", "œufs", "lait", "beurre salé"},
			Etapes:      []string{"Mélanger la pâte", "Laisser reposer une heure", "Cuire à feu vif"},
			Auteur:      "Chef Armand",
		},
	}
	for _, in := range samples {
		if _, err := svc.Create(ctx, in); err != nil {
			log.Fatalf("failed to seed recipe %q: %v", in.Titre, err)
		}
	}
}
