package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/savourie/recettes-api/internal/domain/entity"
	"github.com/savourie/recettes-api/internal/domain/repository"
	"github.com/savourie/recettes-api/pkg/apperr"
)

const (
	msgRecipeNotFound  = "Recette non trouvée"
	msgCommentNotFound = "Commentaire non trouvé"

	defaultPage   = 1
	defaultLimite = 10
	maxLimite     = 100
)

type RecipeService struct {
	Repo   repository.RecipeRepository
	Logger *logrus.Logger
}

func NewRecipeService(repo repository.RecipeRepository, logger *logrus.Logger) *RecipeService {
	return &RecipeService{Repo: repo, Logger: logger}
}

// parseID converts a hex path parameter into an ObjectID, raising the 400
// the store would otherwise produce for a malformed identifier.
func parseID(field, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperr.BadRequest(fmt.Sprintf("Format invalide pour %s: %s", field, hex), nil)
	}
	return id, nil
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

type CreateRecipeInput struct {
	Titre       string
	Ingredients []string
	Etapes      []string
	Auteur      string
}

func (s *RecipeService) Create(ctx context.Context, in CreateRecipeInput) (*entity.Recipe, error) {
	rec := &entity.Recipe{
		Titre:       strings.TrimSpace(in.Titre),
		Ingredients: trimAll(in.Ingredients),
		Etapes:      trimAll(in.Etapes),
		Auteur:      strings.TrimSpace(in.Auteur),
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

type ListRecipesInput struct {
	Ingredient string
	Auteur     string
	Tri        string
	Page       int
	Limite     int
}

type Pagination struct {
	Page   int
	Limite int
	Total  int64
	Pages  int
}

// List applies defaults, runs the filtered query and derives the page count.
// An unrecognized Tri value is not an error; the store falls back to the
// default ordering.
func (s *RecipeService) List(ctx context.Context, in ListRecipesInput) ([]entity.Recipe, Pagination, error) {
	if in.Page < 1 {
		in.Page = defaultPage
	}
	if in.Limite < 1 {
		in.Limite = defaultLimite
	}
	if in.Limite > maxLimite {
		in.Limite = maxLimite
	}

	q := repository.RecipeQuery{
		Ingredient: strings.TrimSpace(in.Ingredient),
		Auteur:     strings.TrimSpace(in.Auteur),
		Tri:        in.Tri,
		Page:       in.Page,
		Limite:     in.Limite,
	}
	recipes, total, err := s.Repo.Find(ctx, q)
	if err != nil {
		return nil, Pagination{}, err
	}

	pages := int((total + int64(in.Limite) - 1) / int64(in.Limite))
	return recipes, Pagination{Page: in.Page, Limite: in.Limite, Total: total, Pages: pages}, nil
}

func (s *RecipeService) Get(ctx context.Context, idHex string) (*entity.Recipe, error) {
	id, err := parseID("id", idHex)
	if err != nil {
		return nil, err
	}
	rec, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound(msgRecipeNotFound)
	}
	return rec, err
}

type UpdateRecipeInput struct {
	Titre       *string
	Ingredients []string
	Etapes      []string
	Auteur      *string
}

// Update replaces only the supplied fields; absent fields keep their value.
func (s *RecipeService) Update(ctx context.Context, idHex string, in UpdateRecipeInput) (*entity.Recipe, error) {
	id, err := parseID("id", idHex)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if in.Titre != nil {
		set["titre"] = strings.TrimSpace(*in.Titre)
	}
	if in.Ingredients != nil {
		set["ingredients"] = trimAll(in.Ingredients)
	}
	if in.Etapes != nil {
		set["etapes"] = trimAll(in.Etapes)
	}
	if in.Auteur != nil {
		set["auteur"] = strings.TrimSpace(*in.Auteur)
	}

	rec, err := s.Repo.Update(ctx, id, set)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound(msgRecipeNotFound)
	}
	return rec, err
}

func (s *RecipeService) Delete(ctx context.Context, idHex string) error {
	id, err := parseID("id", idHex)
	if err != nil {
		return err
	}
	err = s.Repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(msgRecipeNotFound)
	}
	return err
}

// Like bumps popularity through the store's atomic increment and returns
// the new value.
func (s *RecipeService) Like(ctx context.Context, idHex string) (int, error) {
	id, err := parseID("id", idHex)
	if err != nil {
		return 0, err
	}
	rec, err := s.Repo.Like(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, apperr.NotFound(msgRecipeNotFound)
	}
	if err != nil {
		return 0, err
	}
	return rec.Popularite, nil
}

// AddComment appends a comment and bumps popularity in the same document
// write. The read-mutate-replace sequence is not atomic against concurrent
// writers on the same recipe; only Like carries that guarantee.
func (s *RecipeService) AddComment(ctx context.Context, idHex, auteur, contenu string) (*entity.Recipe, error) {
	id, err := parseID("id", idHex)
	if err != nil {
		return nil, err
	}
	rec, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound(msgRecipeNotFound)
	}
	if err != nil {
		return nil, err
	}

	rec.Commentaires = append(rec.Commentaires, entity.Comment{
		ID:      primitive.NewObjectID(),
		Auteur:  strings.TrimSpace(auteur),
		Contenu: strings.TrimSpace(contenu),
		Date:    time.Now(),
	})
	rec.Popularite++

	if err := s.Repo.Replace(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgRecipeNotFound)
		}
		return nil, err
	}
	return rec, nil
}

func (s *RecipeService) ListComments(ctx context.Context, idHex string) (*entity.Recipe, error) {
	return s.Get(ctx, idHex)
}

// RemoveComment deletes a comment by id and decrements popularity, never
// below zero.
func (s *RecipeService) RemoveComment(ctx context.Context, idHex, commentIDHex string) error {
	id, err := parseID("id", idHex)
	if err != nil {
		return err
	}
	commentID, err := parseID("commentaireId", commentIDHex)
	if err != nil {
		return err
	}

	rec, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(msgRecipeNotFound)
	}
	if err != nil {
		return err
	}

	idx := -1
	for i := range rec.Commentaires {
		if rec.Commentaires[i].ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound(msgCommentNotFound)
	}

	rec.Commentaires = append(rec.Commentaires[:idx], rec.Commentaires[idx+1:]...)
	if rec.Popularite > 0 {
		rec.Popularite--
	}

	if err := s.Repo.Replace(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgRecipeNotFound)
		}
		return err
	}
	return nil
}
