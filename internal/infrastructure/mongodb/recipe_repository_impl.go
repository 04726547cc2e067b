package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/savourie/recettes-api/internal/domain/entity"
	"github.com/savourie/recettes-api/internal/domain/repository"
)

type RecipeRepository struct {
	coll *mongo.Collection
}

func NewRecipeRepository(db *mongo.Database) *RecipeRepository {
	return &RecipeRepository{coll: db.Collection(recipeCollection)}
}

func (r *RecipeRepository) Create(ctx context.Context, rec *entity.Recipe) error {
	rec.ID = primitive.NewObjectID()
	rec.Date = time.Now()
	rec.Popularite = 0
	if rec.Commentaires == nil {
		rec.Commentaires = []entity.Comment{}
	}
	_, err := r.coll.InsertOne(ctx, rec)
	return err
}

func (r *RecipeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Recipe, error) {
	rec := &entity.Recipe{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *RecipeRepository) Find(ctx context.Context, q repository.RecipeQuery) ([]entity.Recipe, int64, error) {
	filter := buildFilter(q)

	skip := int64(q.Page-1) * int64(q.Limite)
	opts := options.Find().
		SetSort(buildSort(q.Tri)).
		SetSkip(skip).
		SetLimit(int64(q.Limite))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	recipes := []entity.Recipe{}
	if err := cur.All(ctx, &recipes); err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (r *RecipeRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*entity.Recipe, error) {
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	rec := &entity.Recipe{}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, after).Decode(rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Like increments popularite server-side so concurrent likes never lose
// updates; it is the only write that must not be read-modify-write.
func (r *RecipeRepository) Like(ctx context.Context, id primitive.ObjectID) (*entity.Recipe, error) {
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	rec := &entity.Recipe{}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"popularite": 1}}, after).Decode(rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *RecipeRepository) Replace(ctx context.Context, rec *entity.Recipe) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)
