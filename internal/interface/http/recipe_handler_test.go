package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/savourie/recettes-api/internal/application"
	"github.com/savourie/recettes-api/internal/domain/entity"
	"github.com/savourie/recettes-api/internal/domain/repository"
	"github.com/savourie/recettes-api/internal/interface/middleware"
	"github.com/savourie/recettes-api/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newTestRouter builds an engine with the same error normalizer and 404
// handler as production, so tests observe real envelopes.
func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler(testLogger(), "test"))
	r.NoRoute(middleware.NoRoute())
	return r
}

type fakeRecipeRepo struct {
	CreateFunc  func(ctx context.Context, r *entity.Recipe) error
	GetByIDFunc func(ctx context.Context, id primitive.ObjectID) (*entity.Recipe, error)
	FindFunc    func(ctx context.Context, q repository.RecipeQuery) ([]entity.Recipe, int64, error)
	UpdateFunc  func(ctx context.Context, id primitive.ObjectID, set bson.M) (*entity.Recipe, error)
	DeleteFunc  func(ctx context.Context, id primitive.ObjectID) error
	LikeFunc    func(ctx context.Context, id primitive.ObjectID) (*entity.Recipe, error)
	ReplaceFunc func(ctx context.Context, r *entity.Recipe) error
}

func (f *fakeRecipeRepo) Create(ctx context.Context, r *entity.Recipe) error {
	return f.CreateFunc(ctx, r)
}

func (f *fakeRecipeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Recipe, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeRecipeRepo) Find(ctx context.Context, q repository.RecipeQuery) ([]entity.Recipe, int64, error) {
	return f.FindFunc(ctx, q)
}

func (f *fakeRecipeRepo) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*entity.Recipe, error) {
	return f.UpdateFunc(ctx, id, set)
}

func (f *fakeRecipeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return f.DeleteFunc(ctx, id)
}

func (f *fakeRecipeRepo) Like(ctx context.Context, id primitive.ObjectID) (*entity.Recipe, error) {
	return f.LikeFunc(ctx, id)
}

func (f *fakeRecipeRepo) Replace(ctx context.Context, r *entity.Recipe) error {
	return f.ReplaceFunc(ctx, r)
}

func newRecipeRouter(repo *fakeRecipeRepo) *gin.Engine {
	r := newTestRouter()
	h := NewRecipeHandler(application.NewRecipeService(repo, testLogger()), testLogger())
	r.GET("/recettes", h.List)
	r.POST("/recettes", h.Create)
	r.GET("/recettes/:id", h.Get)
	r.PUT("/recettes/:id", h.Update)
	r.DELETE("/recettes/:id", h.Delete)
	r.POST("/recettes/:id/like", h.Like)
	r.GET("/recettes/:id/commentaires", h.ListComments)
	r.POST("/recettes/:id/commentaires", h.AddComment)
	r.DELETE("/recettes/:id/commentaires/:commentaireId", h.RemoveComment)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details []struct {
		Champ   string `json:"champ"`
		Message string `json:"message"`
		Valeur  any    `json:"valeur"`
	} `json:"details"`
	Pagination *struct {
		Page   int   `json:"page"`
		Limite int   `json:"limite"`
		Total  int64 `json:"total"`
		Pages  int   `json:"pages"`
	} `json:"pagination"`
	Token       string         `json:"token"`
	Utilisateur map[string]any `json:"utilisateur"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func detailFields(e envelope) []string {
	out := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		out = append(out, d.Champ)
	}
	return out
}

func TestCreateRecipe(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantFields []string
	}{
		{
			name:       "valid",
			body:       `{"titre":"Tarte Tatin","ingredients":["pommes","sucre"],"etapes":["caraméliser","cuire"],"auteur":"Marie"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "title too short",
			body:       `{"titre":"ab","ingredients":["pommes"],"etapes":["cuire"],"auteur":"Marie"}`,
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"titre"},
		},
		{
			name:       "blank title",
			body:       `{"titre":"   ","ingredients":["pommes"],"etapes":["cuire"],"auteur":"Marie"}`,
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"titre"},
		},
		{
			// Padding must not satisfy the length bound; the stored value is trimmed.
			name:       "whitespace-padded short title",
			body:       `{"titre":"  ab  ","ingredients":["pommes"],"etapes":["cuire"],"auteur":"Marie"}`,
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"titre"},
		},
		{
			name:       "empty ingredient list and missing author",
			body:       `{"titre":"Tarte Tatin","ingredients":[],"etapes":["cuire"]}`,
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"ingredients", "auteur"},
		},
		{
			name:       "blank array element",
			body:       `{"titre":"Tarte Tatin","ingredients":["pommes","  "],"etapes":["cuire"],"auteur":"Marie"}`,
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"ingredients[1]"},
		},
		{
			name:       "title too long",
			body:       `{"titre":"` + strings.Repeat("a", 101) + `","ingredients":["pommes"],"etapes":["cuire"],"auteur":"Marie"}`,
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"titre"},
		},
		{
			name:       "malformed json",
			body:       `{"titre":`,
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"payload"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			repo := &fakeRecipeRepo{
				CreateFunc: func(_ context.Context, r *entity.Recipe) error {
					created = true
					r.ID = primitive.NewObjectID()
					return nil
				},
			}
			r := newRecipeRouter(repo)

			w := doJSON(r, http.MethodPost, "/recettes", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			e := decode(t, w)
			if tt.wantStatus == http.StatusCreated {
				assert.True(t, e.Success)
				assert.True(t, created)
				assert.Equal(t, "Recette créée avec succès", e.Message)
				return
			}
			assert.False(t, e.Success)
			assert.False(t, created)
			assert.Equal(t, "Erreur de validation des données", e.Message)
			assert.Subset(t, detailFields(e), tt.wantFields)
		})
	}
}

func TestListRecipes(t *testing.T) {
	repo := &fakeRecipeRepo{
		FindFunc: func(_ context.Context, q repository.RecipeQuery) ([]entity.Recipe, int64, error) {
			return make([]entity.Recipe, 5), 25, nil
		},
	}
	r := newRecipeRouter(repo)

	t.Run("pagination envelope", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/recettes?page=3&limite=10", "")

		require.Equal(t, http.StatusOK, w.Code)
		e := decode(t, w)
		require.NotNil(t, e.Pagination)
		assert.Equal(t, 3, e.Pagination.Page)
		assert.Equal(t, 10, e.Pagination.Limite)
		assert.Equal(t, int64(25), e.Pagination.Total)
		assert.Equal(t, 3, e.Pagination.Pages)
	})

	t.Run("limite out of range", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/recettes?limite=0", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		e := decode(t, w)
		assert.Contains(t, detailFields(e), "limite")
	})

	t.Run("unknown tri is accepted", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/recettes?tri=saveur", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetRecipe(t *testing.T) {
	known := primitive.NewObjectID()
	repo := &fakeRecipeRepo{
		GetByIDFunc: func(_ context.Context, id primitive.ObjectID) (*entity.Recipe, error) {
			if id == known {
				return &entity.Recipe{ID: known, Titre: "Ratatouille"}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	r := newRecipeRouter(repo)

	t.Run("found", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/recettes/"+known.Hex(), "")

		require.Equal(t, http.StatusOK, w.Code)
		e := decode(t, w)
		assert.True(t, e.Success)
		assert.Contains(t, string(e.Data), "Ratatouille")
	})

	t.Run("not found", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/recettes/"+primitive.NewObjectID().Hex(), "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		e := decode(t, w)
		assert.False(t, e.Success)
		assert.Equal(t, "Recette non trouvée", e.Message)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/recettes/abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		e := decode(t, w)
		assert.Equal(t, "Format invalide pour id: abc", e.Message)
	})
}

func TestUpdateRecipe(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("partial update", func(t *testing.T) {
		var seenSet bson.M
		repo := &fakeRecipeRepo{
			UpdateFunc: func(_ context.Context, _ primitive.ObjectID, set bson.M) (*entity.Recipe, error) {
				seenSet = set
				return &entity.Recipe{ID: id, Titre: "Nouveau nom"}, nil
			},
		}
		r := newRecipeRouter(repo)

		w := doJSON(r, http.MethodPut, "/recettes/"+id.Hex(), `{"titre":"Nouveau nom"}`)

		require.Equal(t, http.StatusOK, w.Code)
		e := decode(t, w)
		assert.Equal(t, "Recette modifiée avec succès", e.Message)
		assert.Equal(t, bson.M{"titre": "Nouveau nom"}, seenSet)
	})

	t.Run("supplied field still validated", func(t *testing.T) {
		r := newRecipeRouter(&fakeRecipeRepo{})

		w := doJSON(r, http.MethodPut, "/recettes/"+id.Hex(), `{"titre":"ab"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		e := decode(t, w)
		assert.Contains(t, detailFields(e), "titre")
	})

	t.Run("padded short title rejected", func(t *testing.T) {
		r := newRecipeRouter(&fakeRecipeRepo{})

		w := doJSON(r, http.MethodPut, "/recettes/"+id.Hex(), `{"titre":"  ab  "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		e := decode(t, w)
		assert.Contains(t, detailFields(e), "titre")
	})

	t.Run("supplied empty array rejected", func(t *testing.T) {
		r := newRecipeRouter(&fakeRecipeRepo{})

		w := doJSON(r, http.MethodPut, "/recettes/"+id.Hex(), `{"ingredients":[]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		e := decode(t, w)
		assert.Contains(t, detailFields(e), "ingredients")
	})
}

func TestDeleteRecipe(t *testing.T) {
	repo := &fakeRecipeRepo{
		DeleteFunc: func(_ context.Context, _ primitive.ObjectID) error {
			return nil
		},
	}
	r := newRecipeRouter(repo)

	w := doJSON(r, http.MethodDelete, "/recettes/"+primitive.NewObjectID().Hex(), "")

	require.Equal(t, http.StatusOK, w.Code)
	e := decode(t, w)
	assert.Equal(t, "Recette supprimée avec succès", e.Message)
}

func TestLikeRecipe(t *testing.T) {
	repo := &fakeRecipeRepo{
		LikeFunc: func(_ context.Context, _ primitive.ObjectID) (*entity.Recipe, error) {
			return &entity.Recipe{Popularite: 4}, nil
		},
	}
	r := newRecipeRouter(repo)

	w := doJSON(r, http.MethodPost, "/recettes/"+primitive.NewObjectID().Hex()+"/like", "")

	require.Equal(t, http.StatusOK, w.Code)
	e := decode(t, w)
	assert.Equal(t, "Recette aimée", e.Message)
	assert.JSONEq(t, `{"popularite":4}`, string(e.Data))
}

func TestComments(t *testing.T) {
	id := primitive.NewObjectID()
	base := func() *entity.Recipe {
		return &entity.Recipe{
			ID:         id,
			Titre:      "Gratin",
			Popularite: 1,
			Commentaires: []entity.Comment{
				{ID: primitive.NewObjectID(), Auteur: "Jean", Contenu: "Très bon"},
			},
		}
	}

	t.Run("add", func(t *testing.T) {
		repo := &fakeRecipeRepo{
			GetByIDFunc: func(_ context.Context, _ primitive.ObjectID) (*entity.Recipe, error) {
				return base(), nil
			},
			ReplaceFunc: func(_ context.Context, _ *entity.Recipe) error {
				return nil
			},
		}
		r := newRecipeRouter(repo)

		w := doJSON(r, http.MethodPost, "/recettes/"+id.Hex()+"/commentaires",
			`{"auteur":"Sophie","contenu":"Excellent"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		e := decode(t, w)
		assert.Equal(t, "Commentaire ajouté avec succès", e.Message)
		assert.Contains(t, string(e.Data), `"popularite":2`)
	})

	t.Run("add with contenu too long", func(t *testing.T) {
		r := newRecipeRouter(&fakeRecipeRepo{})

		body := `{"auteur":"Sophie","contenu":"` + strings.Repeat("a", 501) + `"}`
		w := doJSON(r, http.MethodPost, "/recettes/"+id.Hex()+"/commentaires", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		e := decode(t, w)
		assert.Contains(t, detailFields(e), "contenu")
	})

	t.Run("list", func(t *testing.T) {
		repo := &fakeRecipeRepo{
			GetByIDFunc: func(_ context.Context, _ primitive.ObjectID) (*entity.Recipe, error) {
				return base(), nil
			},
		}
		r := newRecipeRouter(repo)

		w := doJSON(r, http.MethodGet, "/recettes/"+id.Hex()+"/commentaires", "")

		require.Equal(t, http.StatusOK, w.Code)
		e := decode(t, w)
		assert.Contains(t, string(e.Data), `"titre":"Gratin"`)
		assert.Contains(t, string(e.Data), `"total":1`)
	})

	t.Run("remove", func(t *testing.T) {
		rec := base()
		repo := &fakeRecipeRepo{
			GetByIDFunc: func(_ context.Context, _ primitive.ObjectID) (*entity.Recipe, error) {
				return rec, nil
			},
			ReplaceFunc: func(_ context.Context, _ *entity.Recipe) error {
				return nil
			},
		}
		r := newRecipeRouter(repo)

		w := doJSON(r, http.MethodDelete,
			"/recettes/"+id.Hex()+"/commentaires/"+rec.Commentaires[0].ID.Hex(), "")

		require.Equal(t, http.StatusOK, w.Code)
		e := decode(t, w)
		assert.Equal(t, "Commentaire supprimé avec succès", e.Message)
	})
}

func TestNoRoute(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodGet, "/nulle-part", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	e := decode(t, w)
	assert.False(t, e.Success)
	assert.Equal(t, "Route non trouvée: /nulle-part", e.Message)
}
