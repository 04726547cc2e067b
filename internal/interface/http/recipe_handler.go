package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/savourie/recettes-api/internal/application"
	"github.com/savourie/recettes-api/pkg/apperr"
	"github.com/savourie/recettes-api/pkg/response"
	"github.com/savourie/recettes-api/pkg/validation"
)

type RecipeHandler struct {
	Svc    *application.RecipeService
	Logger *logrus.Logger
}

func NewRecipeHandler(svc *application.RecipeService, logger *logrus.Logger) *RecipeHandler {
	return &RecipeHandler{Svc: svc, Logger: logger}
}

type createRecipeRequest struct {
	Titre       string   `json:"titre" binding:"required,notblank,trimmin=3,trimmax=100"`
	Ingredients []string `json:"ingredients" binding:"required,min=1,dive,notblank"`
	Etapes      []string `json:"etapes" binding:"required,min=1,dive,notblank"`
	Auteur      string   `json:"auteur" binding:"required,notblank"`
}

// updateRecipeRequest accepts any subset of the recipe fields. A field that
// is absent (JSON null or missing) is left untouched; a supplied field is
// held to the same constraints as on creation.
type updateRecipeRequest struct {
	Titre       *string  `json:"titre" binding:"omitnil,notblank,trimmin=3,trimmax=100"`
	Ingredients []string `json:"ingredients" binding:"omitnil,min=1,dive,notblank"`
	Etapes      []string `json:"etapes" binding:"omitnil,min=1,dive,notblank"`
	Auteur      *string  `json:"auteur" binding:"omitnil,notblank"`
}

type addCommentRequest struct {
	Auteur  string `json:"auteur" binding:"required,notblank"`
	Contenu string `json:"contenu" binding:"required,notblank,trimmax=500"`
}

// listRecipesRequest: tri has no enum constraint. Unknown values fall
// back to the default ordering instead of failing the request.
type listRecipesRequest struct {
	Ingredient string `form:"ingredient"`
	Auteur     string `form:"auteur"`
	Tri        string `form:"tri"`
	Page       int    `form:"page,default=1" binding:"min=1"`
	Limite     int    `form:"limite,default=10" binding:"min=1,max=100"`
}

// Create POST /recettes (auth required)
func (h *RecipeHandler) Create(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation(validation.ToDetails(err)))
		return
	}
	rec, err := h.Svc.Create(c.Request.Context(), application.CreateRecipeInput{
		Titre:       req.Titre,
		Ingredients: req.Ingredients,
		Etapes:      req.Etapes,
		Auteur:      req.Auteur,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Recette créée avec succès", rec)
}

// List GET /recettes?ingredient&auteur&tri&page&limite
func (h *RecipeHandler) List(c *gin.Context) {
	var req listRecipesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(apperr.Validation(validation.ToDetails(err)))
		return
	}
	recipes, p, err := h.Svc.List(c.Request.Context(), application.ListRecipesInput{
		Ingredient: req.Ingredient,
		Auteur:     req.Auteur,
		Tri:        req.Tri,
		Page:       req.Page,
		Limite:     req.Limite,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.List(c, recipes, response.Pagination{
		Page:   p.Page,
		Limite: p.Limite,
		Total:  p.Total,
		Pages:  p.Pages,
	})
}

// Get GET /recettes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	rec, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", rec)
}

// Update PUT /recettes/:id (auth required)
func (h *RecipeHandler) Update(c *gin.Context) {
	var req updateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation(validation.ToDetails(err)))
		return
	}
	rec, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.UpdateRecipeInput{
		Titre:       req.Titre,
		Ingredients: req.Ingredients,
		Etapes:      req.Etapes,
		Auteur:      req.Auteur,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recette modifiée avec succès", rec)
}

// Delete DELETE /recettes/:id (auth required)
func (h *RecipeHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recette supprimée avec succès", nil)
}

// Like POST /recettes/:id/like
func (h *RecipeHandler) Like(c *gin.Context) {
	popularite, err := h.Svc.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recette aimée", gin.H{"popularite": popularite})
}

// AddComment POST /recettes/:id/commentaires
func (h *RecipeHandler) AddComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation(validation.ToDetails(err)))
		return
	}
	rec, err := h.Svc.AddComment(c.Request.Context(), c.Param("id"), req.Auteur, req.Contenu)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Commentaire ajouté avec succès", rec)
}

// ListComments GET /recettes/:id/commentaires
func (h *RecipeHandler) ListComments(c *gin.Context) {
	rec, err := h.Svc.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{
		"titre":        rec.Titre,
		"commentaires": rec.Commentaires,
		"total":        len(rec.Commentaires),
	})
}

// RemoveComment DELETE /recettes/:id/commentaires/:commentaireId (auth required)
func (h *RecipeHandler) RemoveComment(c *gin.Context) {
	if err := h.Svc.RemoveComment(c.Request.Context(), c.Param("id"), c.Param("commentaireId")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Commentaire supprimé avec succès", nil)
}
