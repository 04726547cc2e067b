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

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Nom        string `json:"nom" binding:"required,notblank"`
	Email      string `json:"email" binding:"required,email"`
	MotDePasse string `json:"motDePasse" binding:"required,min=6"`
}

type loginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	MotDePasse string `json:"motDePasse" binding:"required"`
}

// Register POST /utilisateurs/inscription
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation(validation.ToDetails(err)))
		return
	}
	token, u, err := h.Svc.Register(c.Request.Context(), req.Nom, req.Email, req.MotDePasse)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Auth(c, http.StatusCreated, "Inscription réussie", token, u.Public())
}

// Login POST /utilisateurs/connexion
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation(validation.ToDetails(err)))
		return
	}
	token, u, err := h.Svc.Login(c.Request.Context(), req.Email, req.MotDePasse)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Auth(c, http.StatusOK, "Connexion réussie", token, u.Public())
}

// Profile GET /utilisateurs/profil (auth required)
func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.Svc.Profile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", u)
}

// List GET /utilisateurs
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", users)
}
