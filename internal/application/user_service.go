package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/savourie/recettes-api/internal/domain/entity"
	"github.com/savourie/recettes-api/internal/domain/repository"
	"github.com/savourie/recettes-api/pkg/apperr"
	"github.com/savourie/recettes-api/pkg/helpers"
)

const (
	// One message for unknown email and wrong password, so a caller cannot
	// probe which emails are registered.
	msgBadCredentials = "Email ou mot de passe incorrect"
	msgEmailTaken     = "Un utilisateur avec cet email existe déjà"
	msgUserNotFound   = "Utilisateur non trouvé"
)

type UserService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and signs its first token. The email
// pre-check gives the friendly Conflict; the unique index backs it up
// against races, surfacing the same Conflict with the offending key.
func (s *UserService) Register(ctx context.Context, nom, email, motDePasse string) (string, *entity.User, error) {
	email = normalizeEmail(email)

	_, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return "", nil, apperr.Conflict(msgEmailTaken, nil)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	hash, err := helpers.HashPassword(motDePasse)
	if err != nil {
		return "", nil, err
	}

	u := &entity.User{
		Nom:        strings.TrimSpace(nom),
		Email:      email,
		MotDePasse: hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", nil, apperr.Conflict(msgEmailTaken, map[string]string{"email": email})
		}
		return "", nil, err
	}

	token, err := s.JWT.Generate(u.ID.Hex(), u.Email, u.Nom)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Error("token generation failed")
		return "", nil, err
	}
	return token, u, nil
}

func (s *UserService) Login(ctx context.Context, email, motDePasse string) (string, *entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, apperr.Unauthorized(msgBadCredentials)
	}
	if err != nil {
		return "", nil, err
	}
	if !helpers.CompareHashAndPassword(u.MotDePasse, motDePasse) {
		return "", nil, apperr.Unauthorized(msgBadCredentials)
	}

	token, err := s.JWT.Generate(u.ID.Hex(), u.Email, u.Nom)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Error("token generation failed")
		return "", nil, err
	}
	return token, u, nil
}

// Profile fetches the account behind a verified token. The id can have
// gone stale if the account was deleted after issuance.
func (s *UserService) Profile(ctx context.Context, idHex string) (*entity.User, error) {
	id, err := parseID("id", idHex)
	if err != nil {
		return nil, err
	}
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound(msgUserNotFound)
	}
	return u, err
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.Repo.GetAll(ctx)
}
