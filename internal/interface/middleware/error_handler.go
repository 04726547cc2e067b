package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/savourie/recettes-api/pkg/apperr"
	"github.com/savourie/recettes-api/pkg/helpers"
	"github.com/savourie/recettes-api/pkg/response"
)

// ErrorHandler is the single place an error becomes a response envelope.
// Handlers and services attach errors with c.Error; this middleware maps
// the last one to a status and writes {success:false, message, details?}.
// Raw error text is only exposed in development.
func ErrorHandler(logger *logrus.Logger, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var ae *apperr.Error
		if errors.As(err, &ae) {
			response.Error(c, ae.Status, ae.Message, ae.Details)
			return
		}

		// Duplicate-key backstop: the services normally pre-translate this,
		// but a raced insert can reach here untagged.
		if mongo.IsDuplicateKeyError(err) {
			response.Error(c, http.StatusConflict, "Donnée en double détectée", nil)
			return
		}

		helpers.LogError(logger, "unhandled error", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
		})

		var details any
		if env == "development" {
			details = err.Error()
		}
		response.Error(c, http.StatusInternalServerError, "Erreur interne du serveur", details)
	}
}

// NoRoute produces the 404 envelope for unmatched paths.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route non trouvée: "+c.Request.URL.Path, nil)
	}
}
