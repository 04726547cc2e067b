package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform JSON body of every response.
// Errors carry Details; lists carry Pagination; auth endpoints carry
// Token and Utilisateur at the top level, matching the public API.
type Envelope struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message,omitempty"`
	Data        any         `json:"data,omitempty"`
	Details     any         `json:"details,omitempty"`
	Pagination  *Pagination `json:"pagination,omitempty"`
	Token       string      `json:"token,omitempty"`
	Utilisateur any         `json:"utilisateur,omitempty"`
}

// Pagination describes a page of a filtered result set.
type Pagination struct {
	Page   int   `json:"page"`
	Limite int   `json:"limite"`
	Total  int64 `json:"total"`
	Pages  int   `json:"pages"`
}

// Success writes a success envelope with optional data.
func Success(c *gin.Context, status int, message string, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// List writes a paginated success envelope.
func List(c *gin.Context, data any, p Pagination) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Pagination: &p})
}

// Auth writes the register/login envelope with token and public user.
func Auth(c *gin.Context, status int, message, token string, user any) {
	c.JSON(status, Envelope{Success: true, Message: message, Token: token, Utilisateur: user})
}

// Error writes an error envelope. Normally only the error-handler
// middleware and the auth middleware call this.
func Error(c *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, Envelope{Success: false, Message: message, Details: details})
}
