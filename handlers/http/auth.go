package httpHandler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kb-server/auth"
	"kb-server/usecases"
)

// AuthService is what the auth endpoints need from the use case layer.
type AuthService interface {
	Register(email, password string) (*usecases.AuthResult, error)
	Login(email, password string) (*usecases.AuthResult, error)
	ValidateToken(token string) (*auth.Claims, error)
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Register(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, "User registered successfully", result)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Login successful", result)
}

// Validate handles POST /api/auth/validate. The route is not behind the
// auth middleware; the handler inspects the header itself so it can answer
// 401 for both the missing and the invalid case.
func (h *AuthHandler) Validate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "No token provided"})
		return
	}

	claims, err := h.service.ValidateToken(strings.TrimSpace(parts[1]))
	if err != nil {
		c.JSON(http.StatusUnauthorized, Response{Success: false, Message: err.Error()})
		return
	}

	respond(c, http.StatusOK, "", gin.H{"valid": true, "payload": claims})
}
