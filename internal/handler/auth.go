package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-inventory/internal/utils"
)

// AuthHandler issues operator session tokens. The service has no user
// accounts: a single operator proves possession of one of the shared
// secrets and receives a short-lived JWT for the protected endpoints.
// The admin and menu secrets remain separate gates on the destructive
// endpoints themselves; the session token only unlocks the API surface.
type AuthHandler struct {
	JWTSecret       string // HS256 signing secret
	SessionTTLMin   int    // token lifetime in minutes
	AdminSecretHash string // bcrypt hash of the reset secret
	MenuSecretHash  string // bcrypt hash of the catalog secret
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(jwtSecret string, ttlMin int, adminHash, menuHash string) *AuthHandler {
	return &AuthHandler{
		JWTSecret:       jwtSecret,
		SessionTTLMin:   ttlMin,
		AdminSecretHash: adminHash,
		MenuSecretHash:  menuHash,
	}
}

// CreateSession handles POST /v1/auth/session. The body carries the
// operator secret; either the admin or the menu secret is accepted and
// the resulting token records which one was presented.
func (h *AuthHandler) CreateSession(c echo.Context) error {
	var body struct {
		Secret string `json:"secret"`
	}
	if err := c.Bind(&body); err != nil || body.Secret == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "secret is required"})
	}

	var subject string
	switch {
	case utils.VerifySecret(h.AdminSecretHash, body.Secret):
		subject = "admin"
	case utils.VerifySecret(h.MenuSecretHash, body.Secret):
		subject = "menu"
	default:
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid secret"})
	}

	now := time.Now().UTC()
	exp := now.Add(time.Duration(h.SessionTTLMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(h.JWTSecret))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to sign token"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"token":      signed,
		"expires_at": exp.Format(time.RFC3339),
	})
}
