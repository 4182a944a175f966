package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pena-club/pena-api/internal/config"
	"github.com/pena-club/pena-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	CookieName    = "auth_token"
	TokenDuration = 24 * time.Hour
)

type AuthHandler struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{cfg: cfg, db: db}
}

// AuthInput is embedded by every authenticated operation so the session
// cookie reaches the handler.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"Session cookie"`
}

type LoginInput struct {
	Body struct {
		Username string `json:"username" required:"true" doc:"Login name"`
		Password string `json:"password" required:"true" doc:"Password"`
	}
}

type LoginOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Success bool        `json:"success"`
		User    models.User `json:"user"`
	}
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	var user models.User
	if err := h.db.Where("username = ?", input.Body.Username).First(&user).Error; err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Body.Password)); err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}

	token, err := h.GenerateToken(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &LoginOutput{
		SetCookie: http.Cookie{
			Name:     CookieName,
			Value:    token,
			Expires:  time.Now().Add(TokenDuration),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Path:     "/",
		},
	}
	res.Body.Success = true
	res.Body.User = user
	return res, nil
}

type LogoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Success bool `json:"success"`
	}
}

func (h *AuthHandler) HandleLogout(ctx context.Context, input *struct{}) (*LogoutOutput, error) {
	res := &LogoutOutput{
		SetCookie: http.Cookie{
			Name:     CookieName,
			Value:    "",
			MaxAge:   -1,
			HttpOnly: true,
			Path:     "/",
		},
	}
	res.Body.Success = true
	return res, nil
}

type MeInput struct {
	AuthInput
}

type MeOutput struct {
	Body models.User
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *MeInput) (*MeOutput, error) {
	userID, err := h.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	return &MeOutput{Body: user}, nil
}

func (h *AuthHandler) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// Authorize validates the auth_token cookie from a raw Cookie header and
// returns the session user id.
func (h *AuthHandler) Authorize(ctx context.Context, cookieHeader string) (string, error) {
	tokenString, err := cookieValue(cookieHeader, CookieName)
	if err != nil {
		return "", huma.Error401Unauthorized("Unauthorized: no token found")
	}

	userID, err := h.parseToken(tokenString)
	if err != nil {
		return "", huma.Error401Unauthorized("Unauthorized: invalid token")
	}
	return userID, nil
}

// IsAdmin reports whether the user carries the distinguished admin name.
func (h *AuthHandler) IsAdmin(user models.User) bool {
	return user.Username == h.cfg.AdminUsername
}

func (h *AuthHandler) parseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("invalid user_id claim")
	}
	return userID, nil
}

func cookieValue(cookieHeader, name string) (string, error) {
	req := http.Request{Header: http.Header{"Cookie": {cookieHeader}}}
	c, err := req.Cookie(name)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}
