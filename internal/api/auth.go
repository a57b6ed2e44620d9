package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dialogiq/dialogiq/internal/config"
)

// demoUser is a statically provisioned login identity. A production
// deployment would replace this in-memory table with real user storage.
type demoUser struct {
	Username     string
	PasswordHash string
	Role         string
}

type authService struct {
	secret   []byte
	tokenTTL time.Duration
	users    map[string]demoUser
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func newAuthService(cfg config.AuthConfig) *authService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authService{
		secret:   []byte(cfg.Secret),
		tokenTTL: ttl,
		users: map[string]demoUser{
			"user":  {Username: "user", PasswordHash: sha256Hex("user123"), Role: "user"},
			"admin": {Username: "admin", PasswordHash: sha256Hex("admin123"), Role: "admin"},
		},
	}
}

func (a *authService) issueToken(username, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"exp":  time.Now().Add(a.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *authService) verifyToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenUnverifiable
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return sub, nil
}

type ctxKey string

const ctxKeyUsername ctxKey = "username"

// middleware authenticates bearer tokens for protected routes.
func (a *authService) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr := strings.TrimPrefix(header, "Bearer ")
		if tokenStr == "" || tokenStr == header {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		username, err := a.verifyToken(tokenStr)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyUsername, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, ok := s.auth.users[req.Username]
	if !ok || sha256Hex(req.Password) != user.PasswordHash {
		writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	token, err := s.auth.issueToken(user.Username, user.Role)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
		"role":         user.Role,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, "username and password are required")
		return
	}
	if _, exists := s.auth.users[req.Username]; exists {
		writeDetail(w, http.StatusBadRequest, "Username already exists")
		return
	}
	// Demo endpoint: acknowledges the registration without persisting it.
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "Registration successful",
		"username": req.Username,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	username, _ := r.Context().Value(ctxKeyUsername).(string)
	user, ok := s.auth.users[username]
	if !ok {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"username": user.Username,
		"role":     user.Role,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	username, _ := r.Context().Value(ctxKeyUsername).(string)
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":    true,
		"username": username,
	})
}
