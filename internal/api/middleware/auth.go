package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/api/handlers"
)

const (
	msgMissingToken = "authentification requise"
	msgInvalidToken = "session invalide ou expirée"

	// DefaultCookieName cookie posé par les helpers d'auth Supabase
	DefaultCookieName = "sb-access-token"
)

type contextKey string

const userIDKey contextKey = "user_id"

var (
	errMissingToken = errors.New("missing access token")
	errInvalidToken = errors.New("invalid access token")
)

// Logger interface pour les middlewares
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Authenticator vérifie les access tokens Supabase (HS256, signés avec le secret JWT du projet)
type Authenticator struct {
	secret     []byte
	cookieName string
	logger     Logger
}

// NewAuthenticator crée le middleware d'auth
func NewAuthenticator(secret, cookieName string, logger Logger) *Authenticator {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Authenticator{secret: []byte(secret), cookieName: cookieName, logger: logger}
}

// Auth rejette les requêtes sans session valide et place l'id utilisateur dans le contexte
func (a *Authenticator) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.authenticate(r)
		if err != nil {
			a.logger.Warn("%s %s - unauthenticated: %v", r.Method, r.URL.Path, err)
			if errors.Is(err, errMissingToken) {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func (a *Authenticator) authenticate(r *http.Request) (uuid.UUID, error) {
	raw := bearerToken(r)
	if raw == "" {
		if c, err := r.Cookie(a.cookieName); err == nil {
			raw = c.Value
		}
	}
	if raw == "" {
		return uuid.Nil, errMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("%w: %w", errInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject %q", errInvalidToken, claims.Subject)
	}
	return userID, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// WithUserID enregistre l'id de l'utilisateur authentifié
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID retourne l'id utilisateur posé par Auth
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}
