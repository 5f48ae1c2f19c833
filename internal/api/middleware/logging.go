package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ekicare/ekicare-api/internal/api/handlers"
)

// RequestLogger logge méthode, route, statut et latence de chaque requête
func RequestLogger(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			status := rec.code()
			elapsed := time.Since(start).Milliseconds()
			if status >= http.StatusInternalServerError {
				logger.Error("%s %s - %d in %dms", r.Method, r.URL.Path, status, elapsed)
				return
			}
			logger.Info("%s %s - %d in %dms", r.Method, r.URL.Path, status, elapsed)
		})
	}
}

// Recoverer transforme un panic en 500 au lieu de couper la connexion
func Recoverer(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("%s %s - panic: %v", r.Method, r.URL.Path, rec)
					handlers.RespondInternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
