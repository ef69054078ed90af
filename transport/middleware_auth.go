package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/mogadishu-rentals/application/user"
	"github.com/muhammadheryan/mogadishu-rentals/constant"
	utilsContext "github.com/muhammadheryan/mogadishu-rentals/utils/context"
	"github.com/muhammadheryan/mogadishu-rentals/utils/errors"
)

// AuthMiddleware validates bearer sessions through UserApp. Public endpoints
// pass without a token, but a valid token on them still identifies the
// caller (drafts are visible to their owner on the detail route).
func AuthMiddleware(userApp user.UserApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, hasToken := bearerToken(r)

			if isPublicPath(r.Method, r.URL.Path) {
				if hasToken {
					if userID, err := userApp.ValidateToken(r.Context(), token); err == nil {
						r = r.WithContext(utilsContext.WithUserID(r.Context(), userID))
					}
				}
				next.ServeHTTP(w, r)
				return
			}

			if !hasToken {
				writeError(w, errors.SetCustomError(constant.ErrUnauthenticated))
				return
			}

			userID, err := userApp.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthenticated))
				return
			}

			next.ServeHTTP(w, r.WithContext(utilsContext.WithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	return token, token != ""
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(method, path string) bool {
	for _, prefix := range []string{"/swagger/", "/internal/", "/assets/", "/auth/oauth/"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	switch path {
	case "/auth/login", "/auth/signup", "/metrics":
		return true
	}
	if method == http.MethodGet && (path == "/listings" || strings.HasPrefix(path, "/listings/") || strings.HasPrefix(path, "/storage/")) {
		return true
	}

	return false
}
