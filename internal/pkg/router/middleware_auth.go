package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/shandysiswandi/talentflow/internal/pkg/jwt"
)

func isPublic(method, path string, endpoints map[string]map[string]struct{}, prefixes []string) bool {
	if s, ok := endpoints[method]; ok {
		if _, skip := s[path]; skip {
			return true
		}
	}

	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}

func middlewareAuthentication(verifier jwt.JWT, denylist Denylist, publicEndpoints map[string]map[string]struct{}, publicPrefixes []string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.Method, matchedRoutePath(r), publicEndpoints, publicPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			p := strings.Fields(r.Header.Get("Authorization"))
			if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") {
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(p[1])
			if err != nil {
				writeJSON(w, errorResponse{Message: "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			if denylist != nil && claims.ID != "" {
				revoked, err := denylist.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					slog.ErrorContext(r.Context(), "failed to check token denylist", "error", err)
					writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
					return
				}
				if revoked {
					writeJSON(w, errorResponse{Message: "Invalid or expired token"}, http.StatusUnauthorized)
					return
				}
			}

			ctx := jwt.SetAuth(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
