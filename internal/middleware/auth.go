package middleware

import (
	"net/http"

	"github.com/easyshopbd/easyshop/internal/auth"
	"github.com/easyshopbd/easyshop/internal/store"
)

const sessionCookieName = "easyshop_session"

// RequireAuth validates the session cookie and attaches the Actor to the
// request context.
func RequireAuth(sessionStore *store.SessionStore, userStore *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			sess, err := sessionStore.GetByToken(cookie.Value)
			if err != nil || sess == nil {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			user, err := userStore.GetByID(sess.UserID)
			if err != nil || user == nil {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			actor := auth.Actor{
				UserID:    user.ID,
				Username:  user.Username,
				IsStaff:   user.IsStaff,
				SessionID: sess.ID,
			}
			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		})
	}
}

// RequireStaff rejects non-staff actors. Must run inside RequireAuth.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsStaff(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
