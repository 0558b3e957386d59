// Package viewer answers "is the current viewer an admin" and, when enforcement
// is switched on, guards the admin routes with HTTP Basic credentials.
package viewer

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const realm = `Basic realm="minblog admin", charset="UTF-8"`

type Options struct {
	Enforce      bool
	User         string
	PasswordHash string
}

type Resolver struct {
	enforce      bool
	user         string
	passwordHash []byte
}

func NewResolver(opts Options) *Resolver {
	return &Resolver{
		enforce:      opts.Enforce,
		user:         strings.TrimSpace(opts.User),
		passwordHash: []byte(strings.TrimSpace(opts.PasswordHash)),
	}
}

// IsAdmin reports whether the request carries admin credentials. Without a
// configured password hash every viewer counts as admin.
func (v *Resolver) IsAdmin(r *http.Request) bool {
	if v == nil || len(v.passwordHash) == 0 {
		return true
	}

	user, password, ok := r.BasicAuth()
	if !ok {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(user), []byte(v.user)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)) == nil
}

// RequireAdmin wraps next so requests under pathPrefix need admin credentials.
// It is a pass-through unless enforcement is enabled.
func (v *Resolver) RequireAdmin(pathPrefix string, next http.Handler) http.Handler {
	if v == nil || !v.enforce {
		return next
	}

	pathPrefix = strings.TrimSuffix(pathPrefix, "/")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !underPrefix(r.URL.Path, pathPrefix) || v.IsAdmin(r) {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("WWW-Authenticate", realm)
		w.Header().Set("Cache-Control", "no-store")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	})
}

func underPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
