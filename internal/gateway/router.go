package gateway

import (
	"net/http"

	"github.com/saransh1220/linkhub/internal/gateway/middleware"
)

// Router wraps http.ServeMux with helpers for the three access levels.
type Router struct {
	mux  *http.ServeMux
	auth *middleware.AuthMiddleWare
}

func NewRouter(auth *middleware.AuthMiddleWare) *Router {
	return &Router{
		mux:  http.NewServeMux(),
		auth: auth,
	}
}

// Mux returns the underlying http.ServeMux
func (r *Router) Mux() *http.ServeMux {
	return r.mux
}

func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// Public registers a route open to everyone.
func (r *Router) Public(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

// Protected registers a route that requires a valid token.
func (r *Router) Protected(pattern string, handler http.HandlerFunc) {
	r.mux.Handle(pattern, r.auth.RequireAuth(handler))
}

// Optional registers a route that reads the identity when one is presented.
func (r *Router) Optional(pattern string, handler http.HandlerFunc) {
	r.mux.Handle(pattern, r.auth.FlexibleAuth(handler))
}
