package handlers

import (
	"net/http"
	"strings"
)

// Router mounts handlers under a base path, optionally behind an
// authentication middleware.
type Router struct {
	mux     *http.ServeMux
	base    string
	protect func(http.Handler) http.Handler
}

// NewRouter builds a Router. protect wraps every private route.
func NewRouter(mux *http.ServeMux, base string, protect func(http.Handler) http.Handler) Router {
	return Router{mux: mux, base: strings.TrimRight(base, "/"), protect: protect}
}

// Public registers "METHOD /path" without authentication.
func (rt Router) Public(pattern string, h http.HandlerFunc) {
	rt.mux.Handle(rt.pattern(pattern), h)
}

// Private registers "METHOD /path" behind the protect middleware, then any
// extra wrappers in order.
func (rt Router) Private(pattern string, h http.HandlerFunc, extra ...func(http.Handler) http.Handler) {
	var handler http.Handler = h
	for i := len(extra) - 1; i >= 0; i-- {
		handler = extra[i](handler)
	}
	rt.mux.Handle(rt.pattern(pattern), rt.protect(handler))
}

func (rt Router) pattern(p string) string {
	method, path, ok := strings.Cut(p, " ")
	if !ok {
		return rt.base + p
	}
	return method + " " + rt.base + path
}
