package web

import "net/http"

// Router dispatches by path and method on top of http.ServeMux. Each path is
// registered with the mux once; further methods on the same path join its
// method table.
type Router struct {
	mux     *http.ServeMux
	methods map[string]methodTable
}

type methodTable map[string]http.HandlerFunc

func NewRouter() *Router {
	return &Router{
		mux:     http.NewServeMux(),
		methods: make(map[string]methodTable),
	}
}

// Handle registers handler for method on path. The wildcard method "*"
// bypasses the method table and takes every request for the path (used for
// the SPA fallback).
func (rt *Router) Handle(method, path string, handler http.HandlerFunc) {
	if method == "*" {
		rt.mux.HandleFunc(path, handler)
		return
	}

	table, ok := rt.methods[path]
	if !ok {
		table = make(methodTable)
		rt.methods[path] = table
		rt.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			rt.dispatch(table, w, r)
		})
	}
	table[method] = handler
}

// dispatch resolves the handler for the request method. Preflight OPTIONS
// never reaches here; CORSMiddleware answers it earlier in the chain.
func (rt *Router) dispatch(table methodTable, w http.ResponseWriter, r *http.Request) {
	if h, ok := table[r.Method]; ok {
		h(w, r)
		return
	}
	FailErr(w, r, ErrMethodNotAllowed)
}

func (rt *Router) GET(path string, handler http.HandlerFunc) {
	rt.Handle(http.MethodGet, path, handler)
}
func (rt *Router) POST(path string, handler http.HandlerFunc) {
	rt.Handle(http.MethodPost, path, handler)
}
func (rt *Router) PUT(path string, handler http.HandlerFunc) {
	rt.Handle(http.MethodPut, path, handler)
}
func (rt *Router) DELETE(path string, handler http.HandlerFunc) {
	rt.Handle(http.MethodDelete, path, handler)
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}
