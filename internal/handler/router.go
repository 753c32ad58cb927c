package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes bundles the handlers mounted by NewRouter.
type Routes struct {
	Prefix  string
	Root    *Handler
	Status  *StatusHandler
	Contact *ContactHandler
	// ContactLimiter throttles POST /contact; nil disables it.
	ContactLimiter *RateLimiter
}

// NewRouter builds the full HTTP handler: API routes under rt.Prefix, /metrics,
// wrapped in request logging, security headers and CORS.
func NewRouter(rt Routes) http.Handler {
	p := rt.Prefix
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+p+"/{$}", rt.Root.Root)
	if p != "" {
		mux.HandleFunc("GET "+p, rt.Root.Root)
	}
	mux.HandleFunc("GET "+p+"/health", rt.Root.Health)

	mux.HandleFunc("POST "+p+"/status", rt.Status.Create)
	mux.HandleFunc("GET "+p+"/status", rt.Status.List)

	var submit http.Handler = http.HandlerFunc(rt.Contact.Submit)
	if rt.ContactLimiter != nil {
		submit = rt.ContactLimiter.Middleware(submit)
	}
	mux.Handle("POST "+p+"/contact", submit)
	mux.HandleFunc("GET "+p+"/contact", rt.Contact.List)

	mux.Handle("GET /metrics", promhttp.Handler())

	return RequestLogger(SecurityHeaders(rt.Root.CORS(mux)))
}
