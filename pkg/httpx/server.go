package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

const (
	defaultRateLimitPerMinute = 100
	// Item bodies are a name and an optional description.
	defaultMaxBodyBytes   int64 = 64 << 10
	defaultHandlerTimeout       = 30 * time.Second
)

// ServerConfig holds the options for NewRouter.
type ServerConfig struct {
	ServiceName   string
	IsDevelopment bool
	// CORSAllowedOrigins is a comma-separated list of allowed origins.
	// Pass "*" (dev only) to allow all origins.
	CORSAllowedOrigins string
	// RateLimitPerMinute caps requests per client IP. Zero means 100.
	RateLimitPerMinute int
	// MaxBodyBytes caps request bodies. Zero means 64 KiB.
	MaxBodyBytes int64
	// HandlerTimeout bounds each request's context. Zero means 30s.
	HandlerTimeout time.Duration
}

// Middlewares are the process-specific layers NewRouter slots around chi's
// built-ins. Nil entries are skipped.
type Middlewares struct {
	Recovery func(http.Handler) http.Handler // writes the JSON 500
	Sentry   func(http.Handler) http.Handler // reports, then re-panics
	Otel     func(http.Handler) http.Handler
	Logger   func(http.Handler) http.Handler
}

// NewRouter returns a chi.Mux wired in this order, outermost first:
// Recovery, Sentry, RequestID, Otel, Logger, RealIP, per-IP rate limit,
// CORS, body limit, handler timeout, security headers.
//
// Limit breaches answer with an ErrorBody: 429 for the rate limit and 413
// for a declared Content-Length above MaxBodyBytes.
func NewRouter(cfg ServerConfig, mw Middlewares) *chi.Mux {
	sec := secure.New(secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=()",
		IsDevelopment:         cfg.IsDevelopment,
	})

	limit := cfg.RateLimitPerMinute
	if limit <= 0 {
		limit = defaultRateLimitPerMinute
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	timeout := cfg.HandlerTimeout
	if timeout <= 0 {
		timeout = defaultHandlerTimeout
	}

	r := chi.NewRouter()
	use := func(m func(http.Handler) http.Handler) {
		if m != nil {
			r.Use(m)
		}
	}
	use(mw.Recovery)
	use(mw.Sentry)
	r.Use(middleware.RequestID)
	use(mw.Otel)
	use(mw.Logger)
	r.Use(
		middleware.RealIP,
		httprate.Limit(limit, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
				JSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
			}),
		),
		CORSMiddleware(cfg.CORSAllowedOrigins),
		RequestBodyLimit(maxBody),
		middleware.Timeout(timeout),
		sec.Handler,
	)
	return r
}

// CORSMiddleware returns a CORS handler for the item API restricted to the
// given comma-separated origins. "*" allows all origins (development only).
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   parseOrigins(allowedOrigins),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

func parseOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p := strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit rejects a declared Content-Length above maxBytes with 413
// and caps undeclared bodies, so decoding a chunked oversize body fails.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				JSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer returns an *http.Server whose write timeout outlasts the router's
// handler timeout, so a timed-out handler can still send its 503.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      defaultHandlerTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
