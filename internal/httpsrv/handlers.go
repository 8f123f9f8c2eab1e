package httpsrv

import (
	"log/slog"
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/supermega/opsd/config"
	"github.com/supermega/opsd/internal/auth"
	contactCrt "github.com/supermega/opsd/internal/contact/controller"
	contactSvc "github.com/supermega/opsd/internal/contact/service"
	"github.com/supermega/opsd/internal/httpsrv/middleware"

	"golang.org/x/time/rate"
)

type HTTPHandlersOpts struct {
	Cfg      *config.Config
	Service  contactSvc.Service
	Verifier auth.Verifier
	Verbose  bool
}

func InitHTTPHandlers(opts *HTTPHandlersOpts) http.Handler {
	l := slog.With("component", "rest-api")

	controller := contactCrt.NewContactController(opts.Service, opts.Verifier)

	// init middlewares
	loggingMiddleware := middleware.LoggingMiddleware{
		Logger:  l,
		Verbose: opts.Verbose,
	}
	rateLimitMiddleware := middleware.RateLimiterMiddleware{Limiter: rate.NewLimiter(5, 10)}

	// Build middleware chain
	secureChain := middleware.Chain(
		middleware.SafeHandlerMiddleware,
		loggingMiddleware.Middleware,
		rateLimitMiddleware.Middleware,
	)
	plainChain := middleware.Chain(
		middleware.SafeHandlerMiddleware,
		loggingMiddleware.Middleware,
	)

	// Init handlers
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.Handle("POST /api/contact", secureChain(http.HandlerFunc(controller.ContactHandler)))
	mux.Handle("POST /api/auth/google", secureChain(http.HandlerFunc(controller.GoogleAuthHandler)))
	mux.Handle("POST /api/calendar/create-event", secureChain(http.HandlerFunc(controller.CalendarEventHandler)))
	mux.Handle("GET /api/health", plainChain(http.HandlerFunc(controller.HealthHandler)))

	if opts.Cfg.Metrics.Enable {
		l.Debug("enable metric endpoints")

		mux.Handle("/metrics", promhttp.Handler())
	}

	if opts.Cfg.Pprof.Enable {
		l.Debug("enable pprof endpoints")

		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	return mux
}
