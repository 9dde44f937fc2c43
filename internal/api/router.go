package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/eventhub/server/internal/api/handlers"
	"github.com/eventhub/server/internal/api/middleware"
	"github.com/eventhub/server/internal/auth"
	"github.com/eventhub/server/internal/config"
	"github.com/eventhub/server/internal/domain/events"
	"github.com/eventhub/server/internal/domain/tickets"
	"github.com/eventhub/server/internal/domain/users"
	"github.com/eventhub/server/internal/metrics"
	"github.com/eventhub/server/internal/storage"
	"github.com/eventhub/server/internal/uploads"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter wires the resource handlers to their paths and composes the
// middleware chain. The repository is injected so tests can substitute
// stub stores.
func NewRouter(cfg config.Config, logger zerolog.Logger, repo storage.Repository, pool *pgxpool.Pool, store *uploads.Store) http.Handler {
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret)

	usersHandler := handlers.NewUsersHandler(users.NewService(repo.Users()), tokens, cfg.Environment)
	eventsHandler := handlers.NewEventsHandler(events.NewService(repo.Events()), store, cfg.Environment)
	ticketsHandler := handlers.NewTicketsHandler(tickets.NewService(repo.Tickets()), cfg.Environment)

	mux := http.NewServeMux()
	mux.Handle("/{$}", handlers.Welcome())
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(pool))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/register", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(usersHandler.Register),
	}))
	mux.Handle("/login", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(usersHandler.Login),
	}))
	mux.Handle("/logout", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(usersHandler.Logout),
	}))
	mux.Handle("/users", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(usersHandler.List),
	}))
	mux.Handle("/profile", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(usersHandler.Profile),
	}))

	mux.Handle("/createEvent", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(eventsHandler.Create),
	}))
	mux.Handle("/events", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(eventsHandler.List),
	}))

	// The two order-summary routes are aliases of the single-event fetch;
	// one handler is bound to all three paths.
	getEvent := methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(eventsHandler.Get),
	})
	mux.Handle("/event/{id}", getEvent)
	mux.Handle("/event/{id}/ordersummary", getEvent)
	mux.Handle("/event/{id}/ordersummary/paymentsummary", getEvent)

	mux.Handle("/tickets", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(ticketsHandler.List),
		http.MethodPost: http.HandlerFunc(ticketsHandler.Create),
	}))
	mux.Handle("/tickets/user/{userId}", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(ticketsHandler.ListByUser),
	}))
	mux.Handle("/tickets/{id}", methodMux(map[string]http.Handler{
		http.MethodDelete: http.HandlerFunc(ticketsHandler.Delete),
	}))

	if store != nil {
		mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(store.Dir()))))
	}

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.CorrelationID(logger)(handler)
	handler = metrics.HTTPMiddleware(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
