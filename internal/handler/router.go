package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/neurofolio/neurofolio/internal/handler/api"
	"github.com/neurofolio/neurofolio/internal/service/ai"
)

// NewRouter wires the reference backend routes. aiSvc may be nil; the
// handlers then answer with the canned responder.
func NewRouter(aiSvc api.AIService) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	apiHandler := api.New(aiSvc, ai.Canned{})

	r.Route("/api", func(apiRouter chi.Router) {
		apiHandler.RegisterRoutes(apiRouter)
	})

	return r
}

// cors allows the browser frontend to call the backend from another origin.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
