package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hmi-lab/llm-study/app"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	// the study frontend is served from another origin
	root.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	root.Get("/online-status", OnlineStatus())
	root.Post("/register", RegisterParticipant(app))
	root.Post("/gpt", CallModel(app))
	root.Post("/feedback", SubmitFeedback(app))
	root.Route("/survey", func(r chi.Router) {
		r.Post("/task", SubmitTaskSurvey(app))
		r.Post("/final", SubmitFinalSurvey(app))
	})

	return root
}
