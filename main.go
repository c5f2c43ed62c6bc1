package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/hmi-lab/llm-study/app"
	"github.com/hmi-lab/llm-study/config"
	"github.com/hmi-lab/llm-study/database"
	"github.com/hmi-lab/llm-study/llm"
	"github.com/hmi-lab/llm-study/log"
	"github.com/hmi-lab/llm-study/routes"
	"github.com/hmi-lab/llm-study/study"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	assigner, err := study.NewAssigner(cfg.Sequences)
	if err != nil {
		log.Fatal("main.assigner:", err)
	}

	app := app.App{
		DB:       db,
		Config:   cfg,
		LLM:      llm.NewClient(cfg),
		Assigner: assigner,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:        cfg.Addr,
		Handler:     handler,
		IdleTimeout: time.Minute,
		ReadTimeout: 10 * time.Second,
		// must outlast the upstream call plus the latency floor
		WriteTimeout: cfg.LLMTimeout + 30*time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
