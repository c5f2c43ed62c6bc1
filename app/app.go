package app

import (
	"database/sql"

	"github.com/hmi-lab/llm-study/config"
	"github.com/hmi-lab/llm-study/llm"
	"github.com/hmi-lab/llm-study/study"
)

type App struct {
	*sql.DB
	config.Config
	LLM      llm.Client
	Assigner *study.Assigner
}
