package routes

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/hmi-lab/llm-study/app"
	"github.com/hmi-lab/llm-study/httpx"
	"github.com/hmi-lab/llm-study/log"
	"github.com/hmi-lab/llm-study/model"
	"github.com/mattn/go-sqlite3"
)

func OnlineStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "API is online & accessible.")
	}
}

func RegisterParticipant(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		request := model.RegisterRequest{}
		err := render.DecodeJSON(r.Body, &request)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "register.parse_body", "Registration data is required.")
			return
		}
		if strings.TrimSpace(request.Email) == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "register.validate", "Email is required.")
			return
		}

		var exists bool
		err = app.QueryRowContext(r.Context(), `
			SELECT 1 FROM participant WHERE email = ?`,
			request.Email,
		).Scan(&exists)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			httpx.LogInternalError(w, "db.get_participant_by_email", err)
			return
		}
		if exists {
			httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "register.conflict", "Participant already exists")
			return
		}

		var count int
		err = app.QueryRowContext(r.Context(), `SELECT COUNT(*) FROM participant`).Scan(&count)
		if err != nil {
			httpx.LogInternalError(w, "db.count_participants", err)
			return
		}
		if count >= app.MaxParticipants {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.InfoLevel, "register.capacity",
				"Maximum participant limit reached. No more participants allowed.")
			return
		}

		participantId := uuid.NewString()
		var number int
		err = app.QueryRowContext(r.Context(), `
			INSERT INTO participant (
				id, first_name, last_name, email, matriculation_number, age, gender,
				has_llm_experience, llm_usage_frequency, prompt_confidence,
				has_programming_experience
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING number`,
			participantId,
			request.FirstName,
			request.LastName,
			request.Email,
			request.MatriculationNumber,
			request.Age,
			request.Gender,
			request.HasLLMExperience,
			request.LLMUsageFrequency,
			request.PromptConfidence,
			request.HasProgrammingExperience,
		).Scan(&number)
		if err != nil {
			// unique email constraint backstops the check above
			var sqliteErr sqlite3.Error
			if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
				httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "register.conflict", "Participant already exists")
				return
			}
			httpx.LogInternalError(w, "db.insert_participant", err)
			return
		}

		catalog, err := loadTaskCatalog(app, r)
		if err != nil {
			httpx.LogInternalError(w, "db.get_tasks", err)
			return
		}

		tasks, sequence := app.Assigner.Assign(number, catalog)

		log.Infof("registered participant %d (%s), ordering %v", number, participantId, sequence)
		render.JSON(w, r, model.RegisterResponse{
			ParticipantID:     participantId,
			ParticipantNumber: number,
			TaskSequence:      sequence,
			TaskList:          tasks,
		})
	}
}

func loadTaskCatalog(app app.App, r *http.Request) ([]model.Task, error) {
	rows, err := app.QueryContext(r.Context(), `
		SELECT id, type, name, description, data
		FROM task
		ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	catalog := []model.Task{}
	for rows.Next() {
		t := model.Task{}
		err = rows.Scan(&t.ID, &t.Type, &t.Name, &t.Description, &t.Data)
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, t)
	}
	return catalog, rows.Err()
}
