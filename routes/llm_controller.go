package routes

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/hmi-lab/llm-study/app"
	"github.com/hmi-lab/llm-study/httpx"
	"github.com/hmi-lab/llm-study/llm"
	"github.com/hmi-lab/llm-study/log"
	"github.com/hmi-lab/llm-study/model"
)

// CallModel is the one call-and-log cycle: validate the references, rebuild
// the conversation from logged rows, call upstream, pad to the latency
// floor, and always persist one interaction_log row before responding.
func CallModel(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		request := model.ChatRequest{}
		err := render.DecodeJSON(r.Body, &request)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "gpt.parse_body", "Prompt is required.")
			return
		}
		if strings.TrimSpace(request.Prompt) == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "gpt.validate.prompt", "Prompt is required.")
			return
		}

		if ok, err := rowExists(app, r, `SELECT 1 FROM participant WHERE id = ?`, request.ParticipantID); err != nil {
			httpx.LogInternalError(w, "db.get_participant", err)
			return
		} else if !ok {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "gpt.validate.participant",
				"Participant not found. Please register first.")
			return
		}

		if ok, err := rowExists(app, r, `SELECT 1 FROM task WHERE id = ?`, request.TaskID); err != nil {
			httpx.LogInternalError(w, "db.get_task", err)
			return
		} else if !ok {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "gpt.validate.task",
				"Task not found. Please specify correct task.")
			return
		}

		// the cap is re-checked on every call, not only at registration
		var count int
		err = app.QueryRowContext(r.Context(), `SELECT COUNT(*) FROM participant`).Scan(&count)
		if err != nil {
			httpx.LogInternalError(w, "db.count_participants", err)
			return
		}
		if count >= app.MaxParticipants {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.InfoLevel, "gpt.capacity",
				"Maximum participant limit reached. No more participants allowed.")
			return
		}

		logs, err := loadConversation(app, r, request.ParticipantID, request.TaskID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_interaction_logs", err)
			return
		}
		messages := llm.BuildHistory(logs, request.Prompt, app.SystemPrompt)

		start := time.Now().UTC()
		completion, err := app.LLM.Complete(r.Context(), messages)
		elapsed := time.Since(start)

		response := completion.Content
		inputTokens, outputTokens := completion.InputTokens, completion.OutputTokens
		if err != nil {
			// soft failure: log the marker, keep the request successful
			log.Warnf("gpt.upstream: %s", err)
			response = llm.ErrorMarker(err)
			inputTokens, outputTokens = 0, 0
		}

		if floor := time.Duration(app.MinResponseMs) * time.Millisecond; elapsed < floor {
			time.Sleep(floor - elapsed)
		}

		logId := uuid.NewString()
		_, err = app.ExecContext(r.Context(), `
			INSERT INTO interaction_log (
				id, participant_id, task_id, prompt, response,
				request_time, response_time, duration_ms, model,
				input_tokens, output_tokens
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			logId,
			request.ParticipantID,
			request.TaskID,
			request.Prompt,
			response,
			start,
			start.Add(elapsed),
			elapsed.Milliseconds(),
			app.Model,
			inputTokens,
			outputTokens,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_interaction_log", err)
			return
		}

		render.JSON(w, r, model.ChatResponse{
			ID:         logId,
			Response:   response,
			DurationMs: time.Since(start).Milliseconds(),
		})
	}
}

func SubmitFeedback(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feedback := model.FeedbackRequest{}
		err := render.DecodeJSON(r.Body, &feedback)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "feedback.parse_body", "Feedback data is required.")
			return
		}

		// last write wins, re-rating overwrites
		res, err := app.ExecContext(r.Context(), `
			UPDATE interaction_log SET thumbs_up = ? WHERE id = ?`,
			feedback.ThumbsUp,
			feedback.LogID,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_feedback", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.update_feedback.verify", err)
			return
		}
		if n < 1 {
			httpx.LogStatusMsg(w, http.StatusNotFound, log.DebugLevel, "feedback.log", "Log entry not found.")
			return
		}

		render.JSON(w, r, map[string]any{
			"message":  "Feedback recorded successfully.",
			"logId":    feedback.LogID,
			"thumbsUp": feedback.ThumbsUp,
		})
	}
}

func rowExists(app app.App, r *http.Request, query string, args ...any) (bool, error) {
	var exists bool
	err := app.QueryRowContext(r.Context(), query, args...).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return exists, err
}

func loadConversation(app app.App, r *http.Request, participantId, taskId string) ([]model.InteractionLog, error) {
	rows, err := app.QueryContext(r.Context(), `
		SELECT prompt, response
		FROM interaction_log
		WHERE participant_id = ?
			AND task_id = ?
		ORDER BY request_time`,
		participantId,
		taskId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []model.InteractionLog{}
	for rows.Next() {
		l := model.InteractionLog{}
		err = rows.Scan(&l.Prompt, &l.Response)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
