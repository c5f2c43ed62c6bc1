package routes

import (
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

func SubmitTaskSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey := model.TaskSurvey{}
		err := render.DecodeJSON(r.Body, &survey)
		if err != nil || strings.TrimSpace(survey.ParticipantID) == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "survey.task.parse_body", "Survey data is required.")
			return
		}

		surveyId := uuid.NewString()
		_, err = app.ExecContext(r.Context(), `
			INSERT INTO task_survey (
				id, participant_id, task_type,
				output_satisfaction, output_accuracy, prompt_revisions,
				output_satisfactory, would_use_in_real_world,
				remarks, raw_answers, duration_seconds
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			surveyId,
			survey.ParticipantID,
			survey.TaskType,
			survey.OutputSatisfaction,
			survey.OutputAccuracy,
			survey.PromptRevisions,
			survey.OutputSatisfactory,
			survey.WouldUseInRealWorld,
			survey.Remarks,
			survey.RawAnswers,
			survey.DurationSeconds,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_task_survey", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"id": surveyId,
		})
	}
}

func SubmitFinalSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey := model.FinalSurvey{}
		err := render.DecodeJSON(r.Body, &survey)
		if err != nil || strings.TrimSpace(survey.ParticipantID) == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "survey.final.parse_body", "Survey data is required.")
			return
		}

		surveyId := uuid.NewString()
		_, err = app.ExecContext(r.Context(), `
			INSERT INTO final_survey (
				id, participant_id,
				overall_task_thoughts, experience_description,
				helpful_unhelpful_moments, confusing_tasks,
				expectation_variance, suggested_improvements,
				surprising_behavior, additional_comments,
				feedback_process_rating, found_feedback_repetitive,
				found_feedback_helpful, survey_duration_seconds,
				total_study_seconds, raw_answers
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			surveyId,
			survey.ParticipantID,
			survey.OverallTaskThoughts,
			survey.ExperienceDescription,
			survey.HelpfulUnhelpfulMoments,
			survey.ConfusingTasks,
			survey.ExpectationVariance,
			survey.SuggestedImprovements,
			survey.SurprisingBehavior,
			survey.AdditionalComments,
			survey.FeedbackProcessRating,
			survey.FoundFeedbackRepetitive,
			survey.FoundFeedbackHelpful,
			survey.SurveyDurationSeconds,
			survey.TotalStudySeconds,
			survey.RawAnswers,
		)
		if err != nil {
			// one final survey per participant
			var sqliteErr sqlite3.Error
			if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
				httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "survey.final.conflict",
					"Final survey already submitted for this participant.")
				return
			}
			httpx.LogInternalError(w, "db.insert_final_survey", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"id": surveyId,
		})
	}
}
