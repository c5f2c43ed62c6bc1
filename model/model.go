package model

import "time"

// Likert scale answers from the registration questionnaire.
type UsageFrequency int

const (
	FrequencyNever UsageFrequency = iota + 1
	FrequencyRarely
	FrequencyOccasionally
	FrequencyRegularly
	FrequencyDaily
)

type PromptConfidence int

const (
	ConfidenceNone PromptConfidence = iota + 1
	ConfidenceSlight
	ConfidenceModerate
	ConfidenceHigh
	ConfidenceExpert
)

type Participant struct {
	ID                       string           `json:"id"`
	Number                   int              `json:"participantNumber"`
	FirstName                string           `json:"firstName"`
	LastName                 string           `json:"lastName"`
	Email                    string           `json:"email"`
	MatriculationNumber      int64            `json:"matriculationNumber"`
	Age                      int              `json:"age"`
	Gender                   string           `json:"gender"`
	HasLLMExperience         bool             `json:"hasPreviousLLMExperience"`
	LLMUsageFrequency        UsageFrequency   `json:"llmUsageFrequency"`
	PromptConfidence         PromptConfidence `json:"promptConfidence"`
	HasProgrammingExperience bool             `json:"hasProgrammingExperience"`
	CreatedAt                time.Time        `json:"createdAt"`
}

// Task is one unit of study work. The catalog is seeded by migration and
// read-only afterwards; Type is one of Labeling, Analytical, Creative,
// Procedural.
type Task struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Data        string `json:"data,omitempty"`
}

// InteractionLog is one prompt/response exchange with the upstream model.
// Rows are inserted on every call, rated later via /feedback (re-rating
// overwrites), and never deleted.
type InteractionLog struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participantId"`
	TaskID        string    `json:"taskId"`
	Prompt        string    `json:"prompt"`
	Response      string    `json:"response"`
	RequestTime   time.Time `json:"requestTime"`
	ResponseTime  time.Time `json:"responseTime"`
	DurationMs    int64     `json:"durationMs"`
	Model         string    `json:"model"`
	InputTokens   int       `json:"inputTokens"`
	OutputTokens  int       `json:"outputTokens"`
	ThumbsUp      *bool     `json:"thumbsUp"`
}

type TaskSurvey struct {
	ID                  string  `json:"id,omitempty"`
	ParticipantID       string  `json:"participantId"`
	TaskType            string  `json:"taskType"`
	OutputSatisfaction  int     `json:"finalOutputSatisfaction"`
	OutputAccuracy      int     `json:"llmOutputAccuracy"`
	PromptRevisions     int     `json:"requiredPromptRevisions"`
	OutputSatisfactory  bool    `json:"finalOutputSatisfactory"`
	WouldUseInRealWorld bool    `json:"wouldUseOutputInRealWorld"`
	Remarks             string  `json:"poorOutputRemarks"`
	RawAnswers          string  `json:"surveyJson,omitempty"`
	DurationSeconds     float64 `json:"surveyDuration"`
}

type FinalSurvey struct {
	ID                      string  `json:"id,omitempty"`
	ParticipantID           string  `json:"participantId"`
	OverallTaskThoughts     string  `json:"overallTaskThoughts"`
	ExperienceDescription   string  `json:"experienceDescription"`
	HelpfulUnhelpfulMoments string  `json:"helpfulUnhelpfulMoments"`
	ConfusingTasks          string  `json:"confusingTasks"`
	ExpectationVariance     string  `json:"expectationVariance"`
	SuggestedImprovements   string  `json:"suggestedImprovements"`
	SurprisingBehavior      string  `json:"surprisingBehavior"`
	AdditionalComments      string  `json:"additionalComments"`
	FeedbackProcessRating   *int    `json:"feedbackProcessRating"`
	FoundFeedbackRepetitive *bool   `json:"foundFeedbackRepetitive"`
	FoundFeedbackHelpful    *bool   `json:"foundFeedbackHelpful"`
	SurveyDurationSeconds   float64 `json:"surveyDuration"`
	TotalStudySeconds       float64 `json:"totalStudyTime"`
	RawAnswers              string  `json:"surveyJson,omitempty"`
}

type RegisterRequest struct {
	FirstName                string           `json:"firstName"`
	LastName                 string           `json:"lastName"`
	Email                    string           `json:"email"`
	MatriculationNumber      int64            `json:"matriculationNumber"`
	Age                      int              `json:"age"`
	Gender                   string           `json:"gender"`
	HasLLMExperience         bool             `json:"hasPreviousLLMExperience"`
	LLMUsageFrequency        UsageFrequency   `json:"llmUsageFrequency"`
	PromptConfidence         PromptConfidence `json:"promptConfidence"`
	HasProgrammingExperience bool             `json:"hasProgrammingExperience"`
}

type RegisterResponse struct {
	ParticipantID     string   `json:"participantId"`
	ParticipantNumber int      `json:"participantNumber"`
	TaskSequence      []string `json:"taskSequence"`
	TaskList          []Task   `json:"taskList"`
}

type ChatRequest struct {
	ParticipantID string `json:"participantId"`
	Prompt        string `json:"prompt"`
	TaskID        string `json:"taskId"`
}

type ChatResponse struct {
	ID         string `json:"id"`
	Response   string `json:"response"`
	DurationMs int64  `json:"durationMs"`
}

type FeedbackRequest struct {
	LogID    string `json:"logId"`
	ThumbsUp bool   `json:"thumbsUp"`
}
