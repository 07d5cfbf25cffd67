package dto

// AnswerRecord is one question/answer pair submitted for evaluation.
// Response may be empty or the "No answer" sentinel when the candidate skipped
// the question; DurationSeconds is 0 in that case.
type AnswerRecord struct {
	Question        string  `json:"question" validate:"required"`
	Response        string  `json:"response"`
	DurationSeconds float64 `json:"duration_seconds" validate:"gte=0"`
}

// EvaluateRequest is the inbound body for POST /evaluate.
type EvaluateRequest struct {
	Responses []AnswerRecord `json:"responses" validate:"required,min=1,dive"`
	Specialty string         `json:"specialty"`
}

// EvaluationCriterion is one named axis of assessment.
type EvaluationCriterion struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// QuestionFeedback carries per-answer feedback. QuestionID is 1-based and
// matches the position of the record in the submitted list.
type QuestionFeedback struct {
	QuestionID   int      `json:"question_id"`
	QuestionText string   `json:"question_text"`
	Feedback     string   `json:"feedback"`
	Score        float64  `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// RoadmapGoal is one development-roadmap entry.
type RoadmapGoal struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Timeframe   string   `json:"timeframe"`
	Resources   []string `json:"resources"`
}

// Result sources.
const (
	SourceProvider  = "provider"
	SourceHeuristic = "heuristic"
)

// EvaluationResult is the pipeline's sole output type.
type EvaluationResult struct {
	OverallScore     float64               `json:"overall_score"`
	CriteriaScores   []EvaluationCriterion `json:"criteria_scores"`
	Strengths        []string              `json:"strengths"`
	Improvements     []string              `json:"improvements"`
	Roadmap          []RoadmapGoal         `json:"roadmap"`
	QuestionFeedback []QuestionFeedback    `json:"question_feedback"`
	Source           string                `json:"source"`
}

// SessionAssessment is the session-level payload a provider backend returns
// before per-question feedback is merged in.
type SessionAssessment struct {
	OverallScore   float64               `json:"overall_score"`
	CriteriaScores []EvaluationCriterion `json:"criteria_scores"`
	Strengths      []string              `json:"strengths"`
	Improvements   []string              `json:"improvements"`
	Roadmap        []RoadmapGoal         `json:"roadmap"`
}

// TranscriptionResult is the boundary shape of the transcription collaborator.
// Exactly one of Transcription or Fallback is set.
type TranscriptionResult struct {
	Transcription string `json:"transcription,omitempty"`
	Fallback      string `json:"fallback,omitempty"`
}
