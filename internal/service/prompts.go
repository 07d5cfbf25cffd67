package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Nik-Maltcev/careeros-sub000/internal/dto"
	"github.com/Nik-Maltcev/careeros-sub000/internal/scoring"
	"github.com/Nik-Maltcev/careeros-sub000/internal/util"
	"github.com/tidwall/gjson"
)

// SessionSystemPrompt frames every session-level evaluation call.
const SessionSystemPrompt = "You are a strict technical interviewer scoring a candidate's recorded interview answers."

// BuildSessionPrompt embeds the full transcript and the scoring rules. The
// rules deliberately mirror the heuristic scorer's bias against unanswered
// questions so provider-backed and fallback results stay roughly consistent
// for the same session.
func BuildSessionPrompt(records []dto.AnswerRecord, specialty string) string {
	var sb strings.Builder

	specialty = strings.TrimSpace(specialty)
	if specialty == "" {
		specialty = "software engineering"
	}

	fmt.Fprintf(&sb, "Evaluate an interview for the %s specialty. The candidate answered %d questions.\n\n", specialty, len(records))

	for i, r := range records {
		answer := strings.TrimSpace(r.Response)
		if answer == "" {
			answer = scoring.NotAnsweredSentinel
		}
		fmt.Fprintf(&sb, "Question %d: %s\nAnswer (%.0f seconds): %s\n\n", i+1, r.Question, r.DurationSeconds, answer)
	}

	sb.WriteString(`Scoring rules, apply them strictly:
- Unanswered or skipped questions must pull the overall score down hard. A session with most questions unanswered cannot score above 4.
- Reward concrete examples, causal explanations, and comparisons over recited definitions.
- Scores are 1-10. Criteria scores must each have their own justification, not a copy of the overall reasoning.

Return your answer STRICTLY in JSON format with this schema:
{
  "overall_score": <number 1-10, one decimal>,
  "criteria_scores": [
    {"name": "Technical Knowledge", "score": <number 1-10>, "description": "<justification>"},
    {"name": "Practical Experience", "score": <number 1-10>, "description": "<justification>"},
    {"name": "Communication Skills", "score": <number 1-10>, "description": "<justification>"},
    {"name": "Problem Solving", "score": <number 1-10>, "description": "<justification>"}
  ],
  "strengths": ["<strength>", ...],
  "improvements": ["<improvement>", ...],
  "roadmap": [
    {"title": "<goal>", "description": "<what to do>", "timeframe": "<e.g. 2-4 weeks>", "resources": ["<resource>", ...]}
  ]
}

Return ONLY the JSON object, no markdown, no explanation.`)

	return sb.String()
}

// BuildQuestionPrompt requests a critique of a single answer.
func BuildQuestionPrompt(record dto.AnswerRecord, specialty string) string {
	answer := strings.TrimSpace(record.Response)
	if answer == "" {
		answer = scoring.NotAnsweredSentinel
	}
	specialty = strings.TrimSpace(specialty)
	if specialty == "" {
		specialty = "software engineering"
	}

	return fmt.Sprintf(`You are reviewing one answer from a %s interview.

Question: %s
Answer (%.0f seconds): %s

An unanswered question scores 1-2. Return STRICTLY this JSON object and nothing else:
{
  "score": <number 1-10>,
  "feedback": "<2-3 sentence critique>",
  "strengths": ["<strength>", ...],
  "improvements": ["<improvement>", ...]
}`, specialty, record.Question, record.DurationSeconds, answer)
}

var criterionNames = []string{
	"Technical Knowledge",
	"Practical Experience",
	"Communication Skills",
	"Problem Solving",
}

// ParseSessionAssessment extracts and validates a session assessment from raw
// model output. The attempt fails when no JSON object can be extracted, when
// overall_score is missing, or when criteria_scores is missing or not a list.
// A structurally valid payload is then normalized to exactly four criteria in
// fixed order.
func ParseSessionAssessment(raw string) (*dto.SessionAssessment, error) {
	text, err := util.ExtractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("extract assessment JSON: %w", err)
	}

	if !gjson.Get(text, "overall_score").Exists() {
		return nil, fmt.Errorf("assessment missing overall_score")
	}
	if criteria := gjson.Get(text, "criteria_scores"); !criteria.IsArray() {
		return nil, fmt.Errorf("assessment missing criteria_scores list")
	}

	var assessment dto.SessionAssessment
	if err := json.Unmarshal([]byte(text), &assessment); err != nil {
		return nil, fmt.Errorf("unmarshal assessment: %w", err)
	}

	normalizeAssessment(&assessment)
	return &assessment, nil
}

// normalizeAssessment pins the contract the orchestrator promises: overall
// score in [1,10] with one decimal, exactly four criteria in fixed order, and
// non-empty strengths/improvements.
func normalizeAssessment(a *dto.SessionAssessment) {
	a.OverallScore = roundScore(clampScore(a.OverallScore))

	byName := make(map[string]dto.EvaluationCriterion, len(a.CriteriaScores))
	for _, c := range a.CriteriaScores {
		byName[strings.ToLower(strings.TrimSpace(c.Name))] = c
	}

	normalized := make([]dto.EvaluationCriterion, 0, len(criterionNames))
	for i, name := range criterionNames {
		c, ok := byName[strings.ToLower(name)]
		if !ok {
			if i < len(a.CriteriaScores) {
				c = a.CriteriaScores[i]
			} else {
				c = dto.EvaluationCriterion{Description: "Derived from the overall assessment.", Score: a.OverallScore}
			}
		}
		c.Name = name
		c.Score = roundScore(clampScore(c.Score))
		normalized = append(normalized, c)
	}
	a.CriteriaScores = normalized

	if len(a.Strengths) == 0 {
		a.Strengths = []string{"Completed the interview session"}
	}
	if len(a.Improvements) == 0 {
		a.Improvements = []string{"Keep practicing with full mock interviews"}
	}
}

// ParseQuestionFeedback extracts and validates per-question feedback. The
// score and feedback fields are required.
func ParseQuestionFeedback(raw string) (*dto.QuestionFeedback, error) {
	text, err := util.ExtractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("extract feedback JSON: %w", err)
	}

	if !gjson.Get(text, "score").Exists() {
		return nil, fmt.Errorf("feedback missing score")
	}
	if gjson.Get(text, "feedback").String() == "" {
		return nil, fmt.Errorf("feedback missing critique text")
	}

	var fb dto.QuestionFeedback
	if err := json.Unmarshal([]byte(text), &fb); err != nil {
		return nil, fmt.Errorf("unmarshal feedback: %w", err)
	}
	fb.Score = roundScore(clampScore(fb.Score))
	return &fb, nil
}

func clampScore(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

func roundScore(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
