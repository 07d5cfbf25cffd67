package service

import (
	"strings"
	"testing"

	"github.com/Nik-Maltcev/careeros-sub000/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRecords = []dto.AnswerRecord{
	{Question: "What is an index?", Response: "A structure speeding up lookups.", DurationSeconds: 42},
	{Question: "Explain sharding.", Response: "", DurationSeconds: 0},
}

const validAssessmentJSON = `{
	"overall_score": 7.4,
	"criteria_scores": [
		{"name": "Technical Knowledge", "score": 8, "description": "Solid fundamentals."},
		{"name": "Practical Experience", "score": 7, "description": "Some hands-on detail."},
		{"name": "Communication Skills", "score": 7, "description": "Clear delivery."},
		{"name": "Problem Solving", "score": 6, "description": "Reasoning mostly implicit."}
	],
	"strengths": ["Clear definitions"],
	"improvements": ["More examples"],
	"roadmap": [{"title": "Go deeper", "description": "Study internals", "timeframe": "1 month", "resources": ["docs"]}]
}`

func TestBuildSessionPromptEmbedsTranscript(t *testing.T) {
	prompt := BuildSessionPrompt(sampleRecords, "backend")

	assert.Contains(t, prompt, "backend specialty")
	assert.Contains(t, prompt, "Question 1: What is an index?")
	assert.Contains(t, prompt, "(42 seconds)")
	// Skipped questions appear as the sentinel, never as blank lines.
	assert.Contains(t, prompt, "No answer")
	assert.Contains(t, prompt, "overall_score")
}

func TestBuildQuestionPromptSentinel(t *testing.T) {
	prompt := BuildQuestionPrompt(sampleRecords[1], "")
	assert.Contains(t, prompt, "No answer")
	assert.Contains(t, prompt, "software engineering")
}

func TestParseSessionAssessmentValid(t *testing.T) {
	assessment, err := ParseSessionAssessment(validAssessmentJSON)
	require.NoError(t, err)

	assert.Equal(t, 7.4, assessment.OverallScore)
	require.Len(t, assessment.CriteriaScores, 4)
	assert.Equal(t, "Technical Knowledge", assessment.CriteriaScores[0].Name)
	assert.NotEmpty(t, assessment.Strengths)
}

func TestParseSessionAssessmentFenced(t *testing.T) {
	raw := "```json\n" + validAssessmentJSON + "\n```"
	assessment, err := ParseSessionAssessment(raw)
	require.NoError(t, err)
	assert.Equal(t, 7.4, assessment.OverallScore)
}

func TestParseSessionAssessmentMissingOverallScore(t *testing.T) {
	_, err := ParseSessionAssessment(`{"criteria_scores": []}`)
	assert.ErrorContains(t, err, "overall_score")
}

func TestParseSessionAssessmentCriteriaNotList(t *testing.T) {
	_, err := ParseSessionAssessment(`{"overall_score": 7, "criteria_scores": "oops"}`)
	assert.ErrorContains(t, err, "criteria_scores")
}

func TestParseSessionAssessmentNotJSON(t *testing.T) {
	_, err := ParseSessionAssessment("I cannot evaluate this interview.")
	assert.Error(t, err)
}

func TestParseSessionAssessmentNormalizesCriteria(t *testing.T) {
	raw := `{
		"overall_score": 12,
		"criteria_scores": [
			{"name": "technical knowledge", "score": 15, "description": "x"}
		],
		"strengths": [],
		"improvements": []
	}`
	assessment, err := ParseSessionAssessment(raw)
	require.NoError(t, err)

	assert.Equal(t, 10.0, assessment.OverallScore)
	require.Len(t, assessment.CriteriaScores, 4)
	for _, c := range assessment.CriteriaScores {
		assert.GreaterOrEqual(t, c.Score, 1.0)
		assert.LessOrEqual(t, c.Score, 10.0)
		assert.NotEmpty(t, c.Name)
	}
	assert.NotEmpty(t, assessment.Strengths)
	assert.NotEmpty(t, assessment.Improvements)
}

func TestParseQuestionFeedbackValid(t *testing.T) {
	fb, err := ParseQuestionFeedback(`{"score": 6, "feedback": "Decent answer.", "strengths": ["clear"], "improvements": ["examples"]}`)
	require.NoError(t, err)
	assert.Equal(t, 6.0, fb.Score)
	assert.Equal(t, "Decent answer.", fb.Feedback)
}

func TestParseQuestionFeedbackMissingFields(t *testing.T) {
	_, err := ParseQuestionFeedback(`{"feedback": "no score here"}`)
	assert.ErrorContains(t, err, "score")

	_, err = ParseQuestionFeedback(`{"score": 6}`)
	assert.ErrorContains(t, err, "critique")
}

func TestBuildSessionPromptMirrorsHeuristicBias(t *testing.T) {
	prompt := BuildSessionPrompt(sampleRecords, "backend")
	// The provider instruction must penalize unanswered questions the same
	// way the heuristic staircase does, or the two paths drift apart.
	assert.True(t, strings.Contains(prompt, "Unanswered"))
}
