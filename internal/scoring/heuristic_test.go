package scoring

import (
	"testing"

	"github.com/Nik-Maltcev/careeros-sub000/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answeredRecord(duration float64) dto.AnswerRecord {
	return dto.AnswerRecord{
		Question:        "Explain how you design a database index.",
		Response:        "I used a composite index in my project because the query filtered on two columns. For example, lookups dropped from seconds to milliseconds.",
		DurationSeconds: duration,
	}
}

func skippedRecord() dto.AnswerRecord {
	return dto.AnswerRecord{
		Question:        "Explain how you design a database index.",
		Response:        NotAnsweredSentinel,
		DurationSeconds: 0,
	}
}

func TestIsValidAnswer(t *testing.T) {
	assert.True(t, IsValidAnswer(answeredRecord(60)))
	assert.False(t, IsValidAnswer(skippedRecord()))
	assert.False(t, IsValidAnswer(dto.AnswerRecord{Question: "q", Response: "", DurationSeconds: 30}))

	// An accidental tap: real text but below the minimum duration.
	tap := answeredRecord(2)
	assert.False(t, IsValidAnswer(tap))
}

func TestComputeStatsBuckets(t *testing.T) {
	records := []dto.AnswerRecord{
		answeredRecord(10),  // very short
		answeredRecord(20),  // short
		answeredRecord(60),  // optimal
		answeredRecord(120), // long
		skippedRecord(),
	}
	stats := ComputeStats(records)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 4, stats.Answered)
	assert.InDelta(t, 0.8, stats.AnswerRate, 1e-9)
	assert.Equal(t, 1, stats.VeryShort)
	assert.Equal(t, 1, stats.Short)
	assert.Equal(t, 1, stats.Optimal)
	assert.Equal(t, 1, stats.Long)
	assert.InDelta(t, 52.5, stats.AverageDuration, 1e-9)
}

func TestOverallScoreZeroAnswerFloor(t *testing.T) {
	records := []dto.AnswerRecord{skippedRecord(), skippedRecord(), skippedRecord()}
	stats := ComputeStats(records)

	assert.Equal(t, 1.0, OverallScore(stats))
}

func TestOverallScoreTopTierScenario(t *testing.T) {
	// 10 valid, detailed answers, each held for well over 90 seconds.
	var records []dto.AnswerRecord
	for i := 0; i < 10; i++ {
		records = append(records, answeredRecord(95))
	}
	stats := ComputeStats(records)

	score := OverallScore(stats)
	assert.GreaterOrEqual(t, score, 8.0)
	assert.LessOrEqual(t, score, 10.0)
}

func TestOverallScoreMonotonicInAnswerRate(t *testing.T) {
	// Same answer quality throughout; only the number of valid answers grows.
	prev := 0.0
	for answered := 0; answered <= 10; answered++ {
		var records []dto.AnswerRecord
		for i := 0; i < answered; i++ {
			records = append(records, answeredRecord(60))
		}
		for i := answered; i < 10; i++ {
			records = append(records, skippedRecord())
		}

		score := OverallScore(ComputeStats(records))
		assert.GreaterOrEqual(t, score, prev, "score dropped when answer rate rose to %d/10", answered)
		prev = score
	}
}

func TestOverallScoreRushedPenalty(t *testing.T) {
	var rushed, paced []dto.AnswerRecord
	for i := 0; i < 10; i++ {
		rushed = append(rushed, answeredRecord(8))
		paced = append(paced, answeredRecord(60))
	}

	assert.Less(t, OverallScore(ComputeStats(rushed)), OverallScore(ComputeStats(paced)))
}

func TestCriteriaScoresShape(t *testing.T) {
	var records []dto.AnswerRecord
	for i := 0; i < 5; i++ {
		records = append(records, answeredRecord(100))
	}
	stats := ComputeStats(records)
	overall := OverallScore(stats)

	criteria := CriteriaScores(overall, stats)
	require.Len(t, criteria, 4)

	names := []string{"Technical Knowledge", "Practical Experience", "Communication Skills", "Problem Solving"}
	for i, c := range criteria {
		assert.Equal(t, names[i], c.Name)
		assert.GreaterOrEqual(t, c.Score, 1.0)
		assert.LessOrEqual(t, c.Score, 10.0)
		assert.NotEmpty(t, c.Description)
	}

	// Criteria are discounted and bonused independently, not copies of the
	// overall score.
	allEqual := true
	for _, c := range criteria {
		if c.Score != overall {
			allEqual = false
		}
	}
	assert.False(t, allEqual)
}

func TestStrengthsNeverEmpty(t *testing.T) {
	empty := ComputeStats([]dto.AnswerRecord{skippedRecord(), skippedRecord()})
	strengths := StrengthsFor(empty)
	require.NotEmpty(t, strengths)
	assert.Contains(t, strengths[0], "Completed")

	assert.NotEmpty(t, ImprovementsFor(empty))
}

func TestRoadmapBounds(t *testing.T) {
	low := ComputeStats([]dto.AnswerRecord{answeredRecord(8), skippedRecord(), skippedRecord()})
	roadmap := RoadmapFor(low, "backend")
	require.NotEmpty(t, roadmap)
	assert.LessOrEqual(t, len(roadmap), 2)
	for _, goal := range roadmap {
		assert.NotEmpty(t, goal.Title)
		assert.NotEmpty(t, goal.Timeframe)
		assert.NotEmpty(t, goal.Resources)
	}
}

func TestEvaluateSessionDeterministic(t *testing.T) {
	records := []dto.AnswerRecord{
		answeredRecord(60),
		answeredRecord(12),
		skippedRecord(),
		answeredRecord(120),
	}

	first := EvaluateSession(records, "backend")
	second := EvaluateSession(records, "backend")
	assert.Equal(t, first, second)
}

func TestEvaluateSessionZeroAnswers(t *testing.T) {
	records := []dto.AnswerRecord{skippedRecord(), skippedRecord()}
	assessment := EvaluateSession(records, "frontend")

	assert.Equal(t, 1.0, assessment.OverallScore)
	assert.Len(t, assessment.CriteriaScores, 4)
	assert.NotEmpty(t, assessment.Strengths)
	assert.NotEmpty(t, assessment.Improvements)
	assert.NotEmpty(t, assessment.Roadmap)
}
