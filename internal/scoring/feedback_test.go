package scoring

import (
	"math/rand"
	"testing"

	"github.com/Nik-Maltcev/careeros-sub000/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierForUnansweredAlwaysWeak(t *testing.T) {
	record := skippedRecord()
	// Even with fabricated strong signals the tier stays weak.
	signals := Signals{Percentage: 90, IsDetailed: true, IsGood: true, IsBasic: true}
	assert.Equal(t, TierWeak, TierFor(record, signals))
}

func TestTierOrdering(t *testing.T) {
	assert.True(t, TierDetailed > TierGood)
	assert.True(t, TierGood > TierBasic)
	assert.True(t, TierBasic > TierWeak)
}

func TestFeedbackScoresFollowTierOrder(t *testing.T) {
	g := &FeedbackGenerator{}

	detailed := g.ForRecord(dto.AnswerRecord{
		Question:        "q",
		Response:        richFrontendAnswer,
		DurationSeconds: 80,
	}, 1, "frontend")

	basic := g.ForRecord(dto.AnswerRecord{
		Question:        "q",
		Response:        "React is a library for building interfaces with components.",
		DurationSeconds: 20,
	}, 2, "frontend")

	weak := g.ForRecord(skippedRecord(), 3, "frontend")

	assert.Greater(t, detailed.Score, basic.Score)
	assert.Greater(t, basic.Score, weak.Score)
	assert.LessOrEqual(t, weak.Score, 3.0)
	assert.GreaterOrEqual(t, weak.Score, 1.0)
}

func TestFeedbackEntriesComplete(t *testing.T) {
	g := &FeedbackGenerator{}
	for _, record := range []dto.AnswerRecord{
		skippedRecord(),
		answeredRecord(60),
		{Question: "q", Response: "short", DurationSeconds: 30},
	} {
		fb := g.ForRecord(record, 1, "backend")
		assert.NotEmpty(t, fb.Feedback)
		assert.NotEmpty(t, fb.Strengths)
		assert.NotEmpty(t, fb.Improvements)
		assert.GreaterOrEqual(t, fb.Score, 1.0)
		assert.LessOrEqual(t, fb.Score, 10.0)
	}
}

func TestForSessionPreservesOrder(t *testing.T) {
	g := &FeedbackGenerator{}
	records := []dto.AnswerRecord{
		{Question: "first", Response: "", DurationSeconds: 0},
		{Question: "second", Response: richFrontendAnswer, DurationSeconds: 70},
		{Question: "third", Response: "short", DurationSeconds: 40},
	}

	feedback := g.ForSession(records, "frontend")
	require.Len(t, feedback, len(records))
	for i, fb := range feedback {
		assert.Equal(t, i+1, fb.QuestionID)
		assert.Equal(t, records[i].Question, fb.QuestionText)
	}
}

func TestJitterStaysInsideBand(t *testing.T) {
	g := &FeedbackGenerator{Jitter: rand.New(rand.NewSource(42))}
	record := dto.AnswerRecord{Question: "q", Response: richFrontendAnswer, DurationSeconds: 80}

	for i := 0; i < 50; i++ {
		fb := g.ForRecord(record, 1, "frontend")
		assert.GreaterOrEqual(t, fb.Score, 8.0)
		assert.LessOrEqual(t, fb.Score, 10.0)
	}
}

func TestNoJitterIsDeterministic(t *testing.T) {
	g := &FeedbackGenerator{}
	record := answeredRecord(60)

	first := g.ForRecord(record, 1, "backend")
	second := g.ForRecord(record, 1, "backend")
	assert.Equal(t, first, second)
}
