package scoring

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/Nik-Maltcev/careeros-sub000/internal/dto"
)

// Tier buckets a single answer. Tiers are totally ordered: an answer never
// lands in a lower tier than one with strictly weaker signals.
type Tier int

const (
	TierWeak Tier = iota
	TierBasic
	TierGood
	TierDetailed
)

func (t Tier) String() string {
	switch t {
	case TierDetailed:
		return "detailed"
	case TierGood:
		return "good"
	case TierBasic:
		return "basic"
	default:
		return "weak"
	}
}

// Score bands per tier. The default score is the band midpoint; an optional
// seeded jitter source may move it inside the band, never outside, and never
// feeds back into the session-level numbers.
var tierBands = map[Tier]struct{ lo, hi float64 }{
	TierDetailed: {8, 10},
	TierGood:     {6, 8},
	TierBasic:    {4, 6},
	TierWeak:     {1, 3},
}

// TierFor maps an answer's signals to its feedback tier. An unanswered record
// is always weak regardless of other signals.
func TierFor(record dto.AnswerRecord, signals Signals) Tier {
	if !IsValidAnswer(record) {
		return TierWeak
	}
	switch {
	case signals.IsDetailed:
		return TierDetailed
	case signals.IsGood:
		return TierGood
	case signals.IsBasic:
		return TierBasic
	default:
		return TierWeak
	}
}

// FeedbackGenerator produces per-question feedback on the heuristic path.
// A nil Jitter keeps scores at the band midpoint, which the tests rely on.
type FeedbackGenerator struct {
	Jitter *rand.Rand
}

func (g *FeedbackGenerator) score(tier Tier) float64 {
	band := tierBands[tier]
	if g.Jitter == nil {
		return round1((band.lo + band.hi) / 2)
	}
	return round1(band.lo + g.Jitter.Float64()*(band.hi-band.lo))
}

// ForRecord builds feedback for one answer. questionID is 1-based and must
// match the record's position in the submitted list.
func (g *FeedbackGenerator) ForRecord(record dto.AnswerRecord, questionID int, specialty string) dto.QuestionFeedback {
	signals := ExtractSignals(record.Response, record.Question, specialty)
	tier := TierFor(record, signals)

	fb := dto.QuestionFeedback{
		QuestionID:   questionID,
		QuestionText: record.Question,
		Score:        g.score(tier),
	}

	switch tier {
	case TierDetailed:
		fb.Feedback = "A thorough answer with real depth: concrete detail, clear reasoning, and good structure."
		fb.Strengths = []string{"Covers the topic in depth", "Backs claims with specifics"}
		fb.Improvements = []string{"Consider briefly summarizing the key point at the end"}
	case TierGood:
		fb.Feedback = "A solid answer that addresses the question well; a little more depth would make it stand out."
		fb.Strengths = []string{"Addresses the question directly", "Shows working knowledge of the topic"}
		fb.Improvements = []string{"Add a concrete example from your own experience", "Explain the reasoning behind your approach"}
	case TierBasic:
		fb.Feedback = "The answer touches the topic but stays on the surface."
		fb.Strengths = []string{"Identifies the core of the question"}
		fb.Improvements = []string{"Develop the answer beyond a definition", "Mention where you have applied this in practice"}
	default:
		if !IsValidAnswer(record) {
			fb.Feedback = "This question was not answered. Even a brief attempt earns more credit than silence."
			fb.Strengths = []string{"Question acknowledged"}
			fb.Improvements = []string{"Attempt every question, even with a partial answer", "If unsure, explain how you would find the answer"}
		} else {
			fb.Feedback = "The answer is too thin to assess; it needs substance and structure."
			fb.Strengths = []string{"Made an attempt at the question"}
			fb.Improvements = []string{"Expand the answer to at least a few sentences", "State one concrete fact or example"}
		}
	}

	if signals.TermHits > 0 && tier >= TierGood {
		fb.Strengths = append(fb.Strengths, fmt.Sprintf("Uses relevant %s terminology", strings.ToLower(strings.TrimSpace(specialtyLabel(specialty)))))
	}

	return fb
}

// ForSession builds feedback for every record in input order.
func (g *FeedbackGenerator) ForSession(records []dto.AnswerRecord, specialty string) []dto.QuestionFeedback {
	feedback := make([]dto.QuestionFeedback, len(records))
	for i, record := range records {
		feedback[i] = g.ForRecord(record, i+1, specialty)
	}
	return feedback
}

func specialtyLabel(specialty string) string {
	if strings.TrimSpace(specialty) == "" {
		return "technical"
	}
	return specialty
}
