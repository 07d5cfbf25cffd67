package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/Nik-Maltcev/careeros-sub000/internal/dto"
)

// MinValidAnswerSeconds separates a real attempt from an accidental tap.
// Answers at or below this duration do not count as answered.
const MinValidAnswerSeconds = 5.0

// Duration buckets, in seconds, over answered items only.
const (
	veryShortMax = 15.0
	shortMax     = 30.0
	optimalMax   = 90.0
)

const substantialAvgSeconds = 45.0

// SessionStats aggregates a session once; every heuristic output (overall
// score, criteria, strengths, roadmap) derives from these numbers alone.
type SessionStats struct {
	Total           int
	Answered        int
	AnswerRate      float64
	VeryShort       int
	Short           int
	Optimal         int
	Long            int
	AverageDuration float64
}

// IsValidAnswer reports whether the record counts as answered: a non-empty,
// non-sentinel response held for longer than the minimum valid duration.
func IsValidAnswer(r dto.AnswerRecord) bool {
	trimmed := strings.TrimSpace(r.Response)
	if trimmed == "" || strings.EqualFold(trimmed, NotAnsweredSentinel) {
		return false
	}
	return r.DurationSeconds > MinValidAnswerSeconds
}

// ComputeStats derives the session statistics used by every heuristic rule.
func ComputeStats(records []dto.AnswerRecord) SessionStats {
	stats := SessionStats{Total: len(records)}

	var totalDuration float64
	for _, r := range records {
		if !IsValidAnswer(r) {
			continue
		}
		stats.Answered++
		totalDuration += r.DurationSeconds

		switch {
		case r.DurationSeconds < veryShortMax:
			stats.VeryShort++
		case r.DurationSeconds <= shortMax:
			stats.Short++
		case r.DurationSeconds <= optimalMax:
			stats.Optimal++
		default:
			stats.Long++
		}
	}

	if stats.Total > 0 {
		stats.AnswerRate = float64(stats.Answered) / float64(stats.Total)
	}
	if stats.Answered > 0 {
		stats.AverageDuration = totalDuration / float64(stats.Answered)
	}
	return stats
}

// baseScore maps answer rate to the staircase base. An unanswered interview
// cannot score well regardless of answer style.
func baseScore(rate float64) float64 {
	switch {
	case rate <= 0:
		return 1.0
	case rate < 0.2:
		return 2.0
	case rate < 0.4:
		return 3.5
	case rate < 0.6:
		return 5.0
	case rate < 0.8:
		return 6.5
	default:
		return 7.5
	}
}

// OverallScore computes the session score: staircase base, bounded duration
// bonuses, a rushed-answers penalty, clamped to [1,10] and rounded to one
// decimal.
func OverallScore(stats SessionStats) float64 {
	score := baseScore(stats.AnswerRate)

	if stats.Answered > 0 {
		if stats.Optimal*2 > stats.Answered {
			score += 1.0
		}
		if stats.Long > 0 {
			score += 0.5
		}
		if stats.AverageDuration > substantialAvgSeconds {
			score += 0.5
		}
		if stats.VeryShort*2 > stats.Answered {
			score -= 1.0
		}
	}

	return round1(clamp(score, 1, 10))
}

var criterionNames = []string{
	"Technical Knowledge",
	"Practical Experience",
	"Communication Skills",
	"Problem Solving",
}

// CriteriaScores derives the four fixed criteria from the overall score.
// Each criterion discounts the base differently and earns its own bonus from
// a criterion-relevant session statistic, so identical inputs always produce
// identical scores and descriptions.
func CriteriaScores(overall float64, stats SessionStats) []dto.EvaluationCriterion {
	longFraction := 0.0
	if stats.Answered > 0 {
		longFraction = float64(stats.Long) / float64(stats.Answered)
	}
	veryShortMajority := stats.Answered > 0 && stats.VeryShort*2 > stats.Answered
	optimalMajority := stats.Answered > 0 && stats.Optimal*2 > stats.Answered

	technical := overall * 0.9
	if stats.AnswerRate >= 0.8 {
		technical += 0.5
	}

	practical := overall * 0.85
	if longFraction >= 0.3 {
		practical += 1.0
	}

	communication := overall * 0.95
	if optimalMajority {
		communication += 0.5
	}
	if veryShortMajority {
		communication -= 1.0
	}

	problemSolving := overall * 0.8
	if stats.AverageDuration >= 60 {
		problemSolving += 0.5
	}

	return []dto.EvaluationCriterion{
		{
			Name:        criterionNames[0],
			Score:       round1(clamp(technical, 1, 10)),
			Description: technicalDescription(stats),
		},
		{
			Name:        criterionNames[1],
			Score:       round1(clamp(practical, 1, 10)),
			Description: practicalDescription(stats, longFraction),
		},
		{
			Name:        criterionNames[2],
			Score:       round1(clamp(communication, 1, 10)),
			Description: communicationDescription(stats, veryShortMajority),
		},
		{
			Name:        criterionNames[3],
			Score:       round1(clamp(problemSolving, 1, 10)),
			Description: problemSolvingDescription(stats),
		},
	}
}

func technicalDescription(stats SessionStats) string {
	switch {
	case stats.Answered == 0:
		return "No answered questions to judge technical depth from; the score reflects participation only."
	case stats.AnswerRate >= 0.8:
		return fmt.Sprintf("Engaged with %d of %d questions, which gives a solid base for judging technical range.", stats.Answered, stats.Total)
	case stats.AnswerRate >= 0.5:
		return fmt.Sprintf("Answered %d of %d questions; the unanswered portion limits how much technical depth could be shown.", stats.Answered, stats.Total)
	default:
		return fmt.Sprintf("Only %d of %d questions were answered, leaving most technical topics untouched.", stats.Answered, stats.Total)
	}
}

func practicalDescription(stats SessionStats, longFraction float64) string {
	switch {
	case stats.Answered == 0:
		return "No answers were given, so practical experience could not be assessed."
	case longFraction >= 0.3:
		return "Several answers were long enough to walk through real scenarios, a good sign of hands-on experience."
	case stats.Long > 0:
		return "At least one answer went into real depth; more of that would better demonstrate hands-on experience."
	default:
		return "Answers stayed brief, which gave little room to demonstrate concrete hands-on experience."
	}
}

func communicationDescription(stats SessionStats, veryShortMajority bool) string {
	switch {
	case stats.Answered == 0:
		return "Communication could not be assessed without spoken answers."
	case veryShortMajority:
		return "Most answers were only a few seconds long; fuller responses would show communication skills much better."
	case stats.Optimal*2 > stats.Answered:
		return "Most answers landed in a comfortable 30-90 second range, which reads as well-paced communication."
	default:
		return fmt.Sprintf("Answer pacing averaged %.0f seconds; aim for the 30-90 second range for the clearest delivery.", stats.AverageDuration)
	}
}

func problemSolvingDescription(stats SessionStats) string {
	switch {
	case stats.Answered == 0:
		return "Problem-solving could not be assessed without answered questions."
	case stats.AverageDuration >= 60:
		return "Answers were developed at length, suggesting problems were reasoned through rather than answered from memory."
	default:
		return "Quicker answers left the reasoning behind conclusions mostly unstated; talk through the 'why' step by step."
	}
}

// StrengthsFor builds the strengths list from the session statistics. It never
// returns an empty list; a zero-answer session still gets a participation
// strength.
func StrengthsFor(stats SessionStats) []string {
	var strengths []string
	if stats.AnswerRate >= 0.8 {
		strengths = append(strengths, "Answered nearly every question, showing strong engagement with the interview")
	}
	if stats.Answered > 0 && stats.Optimal*2 > stats.Answered {
		strengths = append(strengths, "Kept most answers in a well-paced, substantive length")
	}
	if stats.Long > 0 {
		strengths = append(strengths, "Gave at least one genuinely in-depth answer")
	}
	if len(strengths) == 0 {
		strengths = append(strengths, "Completed the interview session from start to finish")
	}
	return strengths
}

// ImprovementsFor builds the improvements list. Like strengths, it is never
// empty.
func ImprovementsFor(stats SessionStats) []string {
	var improvements []string
	if stats.AnswerRate < 0.5 {
		improvements = append(improvements, "Attempt an answer for every question, even a short one; skipped questions score zero")
	}
	if stats.Answered > 0 && stats.VeryShort*2 > stats.Answered {
		improvements = append(improvements, "Expand very short answers with reasoning and a concrete example")
	}
	if stats.Answered > 0 && stats.AverageDuration < shortMax {
		improvements = append(improvements, "Spend more time developing each answer; 30-90 seconds is the sweet spot")
	}
	if len(improvements) == 0 {
		improvements = append(improvements, "Add more concrete examples from your own projects to make strong answers stand out")
	}
	return improvements
}

// RoadmapFor builds one or two development goals targeted at the weakest part
// of the session.
func RoadmapFor(stats SessionStats, specialty string) []dto.RoadmapGoal {
	specialty = strings.TrimSpace(specialty)
	if specialty == "" {
		specialty = "your specialty"
	}

	var roadmap []dto.RoadmapGoal
	if stats.AnswerRate < 0.6 {
		roadmap = append(roadmap, dto.RoadmapGoal{
			Title:       "Build answer consistency",
			Description: "Practice answering full mock interviews without skipping, prioritizing a short answer over silence.",
			Timeframe:   "2-4 weeks",
			Resources: []string{
				"Daily mock interview sessions",
				"Question banks for " + specialty,
			},
		})
	} else {
		roadmap = append(roadmap, dto.RoadmapGoal{
			Title:       "Deepen " + specialty + " expertise",
			Description: "Work through advanced topics in " + specialty + " and rehearse explaining them out loud.",
			Timeframe:   "1-2 months",
			Resources: []string{
				"Advanced courses in " + specialty,
				"Conference talks and engineering blogs in " + specialty,
			},
		})
	}

	if stats.Answered > 0 && (stats.VeryShort*2 > stats.Answered || stats.AverageDuration < shortMax) {
		roadmap = append(roadmap, dto.RoadmapGoal{
			Title:       "Practice structured answers",
			Description: "Use the STAR structure (situation, task, action, result) to stretch short answers into complete stories.",
			Timeframe:   "2-3 weeks",
			Resources: []string{
				"STAR method guides",
				"Recording and reviewing your own answers",
			},
		})
	}

	return roadmap
}

// EvaluateSession runs the full heuristic path over a session and returns the
// session-level assessment. Deterministic: the same records and specialty
// always yield the same result.
func EvaluateSession(records []dto.AnswerRecord, specialty string) dto.SessionAssessment {
	stats := ComputeStats(records)
	overall := OverallScore(stats)

	return dto.SessionAssessment{
		OverallScore:   overall,
		CriteriaScores: CriteriaScores(overall, stats),
		Strengths:      StrengthsFor(stats),
		Improvements:   ImprovementsFor(stats),
		Roadmap:        RoadmapFor(stats, specialty),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
