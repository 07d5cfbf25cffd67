package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Nik-Maltcev/careeros-sub000/internal/dto"
	"github.com/Nik-Maltcev/careeros-sub000/internal/model"
	"github.com/Nik-Maltcev/careeros-sub000/internal/repository"
	"github.com/Nik-Maltcev/careeros-sub000/internal/scoring"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoResponses is the only error Evaluate surfaces: structurally invalid
// input. Every downstream failure degrades to the heuristic path instead.
var ErrNoResponses = errors.New("at least one response is required")

const questionConcurrency = 5

// AssessmentProvider is one external evaluation backend. EvaluateSession
// returns the model identifier that produced the assessment so per-question
// calls can reuse it.
type AssessmentProvider interface {
	Name() string
	EvaluateSession(ctx context.Context, records []dto.AnswerRecord, specialty string) (*dto.SessionAssessment, string, error)
	QuestionFeedback(ctx context.Context, record dto.AnswerRecord, questionID int, specialty, model string) (*dto.QuestionFeedback, error)
}

// EvaluationUsecase orchestrates an evaluation: providers in priority order
// first, the deterministic heuristic path when all of them fail. It always
// returns a complete, schema-valid result for valid input.
type EvaluationUsecase struct {
	providers []AssessmentProvider
	repo      *repository.InterviewRepository
	feedback  *scoring.FeedbackGenerator
	log       *zap.Logger
}

func NewEvaluationUsecase(repo *repository.InterviewRepository, log *zap.Logger, providers ...AssessmentProvider) *EvaluationUsecase {
	return &EvaluationUsecase{
		providers: providers,
		repo:      repo,
		feedback:  &scoring.FeedbackGenerator{},
		log:       log,
	}
}

// Evaluate runs the full pipeline and returns the stored session id together
// with the result. Persistence is best-effort and never fails the request.
func (uc *EvaluationUsecase) Evaluate(ctx context.Context, req dto.EvaluateRequest) (string, *dto.EvaluationResult, error) {
	if len(req.Responses) == 0 {
		return "", nil, ErrNoResponses
	}

	result := uc.evaluate(ctx, req)

	sessionID := uuid.New()
	go uc.persist(sessionID, req, result)

	return sessionID.String(), result, nil
}

func (uc *EvaluationUsecase) evaluate(ctx context.Context, req dto.EvaluateRequest) *dto.EvaluationResult {
	for _, provider := range uc.providers {
		assessment, modelID, err := provider.EvaluateSession(ctx, req.Responses, req.Specialty)
		if err != nil {
			uc.log.Warn("provider evaluation failed, trying next",
				zap.String("provider", provider.Name()),
				zap.Error(err),
			)
			continue
		}

		return &dto.EvaluationResult{
			OverallScore:     assessment.OverallScore,
			CriteriaScores:   assessment.CriteriaScores,
			Strengths:        assessment.Strengths,
			Improvements:     assessment.Improvements,
			Roadmap:          assessment.Roadmap,
			QuestionFeedback: uc.providerFeedback(ctx, provider, modelID, req),
			Source:           dto.SourceProvider,
		}
	}

	uc.log.Info("all providers exhausted, using heuristic evaluation")
	assessment := scoring.EvaluateSession(req.Responses, req.Specialty)
	return &dto.EvaluationResult{
		OverallScore:     assessment.OverallScore,
		CriteriaScores:   assessment.CriteriaScores,
		Strengths:        assessment.Strengths,
		Improvements:     assessment.Improvements,
		Roadmap:          assessment.Roadmap,
		QuestionFeedback: uc.feedback.ForSession(req.Responses, req.Specialty),
		Source:           dto.SourceHeuristic,
	}
}

// providerFeedback fans per-question critiques out concurrently. Results are
// written into an index-keyed slice so output order always matches input
// order, and a failed call is replaced with a neutral entry for that question
// only.
func (uc *EvaluationUsecase) providerFeedback(ctx context.Context, provider AssessmentProvider, modelID string, req dto.EvaluateRequest) []dto.QuestionFeedback {
	feedback := make([]dto.QuestionFeedback, len(req.Responses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(questionConcurrency)

	for i, record := range req.Responses {
		g.Go(func() error {
			fb, err := provider.QuestionFeedback(gctx, record, i+1, req.Specialty, modelID)
			if err != nil {
				uc.log.Warn("per-question feedback failed, substituting neutral entry",
					zap.Int("question_id", i+1),
					zap.Error(err),
				)
				feedback[i] = neutralFeedback(record, i+1)
				return nil
			}
			feedback[i] = *fb
			return nil
		})
	}
	_ = g.Wait()

	return feedback
}

// neutralFeedback is the fixed substitute for a single failed per-question
// call: mid score, generic encouragement.
func neutralFeedback(record dto.AnswerRecord, questionID int) dto.QuestionFeedback {
	return dto.QuestionFeedback{
		QuestionID:   questionID,
		QuestionText: record.Question,
		Feedback:     "This answer could not be assessed in detail. Keep practicing structured, example-driven answers.",
		Score:        5,
		Strengths:    []string{"Participated in the question"},
		Improvements: []string{"Support your answer with a concrete example"},
	}
}

func (uc *EvaluationUsecase) persist(id uuid.UUID, req dto.EvaluateRequest, result *dto.EvaluationResult) {
	if uc.repo == nil {
		return
	}

	responses, err := json.Marshal(req.Responses)
	if err != nil {
		uc.log.Error("marshal responses for storage", zap.Error(err))
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		uc.log.Error("marshal result for storage", zap.Error(err))
		return
	}

	session := &model.InterviewSession{
		ID:           id,
		Specialty:    req.Specialty,
		Responses:    string(responses),
		Result:       string(payload),
		Source:       result.Source,
		OverallScore: result.OverallScore,
	}
	if err := uc.repo.CreateSession(session); err != nil {
		uc.log.Error("store evaluation session", zap.String("session_id", id.String()), zap.Error(err))
	}
}

// GetResult loads a stored session.
func (uc *EvaluationUsecase) GetResult(id string) (*model.InterviewSession, error) {
	return uc.repo.FindSessionByID(id)
}

// ListResults pages through stored sessions, newest first.
func (uc *EvaluationUsecase) ListResults(page, pageSize int) ([]model.InterviewSession, int64, error) {
	return uc.repo.ListSessions(page, pageSize)
}
