package handler

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Nik-Maltcev/careeros-sub000/internal/dto"
	"github.com/Nik-Maltcev/careeros-sub000/internal/middleware"
	"github.com/Nik-Maltcev/careeros-sub000/internal/response"
	"github.com/Nik-Maltcev/careeros-sub000/internal/service"
	"github.com/Nik-Maltcev/careeros-sub000/internal/usecase"
	"github.com/Nik-Maltcev/careeros-sub000/internal/util"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const maxAudioSize = 25 * 1024 * 1024

type EvaluateHandler struct {
	uc       *usecase.EvaluationUsecase
	whisper  *service.WhisperService
	validate *validator.Validate
}

func NewEvaluateHandler(uc *usecase.EvaluationUsecase, whisper *service.WhisperService) *EvaluateHandler {
	return &EvaluateHandler{
		uc:       uc,
		whisper:  whisper,
		validate: validator.New(),
	}
}

func (h *EvaluateHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/evaluate", middleware.RateLimiter(5, 1*time.Minute), h.Evaluate)
	app.Post("/transcribe", middleware.RateLimiter(20, 1*time.Minute), h.Transcribe)
	app.Get("/result/:id", h.Result)
	app.Get("/results", h.Results)
}

func (h *EvaluateHandler) Evaluate(c *fiber.Ctx) error {
	var req dto.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	if err := h.validate.Struct(req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: "validation failed",
			Details: validationDetails(err),
		}, err)
	}

	id, result, err := h.uc.Evaluate(c.Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrNoResponses) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "at least one response is required",
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to evaluate interview",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Interview evaluated",
		Data:    fiber.Map{"id": id, "result": result},
	})
}

func (h *EvaluateHandler) Transcribe(c *fiber.Ctx) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "audio file is required",
		}, err)
	}
	if file.Size > maxAudioSize {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "audio file is too large (max 25MB)",
		})
	}

	src, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read audio file",
		}, err)
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read audio file",
		}, err)
	}

	// Upstream failure degrades to the fallback sentinel, never to a 5xx.
	result := h.whisper.Transcribe(c.Context(), file.Filename, audio)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Transcription processed",
		Data:    result,
	})
}

func (h *EvaluateHandler) Result(c *fiber.Ctx) error {
	id := c.Params("id")
	session, err := h.uc.GetResult(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "session not found",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get evaluation result",
		Data:    session,
	})
}

func (h *EvaluateHandler) Results(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	sessions, total, err := h.uc.ListResults(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list evaluation results",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list evaluation results",
		Data:       sessions,
		Pagination: response.NewPagination(page, pageSize, total),
	})
}

func validationDetails(err error) map[string]string {
	details := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			details[field] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		}
	}
	return details
}
