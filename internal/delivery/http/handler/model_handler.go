package handler

import (
	"errors"

	"course-compass/internal/delivery/http/dto"
	"course-compass/internal/pkg/response"
	"course-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ModelHandler struct {
	admin   usecase.ModelAdminUsecase
	metrics usecase.MetricsUsecase
}

func NewModelHandler(admin usecase.ModelAdminUsecase, metrics usecase.MetricsUsecase) *ModelHandler {
	return &ModelHandler{admin: admin, metrics: metrics}
}

// RegisterRoutes mounts reads on the open router; reload and train go on
// the auth-protected one.
func (h *ModelHandler) RegisterRoutes(r, protected fiber.Router) {
	if r == nil || protected == nil {
		return
	}

	r.Get("/model/status", h.Status)
	r.Get("/model/metrics", h.Metrics)
	protected.Post("/model/reload", h.Reload)
	protected.Post("/model/train", h.Train)
}

func (h *ModelHandler) Status(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.admin.Status(c.Context()))
}

func (h *ModelHandler) Reload(c fiber.Ctx) error {
	st := h.admin.Reload(c.Context())
	return response.Success(c, fiber.StatusOK, "Model reloaded successfully", st)
}

type trainRequest struct {
	Samples int `json:"samples"`
	Courses int `json:"courses"`
}

func (h *ModelHandler) Train(c fiber.Ctx) error {
	var req trainRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
		}
	}

	metrics, err := h.admin.Train(c.Context(), usecase.TrainRequest{
		Samples: req.Samples,
		Courses: req.Courses,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrTrainingInProgress) {
			return response.Error(c, fiber.StatusConflict, "Training already in progress", nil)
		}
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}

	return response.Success(c, fiber.StatusOK, "Model trained successfully", dto.TrainResponse{
		Success: true,
		Metrics: metrics,
	})
}

func (h *ModelHandler) Metrics(c fiber.Ctx) error {
	m, err := h.metrics.Metrics(c.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrMetricsNotFound) {
			return response.Error(c, fiber.StatusNotFound, "No metrics available. Train the model first.", nil)
		}
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMetricsResponse(m))
}
