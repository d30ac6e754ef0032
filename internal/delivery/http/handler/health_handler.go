package handler

import (
	"course-compass/internal/delivery/http/dto"
	"course-compass/internal/ml"
	"course-compass/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	store *ml.Store
}

func NewHealthHandler(store *ml.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.HealthResponse{
		Status:      "OK",
		Message:     "Recommendation engine is running",
		ModelLoaded: h.store.Loaded(),
	})
}
