package handler

import (
	"errors"

	"course-compass/internal/delivery/http/dto"
	"course-compass/internal/pkg/response"
	"course-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CourseHandler struct {
	catalog usecase.CatalogUsecase
}

func NewCourseHandler(catalog usecase.CatalogUsecase) *CourseHandler {
	return &CourseHandler{catalog: catalog}
}

// RegisterRoutes mounts reads on the open router and writes on the
// auth-protected one.
func (h *CourseHandler) RegisterRoutes(r, protected fiber.Router) {
	if r == nil || protected == nil {
		return
	}

	r.Get("/courses", h.List)
	protected.Post("/courses", h.Upsert)
}

func (h *CourseHandler) List(c fiber.Ctx) error {
	courses, err := h.catalog.ListCourses(c.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrCatalogUnavailable) {
			return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil)
		}
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, courses)
}

func (h *CourseHandler) Upsert(c fiber.Ctx) error {
	var req dto.UpsertCoursesRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	count, err := h.catalog.UpsertCourses(c.Context(), dto.ToCourses(req.Courses))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
		case errors.Is(err, usecase.ErrCatalogUnavailable):
			return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil)
		default:
			return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
		}
	}

	return response.Success(c, fiber.StatusOK, "Courses saved successfully", fiber.Map{"count": count})
}
