package handler

import (
	"errors"

	"course-compass/internal/delivery/http/dto"
	"course-compass/internal/pkg/response"
	"course-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendHandler struct {
	recommend usecase.RecommendUsecase
	hybrid    usecase.HybridUsecase
	batch     usecase.BatchUsecase
}

func NewRecommendHandler(recommend usecase.RecommendUsecase, hybrid usecase.HybridUsecase, batch usecase.BatchUsecase) *RecommendHandler {
	return &RecommendHandler{recommend: recommend, hybrid: hybrid, batch: batch}
}

func (h *RecommendHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/recommend")
	grp.Post("/", h.Recommend)
	grp.Post("/batch", h.Batch)
	grp.Post("/hybrid", h.Hybrid)

	r.Get("/ranker/config", h.RankerConfig)
}

func (h *RecommendHandler) Recommend(c fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}
	if err := req.Validate(); err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	res, err := h.recommend.Recommend(c.Context(), req.ToProfile())
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
		}
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RecommendResponse{
		Success:          true,
		Recommendations:  res.Recommendations,
		EmployeeFeatures: res.Features,
	})
}

func (h *RecommendHandler) Batch(c fiber.Ctx) error {
	var req dto.BatchRecommendRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}
	if err := req.Validate(); err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	employees := make([]usecase.BatchEmployee, 0, len(req.Employees))
	for _, e := range req.Employees {
		employees = append(employees, usecase.BatchEmployee{
			EmployeeID: e.EmployeeID,
			Profile:    e.ToProfile(),
		})
	}

	results, err := h.batch.Recommend(c.Context(), employees)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
		}
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.BatchRecommendResponse{
		Success: true,
		Count:   len(results),
		Results: results,
	})
}

func (h *RecommendHandler) Hybrid(c fiber.Ctx) error {
	var req dto.HybridRecommendRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}
	if err := req.Validate(); err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	res, err := h.hybrid.Recommend(c.Context(), req.ToProfile(), dto.ToCourses(req.Courses), req.TopK)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
		case errors.Is(err, usecase.ErrNoCourses):
			return response.Error(c, fiber.StatusBadRequest, "No courses provided for recommendation", nil)
		case errors.Is(err, usecase.ErrCatalogUnavailable):
			return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil)
		default:
			return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.HybridRecommendResponse{
		Success:         true,
		Recommendations: res.Recommendations,
		Method:          res.Method,
		Configuration:   res.Configuration,
		Cached:          res.FromCache,
	})
}

func (h *RecommendHandler) RankerConfig(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RankerConfigResponse{
		Success:       true,
		Configuration: h.hybrid.Configuration(),
	})
}
