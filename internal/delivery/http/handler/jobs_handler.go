package handler

import (
	"time"

	"career-match/internal/delivery/http/dto"
	"career-match/internal/delivery/http/middleware"
	"career-match/internal/domain/job"
	"career-match/internal/domain/skill"
	"career-match/internal/pkg/response"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobsHandler struct {
	uc usecase.JobUsecase
}

func NewJobsHandler(uc usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.ListJobs)
	r.Get("/:id", h.GetJob)
	r.Post("/import", h.ImportJobs)
}

func (h *JobsHandler) ListJobs(c fiber.Ctx) error {
	limit := parseQueryInt(c, "limit", 20)
	offset := parseQueryInt(c, "offset", 0)

	jobs, err := h.uc.ListJobs(c.Context(), usecase.JobListParams{Limit: limit, Offset: offset})
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, dto.NewJobResponse(j))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobsHandler) GetJob(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	j, err := h.uc.GetJob(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobsHandler) ImportJobs(c fiber.Ctx) error {
	var req dto.JobImportRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	jobs := make([]job.Job, 0, len(req.Jobs))
	for _, it := range req.Jobs {
		j, err := importedJob(it)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "invalid job: "+err.Error(), nil, err)
		}
		jobs = append(jobs, j)
	}

	if err := h.uc.ImportJobs(c.Context(), jobs); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "jobs imported", fiber.Map{"count": len(jobs)})
}

func importedJob(it dto.JobImportItem) (job.Job, error) {
	id := uuid.New()
	if it.ID != "" {
		parsed, err := uuid.Parse(it.ID)
		if err != nil {
			return job.Job{}, err
		}
		id = parsed
	}

	postedAt := time.Now()
	if it.PostedAt != "" {
		parsed, err := time.Parse(time.RFC3339, it.PostedAt)
		if err != nil {
			return job.Job{}, err
		}
		postedAt = parsed
	}

	active := true
	if it.Active != nil {
		active = *it.Active
	}

	return job.Job{
		ID:         id,
		Title:      it.Title,
		Company:    it.Company,
		Location:   it.Location,
		Remote:     it.Remote,
		Experience: job.ExperienceLevel(it.Experience),
		Salary: job.SalaryRange{
			Min:      it.SalaryMin,
			Max:      it.SalaryMax,
			Currency: it.Currency,
		},
		Required:  skill.NewSet(it.RequiredSkills...),
		Preferred: skill.NewSet(it.PreferredSkills...),
		PostedAt:  postedAt,
		Active:    active,
	}, nil
}
