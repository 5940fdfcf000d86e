package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Ritik-rajput786/internfinder/internal/api/dto"
	"github.com/Ritik-rajput786/internfinder/internal/auth"
	"github.com/Ritik-rajput786/internfinder/internal/domain"
	"github.com/Ritik-rajput786/internfinder/internal/service"
	apperrors "github.com/Ritik-rajput786/internfinder/pkg/util"
)

// JobsHandler exposes job listing endpoints.
type JobsHandler struct {
	service *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{service: jobService}
}

// List GET /jobs — merged platform + external listing.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	jobs, err := h.service.List(c.UserContext(), jobFilterFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponses(jobs), "count": len(jobs)})
}

// ListExternal GET /jobs/external — external listings only.
func (h *JobsHandler) ListExternal(c *fiber.Ctx) error {
	jobs, err := h.service.ListExternal(c.UserContext(), jobFilterFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponses(jobs), "count": len(jobs)})
}

// Get GET /jobs/:id — platform job detail.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	job, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// Create POST /jobs — authenticated platform job posting.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	job, err := h.service.Create(c.UserContext(), principal.User.ID, service.JobCreateInput{
		Title:         req.Title,
		CompanyName:   req.CompanyName,
		Location:      req.Location,
		Country:       req.Country,
		Type:          req.Type,
		Description:   req.Description,
		Skills:        req.Skills,
		SalaryDisplay: req.SalaryDisplay,
		ApplyType:     req.ApplyType,
		ApplyTarget:   req.ApplyTarget,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": jobResponse(job)})
}

func jobFilterFromQuery(c *fiber.Ctx) service.JobFilter {
	return service.JobFilter{
		Title:    c.Query("title"),
		Location: c.Query("location"),
		Country:  c.Query("country"),
	}
}

func jobResponse(job *domain.Job) dto.JobResponse {
	resp := dto.JobResponse{
		ID:            job.ID,
		Title:         job.Title,
		CompanyName:   job.CompanyName,
		Location:      job.Location,
		Country:       job.Country,
		Type:          job.Type,
		Description:   job.Description,
		Skills:        job.Skills,
		SalaryDisplay: job.SalaryDisplay,
		ApplyType:     job.ApplyType,
		ApplyTarget:   job.ApplyTarget,
		SourceName:    job.SourceName,
		IsVerified:    job.IsVerified,
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	if !job.CreatedAt.IsZero() {
		createdAt := job.CreatedAt
		resp.CreatedAt = &createdAt
	}
	return resp
}

func jobResponses(jobs []domain.Job) []dto.JobResponse {
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, jobResponse(&jobs[i]))
	}
	return items
}
