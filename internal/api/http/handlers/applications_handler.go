package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ritik-rajput786/internfinder/internal/api/dto"
	"github.com/Ritik-rajput786/internfinder/internal/auth"
	"github.com/Ritik-rajput786/internfinder/internal/domain"
	"github.com/Ritik-rajput786/internfinder/internal/service"
	"github.com/Ritik-rajput786/internfinder/internal/storage"
	apperrors "github.com/Ritik-rajput786/internfinder/pkg/util"
)

// ApplicationsHandler manages the apply/list/cancel endpoints.
type ApplicationsHandler struct {
	service *service.ApplicationService
	resumes storage.ResumeStore
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService, resumes storage.ResumeStore) *ApplicationsHandler {
	return &ApplicationsHandler{service: applicationService, resumes: resumes}
}

// Apply POST /applications/apply (multipart).
func (h *ApplicationsHandler) Apply(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return apperrors.NewValidationError("resume file required", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unable to read resume file", nil)
	}
	defer file.Close()

	// The resume is staged first; Submit removes it again on any failure so
	// either both the application row and the file exist, or neither does.
	resumeKey, err := h.resumes.Save(c.UserContext(), fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		return err
	}

	input := service.SubmitInput{
		JobID:          c.FormValue("jobId"),
		FullName:       c.FormValue("fullName"),
		Email:          c.FormValue("email"),
		Phone:          c.FormValue("phone"),
		College:        c.FormValue("college"),
		Degree:         c.FormValue("degree"),
		CurrentYear:    c.FormValue("currentYear"),
		Skills:         splitSkills(c.FormValue("skills")),
		Message:        c.FormValue("message"),
		ResumeKey:      resumeKey,
		ResumeFileName: fileHeader.Filename,
	}

	app, err := h.service.Submit(c.UserContext(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": applicationResponse(app)})
}

// ListMine GET /applications/my.
func (h *ApplicationsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	apps, err := h.service.ListMine(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		items = append(items, applicationResponse(&apps[i]))
	}
	return c.JSON(fiber.Map{"data": items, "count": len(items)})
}

// CancelByApplication PATCH /applications/cancel/:applicationId.
func (h *ApplicationsHandler) CancelByApplication(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	app, err := h.service.CancelByApplicationID(c.UserContext(), principal.User.ID, c.Params("applicationId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

// CancelByJob PATCH /applications/:jobId/cancel and DELETE /applications/:jobId.
func (h *ApplicationsHandler) CancelByJob(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	app, err := h.service.CancelByJobID(c.UserContext(), principal.User.ID, c.Params("jobId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

// DownloadResume GET /applications/:id/resume — owner-only.
func (h *ApplicationsHandler) DownloadResume(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	rc, fileName, err := h.service.OpenResume(c.UserContext(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.SendStream(rc)
}

func splitSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

func applicationResponse(app *domain.Application) dto.ApplicationResponse {
	resp := dto.ApplicationResponse{
		ID:             app.ID,
		JobID:          app.JobID,
		FullName:       app.FullName,
		Email:          app.Email,
		Phone:          app.Phone,
		College:        app.College,
		Degree:         app.Degree,
		CurrentYear:    app.CurrentYear,
		Skills:         app.Skills,
		Message:        app.Message,
		ResumeFileName: app.ResumeFileName,
		Status:         app.Status,
		CreatedAt:      app.CreatedAt,
		CancelledAt:    app.CancelledAt,
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	if app.Job != nil {
		job := jobResponse(app.Job)
		resp.Job = &job
	}
	return resp
}
