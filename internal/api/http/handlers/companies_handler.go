package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ritik-rajput786/internfinder/internal/api/dto"
	"github.com/Ritik-rajput786/internfinder/internal/service"
)

// CompaniesHandler serves the static company directory.
type CompaniesHandler struct {
	service *service.CompanyService
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(companyService *service.CompanyService) *CompaniesHandler {
	return &CompaniesHandler{service: companyService}
}

// List GET /companies.
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	companies := h.service.List(c.Query("industry"))
	items := make([]dto.CompanyResponse, 0, len(companies))
	for _, company := range companies {
		items = append(items, dto.CompanyResponse{
			Name:       company.Name,
			Industry:   company.Industry,
			Logo:       company.Logo,
			IsVerified: company.IsVerified,
		})
	}
	return c.JSON(fiber.Map{"data": items, "count": len(items)})
}
