package service

import (
	"strings"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
)

// CompanyService serves the static, read-only company directory.
type CompanyService struct {
	companies []domain.Company
}

// NewCompanyService seeds the verified company whitelist.
func NewCompanyService() *CompanyService {
	return &CompanyService{companies: directory}
}

// List returns companies, optionally narrowed by industry (case-insensitive
// substring match).
func (s *CompanyService) List(industry string) []domain.Company {
	industry = strings.ToLower(strings.TrimSpace(industry))
	if industry == "" {
		result := make([]domain.Company, len(s.companies))
		copy(result, s.companies)
		return result
	}
	result := make([]domain.Company, 0, len(s.companies))
	for _, company := range s.companies {
		if strings.Contains(strings.ToLower(company.Industry), industry) {
			result = append(result, company)
		}
	}
	return result
}

var directory = []domain.Company{
	{Name: "TCS", Industry: "IT & Software", IsVerified: true},
	{Name: "Infosys", Industry: "IT & Software", IsVerified: true},
	{Name: "Wipro", Industry: "IT & Software", IsVerified: true},
	{Name: "Accenture India", Industry: "IT & Software", IsVerified: true},
	{Name: "Cognizant India", Industry: "IT & Software", IsVerified: true},
	{Name: "Capgemini India", Industry: "IT & Software", IsVerified: true},
	{Name: "Tech Mahindra", Industry: "IT & Software", IsVerified: true},
	{Name: "HCL Technologies", Industry: "IT & Software", IsVerified: true},
	{Name: "Zoho", Industry: "IT & Software", IsVerified: true},
	{Name: "Paytm", Industry: "FinTech", IsVerified: true},
	{Name: "Flipkart", Industry: "E-commerce", IsVerified: true},
	{Name: "Razorpay", Industry: "FinTech", IsVerified: true},
	{Name: "Swiggy", Industry: "E-commerce", IsVerified: true},
	{Name: "Zomato", Industry: "E-commerce", IsVerified: true},
	{Name: "Byju's", Industry: "EdTech", IsVerified: true},
	{Name: "Internshala", Industry: "EdTech", IsVerified: true},
	{Name: "Unstop", Industry: "EdTech", IsVerified: true},
	{Name: "Microsoft India", Industry: "IT & Software", IsVerified: true},
	{Name: "Amazon India", Industry: "E-commerce", IsVerified: true},
	{Name: "Google India", Industry: "IT & Software", IsVerified: true},
}
