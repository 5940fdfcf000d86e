package domain

// Company is static reference data for the company directory.
type Company struct {
	Name       string
	Industry   string
	Logo       string
	IsVerified bool
}
