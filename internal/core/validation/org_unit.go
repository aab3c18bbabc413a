package validation

import (
	"regexp"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

var contactPattern = regexp.MustCompile(`^[0-9]{11}$`)

type citySchema struct {
	City    string `label:"city"    validate:"required,min=3,max=50"`
	Country string `label:"country" validate:"required,min=3,max=50"`
}

type branchSchema struct {
	Title   string `label:"title"   validate:"required,min=5,max=50"`
	Address string `label:"address" validate:"required,min=10,max=200"`
	City    string `label:"city"    validate:"required"`
	Contact string `label:"contact" validate:"required,contact"`
	Email   string `label:"email"   validate:"required,email"`
}

type departmentSchema struct {
	Title   string `label:"title"   validate:"required,min=3,max=100"`
	City    string `label:"city"    validate:"required"`
	Branch  string `label:"branch"  validate:"required"`
	Contact string `label:"contact" validate:"required,contact"`
	Email   string `label:"email"   validate:"required,email"`
}

// OrgUnit validates u against the schema of its kind.
func (val *Validator) OrgUnit(u *domain.OrgUnit) error {
	switch u.Kind {
	case domain.OrgCity:
		return val.Struct(citySchema{City: u.Title, Country: u.Country})
	case domain.OrgBranch:
		return val.Struct(branchSchema{
			Title: u.Title, Address: u.Address, City: u.CityID, Contact: u.Contact, Email: u.Email,
		})
	case domain.OrgDepartment:
		return val.Struct(departmentSchema{
			Title: u.Title, City: u.CityID, Branch: u.BranchID, Contact: u.Contact, Email: u.Email,
		})
	default:
		return domain.NewValidationError("unknown organization kind %q", u.Kind)
	}
}
