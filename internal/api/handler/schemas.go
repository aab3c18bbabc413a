package handler

import (
	"strings"
	"time"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// envelope wraps every successful response.
type envelope struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// --- Request / Response types ---

// registrationRequest accepts the fields of every kind. Employees and seekers
// send mobileNo, users send mobile.
type registrationRequest struct {
	FullName   string `json:"fullName"`
	FatherName string `json:"fatherName"`
	Email      string `json:"email"`
	MobileNo   string `json:"mobileNo"`
	Mobile     string `json:"mobile"`
	CNIC       string `json:"cnic"`
	DOB        string `json:"dob"`
	Gender     string `json:"gender"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Branch     string `json:"branch"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Password   string `json:"password"`
	ImageURL   string `json:"imageUrl"`
}

func (r registrationRequest) toInput(kind domain.Kind) (ports.RegisterInput, error) {
	dob, err := parseDate(r.DOB)
	if err != nil {
		return ports.RegisterInput{}, err
	}
	return ports.RegisterInput{
		Kind:       kind,
		FullName:   r.FullName,
		FatherName: r.FatherName,
		Email:      r.Email,
		Mobile:     firstNonEmpty(r.MobileNo, r.Mobile),
		CNIC:       r.CNIC,
		DOB:        dob,
		Gender:     r.Gender,
		Address:    r.Address,
		City:       r.City,
		Branch:     r.Branch,
		Department: r.Department,
		Role:       r.Role,
		Password:   r.Password,
		ImageURL:   r.ImageURL,
	}, nil
}

// updateRequest is a partial profile update; absent fields stay untouched.
type updateRequest struct {
	FullName   *string `json:"fullName"`
	FatherName *string `json:"fatherName"`
	Email      *string `json:"email"`
	MobileNo   *string `json:"mobileNo"`
	Mobile     *string `json:"mobile"`
	CNIC       *string `json:"cnic"`
	DOB        *string `json:"dob"`
	Gender     *string `json:"gender"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	Branch     *string `json:"branch"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
	ImageURL   *string `json:"imageUrl"`
}

func (r updateRequest) toInput() (ports.UpdateInput, error) {
	in := ports.UpdateInput{
		FullName:   r.FullName,
		FatherName: r.FatherName,
		Email:      r.Email,
		Mobile:     r.MobileNo,
		CNIC:       r.CNIC,
		Gender:     r.Gender,
		Address:    r.Address,
		City:       r.City,
		Branch:     r.Branch,
		Department: r.Department,
		Role:       r.Role,
		ImageURL:   r.ImageURL,
	}
	if in.Mobile == nil {
		in.Mobile = r.Mobile
	}
	if r.DOB != nil {
		dob, err := parseDate(*r.DOB)
		if err != nil {
			return ports.UpdateInput{}, err
		}
		in.DOB = dob
	}
	return in, nil
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string            `json:"token"`
	Principal *domain.Principal `json:"principal"`
}

type passwordResetRequest struct {
	CNIC     string `json:"cnic"     label:"cnic"     validate:"required"`
	Password string `json:"password" label:"password" validate:"required"`
}

type listQuery struct {
	CNIC       string `query:"cnic"`
	BusinessID string `query:"business_id"`
	Email      string `query:"email"`
	Mobile     string `query:"mobile"`
	Page       int    `query:"page"  label:"page"  validate:"omitempty,min=1,max=1000000"`
	Limit      int    `query:"limit" label:"limit" validate:"omitempty,min=1,max=100"`
}

type listResponse struct {
	Items      []*domain.Principal `json:"items"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDate accepts a calendar date or an RFC 3339 timestamp. Empty input
// yields nil so the schema can report the field as missing.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domain.NewValidationError("dob must be a date in YYYY-MM-DD format")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// orgUnitRequest accepts the fields of a city, branch or department. A city
// sends its own name as "city"; branches and departments send the id of the
// city they belong to under the same key.
type orgUnitRequest struct {
	Title   *string `json:"title"`
	City    *string `json:"city"`
	Country *string `json:"country"`
	Address *string `json:"address"`
	Branch  *string `json:"branch"`
	Contact *string `json:"contact"`
	Email   *string `json:"email"`
}

func (r orgUnitRequest) toInput(kind domain.OrgKind) ports.OrgUnitInput {
	in := ports.OrgUnitInput{
		Title:    r.Title,
		Country:  r.Country,
		Address:  r.Address,
		BranchID: r.Branch,
		Contact:  r.Contact,
		Email:    r.Email,
	}
	if kind == domain.OrgCity {
		in.Title = r.City
	} else {
		in.CityID = r.City
	}
	return in
}
