package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

func validEmployee() Fields {
	dob := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	return Fields{
		FullName:   "Ali Khan",
		FatherName: "Akbar Khan",
		Email:      "ali@example.com",
		Mobile:     "03001234567",
		CNIC:       "1234567890123",
		DOB:        &dob,
		Gender:     "Male",
		Address:    "Street 1",
		City:       "city-1",
		Branch:     "branch-1",
		Department: "dept-1",
		Role:       "staff",
		Password:   "supersecret",
	}
}

func TestRegistration_EmployeeValid(t *testing.T) {
	if err := New().Registration(domain.KindEmployee, validEmployee()); err != nil {
		t.Fatalf("expected valid employee, got %v", err)
	}
}

func TestRegistration_MissingMobile(t *testing.T) {
	f := validEmployee()
	f.Mobile = ""

	err := New().Registration(domain.KindEmployee, f)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Message, "mobileNo is required") {
		t.Fatalf("unexpected message: %q", ve.Message)
	}
}

func TestRegistration_FormatRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Fields)
		want   string
	}{
		{"mobile prefix", func(f *Fields) { f.Mobile = "04001234567" }, "must start with '03'"},
		{"mobile length", func(f *Fields) { f.Mobile = "0300123456" }, "must start with '03'"},
		{"cnic length", func(f *Fields) { f.CNIC = "12345" }, "13-digit"},
		{"gender", func(f *Fields) { f.Gender = "male" }, "gender must be one of"},
		{"role", func(f *Fields) { f.Role = "owner" }, "role must be one of"},
		{"short password", func(f *Fields) { f.Password = "short" }, "at least 8"},
		{"multibyte password over 72 bytes", func(f *Fields) { f.Password = strings.Repeat("é", 40) }, "at most 72 bytes"},
		{"email", func(f *Fields) { f.Email = "not-an-email" }, "valid email"},
	}

	v := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validEmployee()
			tc.mutate(&f)
			err := v.Registration(domain.KindEmployee, f)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestRegistration_AggregatesFailures(t *testing.T) {
	f := validEmployee()
	f.FullName = ""
	f.Address = ""

	err := New().Registration(domain.KindEmployee, f)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "fullName is required") || !strings.Contains(err.Error(), "address is required") {
		t.Fatalf("expected both failures in %q", err.Error())
	}
}

func TestRegistration_SeekerUsesDashedCNIC(t *testing.T) {
	f := Fields{
		FullName:   "Sara",
		Mobile:     "03111234567",
		CNIC:       "12345-1234567-1",
		Gender:     "Female",
		Address:    "Street 2",
		City:       "c",
		Branch:     "b",
		Department: "d",
	}
	v := New()
	if err := v.Registration(domain.KindSeeker, f); err != nil {
		t.Fatalf("expected valid seeker, got %v", err)
	}

	f.CNIC = "1234512345671"
	if err := v.Registration(domain.KindSeeker, f); err == nil {
		t.Fatalf("expected undashed seeker cnic to be rejected")
	}
}

func TestRegistration_UserRequiresPassword(t *testing.T) {
	f := validEmployee()
	f.Gender = "male"
	f.Role = "user"
	f.Password = ""

	err := New().Registration(domain.KindUser, f)
	if err == nil || !strings.Contains(err.Error(), "password is required") {
		t.Fatalf("expected password required, got %v", err)
	}
}

func TestProfile_SkipsPassword(t *testing.T) {
	f := validEmployee()
	f.Gender = "female"
	f.Role = "admin"
	f.Password = ""

	if err := New().Profile(domain.KindUser, f); err != nil {
		t.Fatalf("profile validation should ignore password, got %v", err)
	}
}

func TestRegistration_UnknownKind(t *testing.T) {
	if err := New().Registration("vendor", validEmployee()); !errors.Is(err, domain.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestFields_Trim(t *testing.T) {
	f := Fields{FullName: "  Ali ", Email: " ALI@Example.COM "}.Trim()
	if f.FullName != "Ali" || f.Email != "ali@example.com" {
		t.Fatalf("unexpected trim result: %+v", f)
	}
}

func TestPassword_ByteLimit(t *testing.T) {
	v := New()

	if err := v.Password(strings.Repeat("a", 72)); err != nil {
		t.Fatalf("72 ASCII bytes should pass, got %v", err)
	}
	if err := v.Password(strings.Repeat("é", 36)); err != nil {
		t.Fatalf("72 bytes of two-byte runes should pass, got %v", err)
	}

	err := v.Password(strings.Repeat("é", 37))
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for 74 bytes, got %v", err)
	}
	if !strings.Contains(ve.Message, "at most 72 bytes") {
		t.Fatalf("unexpected message: %q", ve.Message)
	}
}

func TestOrgUnit_Schemas(t *testing.T) {
	v := New()

	ok := []*domain.OrgUnit{
		{Kind: domain.OrgCity, Title: "Lahore", Country: "Pakistan"},
		{Kind: domain.OrgBranch, Title: "Gulberg", Address: "Main Boulevard 12", CityID: "c1", Contact: "04212345678", Email: "g@example.com"},
		{Kind: domain.OrgDepartment, Title: "HR", CityID: "c1", BranchID: "b1", Contact: "04212345678", Email: "hr@example.com"},
	}
	for _, u := range ok {
		if err := v.OrgUnit(u); err != nil {
			t.Fatalf("%s: expected valid, got %v", u.Kind, err)
		}
	}

	err := v.OrgUnit(&domain.OrgUnit{Kind: domain.OrgBranch, Title: "Gul", Address: "short", Contact: "0421"})
	if err == nil {
		t.Fatalf("expected branch errors")
	}
	for _, want := range []string{"title must be at least 5", "address must be at least 10", "city is required", "contact must contain exactly 11 digits", "email is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("missing %q in %q", want, err.Error())
		}
	}

	var ve *domain.ValidationError
	if !errors.As(v.OrgUnit(&domain.OrgUnit{Kind: "campus"}), &ve) {
		t.Fatalf("unknown kind must be a ValidationError")
	}
}
