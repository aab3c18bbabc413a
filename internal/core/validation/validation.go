// Package validation holds the declarative registration schemas for every
// principal kind, built on go-playground/validator. Schemas trim their input
// before checking it and report every failing rule in one message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

var (
	mobilePattern     = regexp.MustCompile(`^03[0-9]{9}$`)
	cnicPattern       = regexp.MustCompile(`^[0-9]{13}$`)
	dashedCNICPattern = regexp.MustCompile(`^[0-9]{5}-[0-9]{7}-[0-9]$`)
)

// maxPasswordBytes is the longest input bcrypt accepts. Validator's max counts
// runes, so the limit is checked on the encoded length instead.
const maxPasswordBytes = 72

// Validator checks inputs against the schemas of this package.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the custom mobile and CNIC rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return strings.ToLower(f.Name)
	})
	mustRegister(v, "mobile", mobilePattern)
	mustRegister(v, "cnic", cnicPattern)
	mustRegister(v, "cnic_dashed", dashedCNICPattern)
	mustRegister(v, "contact", contactPattern)
	if err := v.RegisterValidation("bcrypt_len", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	}); err != nil {
		panic(fmt.Sprintf("validation: register bcrypt_len: %v", err))
	}
	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// Struct validates any tagged struct and returns a *domain.ValidationError
// naming every failed rule.
func (val *Validator) Struct(i any) error {
	err := val.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return &domain.ValidationError{Message: strings.Join(msgs, "; ")}
	}
	return err
}

// Fields is the kind-independent view of a principal used to build schemas.
type Fields struct {
	FullName   string
	FatherName string
	Email      string
	Mobile     string
	CNIC       string
	DOB        *time.Time
	Gender     string
	Address    string
	City       string
	Branch     string
	Department string
	Role       string
	Password   string
	ImageURL   string
}

// Trim returns f with surrounding whitespace removed from every text field.
// Emails are lowercased so lookups are case-insensitive.
func (f Fields) Trim() Fields {
	f.FullName = strings.TrimSpace(f.FullName)
	f.FatherName = strings.TrimSpace(f.FatherName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Mobile = strings.TrimSpace(f.Mobile)
	f.CNIC = strings.TrimSpace(f.CNIC)
	f.Gender = strings.TrimSpace(f.Gender)
	f.Address = strings.TrimSpace(f.Address)
	f.City = strings.TrimSpace(f.City)
	f.Branch = strings.TrimSpace(f.Branch)
	f.Department = strings.TrimSpace(f.Department)
	f.Role = strings.TrimSpace(f.Role)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	return f
}

// Registration validates f against the registration schema of kind.
func (val *Validator) Registration(kind domain.Kind, f Fields) error {
	s, err := schemaFor(kind, f, true)
	if err != nil {
		return err
	}
	return val.Struct(s)
}

// Profile validates a stored or updated record of kind. Password rules are
// skipped because the plaintext is not part of a stored profile.
func (val *Validator) Profile(kind domain.Kind, f Fields) error {
	s, err := schemaFor(kind, f, false)
	if err != nil {
		return err
	}
	return val.Struct(s)
}

type loginSchema struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Login validates the shape of a login request.
func (val *Validator) Login(email, password string) error {
	return val.Struct(loginSchema{Email: email, Password: password})
}

type passwordSchema struct {
	Password string `validate:"required,min=8,bcrypt_len"`
}

// Password validates a new password.
func (val *Validator) Password(password string) error {
	return val.Struct(passwordSchema{Password: password})
}

func schemaFor(kind domain.Kind, f Fields, withPassword bool) (any, error) {
	switch kind {
	case domain.KindEmployee:
		s := employeeSchema{
			FullName: f.FullName, FatherName: f.FatherName, Email: f.Email, Mobile: f.Mobile,
			CNIC: f.CNIC, DOB: f.DOB, Gender: f.Gender, Branch: f.Branch, Address: f.Address,
			Department: f.Department, City: f.City, Role: f.Role, ImageURL: f.ImageURL,
		}
		if withPassword {
			s.Password = f.Password
		}
		return s, nil
	case domain.KindSeeker:
		return seekerSchema{
			FullName: f.FullName, Mobile: f.Mobile, CNIC: f.CNIC, Gender: f.Gender,
			Address: f.Address, City: f.City, Branch: f.Branch, Department: f.Department,
		}, nil
	case domain.KindUser:
		s := userSchema{
			FullName: f.FullName, FatherName: f.FatherName, Email: f.Email, Mobile: f.Mobile,
			CNIC: f.CNIC, DOB: f.DOB, Gender: f.Gender, Role: f.Role, Address: f.Address,
			City: f.City, ImageURL: f.ImageURL,
		}
		if withPassword {
			return userRegistrationSchema{userSchema: s, Password: f.Password}, nil
		}
		return s, nil
	default:
		return nil, domain.ErrUnknownKind
	}
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "mobile":
		return field + " must start with '03' and contain exactly 11 digits"
	case "cnic":
		return field + " must be a 13-digit number"
	case "cnic_dashed":
		return field + " must use the format 00000-0000000-0"
	case "contact":
		return field + " must contain exactly 11 digits"
	case "bcrypt_len":
		return fmt.Sprintf("%s must be at most %d bytes long", field, maxPasswordBytes)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
