package validation

import "time"

type employeeSchema struct {
	FullName   string     `label:"fullName"   validate:"required"`
	FatherName string     `label:"fatherName" validate:"required"`
	Email      string     `label:"email"      validate:"omitempty,email"`
	Mobile     string     `label:"mobileNo"   validate:"required,mobile"`
	CNIC       string     `label:"cnic"       validate:"omitempty,cnic"`
	DOB        *time.Time `label:"dob"        validate:"required"`
	Gender     string     `label:"gender"     validate:"required,oneof=Male Female"`
	Branch     string     `label:"branch"     validate:"required"`
	Address    string     `label:"address"    validate:"required"`
	Department string     `label:"department" validate:"required"`
	City       string     `label:"city"       validate:"required"`
	Role       string     `label:"role"       validate:"omitempty,oneof=admin receptionist staff"`
	Password   string     `label:"password"   validate:"omitempty,min=8,bcrypt_len"`
	ImageURL   string     `label:"imageUrl"`
}

type seekerSchema struct {
	FullName   string `label:"fullName"   validate:"required"`
	Mobile     string `label:"mobileNo"   validate:"required,mobile"`
	CNIC       string `label:"cnic"       validate:"omitempty,cnic_dashed"`
	Gender     string `label:"gender"     validate:"required,oneof=Male Female"`
	Address    string `label:"address"    validate:"required"`
	City       string `label:"city"       validate:"required"`
	Branch     string `label:"branch"     validate:"required"`
	Department string `label:"department" validate:"required"`
}

type userSchema struct {
	FullName   string     `label:"fullName"   validate:"required"`
	FatherName string     `label:"fatherName" validate:"required"`
	Email      string     `label:"email"      validate:"required,email"`
	Mobile     string     `label:"mobile"     validate:"required,mobile"`
	CNIC       string     `label:"cnic"       validate:"omitempty,cnic"`
	DOB        *time.Time `label:"dob"        validate:"required"`
	Gender     string     `label:"gender"     validate:"required,oneof=male female other"`
	Role       string     `label:"role"       validate:"required,oneof=admin user"`
	Address    string     `label:"address"    validate:"required"`
	City       string     `label:"city"       validate:"required"`
	ImageURL   string     `label:"imageUrl"`
}

// Users always log in, so registration demands a password.
type userRegistrationSchema struct {
	userSchema
	Password string `label:"password" validate:"required,min=8,bcrypt_len"`
}
