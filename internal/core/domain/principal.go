package domain

import "time"

// Kind identifies which family of principal a record belongs to. Each kind
// lives in its own collection and carries its own role set and natural keys.
type Kind string

const (
	KindEmployee Kind = "employee"
	KindSeeker   Kind = "seeker"
	KindUser     Kind = "user"
)

// Role is the sole authorization signal carried by a principal.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleReceptionist Role = "receptionist"
	RoleStaff        Role = "staff"
	RoleSeeker       Role = "seeker"
	RoleUser         Role = "user"
)

// NaturalKey names a business-meaningful field that must be unique per kind.
type NaturalKey string

const (
	KeyEmail  NaturalKey = "email"
	KeyMobile NaturalKey = "mobile"
	KeyCNIC   NaturalKey = "cnic"

	// KeyBusinessID is unique for every kind that allocates business ids.
	KeyBusinessID NaturalKey = "business_id"
)

// KindPolicy describes the fixed rules of a principal kind.
type KindPolicy struct {
	Roles       []Role
	DefaultRole Role
	// NaturalKeys are checked for uniqueness at registration time and backed
	// by unique indexes in the store.
	NaturalKeys []NaturalKey
	// BusinessPrefix is empty for kinds that do not get a sequential id.
	BusinessPrefix string
	// CanLogin is false for kinds that never hold a password.
	CanLogin bool
}

var policies = map[Kind]KindPolicy{
	KindEmployee: {
		Roles:          []Role{RoleAdmin, RoleReceptionist, RoleStaff},
		DefaultRole:    RoleStaff,
		NaturalKeys:    []NaturalKey{KeyCNIC},
		BusinessPrefix: "EMP",
		CanLogin:       true,
	},
	KindSeeker: {
		Roles:       []Role{RoleSeeker},
		DefaultRole: RoleSeeker,
		NaturalKeys: []NaturalKey{KeyCNIC},
	},
	KindUser: {
		Roles:       []Role{RoleAdmin, RoleUser},
		NaturalKeys: []NaturalKey{KeyEmail, KeyMobile, KeyCNIC},
		CanLogin:    true,
	},
}

// Kinds lists every known principal kind.
func Kinds() []Kind {
	return []Kind{KindEmployee, KindSeeker, KindUser}
}

// Policy returns the rules for k. The second result is false for unknown kinds.
func (k Kind) Policy() (KindPolicy, bool) {
	p, ok := policies[k]
	return p, ok
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := policies[k]
	return ok
}

// AllowsRole reports whether r belongs to the role set of k.
func (k Kind) AllowsRole(r Role) bool {
	for _, allowed := range policies[k].Roles {
		if allowed == r {
			return true
		}
	}
	return false
}

// Principal is a registered actor: an employee, a job seeker or a generic user.
type Principal struct {
	ID           string    `json:"id"`
	Kind         Kind      `json:"kind"`
	BusinessID   string    `json:"business_id,omitempty"`
	FullName     string    `json:"full_name"`
	FatherName   string    `json:"father_name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Mobile       string    `json:"mobile,omitempty"`
	CNIC         string    `json:"cnic,omitempty"`
	DOB          time.Time `json:"dob,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	Branch       string    `json:"branch,omitempty"`
	Department   string    `json:"department,omitempty"`
	Role         Role      `json:"role"`
	ImageURL     string    `json:"image_url,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Scrubbed returns a copy of p that is safe to hand to callers or to embed in
// a token: the password hash is always cleared.
func (p *Principal) Scrubbed() *Principal {
	if p == nil {
		return nil
	}
	clone := *p
	clone.PasswordHash = ""
	return &clone
}

// KeyValue returns the value p holds for the natural key k.
func (p *Principal) KeyValue(k NaturalKey) string {
	switch k {
	case KeyEmail:
		return p.Email
	case KeyMobile:
		return p.Mobile
	case KeyCNIC:
		return p.CNIC
	case KeyBusinessID:
		return p.BusinessID
	default:
		return ""
	}
}
