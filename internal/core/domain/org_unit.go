package domain

import "time"

// OrgKind names one of the organizational entities principals refer to.
type OrgKind string

const (
	OrgCity       OrgKind = "city"
	OrgBranch     OrgKind = "branch"
	OrgDepartment OrgKind = "department"
)

// OrgKinds lists every organizational entity kind.
func OrgKinds() []OrgKind {
	return []OrgKind{OrgCity, OrgBranch, OrgDepartment}
}

func (k OrgKind) Valid() bool {
	switch k {
	case OrgCity, OrgBranch, OrgDepartment:
		return true
	}
	return false
}

// OrgUpdate is one entry of an entity's change history.
type OrgUpdate struct {
	At time.Time `json:"updatedAt"`
	By string    `json:"updatedBy,omitempty"`
}

// OrgUnit is a city, branch or department. Cities use Title and Country;
// branches and departments reference their parents by id. References are
// stored as given and not checked for existence.
type OrgUnit struct {
	ID        string      `json:"id"`
	Kind      OrgKind     `json:"kind"`
	Title     string      `json:"title"`
	Country   string      `json:"country,omitempty"`
	Address   string      `json:"address,omitempty"`
	CityID    string      `json:"city,omitempty"`
	BranchID  string      `json:"branch,omitempty"`
	Contact   string      `json:"contact,omitempty"`
	Email     string      `json:"email,omitempty"`
	CreatedBy string      `json:"createdBy,omitempty"`
	Updates   []OrgUpdate `json:"updates"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Clone returns a deep copy of u.
func (u *OrgUnit) Clone() *OrgUnit {
	if u == nil {
		return nil
	}
	c := *u
	c.Updates = append([]OrgUpdate(nil), u.Updates...)
	return &c
}
