package domain

// Claims is the scrubbed projection of a principal that travels inside a
// bearer token. It never carries the password hash.
type Claims struct {
	PrincipalID string `json:"pid"`
	Kind        Kind   `json:"kind"`
	Role        Role   `json:"role"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	BusinessID  string `json:"business_id,omitempty"`
}

// ClaimsFor projects p into token claims.
func ClaimsFor(p *Principal) Claims {
	return Claims{
		PrincipalID: p.ID,
		Kind:        p.Kind,
		Role:        p.Role,
		Name:        p.FullName,
		Email:       p.Email,
		BusinessID:  p.BusinessID,
	}
}
