package models

const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Identity is the authenticated caller, taken from the bearer token and
// passed explicitly into every service call.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func (i Identity) IsZero() bool {
	return i.UserID == ""
}
