package domain

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsHR() bool {
	return a.Role == RoleHR
}

// CanAccess reports whether the actor may see data owned by userID.
func (a Actor) CanAccess(userID string) bool {
	return a.IsHR() || a.UserID == userID
}
