package user

// Principal is the authenticated caller resolved at the HTTP boundary.
type Principal struct {
	UserID      string
	Email       string
	DisplayName string
}
