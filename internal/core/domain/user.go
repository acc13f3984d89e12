package domain

// User represents an application user within the core domain.
type User struct {
	UserID          string `json:"userID"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	PasswordHash    string `json:"-"`
	DefaultCurrency string `json:"defaultCurrency"`
	AuditFields
}
