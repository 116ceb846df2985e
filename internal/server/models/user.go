package models

// User is the stored user record. The password hash never leaves the
// service layer: JSON marshalling skips it.
type User struct {
	ID           string   `json:"id"`
	Login        string   `json:"login"`
	PasswordHash string   `json:"-"`
	Roles        []string `json:"roles"`
}
