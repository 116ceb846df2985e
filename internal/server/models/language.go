package models

// Language is a registered target language. Code doubles as the role token
// that grants translation rights for this language.
type Language struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
