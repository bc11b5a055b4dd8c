package models

// Message is a contact-form submission.
type Message struct {
	BaseModel
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `gorm:"index" json:"email"`
	Body     string `json:"message"`
	Category string `json:"category"`
}
