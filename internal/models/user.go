package models

import (
	"time"
)

// Address is the structured delivery address used both on user profiles
// and on order shipping details.
type Address struct {
	City          string `json:"city"`
	Area          string `json:"area"`
	Street        string `json:"street"`
	Landmarks     string `json:"landmarks"`
	ResidenceType string `json:"residence_type"` // apartment|private_house|work
	Floor         string `json:"floor"`
	Apartment     string `json:"apartment"`
}

// User represents a registered customer.
type User struct {
	BaseModel
	Name            string     `json:"name"`
	Email           string     `gorm:"uniqueIndex" json:"email"`
	PasswordHash    string     `json:"-"`
	Phone           string     `json:"phone"`
	Address         Address    `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	ResetOTP        string     `json:"-"`
	ResetOTPExpires *time.Time `json:"-"`
	Orders          []Order    `json:"orders,omitempty"`
}
