package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// ContactRequest is a consultation request left through the contact form.
type ContactRequest struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactInput is the public form payload.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

// ValidationError names the first offending field of a request body.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func lengthBetween(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min {
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s must contain at least %d character(s)", field, min)}
	}
	if n > max {
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s must contain at most %d character(s)", field, max)}
	}
	return nil
}

// Normalize trims surrounding whitespace from every field.
func (in *ContactInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)
}

// Validate checks the form limits: name 2-100, email up to 254, phone up to
// 20 and message 5-2000 characters.
func (in ContactInput) Validate() error {
	if err := lengthBetween("name", in.Name, 2, 100); err != nil {
		return err
	}
	if err := lengthBetween("email", in.Email, 1, 254); err != nil {
		return err
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return &ValidationError{Field: "email", Message: "Invalid email"}
	}
	if utf8.RuneCountInString(in.Phone) > 20 {
		return &ValidationError{Field: "phone", Message: "phone must contain at most 20 character(s)"}
	}
	return lengthBetween("message", in.Message, 5, 2000)
}
