package models

import "time"

// ContactRow is one normalized row of a bulk import.
type ContactRow struct {
	FullName      string `json:"full_name"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
}

// Empty reports whether the row lacks both identifying fields.
func (r ContactRow) Empty() bool {
	return r.FullName == "" && r.ContactNumber == ""
}

type Contact struct {
	ID            uint64    `json:"id"`
	FullName      string    `json:"full_name"`
	ContactNumber string    `json:"contact_number"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
}

// ContactMessage is a contact-us form submission.
type ContactMessage struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type Admin struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
