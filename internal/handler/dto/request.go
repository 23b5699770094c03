package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator for request bodies.
var validate = validator.New()

// Validate checks a request struct against its validation tags.
func Validate(req interface{}) error {
	return validate.Struct(req)
}

// SpecificationRequest describes the print job parameters.
type SpecificationRequest struct {
	Quantity            int      `json:"quantity" validate:"required,gt=0"`
	Size                string   `json:"size" validate:"required"`
	Material            string   `json:"material" validate:"required"`
	Colors              string   `json:"colors,omitempty"`
	Finishes            []string `json:"finishes,omitempty"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
}

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	Title          string               `json:"title" validate:"required,min=3,max=200"`
	Description    string               `json:"description" validate:"required"`
	ClientName     string               `json:"client_name" validate:"required,max=200"`
	ClientContact  string               `json:"client_contact,omitempty" validate:"max=200"`
	Priority       string               `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	DueDate        time.Time            `json:"due_date" validate:"required"`
	EstimatedValue float64              `json:"estimated_value" validate:"gte=0"`
	Specification  SpecificationRequest `json:"specification" validate:"required"`
	Attachments    []string             `json:"attachments,omitempty" validate:"dive,url"`
}

// TransitionRequest represents the request body for PATCH /tasks/:id/status.
type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason,omitempty" validate:"max=2000"`
}

// AddNoteRequest represents the request body for POST /tasks/:id/notes.
type AddNoteRequest struct {
	Message string `json:"message" validate:"required,max=5000"`
}
