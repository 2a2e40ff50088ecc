package service

import (
	"context"
	"errors"
	"mime/multipart"

	"agrosmart/entities"
	"agrosmart/pkg/advisory"
	"agrosmart/pkg/farmer/repository"
)

// ErrMissingField is wrapped with the name of the first empty required field.
var ErrMissingField = errors.New("missing required field")

// FieldError names the required field that was empty.
type FieldError struct{ Field string }

func (e *FieldError) Error() string { return ErrMissingField.Error() + ": " + e.Field }

func (e *FieldError) Unwrap() error { return ErrMissingField }

type RegistrationInput struct {
	Name     string
	State    string
	LGA      string
	Location string
	Crop     string
	Phone    string
}

// Photos are the optional uploads of a registration; nil means not sent.
type Photos struct {
	Photo     *multipart.FileHeader
	FarmPhoto *multipart.FileHeader
}

type CropAdvice struct {
	Crop string `json:"crop"`
	advisory.Advice
}

type FarmerService interface {
	Register(ctx context.Context, in RegistrationInput, photos Photos) (*entities.Farmer, error)
	List(ctx context.Context, f repository.Filter) ([]entities.Farmer, error)
	Recent(ctx context.Context, n int) ([]entities.Farmer, error)
	StateCounts(ctx context.Context) ([]repository.StateCount, error)
	// CropAdvice returns one advisory line per distinct crop among farmers.
	CropAdvice(ctx context.Context, farmers []entities.Farmer, max int) []CropAdvice
}
