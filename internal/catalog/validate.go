package catalog

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxAuthorNameLength = 100
	MaxTitleLength      = 200
	MinPublicationYear  = 1000
	MaxPublicationYear  = 9999
)

func (in CreateBookInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&in.PublicationYear, validation.Required,
			validation.Min(MinPublicationYear), validation.Max(MaxPublicationYear)),
		validation.Field(&in.AuthorID, validation.Required),
	)
}

func (in UpdateBookInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.NilOrNotEmpty, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&in.PublicationYear, validation.NilOrNotEmpty,
			validation.Min(MinPublicationYear), validation.Max(MaxPublicationYear)),
		validation.Field(&in.AuthorID, validation.NilOrNotEmpty),
	)
}

// validateAuthorName checks a canonical author name.
func validateAuthorName(name string) error {
	err := validation.Validate(name, validation.Required, validation.RuneLength(1, MaxAuthorNameLength))
	if err != nil {
		return fmt.Errorf("%w: name: %v", ErrInvalidInput, err)
	}
	return nil
}

func invalidInput(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// supplied treats nil and whitespace-only strings as omitted.
func supplied(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
