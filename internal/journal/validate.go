package journal

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrIncompleteThinking is returned when a macro thought is missing a selection.
	ErrIncompleteThinking = errors.New("macro thinking requires cause, effect and conclusion")
	// ErrMissingSelection is returned when a required picker value is unset.
	ErrMissingSelection = errors.New("required selection missing")
	// ErrInvalidSelection is returned for a value outside the fixed vocabulary.
	ErrInvalidSelection = errors.New("selection outside vocabulary")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateDraft maps validator failures onto the package sentinels.
// missing is used for unset required fields.
func validateDraft(draft any, missing error) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate: %w", err)
	}
	// An unset field beats a bad value so the caller can prompt for it first.
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return fmt.Errorf("%w: %s", missing, fe.Field())
		}
	}
	fe := verrs[0]
	return fmt.Errorf("%w: %s=%v", ErrInvalidSelection, fe.Field(), fe.Value())
}
