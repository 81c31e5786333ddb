package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/supplyline/catsync/internal/domain"
)

var validate = validator.New()

// EncodeRequirements validates and serializes the requirement-field set for
// storage as product metadata. The set replaces any prior one wholesale.
func EncodeRequirements(fields []domain.RequirementField) (string, error) {
	for i := range fields {
		fields[i].Type = domain.ParseFieldType(string(fields[i].Type))
		if err := validate.Struct(&fields[i]); err != nil {
			return "", fmt.Errorf("%w: requirement field %q: %v", domain.ErrInvalidInput, fields[i].Identifier, err)
		}
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("%w: encoding requirement fields: %v", domain.ErrInvalidInput, err)
	}
	return string(data), nil
}

// DecodeRequirements parses a stored requirement-field set.
func DecodeRequirements(raw string) ([]domain.RequirementField, error) {
	if raw == "" {
		return nil, nil
	}
	var fields []domain.RequirementField
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: decoding requirement fields: %v", domain.ErrInvalidInput, err)
	}
	return fields, nil
}

// ValidateResponse checks buyer-supplied answers against the field set.
// Used at checkout time before an order is relayed to the supplier.
func ValidateResponse(fields []domain.RequirementField, answers map[string]string) error {
	for _, f := range fields {
		answer, ok := answers[f.Identifier]
		if !ok || answer == "" {
			if f.Required {
				return fmt.Errorf("%w: %q is required", domain.ErrInvalidInput, f.Identifier)
			}
			continue
		}

		if f.MinLength > 0 && len(answer) < f.MinLength {
			return fmt.Errorf("%w: %q shorter than %d characters", domain.ErrInvalidInput, f.Identifier, f.MinLength)
		}
		if f.MaxLength > 0 && len(answer) > f.MaxLength {
			return fmt.Errorf("%w: %q longer than %d characters", domain.ErrInvalidInput, f.Identifier, f.MaxLength)
		}

		if f.Type == domain.FieldTypeSelect {
			valid := false
			for _, opt := range f.Options {
				if opt == answer {
					valid = true
					break
				}
			}
			if !valid {
				return fmt.Errorf("%w: %q is not an allowed option for %q", domain.ErrInvalidInput, answer, f.Identifier)
			}
		}
	}
	return nil
}
