package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"hauler-workers/internal/common/errors"
)

// JSONSchema defines the structure for job variable schemas. Zeebe hands a
// worker every process variable in scope, so schemas never forbid extra
// properties.
type JSONSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

type Property struct {
	Type        string              `json:"type"`
	Description string              `json:"description,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Pattern     *string             `json:"pattern,omitempty"`
	MinLength   *int                `json:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateInput validates input against schema with gojsonschema.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	if input == nil {
		input = map[string]interface{}{}
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(input))
	if err != nil {
		return &ValidationResult{
			Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "SCHEMA_ERROR"}},
		}
	}

	var out []ValidationError
	for _, desc := range result.Errors() {
		out = append(out, ValidationError{
			Field:   fieldName(desc),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })

	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: out,
	}
}

// fieldName reports the offending property. For "required" errors gojsonschema
// points at the parent object, so the missing property is read from details.
func fieldName(desc gojsonschema.ResultError) string {
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok {
			if desc.Field() == "(root)" {
				return prop
			}
			return desc.Field() + "." + prop
		}
	}
	return desc.Field()
}

// Decode parses Zeebe job variables, validates them against schema and
// unmarshals them into out.
func Decode(variables string, schema JSONSchema, out interface{}) error {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &raw); err != nil {
		return errors.NewInputParsingFailedError(err)
	}

	if result := ValidateInput(raw, schema); !result.Valid {
		return errors.NewValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}

	if err := json.Unmarshal([]byte(variables), out); err != nil {
		return errors.NewInputParsingFailedError(err)
	}
	return nil
}

var taskTypePattern = regexp.MustCompile(`^[a-z]+(\.[a-z][a-z-]*){2}$`)

// ValidateTaskTypeNaming checks that a job type follows domain.subject.action,
// e.g. entitlement.service-area.check.
func ValidateTaskTypeNaming(taskType string) error {
	if !taskTypePattern.MatchString(taskType) {
		return fmt.Errorf("task type %q must follow format: domain.subject.action (e.g., entitlement.feature.check)", taskType)
	}
	return nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Common property builders.

func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }

// TierProperty describes a tier variable. Values are checked by the engine,
// not the schema, so an unknown tier surfaces as UNKNOWN_TIER.
func TierProperty(description string) Property {
	return Property{Type: "string", Description: description}
}

// CountProperty describes a usage counter. Negative values are left to the
// engine so they surface as INVALID_USAGE.
func CountProperty(description string) Property {
	return Property{Type: "integer", Description: description}
}
