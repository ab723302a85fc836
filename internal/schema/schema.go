package schema

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"pantry-api/internal/model"
)

type Type string

const (
	TypeString Type = "string"
	TypeInt    Type = "int"
	TypeNumber Type = "number"
	TypeBool   Type = "bool"
	TypeDate   Type = "date"
	TypeArray  Type = "array"
	TypeObject Type = "object"
	TypeID     Type = "id"
)

// Field declares the constraints a single document field must satisfy.
type Field struct {
	Type      Type
	Enum      []string
	Minimum   *float64
	MinLength int
	Pattern   *regexp.Regexp
	Items     *Schema
}

// Schema is the structural contract a document must satisfy before it is
// allowed to reach durable storage. A closed schema rejects unknown fields.
type Schema struct {
	Name     string
	Required []string
	Closed   bool
	Fields   map[string]Field
}

// ValidationError carries every violated constraint, not just the first.
type ValidationError struct {
	Schema     string
	Violations []model.FieldViolation
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fmt.Sprintf("document violates schema %q: %s", e.Schema, strings.Join(fields, ", "))
}

// Validate checks doc against the full contract, including required-field
// presence. It returns nil or a *ValidationError.
func (s *Schema) Validate(doc map[string]any) error {
	violations := s.check(doc, "", true)
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Schema: s.Name, Violations: violations}
}

// ValidatePartial checks only the fields present in doc, for partial updates
// where absent fields keep their stored values.
func (s *Schema) ValidatePartial(doc map[string]any) error {
	violations := s.check(doc, "", false)
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Schema: s.Name, Violations: violations}
}

func (s *Schema) check(doc map[string]any, prefix string, requirePresence bool) []model.FieldViolation {
	var violations []model.FieldViolation

	add := func(field string, reason string) {
		violations = append(violations, model.FieldViolation{Field: prefix + field, Reason: reason})
	}

	if requirePresence {
		for _, name := range s.Required {
			if value, present := doc[name]; !present || value == nil {
				add(name, "required field is missing")
			}
		}
	}

	if s.Closed {
		unknown := make([]string, 0)
		for name := range doc {
			if _, declared := s.Fields[name]; !declared {
				unknown = append(unknown, name)
			}
		}
		sort.Strings(unknown)
		for _, name := range unknown {
			add(name, "field is not allowed by the schema")
		}
	}

	for name, field := range s.Fields {
		value, present := doc[name]
		if !present || value == nil {
			continue
		}
		violations = append(violations, checkField(prefix+name, field, value)...)
	}

	return violations
}

func checkField(path string, field Field, value any) []model.FieldViolation {
	var violations []model.FieldViolation

	add := func(reason string) {
		violations = append(violations, model.FieldViolation{Field: path, Reason: reason})
	}

	switch field.Type {
	case TypeString:
		s, ok := value.(string)
		if !ok {
			add("must be a string")
			return violations
		}
		if field.MinLength > 0 && len(s) < field.MinLength {
			add(fmt.Sprintf("must be at least %d characters", field.MinLength))
		}
		if field.Pattern != nil && !field.Pattern.MatchString(s) {
			add("does not match the required pattern")
		}
		if len(field.Enum) > 0 && !contains(field.Enum, s) {
			add(fmt.Sprintf("must be one of: %s", strings.Join(field.Enum, ", ")))
		}

	case TypeInt:
		n, ok := asNumber(value)
		if !ok || n != math.Trunc(n) {
			add("must be an integer")
			return violations
		}
		if field.Minimum != nil && n < *field.Minimum {
			add(fmt.Sprintf("must be at least %g", *field.Minimum))
		}

	case TypeNumber:
		n, ok := asNumber(value)
		if !ok {
			add("must be a number")
			return violations
		}
		if field.Minimum != nil && n < *field.Minimum {
			add(fmt.Sprintf("must be at least %g", *field.Minimum))
		}

	case TypeBool:
		if _, ok := value.(bool); !ok {
			add("must be a boolean")
		}

	case TypeDate:
		if !isDate(value) {
			add("must be a valid date")
		}

	case TypeID:
		s, ok := value.(string)
		if !ok {
			add("must be an id string")
			return violations
		}
		if _, err := uuid.Parse(s); err != nil {
			add("must be a valid id")
		}

	case TypeObject:
		doc, ok := value.(map[string]any)
		if !ok {
			add("must be an object")
			return violations
		}
		if field.Items != nil {
			violations = append(violations, field.Items.check(doc, path+".", true)...)
		}

	case TypeArray:
		elements, ok := value.([]any)
		if !ok {
			add("must be an array")
			return violations
		}
		if field.Items == nil {
			return violations
		}
		for i, element := range elements {
			elementPath := fmt.Sprintf("%s[%d].", path, i)
			doc, ok := element.(map[string]any)
			if !ok {
				violations = append(violations, model.FieldViolation{
					Field:  strings.TrimSuffix(elementPath, "."),
					Reason: "must be an object",
				})
				continue
			}
			violations = append(violations, field.Items.check(doc, elementPath, true)...)
		}
	}

	return violations
}

func asNumber(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func isDate(value any) bool {
	switch v := value.(type) {
	case time.Time:
		return true
	case string:
		_, err := time.Parse(time.RFC3339, v)
		return err == nil
	default:
		return false
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
