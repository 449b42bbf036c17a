package form

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/churchlife/registry/model"
)

// EventLabel marks the specialized structured dropdown. The wire format
// keys the special case on this exact label, not on a distinct type.
const EventLabel = "Event"

// Kind is the resolved variant of a field definition, decided once
// instead of re-comparing labels at every use site.
type Kind int

const (
	KindText Kind = iota
	KindEmail
	KindDropdown
	KindEventDropdown
)

func KindOf(f model.FieldDefinition) Kind {
	switch f.Type {
	case model.FieldEmail:
		return KindEmail
	case model.FieldDropdown:
		if f.Label == EventLabel {
			return KindEventDropdown
		}
		return KindDropdown
	default:
		return KindText
	}
}

// Control returns the input control a client should render for the field.
func Control(f model.FieldDefinition) string {
	switch KindOf(f) {
	case KindEventDropdown:
		return "event-select"
	case KindDropdown:
		return "select"
	case KindEmail:
		return "email"
	default:
		return "text"
	}
}

// PublicField is a field definition plus the control hint a client uses
// to pick the input widget.
type PublicField struct {
	model.FieldDefinition
	Control string `json:"control"`
}

func Describe(f model.FieldDefinition) PublicField {
	return PublicField{FieldDefinition: f, Control: Control(f)}
}

// ValidationError reports a field constraint violation. It is always
// recoverable: the caller shows Message and lets the user retry.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, msg string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(msg, args...)}
}

// StringOptions decodes the options of a plain dropdown.
func StringOptions(f model.FieldDefinition) ([]string, error) {
	var opts []string
	if err := reparse(f.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// EventOptions decodes the options of the "Event" dropdown.
func EventOptions(f model.FieldDefinition) ([]model.EventOption, error) {
	var opts []model.EventOption
	if err := reparse(f.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// reparse round-trips v through JSON into out. Options arrive as []any
// from a decoded request body, or as the raw TEXT column from the DB.
func reparse(v any, out any) error {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		if s == "" {
			return nil
		}
		return json.Unmarshal([]byte(s), out)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// ValidateDefinition checks a field definition before it is stored.
func ValidateDefinition(f model.FieldDefinition) error {
	if strings.TrimSpace(f.Label) == "" {
		return invalid("label", "field label is required")
	}

	switch f.Type {
	case model.FieldText, model.FieldEmail:
		return nil
	case model.FieldDropdown:
	default:
		return invalid("type", "unknown field type %q", f.Type)
	}

	if KindOf(f) == KindEventDropdown {
		opts, err := EventOptions(f)
		if err != nil {
			return invalid("options", "event options are malformed")
		}
		if len(opts) == 0 {
			return invalid("options", "please provide at least one event option")
		}
		for i, opt := range opts {
			if err := validateEventOption(i, opt); err != nil {
				return err
			}
		}
		return nil
	}

	opts, err := StringOptions(f)
	if err != nil {
		return invalid("options", "dropdown options are malformed")
	}
	if len(opts) == 0 {
		return invalid("options", "please provide at least one dropdown option")
	}
	for _, opt := range opts {
		if strings.TrimSpace(opt) == "" {
			return invalid("options", "dropdown options cannot be blank")
		}
	}
	return nil
}

// amount is optional, everything else is mandatory; a physical event
// additionally needs a place name.
func validateEventOption(i int, opt model.EventOption) error {
	switch {
	case strings.TrimSpace(opt.Name) == "",
		opt.Date == "",
		strings.TrimSpace(opt.PlaceType) == "",
		opt.PlaceType == model.PlacePhysical && strings.TrimSpace(opt.PlaceName) == "":
		return invalid("options", "please complete all required details for event option %d", i+1)
	}
	return nil
}

// stringValue renders a stored value for plain display: "" for absent
// values, the string itself, or a best-effort print for anything else.
func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
