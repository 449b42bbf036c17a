package form

import (
	"strings"

	"github.com/churchlife/registry/model"
)

// ValidateSubmission checks required fields in schema order and reports
// the first violation. The "Event" field must hold a selected option
// object; any other required value must be non-empty once trimmed.
// Fields absent from data count as empty.
func ValidateSubmission(fields []model.FieldDefinition, data map[string]any) error {
	for _, f := range fields {
		if !f.Required {
			continue
		}
		val := data[f.Label]

		if KindOf(f) == KindEventDropdown {
			if !isEventObject(val) {
				return invalid(f.Label, "please select a valid event")
			}
			continue
		}
		if strings.TrimSpace(stringValue(val)) == "" {
			return invalid(f.Label, "please fill in the required field: %s", f.Label)
		}
	}
	return nil
}

// isEventObject is strict on purpose: a required event selection must be
// an actual object, not a string that happens to parse as one.
func isEventObject(v any) bool {
	switch v.(type) {
	case model.EventOption, *model.EventOption, map[string]any:
		return true
	}
	return false
}
