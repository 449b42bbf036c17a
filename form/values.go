package form

import "github.com/churchlife/registry/model"

// Values is the live key/value state backing one form submission,
// keyed by field label. Ordinary fields hold plain strings; the "Event"
// field holds a full model.EventOption once a selection is made.
type Values map[string]any

// NewValues builds the initial container: every current field label
// mapped to the empty string.
func NewValues(fields []model.FieldDefinition) Values {
	v := make(Values, len(fields))
	for _, f := range fields {
		v[f.Label] = ""
	}
	return v
}

// Set overwrites the value under label. No coercion.
func (v Values) Set(label string, value any) {
	v[label] = value
}

// SetEventSelection looks name up in the field's options and stores the
// entire matching option under the field's label. No match, including
// the empty placeholder selection, resets the value to "".
func (v Values) SetEventSelection(f model.FieldDefinition, name string) (model.EventOption, bool) {
	opts, err := EventOptions(f)
	if err == nil {
		for _, opt := range opts {
			if opt.Name == name {
				v[f.Label] = opt
				return opt, true
			}
		}
	}
	v[f.Label] = ""
	return model.EventOption{}, false
}

// Reset returns the container to its initial empty-string state for the
// given fields, dropping any label no longer in the schema.
func (v Values) Reset(fields []model.FieldDefinition) {
	for k := range v {
		delete(v, k)
	}
	for _, f := range fields {
		v[f.Label] = ""
	}
}
