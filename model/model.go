package model

import "time"

// Field types an administrator can pick when defining the registration form.
const (
	FieldText     = "text"
	FieldEmail    = "email"
	FieldDropdown = "dropdown"
)

// Place types for an event option.
const (
	PlaceOnline   = "online"
	PlacePhysical = "physical"
)

// FieldDefinition describes one input of the public registration form.
// Options is either a list of plain strings or, for the "Event" dropdown,
// a list of EventOption objects; it travels as raw JSON either way.
type FieldDefinition struct {
	ID       string `json:"id,omitempty"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Options  any    `json:"options,omitempty"`
}

// EventOption is one choice of the specialized "Event" dropdown.
// Date is carried as the string the admin entered (YYYY-MM-DD);
// Amount stays a string too, it is display-only.
type EventOption struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	PlaceType string `json:"placeType"`
	PlaceName string `json:"placeName,omitempty"`
	Amount    string `json:"amount,omitempty"`
}

// Registration is one completed submission of the public form.
// DynamicData maps field label to the submitted value: a plain string
// for ordinary fields, a full EventOption object for the "Event" field.
type Registration struct {
	ID          string         `json:"id"`
	DynamicData map[string]any `json:"dynamicData"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Banner is the single banner record shown above the registration form.
// Image is a URL; upload and storage of the file itself live elsewhere.
type Banner struct {
	Title string `json:"title"`
	Image string `json:"image"`
}
