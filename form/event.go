package form

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/churchlife/registry/model"
)

// EventOptionFromValue leniently interprets a stored event value: an
// option object is used as is, a string is tried as JSON, anything else
// fails. Schema edits can leave old registrations holding values of the
// wrong shape; callers fall back to the raw value instead of erroring.
func EventOptionFromValue(v any) (opt model.EventOption, ok bool) {
	switch val := v.(type) {
	case model.EventOption:
		return val, true
	case *model.EventOption:
		if val == nil {
			return opt, false
		}
		return *val, true
	case map[string]any:
		if err := reparse(val, &opt); err != nil {
			return opt, false
		}
		return opt, true
	case string:
		if val == "" || json.Unmarshal([]byte(val), &opt) != nil {
			return model.EventOption{}, false
		}
		return opt, true
	default:
		return opt, false
	}
}

// Place resolves an option's display place: the venue name for physical
// events, the place type ("online") otherwise.
func Place(opt model.EventOption) string {
	if opt.PlaceType == model.PlacePhysical {
		return opt.PlaceName
	}
	return opt.PlaceType
}

// DisplayDate renders an option date as M/D/YYYY without leading zeros,
// or "" when the stored date does not parse.
func DisplayDate(date string) string {
	t, ok := parseDate(date)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EventCell renders the composite one-line summary of an event value
// used by the export and the registration detail view, or the raw value
// when the stored shape cannot be interpreted.
func EventCell(v any) string {
	opt, ok := EventOptionFromValue(v)
	if !ok {
		return stringValue(v)
	}
	return fmt.Sprintf("Name: %s; Date: %s; Place: %s; Amount: %s",
		opt.Name, DisplayDate(opt.Date), Place(opt), opt.Amount)
}
