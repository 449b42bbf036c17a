package form

import (
	"errors"
	"strconv"
	"strings"

	"github.com/churchlife/registry/model"
)

// ErrNoRegistrations is reported instead of producing an empty file.
var ErrNoRegistrations = errors.New("no registrations to export")

// ExportCSV flattens registrations into the download grid: an S.No
// column, one column per current field label in schema order, then
// CreatedAt as an ISO calendar date. The current schema drives the
// columns only; orphaned labels in old registrations are simply skipped.
//
// Each data cell is double-quoted with embedded quotes backslash-escaped,
// not doubled. Downstream consumers of the existing export expect exactly
// this framing, so it must not be switched to RFC 4180 quoting.
func ExportCSV(fields []model.FieldDefinition, regs []model.Registration) (string, error) {
	if len(regs) == 0 {
		return "", ErrNoRegistrations
	}

	var b strings.Builder
	b.WriteString("S.No")
	for _, f := range fields {
		b.WriteByte(',')
		b.WriteString(f.Label)
	}
	b.WriteString(",CreatedAt\n")

	for i, reg := range regs {
		b.WriteString(strconv.Itoa(i + 1))
		for _, f := range fields {
			raw := reg.DynamicData[f.Label]
			if f.Label == EventLabel {
				writeCell(&b, EventCell(raw))
			} else {
				writeCell(&b, stringValue(raw))
			}
		}
		var created string
		if !reg.CreatedAt.IsZero() {
			created = reg.CreatedAt.UTC().Format("2006-01-02")
		}
		writeCell(&b, created)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func writeCell(b *strings.Builder, cell string) {
	b.WriteString(`,"`)
	b.WriteString(strings.ReplaceAll(cell, `"`, `\"`))
	b.WriteByte('"')
}
