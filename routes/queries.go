package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/churchlife/registry/app"
	"github.com/churchlife/registry/form"
	"github.com/churchlife/registry/httpx"
	"github.com/churchlife/registry/log"
	"github.com/churchlife/registry/model"
)

// queryFields loads the current schema in display order. Options come
// back as the raw TEXT column and are decoded into the untyped slot.
func queryFields(ctx context.Context, app app.App) ([]model.FieldDefinition, error) {
	rows, err := app.QueryContext(ctx, `
		SELECT id, label, type, required, options
		FROM form_field
		ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := []model.FieldDefinition{}
	for rows.Next() {
		f := model.FieldDefinition{}
		var opts string
		err = rows.Scan(&f.ID, &f.Label, &f.Type, &f.Required, &opts)
		if err != nil {
			return nil, err
		}

		if opts != "" {
			err = json.Unmarshal([]byte(opts), &f.Options)
			if err != nil {
				return nil, err
			}
		}

		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// queryRegistrations loads all registrations in insertion order.
func queryRegistrations(ctx context.Context, app app.App) ([]model.Registration, error) {
	rows, err := app.QueryContext(ctx, `
		SELECT id, data, created_at
		FROM registration
		ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := []model.Registration{}
	for rows.Next() {
		reg := model.Registration{}
		var data string
		err = rows.Scan(&reg.ID, &data, &reg.CreatedAt)
		if err != nil {
			return nil, err
		}

		err = json.Unmarshal([]byte(data), &reg.DynamicData)
		if err != nil {
			return nil, err
		}

		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func queryBanner(ctx context.Context, app app.App) (banner model.Banner, err error) {
	err = app.
		QueryRowContext(ctx, "SELECT title, image FROM banner WHERE id = 1").
		Scan(&banner.Title, &banner.Image)
	return
}

// logValidationError reports a field constraint violation as a 400 with
// the field-scoped message.
func logValidationError(w http.ResponseWriter, code string, err error) {
	var ve *form.ValidationError
	if errors.As(err, &ve) {
		httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, code, "%s", ve.Message)
		return
	}
	httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, code)
}
