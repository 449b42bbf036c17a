package routes

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/churchlife/registry/app"
	"github.com/churchlife/registry/form"
	"github.com/churchlife/registry/httpx"
	"github.com/churchlife/registry/log"
	"github.com/churchlife/registry/model"
)

func ListFormFields(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := queryFields(r.Context(), app)
		if err != nil {
			httpx.LogInternalError(w, "db.get_fields", err)
			return
		}

		render.JSON(w, r, fields)
	}
}

func CreateFormField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		field := model.FieldDefinition{}
		err := render.DecodeJSON(r.Body, &field)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		err = form.ValidateDefinition(field)
		if err != nil {
			logValidationError(w, "field.validate", err)
			return
		}

		id, err := model.NewID("fld")
		if err != nil {
			httpx.LogInternalError(w, "id.generate", err)
			return
		}

		options, err := encodeOptions(field.Options)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_field.encode_options", err)
			return
		}

		// new fields go to the end of the display order
		_, err = app.ExecContext(r.Context(), `
			INSERT INTO form_field (id, position, label, type, required, options)
			SELECT ?, COALESCE(MAX(position), 0) + 1, ?, ?, ?, ?
			FROM form_field`,
			id, field.Label, field.Type, field.Required, options,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_field", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": id,
		})
	}
}

func UpdateFormField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fieldId := chi.URLParam(r, "id")

		field := model.FieldDefinition{}
		err := render.DecodeJSON(r.Body, &field)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		err = form.ValidateDefinition(field)
		if err != nil {
			logValidationError(w, "field.validate", err)
			return
		}

		options, err := encodeOptions(field.Options)
		if err != nil {
			httpx.LogInternalError(w, "db.update_field.encode_options", err)
			return
		}

		// replaces the definition in place, position kept; existing
		// registrations are never touched
		res, err := app.ExecContext(r.Context(), `
			UPDATE form_field
			SET
				label = ?,
				type = ?,
				required = ?,
				options = ?
			WHERE id = ?`,
			field.Label, field.Type, field.Required, options, fieldId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_field", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.update_field.verify", err)
			return
		}
		if n < 1 {
			httpx.LogNotFound(w, "update_field", fieldId)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteFormField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fieldId := chi.URLParam(r, "id")

		res, err := app.ExecContext(r.Context(), `
			DELETE FROM form_field WHERE id = ?`,
			fieldId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.delete_field", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.delete_field.verify", err)
			return
		}
		if n < 1 {
			httpx.LogNotFound(w, "delete_field", fieldId)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ListRegistrations(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regs, err := queryRegistrations(r.Context(), app)
		if err != nil {
			httpx.LogInternalError(w, "db.get_registrations", err)
			return
		}

		render.JSON(w, r, regs)
	}
}

func GetRegistrationById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regId := chi.URLParam(r, "id")

		reg := model.Registration{ID: regId}
		var data string
		err := app.QueryRowContext(r.Context(), `
			SELECT data, created_at
			FROM registration
			WHERE id = ?`,
			regId,
		).Scan(&data, &reg.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "get_registration", regId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_registration", err)
			return
		}

		err = json.Unmarshal([]byte(data), &reg.DynamicData)
		if err != nil {
			httpx.LogInternalError(w, "db.get_registration.parse_data", err)
			return
		}

		resp := map[string]any{
			"registration": reg,
		}
		// resolve the event selection for display; shape mismatches from
		// old schema versions fall back to the raw value
		if v, found := reg.DynamicData[form.EventLabel]; found {
			if opt, ok := form.EventOptionFromValue(v); ok {
				resp["event"] = map[string]any{
					"name":   opt.Name,
					"date":   form.DisplayDate(opt.Date),
					"place":  form.Place(opt),
					"amount": opt.Amount,
				}
			}
		}

		render.JSON(w, r, resp)
	}
}

func DeleteRegistration(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regId := chi.URLParam(r, "id")

		res, err := app.ExecContext(r.Context(), `
			DELETE FROM registration WHERE id = ?`,
			regId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.delete_registration", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.delete_registration.verify", err)
			return
		}
		if n < 1 {
			httpx.LogNotFound(w, "delete_registration", regId)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ExportRegistrations(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := queryFields(r.Context(), app)
		if err != nil {
			httpx.LogInternalError(w, "db.get_fields", err)
			return
		}
		regs, err := queryRegistrations(r.Context(), app)
		if err != nil {
			httpx.LogInternalError(w, "db.get_registrations", err)
			return
		}

		csv, err := form.ExportCSV(fields, regs)
		if errors.Is(err, form.ErrNoRegistrations) {
			httpx.LogStatusMsg(w, http.StatusNotFound, log.DebugLevel, "export.empty", "no registrations to export")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "export.build", err)
			return
		}

		w.Header().Set("content-type", "text/csv; charset=utf-8")
		w.Header().Set("content-disposition", `attachment; filename="registrations.csv"`)
		w.Write([]byte(csv))
	}
}

func UpdateEventBanner(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		banner := model.Banner{}
		err := render.DecodeJSON(r.Body, &banner)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		_, err = app.ExecContext(r.Context(), `
			UPDATE banner
			SET
				title = ?,
				image = ?
			WHERE id = 1`,
			banner.Title, banner.Image,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_banner", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func encodeOptions(options any) (string, error) {
	if options == nil {
		return "", nil
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
