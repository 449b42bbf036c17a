package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/churchlife/registry/app"
	"github.com/churchlife/registry/form"
	"github.com/churchlife/registry/httpx"
	"github.com/churchlife/registry/log"
	"github.com/churchlife/registry/model"
)

// PublicGetRegistrationForm returns everything the public page needs to
// render the form: the banner and the ordered fields, each with the
// control hint the client should use.
func PublicGetRegistrationForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		banner, err := queryBanner(r.Context(), app)
		if err != nil {
			httpx.LogInternalError(w, "db.get_banner", err)
			return
		}

		fields, err := queryFields(r.Context(), app)
		if err != nil {
			httpx.LogInternalError(w, "db.get_fields", err)
			return
		}

		public := make([]form.PublicField, len(fields))
		for i, f := range fields {
			public[i] = form.Describe(f)
		}

		render.JSON(w, r, map[string]any{
			"banner": banner,
			"fields": public,
			// initial input state: every label mapped to ""
			"values": form.NewValues(fields),
		})
	}
}

func PublicGetEventBanner(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		banner, err := queryBanner(r.Context(), app)
		if err != nil {
			httpx.LogInternalError(w, "db.get_banner", err)
			return
		}

		render.JSON(w, r, banner)
	}
}

type registrationRequest struct {
	DynamicData map[string]any `json:"dynamicData"`
}

// PublicSubmitRegistration validates a submission against the current
// schema and persists it whole. Nothing is stored when validation fails.
func PublicSubmitRegistration(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submission := registrationRequest{}
		err := render.DecodeJSON(r.Body, &submission)
		if err != nil || submission.DynamicData == nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		fields, err := queryFields(r.Context(), app)
		if err != nil {
			httpx.LogInternalError(w, "db.get_fields", err)
			return
		}

		err = form.ValidateSubmission(fields, submission.DynamicData)
		if err != nil {
			logValidationError(w, "registration.validate", err)
			return
		}

		id, err := model.NewID("reg")
		if err != nil {
			httpx.LogInternalError(w, "id.generate", err)
			return
		}

		data, err := json.Marshal(submission.DynamicData)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_registration.encode_data", err)
			return
		}

		createdAt := time.Now()
		_, err = app.ExecContext(r.Context(), `
			INSERT INTO registration (id, data, created_at)
			VALUES (?, ?, ?)`,
			id, string(data), createdAt,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_registration", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id":        id,
			"createdAt": createdAt,
		})
	}
}
