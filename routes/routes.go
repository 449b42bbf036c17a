package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/churchlife/registry/app"
	"github.com/churchlife/registry/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	// public site
	api.Get("/registration-form", PublicGetRegistrationForm(app))
	api.Get("/event-banner", PublicGetEventBanner(app))
	api.Post("/event-registrations", PublicSubmitRegistration(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.TokenSecret))

		// CRUD form fields
		r.Get("/form-fields", ListFormFields(app))
		r.Post("/form-fields", CreateFormField(app))
		r.Put("/form-fields/{id}", UpdateFormField(app))
		r.Delete("/form-fields/{id}", DeleteFormField(app))

		// registrations, export before the id route
		r.Get("/event-registrations", ListRegistrations(app))
		r.Get("/event-registrations/export", ExportRegistrations(app))
		r.Get("/event-registrations/{id}", GetRegistrationById(app))
		r.Delete("/event-registrations/{id}", DeleteRegistration(app))

		r.Put("/event-banner", UpdateEventBanner(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}
