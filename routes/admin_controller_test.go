package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churchlife/registry/app"
	"github.com/churchlife/registry/config"
)

func newMockApp(t *testing.T) (app.App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return app.App{DB: db, Config: config.Config{TokenSecret: "test-secret"}}, mock
}

func fieldRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "label", "type", "required", "options"})
}

func registrationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "data", "created_at"})
}

const eventOptionsJSON = `[{"name":"Picnic","date":"2025-04-05","placeType":"physical","placeName":"Hall A","amount":"100"}]`

func TestListFormFields(t *testing.T) {
	a, mock := newMockApp(t)
	mock.ExpectQuery("SELECT id, label, type, required, options FROM form_field").
		WillReturnRows(fieldRows().
			AddRow("fld-1", "Full Name", "text", true, "").
			AddRow("fld-2", "Event", "dropdown", true, eventOptionsJSON))

	w := httptest.NewRecorder()
	ListFormFields(a)(w, httptest.NewRequest("GET", "/api/admin/form-fields", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"label":"Full Name"`)
	assert.Contains(t, w.Body.String(), `"placeName":"Hall A"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFormField(t *testing.T) {
	a, mock := newMockApp(t)
	mock.ExpectExec("INSERT INTO form_field").
		WithArgs(sqlmock.AnyArg(), "Full Name", "text", true, "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	req := httptest.NewRequest("POST", "/api/admin/form-fields",
		strings.NewReader(`{"label":"Full Name","type":"text","required":true}`))
	w := httptest.NewRecorder()
	CreateFormField(a)(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"fld-`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFormField_ValidationFailsBeforeInsert(t *testing.T) {
	a, mock := newMockApp(t)

	req := httptest.NewRequest("POST", "/api/admin/form-fields",
		strings.NewReader(`{"label":"","type":"text"}`))
	w := httptest.NewRecorder()
	CreateFormField(a)(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "field label is required")
	assert.NoError(t, mock.ExpectationsWereMet(), "no DB write on validation failure")
}

func TestCreateFormField_EventOptionsValidated(t *testing.T) {
	a, mock := newMockApp(t)

	// physical event without a place name
	req := httptest.NewRequest("POST", "/api/admin/form-fields",
		strings.NewReader(`{
			"label":"Event","type":"dropdown","required":true,
			"options":[{"name":"Retreat","date":"2025-05-01","placeType":"physical"}]
		}`))
	w := httptest.NewRecorder()
	CreateFormField(a)(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "event option 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func adminRouter(a app.App) http.Handler {
	r := chi.NewRouter()
	r.Put("/form-fields/{id}", UpdateFormField(a))
	r.Delete("/form-fields/{id}", DeleteFormField(a))
	r.Get("/event-registrations/{id}", GetRegistrationById(a))
	r.Delete("/event-registrations/{id}", DeleteRegistration(a))
	return r
}

func TestUpdateFormField(t *testing.T) {
	a, mock := newMockApp(t)
	mock.ExpectExec("UPDATE form_field").
		WithArgs("Parish", "dropdown", false, `["North","South"]`, "fld-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest("PUT", "/form-fields/fld-1",
		strings.NewReader(`{"label":"Parish","type":"dropdown","options":["North","South"]}`))
	w := httptest.NewRecorder()
	adminRouter(a).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFormField_NotFound(t *testing.T) {
	a, mock := newMockApp(t)
	mock.ExpectExec("UPDATE form_field").
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := httptest.NewRequest("PUT", "/form-fields/fld-gone",
		strings.NewReader(`{"label":"Parish","type":"text"}`))
	w := httptest.NewRecorder()
	adminRouter(a).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFormField(t *testing.T) {
	a, mock := newMockApp(t)
	mock.ExpectExec("DELETE FROM form_field").
		WithArgs("fld-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest("DELETE", "/form-fields/fld-1", nil)
	w := httptest.NewRecorder()
	adminRouter(a).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRegistration_NotFound(t *testing.T) {
	a, mock := newMockApp(t)
	mock.ExpectExec("DELETE FROM registration").
		WithArgs("reg-gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := httptest.NewRequest("DELETE", "/event-registrations/reg-gone", nil)
	w := httptest.NewRecorder()
	adminRouter(a).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRegistration(t *testing.T) {
	a, mock := newMockApp(t)
	mock.ExpectExec("DELETE FROM registration").
		WithArgs("reg-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest("DELETE", "/event-registrations/reg-1", nil)
	w := httptest.NewRecorder()
	adminRouter(a).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRegistrationById(t *testing.T) {
	a, mock := newMockApp(t)
	mock.ExpectQuery("SELECT data, created_at FROM registration").
		WithArgs("reg-1").
		WillReturnRows(sqlmock.NewRows([]string{"data", "created_at"}).
			AddRow(`{"Full Name":"Ana","Event":{"name":"Picnic","date":"2025-04-05","placeType":"physical","placeName":"Hall A","amount":"100"}}`,
				time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)))

	req := httptest.NewRequest("GET", "/event-registrations/reg-1", nil)
	w := httptest.NewRecorder()
	adminRouter(a).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Full Name":"Ana"`)
	assert.Contains(t, w.Body.String(), `"place":"Hall A"`)
	assert.Contains(t, w.Body.String(), `"date":"4/5/2025"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRegistrationById_NotFound(t *testing.T) {
	a, mock := newMockApp(t)
	mock.ExpectQuery("SELECT data, created_at FROM registration").
		WithArgs("reg-gone").
		WillReturnRows(sqlmock.NewRows([]string{"data", "created_at"}))

	req := httptest.NewRequest("GET", "/event-registrations/reg-gone", nil)
	w := httptest.NewRecorder()
	adminRouter(a).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportRegistrations(t *testing.T) {
	a, mock := newMockApp(t)
	mock.ExpectQuery("SELECT id, label, type, required, options FROM form_field").
		WillReturnRows(fieldRows().
			AddRow("fld-1", "Full Name", "text", true, "").
			AddRow("fld-2", "Event", "dropdown", true, eventOptionsJSON))
	mock.ExpectQuery("SELECT id, data, created_at FROM registration").
		WillReturnRows(registrationRows().
			AddRow("reg-1",
				`{"Full Name":"Ana","Event":{"name":"Picnic","date":"2025-04-05","placeType":"physical","placeName":"Hall A","amount":"100"}}`,
				time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)))

	w := httptest.NewRecorder()
	ExportRegistrations(a)(w, httptest.NewRequest("GET", "/api/admin/event-registrations/export", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("content-type"))
	assert.Equal(t, `attachment; filename="registrations.csv"`, w.Header().Get("content-disposition"))
	assert.Equal(t,
		"S.No,Full Name,Event,CreatedAt\n"+
			`1,"Ana","Name: Picnic; Date: 4/5/2025; Place: Hall A; Amount: 100","2025-04-01"`+"\n",
		w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportRegistrations_NoRecords(t *testing.T) {
	a, mock := newMockApp(t)
	mock.ExpectQuery("SELECT id, label, type, required, options FROM form_field").
		WillReturnRows(fieldRows().AddRow("fld-1", "Full Name", "text", true, ""))
	mock.ExpectQuery("SELECT id, data, created_at FROM registration").
		WillReturnRows(registrationRows())

	w := httptest.NewRecorder()
	ExportRegistrations(a)(w, httptest.NewRequest("GET", "/api/admin/event-registrations/export", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no registrations to export")
	assert.Empty(t, w.Header().Get("content-disposition"), "no file offered")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEventBanner(t *testing.T) {
	a, mock := newMockApp(t)
	mock.ExpectExec("UPDATE banner").
		WithArgs("Easter Gatherings", "https://cdn.example.org/banner.jpg").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest("PUT", "/api/admin/event-banner",
		strings.NewReader(`{"title":"Easter Gatherings","image":"https://cdn.example.org/banner.jpg"}`))
	w := httptest.NewRecorder()
	UpdateEventBanner(a)(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
