package serverutils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/x", handler)
	return app
}

func TestErrorHandlerMapsAppErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"untrained project", NewAppError(CodeNoResearch, http.StatusBadRequest, "Project has no research profile yet"), 400},
		{"missing record", NewAppError(CodeNotFound, http.StatusNotFound, "Order not found"), 404},
		{"illegal transition", NewAppError(CodeInvalidState, http.StatusConflict, "cannot move delivered to shipped"), 409},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := errApp(func(*fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.err.Code, body["code"])
			assert.Equal(t, tc.err.Message, body["message"])
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	app := errApp(func(*fiber.Ctx) error { return errors.New("pq: connection refused") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotContains(t, body["message"], "connection refused")
}

func TestErrorHandlerKeepsFiberStatus(t *testing.T) {
	app := errApp(func(*fiber.Ctx) error { return fiber.ErrMethodNotAllowed })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestValidateRequestReturnsBadRequest(t *testing.T) {
	type createReq struct {
		Name string `validate:"required"`
	}

	err := ValidateRequest(createReq{})

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Message, "Name")

	assert.NoError(t, ValidateRequest(createReq{Name: "x"}))
}

func TestParseUUID(t *testing.T) {
	id, err := ParseUUID("a2aa9ea5-6a5a-4dbc-8f0c-cf3e1ab4b54f", "id")
	require.NoError(t, err)
	assert.Equal(t, "a2aa9ea5-6a5a-4dbc-8f0c-cf3e1ab4b54f", id.String())

	_, err = ParseUUID("not-a-uuid", "project_id")
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, CodeBadRequest, appErr.Code)
	assert.Contains(t, appErr.Message, "project_id")
}
