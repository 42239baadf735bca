package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSubmissionRejectsMalformedTaskID(t *testing.T) {
	app := fiber.New()
	app.Post("/submissions", CreateSubmission)

	body := `{"account_id": 42, "task_id": "not-a-uuid", "description": "screenshots attached"}`
	req := httptest.NewRequest("POST", "/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
