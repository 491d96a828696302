package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Screen string `validate:"required"`
	Group  string `validate:"omitempty,oneof=bp sugar"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Screen: "chat"}))

	err := ValidateRequest(sampleRequest{Group: "pulse"})
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Contains(t, fe.Message, "Screen failed on required")
	assert.Contains(t, fe.Message, "Group failed on oneof")
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/bad", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "nope") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
	app.Get("/ok", func(c *fiber.Ctx) error { return c.JSON(SuccessResponse("fine", 1)) })

	tests := []struct {
		path    string
		code    int
		success bool
		message string
	}{
		{"/bad", fiber.StatusBadRequest, false, "nope"},
		{"/boom", fiber.StatusInternalServerError, false, "boom"},
		{"/ok", fiber.StatusOK, true, "fine"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			raw, _ := io.ReadAll(resp.Body)
			var body BaseResponse
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tt.success, body.Success)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
