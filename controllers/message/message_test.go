package message

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"runoot/types"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownConversationAnswersNotFound(t *testing.T) {
	app := fiber.New()
	app.Get("/conversations/:id", func(c *fiber.Ctx) error {
		return respondConversationError(c, errConversationNotFound)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/conversations/424242", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope types.ApiResponse
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "Conversation not found", envelope.Message)
	assert.Equal(t, fiber.StatusNotFound, envelope.Status)
}

func TestConversationLoadFailureAnswersServerError(t *testing.T) {
	app := fiber.New()
	app.Get("/conversations/:id", func(c *fiber.Ctx) error {
		return respondConversationError(c, errors.New("connection refused"))
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/conversations/3", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope types.ApiResponse
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "Internal server error", envelope.Message)
}
