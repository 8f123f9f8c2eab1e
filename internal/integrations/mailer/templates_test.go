package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConfirmation(t *testing.T) {
	body, err := RenderConfirmation("Ann")
	require.NoError(t, err)

	assert.Contains(t, body, "Hi Ann,")
	assert.Contains(t, body, "SUPER MEGA")
	assert.Contains(t, body, "https://supermega.dev")
}

func TestRenderConfirmation_EscapesHTML(t *testing.T) {
	body, err := RenderConfirmation(`<script>alert("x")</script>`)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestRenderCalendarLink(t *testing.T) {
	body, err := RenderCalendarLink("Ann", "https://calendar.google.com/booking/xyz")
	require.NoError(t, err)

	assert.Contains(t, body, "Hi Ann,")
	assert.Contains(t, body, "https://calendar.google.com/booking/xyz")
	assert.Contains(t, body, "30-minute consultation")
}
