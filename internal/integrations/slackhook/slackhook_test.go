package slackhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "short", input: "hello", expected: "hello"},
		{name: "exactly max", input: strings.Repeat("x", MaxFieldLen), expected: strings.Repeat("x", MaxFieldLen)},
		{name: "one over max", input: strings.Repeat("x", MaxFieldLen+1), expected: strings.Repeat("x", MaxFieldLen) + "..."},
		{name: "multibyte", input: strings.Repeat("é", MaxFieldLen+10), expected: strings.Repeat("é", MaxFieldLen) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input))
		})
	}
}

func TestNotifier_Post(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL)
	msg := &Message{
		Text: "🚀 New Super Mega Contact!",
		Attachments: []Attachment{
			{
				Color: "#8B5CF6",
				Fields: []Field{
					{Title: "Name", Value: "Ann", Short: true},
				},
			},
		},
	}
	require.NoError(t, n.Post(context.Background(), msg))

	var got Message
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, *msg, got)
}

func TestNotifier_PostErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL)
	err := n.Post(context.Background(), &Message{Text: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestNotifier_UnconfiguredSkips(t *testing.T) {
	n := NewNotifier("")
	assert.NoError(t, n.Post(context.Background(), &Message{Text: "hi"}))
	assert.Error(t, n.Ping(context.Background()), "ping must report a missing webhook")
}
