package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetRowMatchesHeader(t *testing.T) {
	sub := &Submission{
		ID:           "id-1",
		CreatedAt:    time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		Name:         "Ann",
		Email:        "ann@x.com",
		Company:      "Acme",
		Plan:         "pro",
		UseCase:      "automation",
		Message:      "hello",
		ScheduleCall: true,
		Source:       DefaultSource,
		Status:       "new",
	}

	header := SheetHeader()
	row := sub.SheetRow()
	require.Len(t, row, len(header))

	byCol := map[string]any{}
	for i, col := range header {
		byCol[col] = row[i]
	}
	assert.Equal(t, "id-1", byCol["id"])
	assert.Equal(t, "2026-08-29T10:00:00Z", byCol["timestamp"])
	assert.Equal(t, "ann@x.com", byCol["email"])
	assert.Equal(t, true, byCol["schedule_call"])
	assert.Equal(t, "contact_form", byCol["source"])
	assert.Equal(t, "new", byCol["status"])
}
