package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewPicker, "picker"},
		{ViewDocument, "document"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestViewPicker_IsZeroValue(t *testing.T) {
	var v ViewType
	assert.Equal(t, ViewPicker, v)
}

func TestSubmitFinished_CarriesState(t *testing.T) {
	state := domain.WorkflowState{
		File: &domain.UploadedFile{ID: "f1", Status: domain.FileError},
	}
	msg := SubmitFinished{State: state, Err: errors.New("boom")}

	assert.Equal(t, "f1", msg.State.File.ID)
	assert.EqualError(t, msg.Err, "boom")
}
