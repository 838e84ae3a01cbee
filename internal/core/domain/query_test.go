package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFailedQuery_KeepsUntrimmedQuery(t *testing.T) {
	r := NewFailedQuery("  What are the risks?  ", errors.New("timeout"))

	assert.False(t, r.Success)
	assert.Equal(t, "Failed to query document", r.Message)
	assert.Equal(t, "  What are the risks?  ", r.Query)
	assert.Equal(t, "", r.Response)
	assert.Equal(t, "timeout", r.Error)
	assert.True(t, r.HasError())
}

func TestQueryResult_HasError(t *testing.T) {
	var nilResult *QueryResult
	assert.False(t, nilResult.HasError())
	assert.False(t, (&QueryResult{Success: true}).HasError())
}

func TestExampleQuestions(t *testing.T) {
	assert.Len(t, ExampleQuestions, 6)
	for _, q := range ExampleQuestions {
		assert.NotEmpty(t, q)
	}
}
