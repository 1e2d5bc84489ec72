package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionsValid(t *testing.T) {
	for _, a := range ValidTaskActions() {
		assert.True(t, a.IsValid(), a)
	}
	for _, a := range ValidPlanActions() {
		assert.True(t, a.IsValid(), a)
	}
	for _, a := range ValidInsightActions() {
		assert.True(t, a.IsValid(), a)
	}
	assert.False(t, TaskAction("next").IsValid())
	assert.False(t, PlanAction("generate").IsValid())
	assert.False(t, InsightAction("").IsValid())
}
