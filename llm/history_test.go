package llm

import (
	"testing"

	"github.com/hmi-lab/llm-study/model"
	"github.com/stretchr/testify/assert"
)

func TestBuildHistoryReplaysTurnsInOrder(t *testing.T) {
	logs := []model.InteractionLog{
		{Prompt: "p1", Response: "r1"},
		{Prompt: "p2", Response: "r2"},
		{Prompt: "p3", Response: ""}, // failed or still pending call
	}

	got := BuildHistory(logs, "p4", "instruction")

	want := []model.Message{
		{Role: model.RoleSystem, Content: "instruction"},
		{Role: model.RoleUser, Content: "p1"},
		{Role: model.RoleAssistant, Content: "r1"},
		{Role: model.RoleUser, Content: "p2"},
		{Role: model.RoleAssistant, Content: "r2"},
		{Role: model.RoleUser, Content: "p3"},
		{Role: model.RoleUser, Content: "p4"},
	}
	assert.Equal(t, want, got)
}

func TestBuildHistoryFirstTurn(t *testing.T) {
	got := BuildHistory(nil, "hello", "instruction")

	want := []model.Message{
		{Role: model.RoleSystem, Content: "instruction"},
		{Role: model.RoleUser, Content: "hello"},
	}
	assert.Equal(t, want, got)
}
