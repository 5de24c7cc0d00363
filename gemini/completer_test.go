package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestBuildContents(t *testing.T) {
	t.Parallel()

	t.Run("moves system messages into the instruction", func(t *testing.T) {
		t.Parallel()

		system, contents := gemini.BuildContents([]docagent.Message{
			{Role: docagent.RoleSystem, Content: "be brief"},
			{Role: docagent.RoleUser, Content: "hello"},
			{Role: docagent.RoleSystem, Content: "be kind"},
		})

		assert.Equal(t, "be brief\n\nbe kind", system)
		require.Len(t, contents, 1)
		assert.Equal(t, genai.RoleUser, contents[0].Role)
		assert.Equal(t, "hello", contents[0].Parts[0].Text)
	})

	t.Run("maps assistant to model role and keeps order", func(t *testing.T) {
		t.Parallel()

		_, contents := gemini.BuildContents([]docagent.Message{
			{Role: docagent.RoleUser, Content: "q"},
			{Role: docagent.RoleAssistant, Content: "a"},
			{Role: docagent.RoleUser, Content: "q2"},
		})

		require.Len(t, contents, 3)
		assert.Equal(t, genai.RoleUser, contents[0].Role)
		assert.Equal(t, genai.RoleModel, contents[1].Role)
		assert.Equal(t, "a", contents[1].Parts[0].Text)
		assert.Equal(t, "q2", contents[2].Parts[0].Text)
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("sets temperature and system instruction", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig("sys", 0.1)

		require.NotNil(t, config.Temperature)
		assert.InDelta(t, 0.1, *config.Temperature, 0.0001)
		require.NotNil(t, config.SystemInstruction)
		assert.Equal(t, "sys", config.SystemInstruction.Parts[0].Text)
	})

	t.Run("omits empty system instruction", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig("", 0)

		assert.Nil(t, config.SystemInstruction)
	})
}

func TestCompleter_Complete_RejectsEmptyRequest(t *testing.T) {
	t.Parallel()

	c := gemini.NewCompleter(nil, "") // nil client ok, validation runs first

	_, err := c.Complete(context.Background(), &docagent.CompletionRequest{})

	require.Error(t, err)
	assert.Equal(t, docagent.EINVALID, docagent.ErrorCode(err))
}

func TestCompleter_Complete_RejectsSystemOnlyRequest(t *testing.T) {
	t.Parallel()

	c := gemini.NewCompleter(nil, "")

	_, err := c.Complete(context.Background(), &docagent.CompletionRequest{
		Messages: []docagent.Message{{Role: docagent.RoleSystem, Content: "x"}},
	})

	require.Error(t, err)
	assert.Equal(t, docagent.EINVALID, docagent.ErrorCode(err))
}
