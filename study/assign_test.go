package study

import (
	"testing"

	"github.com/hmi-lab/llm-study/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = []model.Task{
	{ID: "t1", Type: "Labeling", Name: "Spam Detection"},
	{ID: "t2", Type: "labeling", Name: "Sentiment Analysis"},
	{ID: "t3", Type: "Analytical", Name: "Text Summarization"},
	{ID: "t4", Type: "Creative", Name: "Story Opening"},
	{ID: "t5", Type: "Procedural", Name: "Logic Puzzle"},
}

var testSequences = [][]string{
	{"Labeling", "Analytical", "Creative", "Procedural"},
	{"Analytical", "Procedural", "Labeling", "Creative"},
	{"Creative", "Labeling", "Procedural", "Analytical"},
}

func TestNewAssignerRejectsEmptySequenceList(t *testing.T) {
	_, err := NewAssigner(nil)
	require.Error(t, err)

	_, err = NewAssigner([][]string{})
	require.Error(t, err)
}

func TestAssignIsDeterministic(t *testing.T) {
	assigner, err := NewAssigner(testSequences)
	require.NoError(t, err)

	for n := 1; n <= 10; n++ {
		first, firstSeq := assigner.Assign(n, testCatalog)
		second, secondSeq := assigner.Assign(n, testCatalog)
		assert.Equal(t, first, second, "participant %d", n)
		assert.Equal(t, firstSeq, secondSeq, "participant %d", n)
	}
}

func TestAssignCyclesWithSequenceCount(t *testing.T) {
	assigner, err := NewAssigner(testSequences)
	require.NoError(t, err)

	for n := 1; n <= len(testSequences); n++ {
		assert.Equal(t, assigner.Sequence(n), assigner.Sequence(n+len(testSequences)))
		assert.Equal(t, assigner.Sequence(n), assigner.Sequence(n+2*len(testSequences)))

		base, _ := assigner.Assign(n, testCatalog)
		wrapped, _ := assigner.Assign(n+len(testSequences), testCatalog)
		assert.Equal(t, base, wrapped)
	}

	// adjacent participants get different orderings
	assert.NotEqual(t, assigner.Sequence(1), assigner.Sequence(2))
}

func TestAssignGroupsTasksByTypeInSequenceOrder(t *testing.T) {
	assigner, err := NewAssigner([][]string{{"Creative", "Labeling", "Procedural", "Analytical"}})
	require.NoError(t, err)

	tasks, sequence := assigner.Assign(1, testCatalog)
	require.Equal(t, []string{"Creative", "Labeling", "Procedural", "Analytical"}, sequence)

	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	// both labeling tasks contiguous and in catalog order, despite the
	// lower-case type on t2
	assert.Equal(t, []string{"t4", "t1", "t2", "t5", "t3"}, ids)
}

func TestAssignSkipsTypesWithoutCatalogTasks(t *testing.T) {
	assigner, err := NewAssigner([][]string{{"Analytical", "Creative"}})
	require.NoError(t, err)

	catalog := []model.Task{
		{ID: "t4", Type: "Creative", Name: "Story Opening"},
	}
	tasks, _ := assigner.Assign(1, catalog)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t4", tasks[0].ID)
}
