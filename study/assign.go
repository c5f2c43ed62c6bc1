package study

import (
	"errors"
	"strings"

	"github.com/hmi-lab/llm-study/model"
)

// Assigner maps a participant's registration number to one of a fixed set
// of task type orderings, balancing order effects across the pool.
type Assigner struct {
	sequences [][]string
}

func NewAssigner(sequences [][]string) (*Assigner, error) {
	if len(sequences) == 0 {
		return nil, errors.New("study: no task type orderings configured")
	}
	return &Assigner{sequences: sequences}, nil
}

// Sequence returns the type ordering for the n-th registered participant
// (1-based). Orderings repeat with period len(sequences).
func (a *Assigner) Sequence(n int) []string {
	return a.sequences[(n-1)%len(a.sequences)]
}

// Assign materializes the ordering for participant n against the task
// catalog: all tasks of a type are grouped together in the position the type
// holds in the ordering, keeping catalog order within the type. Types
// without catalog tasks contribute nothing. Same n and same catalog always
// produce the same list.
func (a *Assigner) Assign(n int, catalog []model.Task) ([]model.Task, []string) {
	sequence := a.Sequence(n)

	tasks := make([]model.Task, 0, len(catalog))
	for _, taskType := range sequence {
		for _, task := range catalog {
			if strings.EqualFold(task.Type, taskType) {
				tasks = append(tasks, task)
			}
		}
	}
	return tasks, sequence
}
