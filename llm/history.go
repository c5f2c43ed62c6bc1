package llm

import "github.com/hmi-lab/llm-study/model"

// BuildHistory reconstructs the full message array for one participant+task
// conversation. The upstream API is stateless per call, so every call
// carries the system instruction, every prior turn in request order, and
// the new prompt last. A prior row with an empty response contributes only
// its user turn (the call failed or never completed).
func BuildHistory(logs []model.InteractionLog, prompt, instruction string) []model.Message {
	messages := make([]model.Message, 0, 2*len(logs)+2)
	messages = append(messages, model.Message{Role: model.RoleSystem, Content: instruction})

	for _, l := range logs {
		messages = append(messages, model.Message{Role: model.RoleUser, Content: l.Prompt})
		if l.Response != "" {
			messages = append(messages, model.Message{Role: model.RoleAssistant, Content: l.Response})
		}
	}

	return append(messages, model.Message{Role: model.RoleUser, Content: prompt})
}
