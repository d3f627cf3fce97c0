package components

import (
	"encoding/json"

	genai "github.com/google/generative-ai-go/genai"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
)

// ToolCall is a provider-neutral function call request emitted by a model.
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// ToolCallback is the outcome of executing one ToolCall.
type ToolCallback struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content,omitempty"`
	IsError bool   `json:"is_error,omitempty"`
}

// ToolCallsFromOpenAI converts openai tool calls into the neutral form.
func ToolCallsFromOpenAI(src []openai.ToolCall) []ToolCall {
	list := make([]ToolCall, 0, len(src))
	for _, v := range src {
		list = append(list, ToolCall{
			ID:        v.ID,
			Name:      v.Function.Name,
			Arguments: v.Function.Arguments,
		})
	}
	return list
}

// ToolCallbacksToOpenAI converts callbacks into openai tool messages.
func ToolCallbacksToOpenAI(src []ToolCallback) []openai.ChatCompletionMessage {
	list := make([]openai.ChatCompletionMessage, 0, len(src))
	for _, v := range src {
		list = append(list, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    v.Content,
			ToolCallID: v.ID,
		})
	}
	return list
}

// ToolCallsFromAnthropic extracts tool_use blocks from a response content list.
func ToolCallsFromAnthropic(src []anthropic.MessageContent) []ToolCall {
	list := make([]ToolCall, 0, len(src))
	for _, v := range src {
		if v.Type != anthropic.MessagesContentTypeToolUse || v.MessageContentToolUse == nil {
			continue
		}
		list = append(list, ToolCall{
			ID:        v.MessageContentToolUse.ID,
			Name:      v.MessageContentToolUse.Name,
			Arguments: string(v.MessageContentToolUse.Input),
		})
	}
	return list
}

// ToolCallsToAnthropic converts tool calls into an assistant message.
func ToolCallsToAnthropic(src []ToolCall, dist *anthropic.Message) {
	list := make([]anthropic.MessageContent, 0, len(src))
	for _, v := range src {
		list = append(list, anthropic.NewToolUseMessageContent(v.ID, v.Name, []byte(v.Arguments)))
	}
	dist.Role = anthropic.RoleAssistant
	dist.Content = list
}

// ToolCallbacksToAnthropic converts callbacks into a tool_result user message.
func ToolCallbacksToAnthropic(src []ToolCallback, dist *anthropic.Message) {
	list := make([]anthropic.MessageContent, 0, len(src))
	for _, v := range src {
		list = append(list, anthropic.NewToolResultMessageContent(v.ID, v.Content, v.IsError))
	}
	dist.Role = anthropic.RoleUser
	dist.Content = list
}

// ToolCallsFromGemini extracts function calls from candidate content parts.
func ToolCallsFromGemini(src []genai.Part) []ToolCall {
	list := make([]ToolCall, 0, len(src))
	for _, part := range src {
		fc, ok := part.(genai.FunctionCall)
		if !ok {
			continue
		}
		args, _ := json.Marshal(fc.Args)
		list = append(list, ToolCall{
			ID:        NewTurnID(),
			Name:      fc.Name,
			Arguments: string(args),
		})
	}
	return list
}

// ToolCallbacksToGemini converts callbacks into function response parts.
// A callback whose content is not a JSON object is wrapped into one.
func ToolCallbacksToGemini(src []ToolCallback) []genai.Part {
	parts := make([]genai.Part, 0, len(src))
	for _, v := range src {
		response := make(map[string]any)
		if err := json.Unmarshal([]byte(v.Content), &response); err != nil {
			response = map[string]any{"content": v.Content}
		}
		if v.IsError {
			response["is_error"] = true
		}
		parts = append(parts, genai.FunctionResponse{
			Name:     v.Name,
			Response: response,
		})
	}
	return parts
}
