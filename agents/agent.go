package agents

import (
	"context"
	"errors"
	"fmt"

	"github.com/bububa/instructor-go/pkg/instructor"
	genai "github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/citydesk/citydesk/components"
	"github.com/citydesk/citydesk/components/prompt"
	"github.com/citydesk/citydesk/tools"
)

type IAgent interface {
	Name() string
}

// Config represents general agents configuration
type Config struct {
	// client for structured-output requests through instructor
	client instructor.Instructor
	// openaiClient raw client for the function-calling loop
	openaiClient *openai.Client
	// anthropicClient raw client for the function-calling loop
	anthropicClient *anthropic.Client
	// geminiClient raw client for the function-calling loop
	geminiClient *genai.Client
	// registry tools offered to the model
	registry *tools.Registry
	// promptBuilder component for generating system prompts.
	promptBuilder *prompt.Builder
	// model llm model
	model string
	// temperature Temperature for response generation, typically ranging from 0 to 1.
	temperature float32
	// maxTokens Maximum number of tokens allowed in the response
	maxTokens int
	// maxRounds Maximum number of tool-call rounds per Run
	maxRounds int
	// name is Agent name presentation
	name string
}

// Agent runs the function-calling loop against a hosted LLM: it sends the
// user text plus the registry's tool definitions, executes returned tool
// calls, feeds the callbacks back and returns the final text. Deciding
// which tool to call stays with the hosted model; this code never
// interprets the user text.
type Agent struct {
	Config
	sessionID string
	startHook func(context.Context, *Agent, string)
	endHook   func(context.Context, *Agent, string, string, *components.ApiResponse)
	errorHook func(context.Context, *Agent, string, error)
}

// New initializes an Agent
func New(options ...Option) *Agent {
	ret := new(Agent)
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.registry == nil {
		ret.registry = tools.NewRegistry()
	}
	if ret.promptBuilder == nil {
		ret.promptBuilder = prompt.New(
			prompt.WithBackground("You answer questions about cities using the available tools for weather, local time and directions."),
			prompt.WithOutputInstructs("Answer with the tool results in one short paragraph. Mention lookups that failed."),
		)
		ret.promptBuilder.AddSections(ret.registry)
	}
	if ret.maxRounds == 0 {
		ret.maxRounds = 4
	}
	if ret.maxTokens == 0 {
		ret.maxTokens = 1024
	}
	ret.sessionID = uuid.NewString()
	return ret
}

func (a Agent) Name() string {
	return a.name
}

func (a *Agent) SetName(name string) {
	a.name = name
}

// SessionID returns the identifier attached to this agent instance.
func (a Agent) SessionID() string {
	return a.sessionID
}

// Registry returns the agent's tool registry.
func (a *Agent) Registry() *tools.Registry {
	return a.registry
}

// SystemPrompt returns the generated system prompt
func (a *Agent) SystemPrompt() string {
	return a.promptBuilder.Generate()
}

func (a *Agent) SetStartHook(fn func(context.Context, *Agent, string)) {
	a.startHook = fn
}

func (a *Agent) SetEndHook(fn func(context.Context, *Agent, string, string, *components.ApiResponse)) {
	a.endHook = fn
}

func (a *Agent) SetErrorHook(fn func(context.Context, *Agent, string, error)) {
	a.errorHook = fn
}

// Run sends the user input through the function-calling loop and returns
// the model's final text.
func (a *Agent) Run(ctx context.Context, input string, apiResp *components.ApiResponse) (string, error) {
	if fn := a.startHook; fn != nil {
		fn(ctx, a, input)
	}
	answer, err := a.response(ctx, input, apiResp)
	if err != nil {
		if fn := a.errorHook; fn != nil {
			fn(ctx, a, input, err)
		}
		return "", err
	}
	if fn := a.endHook; fn != nil {
		fn(ctx, a, input, answer, apiResp)
	}
	return answer, nil
}

func (a *Agent) response(ctx context.Context, input string, apiResp *components.ApiResponse) (string, error) {
	switch {
	case a.openaiClient != nil:
		return a.responseOpenAI(ctx, input, apiResp)
	case a.anthropicClient != nil:
		return a.responseAnthropic(ctx, input, apiResp)
	case a.geminiClient != nil:
		return a.responseGemini(ctx, input, apiResp)
	}
	return "", errors.New("no llm client configured")
}

func (a *Agent) responseOpenAI(ctx context.Context, input string, apiResp *components.ApiResponse) (string, error) {
	defs := a.registry.Definitions()
	reqTools := make([]openai.Tool, 0, len(defs))
	for _, def := range defs {
		reqTools = append(reqTools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: a.SystemPrompt()},
		{Role: openai.ChatMessageRoleUser, Content: input},
	}
	for round := 0; round < a.maxRounds; round++ {
		chatReq := openai.ChatCompletionRequest{
			Model:       a.model,
			Temperature: a.temperature,
			MaxTokens:   a.maxTokens,
			Messages:    messages,
			Tools:       reqTools,
		}
		res, err := a.openaiClient.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return "", err
		}
		if apiResp != nil {
			apiResp.FromOpenAI(&res)
		}
		if len(res.Choices) == 0 {
			return "", errors.New("empty completion")
		}
		msg := res.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}
		messages = append(messages, msg)
		callbacks := a.registry.ExecuteAll(ctx, components.ToolCallsFromOpenAI(msg.ToolCalls))
		messages = append(messages, components.ToolCallbacksToOpenAI(callbacks)...)
	}
	return "", fmt.Errorf("tool-call rounds exceeded %d", a.maxRounds)
}

func (a *Agent) responseAnthropic(ctx context.Context, input string, apiResp *components.ApiResponse) (string, error) {
	defs := a.registry.Definitions()
	reqTools := make([]anthropic.ToolDefinition, 0, len(defs))
	for _, def := range defs {
		reqTools = append(reqTools, anthropic.ToolDefinition{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.Parameters,
		})
	}
	messages := []anthropic.Message{
		anthropic.NewUserTextMessage(input),
	}
	for round := 0; round < a.maxRounds; round++ {
		chatReq := anthropic.MessagesRequest{
			Model:       anthropic.Model(a.model),
			System:      a.SystemPrompt(),
			Temperature: &a.temperature,
			MaxTokens:   a.maxTokens,
			Messages:    messages,
			Tools:       reqTools,
		}
		res, err := a.anthropicClient.CreateMessages(ctx, chatReq)
		if err != nil {
			return "", err
		}
		if apiResp != nil {
			apiResp.FromAnthropic(&res)
		}
		calls := components.ToolCallsFromAnthropic(res.Content)
		if len(calls) == 0 {
			return res.GetFirstContentText(), nil
		}
		assistantMsg := new(anthropic.Message)
		components.ToolCallsToAnthropic(calls, assistantMsg)
		callbacks := a.registry.ExecuteAll(ctx, calls)
		callbackMsg := new(anthropic.Message)
		components.ToolCallbacksToAnthropic(callbacks, callbackMsg)
		messages = append(messages, *assistantMsg, *callbackMsg)
	}
	return "", fmt.Errorf("tool-call rounds exceeded %d", a.maxRounds)
}

func (a *Agent) responseGemini(ctx context.Context, input string, apiResp *components.ApiResponse) (string, error) {
	defs := a.registry.Definitions()
	declarations := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, def := range defs {
		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  geminiSchema(def.Parameters),
		})
	}
	model := a.geminiClient.GenerativeModel(a.model)
	model.Tools = []*genai.Tool{{FunctionDeclarations: declarations}}
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(a.SystemPrompt())}}
	model.SetTemperature(a.temperature)
	model.SetMaxOutputTokens(int32(a.maxTokens))
	session := model.StartChat()
	parts := []genai.Part{genai.Text(input)}
	for round := 0; round < a.maxRounds; round++ {
		res, err := session.SendMessage(ctx, parts...)
		if err != nil {
			return "", err
		}
		if apiResp != nil {
			apiResp.FromGemini(res)
		}
		if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
			return "", errors.New("empty completion")
		}
		content := res.Candidates[0].Content
		calls := components.ToolCallsFromGemini(content.Parts)
		if len(calls) == 0 {
			return geminiText(content.Parts), nil
		}
		callbacks := a.registry.ExecuteAll(ctx, calls)
		parts = components.ToolCallbacksToGemini(callbacks)
	}
	return "", fmt.Errorf("tool-call rounds exceeded %d", a.maxRounds)
}

func geminiText(parts []genai.Part) string {
	var text string
	for _, part := range parts {
		if v, ok := part.(genai.Text); ok {
			text += string(v)
		}
	}
	return text
}
