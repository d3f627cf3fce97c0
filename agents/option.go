package agents

import (
	"github.com/bububa/instructor-go/pkg/instructor"
	genai "github.com/google/generative-ai-go/genai"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/citydesk/citydesk/components/prompt"
	"github.com/citydesk/citydesk/tools"
)

type Option func(a *Config)

// WithClient sets the instructor client used for structured output.
func WithClient(clt instructor.Instructor) Option {
	return func(c *Config) {
		c.client = clt
	}
}

// WithOpenAI sets the raw client for the function-calling loop.
func WithOpenAI(clt *openai.Client) Option {
	return func(c *Config) {
		c.openaiClient = clt
	}
}

// WithAnthropic sets the raw client for the function-calling loop.
func WithAnthropic(clt *anthropic.Client) Option {
	return func(c *Config) {
		c.anthropicClient = clt
	}
}

// WithGemini sets the raw client for the function-calling loop.
func WithGemini(clt *genai.Client) Option {
	return func(c *Config) {
		c.geminiClient = clt
	}
}

func WithRegistry(registry *tools.Registry) Option {
	return func(c *Config) {
		c.registry = registry
	}
}

func WithPromptBuilder(b *prompt.Builder) Option {
	return func(c *Config) {
		c.promptBuilder = b
	}
}

func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

func WithTemperature(temperature float32) Option {
	return func(c *Config) {
		c.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.maxTokens = maxTokens
	}
}

// WithMaxRounds bounds the number of tool-call rounds per Run.
func WithMaxRounds(maxRounds int) Option {
	return func(c *Config) {
		c.maxRounds = maxRounds
	}
}

func WithName(name string) Option {
	return func(c *Config) {
		c.name = name
	}
}
