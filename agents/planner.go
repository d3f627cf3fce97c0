package agents

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bububa/instructor-go/pkg/instructor"
	cohere "github.com/cohere-ai/cohere-go/v2"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/citydesk/citydesk/components"
	"github.com/citydesk/citydesk/components/prompt"
	"github.com/citydesk/citydesk/lookup"
	"github.com/citydesk/citydesk/schema"
)

// PlannedLookup is one routing decision emitted by the model.
type PlannedLookup struct {
	// Kind data source to query.
	Kind string `json:"kind" jsonschema:"title=kind,enum=weather,enum=time,enum=directions,description=Data source to query." validate:"required,oneof=weather time directions"`
	// Location city name, or origin -> destination for directions.
	Location string `json:"location" jsonschema:"title=location,description=City name, or 'origin -> destination' for directions." validate:"required"`
}

// Plan is the structured routing decision for one user query.
type Plan struct {
	schema.Base
	// Lookups ordered lookups to perform for the query.
	Lookups []PlannedLookup `json:"lookups" jsonschema:"title=lookups,description=Ordered lookups to perform for the query." validate:"required,min=1,dive"`
}

func (s Plan) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Requests converts the plan into dispatcher requests.
func (s Plan) Requests() ([]lookup.Request, error) {
	reqs := make([]lookup.Request, 0, len(s.Lookups))
	for _, planned := range s.Lookups {
		kind, err := lookup.ParseKind(planned.Kind)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, lookup.NewRequest(kind, planned.Location))
	}
	return reqs, nil
}

// Planner asks the model for a structured Plan instead of running the
// function-calling loop: the model emits the lookups as JSON, the
// dispatcher executes them locally. Useful when tool results should not
// travel back through the model.
type Planner struct {
	Config
	dispatcher *lookup.Dispatcher
}

// NewPlanner initializes a Planner; it requires an instructor client.
func NewPlanner(dispatcher *lookup.Dispatcher, options ...Option) *Planner {
	ret := new(Planner)
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.promptBuilder == nil {
		ret.promptBuilder = prompt.New(
			prompt.WithBackground("You route city lookup queries to data sources."),
			prompt.WithSteps(
				"Decide which lookups answer the query: weather, time or directions.",
				"For directions, write the location as 'origin -> destination'.",
			),
			prompt.WithOutputInstructs("Emit only the lookups needed, in the order they appear in the query."),
		)
	}
	if ret.maxTokens == 0 {
		ret.maxTokens = 1024
	}
	ret.dispatcher = dispatcher
	return ret
}

func (p Planner) Name() string {
	return p.name
}

// Plan obtains the structured routing decision for a query.
func (p *Planner) Plan(ctx context.Context, query string, apiResp *components.ApiResponse) (*Plan, error) {
	plan := new(Plan)
	messages := []components.Message{
		*components.NewMessage(components.SystemRole, schema.String(p.promptBuilder.Generate())),
		*components.NewMessage(components.UserRole, schema.String(query)),
	}
	switch clt := p.client.(type) {
	case *instructor.InstructorOpenAI:
		chatReq := openai.ChatCompletionRequest{
			Model:       p.model,
			Temperature: p.temperature,
			MaxTokens:   p.maxTokens,
		}
		for _, msg := range messages {
			v := new(openai.ChatCompletionMessage)
			msg.ToOpenAI(v)
			chatReq.Messages = append(chatReq.Messages, *v)
		}
		if res, err := clt.CreateChatCompletion(ctx, chatReq, plan); err != nil {
			return nil, err
		} else if apiResp != nil {
			apiResp.FromOpenAI(&res)
		}
	case *instructor.InstructorAnthropic:
		chatReq := anthropic.MessagesRequest{
			Model:       anthropic.Model(p.model),
			Temperature: &p.temperature,
			MaxTokens:   p.maxTokens,
		}
		for _, msg := range messages {
			v := new(anthropic.Message)
			msg.ToAnthropic(v)
			chatReq.Messages = append(chatReq.Messages, *v)
		}
		if res, err := clt.CreateMessages(ctx, chatReq, plan); err != nil {
			return nil, err
		} else if apiResp != nil {
			apiResp.FromAnthropic(&res)
		}
	case *instructor.InstructorCohere:
		lastIdx := len(messages) - 1
		temperature := float64(p.temperature)
		chatReq := cohere.ChatRequest{
			Model:       &p.model,
			Temperature: &temperature,
			MaxTokens:   &p.maxTokens,
			Message:     schema.Stringify(messages[lastIdx].Content()),
		}
		for idx, msg := range messages {
			if idx >= lastIdx {
				break
			}
			v := new(cohere.Message)
			msg.ToCohere(v)
			chatReq.ChatHistory = append(chatReq.ChatHistory, v)
		}
		if res, err := clt.Chat(ctx, &chatReq, plan); err != nil {
			return nil, err
		} else if apiResp != nil {
			apiResp.FromCohere(res)
		}
	default:
		return nil, errors.New("no instructor client configured")
	}
	if err := schema.Validate(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Run plans the query and dispatches the lookups locally.
func (p *Planner) Run(ctx context.Context, query string, apiResp *components.ApiResponse) (*lookup.Report, error) {
	if p.dispatcher == nil {
		return nil, errors.New("no dispatcher configured")
	}
	plan, err := p.Plan(ctx, query, apiResp)
	if err != nil {
		return nil, err
	}
	reqs, err := plan.Requests()
	if err != nil {
		return nil, err
	}
	return p.dispatcher.Dispatch(ctx, reqs), nil
}
