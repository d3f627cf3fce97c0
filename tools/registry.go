package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/citydesk/citydesk/components"
	"github.com/citydesk/citydesk/schema"
)

// Definition is the contract handed to an LLM provider for one tool:
// name, textual description and a typed parameter schema.
type Definition struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
}

type entry struct {
	tool    ITool
	def     Definition
	execute func(context.Context, string) (string, error)
}

// Registry is a name to tool table. It validates arguments against the
// input schema before a tool runs and converts every execution problem
// into an error callback instead of a panic.
type Registry struct {
	entries []*entry
	index   map[string]*entry
}

func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]*entry),
	}
}

// Register adds a typed tool under its title. Duplicate names are rejected.
func Register[I schema.Schema, O schema.Schema](r *Registry, tool Tool[I, O]) error {
	name := tool.Title()
	if name == "" {
		return errors.New("tool has no title")
	}
	if _, ok := r.index[name]; ok {
		return fmt.Errorf("tool %q already registered", name)
	}
	e := &entry{
		tool: tool,
		def: Definition{
			Name:        name,
			Description: tool.Description(),
			Parameters:  schema.Definition(*new(I)),
		},
		execute: func(ctx context.Context, arguments string) (string, error) {
			input := new(I)
			if arguments != "" {
				if err := json.Unmarshal([]byte(arguments), input); err != nil {
					return "", fmt.Errorf("invalid arguments for %s: %w", name, err)
				}
			}
			if err := schema.Validate(input); err != nil {
				return "", fmt.Errorf("invalid arguments for %s: %w", name, err)
			}
			output := new(O)
			if err := tool.Run(ctx, input, output); err != nil {
				return "", err
			}
			return schema.Stringify(*output), nil
		},
	}
	r.entries = append(r.entries, e)
	r.index[name] = e
	return nil
}

// Get returns a registered tool by name.
func (r *Registry) Get(name string) (ITool, bool) {
	if e, ok := r.index[name]; ok {
		return e.tool, true
	}
	return nil, false
}

// Definitions returns the tool contracts in registration order.
func (r *Registry) Definitions() []Definition {
	list := make([]Definition, 0, len(r.entries))
	for _, e := range r.entries {
		list = append(list, e.def)
	}
	return list
}

// Execute runs one tool call and returns its callback. Unknown names,
// malformed arguments and validation failures become error callbacks.
func (r *Registry) Execute(ctx context.Context, call components.ToolCall) components.ToolCallback {
	callback := components.ToolCallback{
		ID:   call.ID,
		Name: call.Name,
	}
	e, ok := r.index[call.Name]
	if !ok {
		callback.IsError = true
		callback.Content = fmt.Sprintf("unknown tool %q", call.Name)
		return callback
	}
	content, err := e.execute(ctx, call.Arguments)
	if err != nil {
		callback.IsError = true
		callback.Content = err.Error()
		return callback
	}
	callback.Content = content
	return callback
}

// ExecuteAll runs a batch of tool calls in order.
func (r *Registry) ExecuteAll(ctx context.Context, calls []components.ToolCall) []components.ToolCallback {
	callbacks := make([]components.ToolCallback, 0, len(calls))
	for _, call := range calls {
		callbacks = append(callbacks, r.Execute(ctx, call))
	}
	return callbacks
}

// Title implements prompt.Section so a registry can describe its catalog
// inside a generated system prompt.
func (r *Registry) Title() string {
	return "Available tools"
}

// Info implements prompt.Section.
func (r *Registry) Info() string {
	lines := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		lines = append(lines, fmt.Sprintf("- %s: %s", e.def.Name, e.def.Description))
	}
	return strings.Join(lines, "\n")
}
