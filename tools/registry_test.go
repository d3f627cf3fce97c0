package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/citydesk/citydesk/components"
	"github.com/citydesk/citydesk/schema"
)

type echoInput struct {
	schema.Base
	Text string `json:"text" jsonschema:"title=text,description=Text to echo back." validate:"required"`
}

type echoOutput struct {
	schema.Base
	Text string `json:"text,omitempty"`
}

type echoTool struct {
	Config
	calls int
}

func newEchoTool(opts ...Option) *echoTool {
	ret := new(echoTool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("EchoTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Echoes its input back.")
	}
	return ret
}

func (t *echoTool) Run(ctx context.Context, input *echoInput, output *echoOutput) error {
	t.calls++
	output.Text = input.Text
	return nil
}

func TestRegistryDefinitions(t *testing.T) {
	registry := NewRegistry()
	if err := Register(registry, newEchoTool()); err != nil {
		t.Fatalf("Error registering tool: %v", err)
	}
	defs := registry.Definitions()
	if len(defs) != 1 {
		t.Fatalf("Expect 1 definition, but got %d", len(defs))
	}
	def := defs[0]
	if def.Name != "EchoTool" || def.Description != "Echoes its input back." {
		t.Errorf("Expect echo definition, but got %+v", def)
	}
	if def.Parameters == nil || def.Parameters.Type != "object" {
		t.Error("Expect an object parameter schema")
	}
	if _, ok := def.Parameters.Properties.Get("text"); !ok {
		t.Error("Expect text property in parameter schema")
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	registry := NewRegistry()
	if err := Register(registry, newEchoTool()); err != nil {
		t.Fatalf("Error registering tool: %v", err)
	}
	if err := Register(registry, newEchoTool()); err == nil {
		t.Error("Expect duplicate registration to fail")
	}
}

func TestRegistryExecute(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry()
	tool := newEchoTool()
	if err := Register(registry, tool); err != nil {
		t.Fatalf("Error registering tool: %v", err)
	}
	callback := registry.Execute(ctx, components.ToolCall{
		ID:        "call_1",
		Name:      "EchoTool",
		Arguments: `{"text":"hello"}`,
	})
	if callback.IsError {
		t.Fatalf("Expect success, but got error callback %q", callback.Content)
	}
	if callback.ID != "call_1" || !strings.Contains(callback.Content, `"text":"hello"`) {
		t.Errorf("Expect echoed content, but got %+v", callback)
	}
	if tool.calls != 1 {
		t.Errorf("Expect 1 tool call, but got %d", tool.calls)
	}
}

func TestRegistryExecuteErrors(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry()
	tool := newEchoTool()
	if err := Register(registry, tool); err != nil {
		t.Fatalf("Error registering tool: %v", err)
	}
	// unknown tool
	callback := registry.Execute(ctx, components.ToolCall{Name: "NoSuchTool"})
	if !callback.IsError || !strings.Contains(callback.Content, "unknown tool") {
		t.Errorf("Expect unknown tool error, but got %+v", callback)
	}
	// malformed arguments
	callback = registry.Execute(ctx, components.ToolCall{Name: "EchoTool", Arguments: `{"text":`})
	if !callback.IsError {
		t.Error("Expect malformed arguments to produce an error callback")
	}
	// validation failure
	callback = registry.Execute(ctx, components.ToolCall{Name: "EchoTool", Arguments: `{}`})
	if !callback.IsError {
		t.Error("Expect missing required field to produce an error callback")
	}
	if tool.calls != 0 {
		t.Errorf("Expect no tool calls for rejected arguments, but got %d", tool.calls)
	}
}

func TestRegistryCatalogSection(t *testing.T) {
	registry := NewRegistry()
	if err := Register(registry, newEchoTool()); err != nil {
		t.Fatalf("Error registering tool: %v", err)
	}
	if registry.Title() != "Available tools" {
		t.Errorf("Expect section title Available tools, but got %s", registry.Title())
	}
	if info := registry.Info(); !strings.Contains(info, "EchoTool: Echoes its input back.") {
		t.Errorf("Expect catalog line, but got %q", info)
	}
}
