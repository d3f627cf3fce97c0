package prompt

import (
	"strings"
	"testing"
)

type staticSection struct {
	title string
	info  string
}

func (s staticSection) Title() string { return s.title }
func (s staticSection) Info() string  { return s.info }

func TestGenerate(t *testing.T) {
	b := New(
		WithBackground("You answer city lookup questions."),
		WithSteps("Decide which tools to call.", "Combine the tool results."),
		WithOutputInstructs("Answer in one short paragraph."),
		WithSections(staticSection{title: "Available tools", info: "- WeatherTool: current weather"}),
	)
	got := b.Generate()
	for _, expect := range []string{
		"# IDENTITY and PURPOSE",
		"You answer city lookup questions.",
		"# INTERNAL ASSISTANT STEPS",
		"# OUTPUT INSTRUCTIONS",
		"## Available tools",
		"- WeatherTool: current weather",
	} {
		if !strings.Contains(got, expect) {
			t.Errorf("Expect prompt to contain %q, but got:\n%s", expect, got)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("Expect trimmed prompt")
	}
}

func TestSections(t *testing.T) {
	b := New()
	b.AddSections(staticSection{title: "Current date", info: "2026-08-30"})
	if _, err := b.Section("Current date"); err != nil {
		t.Errorf("Expect section to be found, but got %v", err)
	}
	b.RemoveSections("Current date")
	if _, err := b.Section("Current date"); err == nil {
		t.Error("Expect removed section to be gone")
	}
}
