package prompt

import (
	"fmt"
	"strings"
)

// Section contributes a titled block of extra context to a generated
// system prompt, e.g. a tool catalog or the current date.
type Section interface {
	Title() string
	Info() string
}

// Builder assembles a system prompt from background, steps, output
// instructions and registered sections.
type Builder struct {
	background      []string
	steps           []string
	outputInstructs []string
	sections        []Section
}

// New returns a new prompt Builder
func New(options ...Option) *Builder {
	ret := new(Builder)
	for _, opt := range options {
		opt(ret)
	}
	if len(ret.background) == 0 {
		ret.background = []string{"This is a conversation with a helpful and friendly AI assistant."}
	}
	return ret
}

// AddSections registers extra context sections
func (b *Builder) AddSections(sections ...Section) {
	b.sections = append(b.sections, sections...)
}

// RemoveSections unregisters sections by title
func (b *Builder) RemoveSections(titles ...string) {
	for _, title := range titles {
		for idx, section := range b.sections {
			if section.Title() == title {
				b.sections = append(b.sections[:idx], b.sections[idx+1:]...)
				break
			}
		}
	}
}

// Section retrieves a registered section by title.
func (b *Builder) Section(title string) (Section, error) {
	for _, section := range b.sections {
		if section.Title() == title {
			return section, nil
		}
	}
	return nil, fmt.Errorf("section '%s' not found", title)
}

// Generate renders the system prompt.
func (b *Builder) Generate() string {
	parts := make([]string, 0, len(b.sections)*3+len(b.background)+len(b.steps)+len(b.outputInstructs)+4)
	if len(b.background) > 0 {
		parts = append(parts, "# IDENTITY and PURPOSE")
		parts = append(parts, b.background...)
		parts = append(parts, "")
	}
	if len(b.steps) > 0 {
		parts = append(parts, "# INTERNAL ASSISTANT STEPS")
		parts = append(parts, b.steps...)
		parts = append(parts, "")
	}
	if len(b.outputInstructs) > 0 {
		parts = append(parts, "# OUTPUT INSTRUCTIONS")
		parts = append(parts, b.outputInstructs...)
		parts = append(parts, "")
	}
	if len(b.sections) > 0 {
		parts = append(parts, "# EXTRA INFORMATION AND CONTEXT")
		for _, section := range b.sections {
			if info := section.Info(); info != "" {
				parts = append(parts, fmt.Sprintf("## %s", section.Title()))
				parts = append(parts, info)
				parts = append(parts, "")
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
