package tools

import (
	"context"

	"github.com/citydesk/citydesk/schema"
)

// ITool is the untyped surface shared by every lookup tool: the title
// doubles as the registered tool name, the hooks observe tool runs.
type ITool interface {
	SetTitle(string)
	Title() string
	SetDescription(string)
	Description() string
	SetStartHook(fn func(context.Context, AnonymousTool, any))
	SetEndHook(fn func(context.Context, AnonymousTool, any, any))
	SetErrorHook(fn func(context.Context, AnonymousTool, any, error))
}

// Tool is a typed lookup tool. Run fills the output in place; provider
// failures are carried inside the output, not as the returned error.
type Tool[I schema.Schema, O schema.Schema] interface {
	ITool
	Run(context.Context, *I, *O) error
}

// AnonymousTool runs with untyped input, for callers that only hold an
// ITool.
type AnonymousTool interface {
	ITool
	RunAnonymous(context.Context, any) (any, error)
}
