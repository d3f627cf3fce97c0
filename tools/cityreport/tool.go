package cityreport

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/citydesk/citydesk/lookup"
	"github.com/citydesk/citydesk/schema"
	"github.com/citydesk/citydesk/tools"
)

// LookupSpec names one source and one location. For directions the
// location carries "<origin> -> <destination>". An unknown kind does not
// fail validation; it stays in the batch and is reported in place.
type LookupSpec struct {
	// Kind data source to query.
	Kind string `json:"kind" jsonschema:"title=kind,enum=weather,enum=time,enum=directions,description=Data source to query." validate:"required"`
	// Location city name, or origin -> destination for directions.
	Location string `json:"location" jsonschema:"title=location,description=City name, or 'origin -> destination' for directions." validate:"required"`
}

// Input Schema for a tool answering several city lookups in one call.
type Input struct {
	schema.Base
	// Lookups ordered list of lookups to perform.
	Lookups []LookupSpec `json:"lookups" jsonschema:"title=lookups,description=Ordered list of lookups to perform." validate:"required,min=1,dive"`
}

func NewInput(lookups ...LookupSpec) *Input {
	return &Input{
		Lookups: lookups,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output Schema for the combined report. Failed lookups stay in place with
// a short note; they never abort the batch.
type Output struct {
	schema.Base
	// Report combined human readable report, one line per lookup.
	Report string `json:"report,omitempty" jsonschema:"title=report,description=Combined human readable report, one line per lookup."`
	// Results structured results in request order.
	Results []lookup.Result `json:"results,omitempty" jsonschema:"title=results,description=Structured results in request order."`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Tool wraps a lookup.Dispatcher as a single registered tool, for agent
// runtimes that prefer one batched call over three separate ones.
type Tool struct {
	tools.Config
	dispatcher *lookup.Dispatcher
}

var _ tools.Tool[Input, Output] = (*Tool)(nil)

func New(dispatcher *lookup.Dispatcher, opts ...tools.Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("CityReportTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Answers weather, local time and directions lookups for cities in one batched call.")
	}
	ret.dispatcher = dispatcher
	return ret
}

// Run dispatches every requested lookup and aggregates the outcomes.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	if input == nil || output == nil {
		return errors.New("nil tool input or output")
	}
	if t.dispatcher == nil {
		return errors.New("no dispatcher configured")
	}
	if fn := t.StartHook(); fn != nil {
		fn(ctx, t, input)
	}
	reqs := make([]lookup.Request, 0, len(input.Lookups))
	for _, spec := range input.Lookups {
		// unparsable kinds stay in the batch; the dispatcher reports them
		// as invalid_input in place
		kind, err := lookup.ParseKind(spec.Kind)
		if err != nil {
			kind = lookup.Kind(strings.ToLower(spec.Kind))
		}
		reqs = append(reqs, lookup.NewRequest(kind, spec.Location))
	}
	report := t.dispatcher.Dispatch(ctx, reqs)
	output.Report = report.Render()
	output.Results = report.Results
	if fn := t.EndHook(); fn != nil {
		fn(ctx, t, input, output)
	}
	return nil
}

// RunAnonymous implements tools.AnonymousTool
func (t *Tool) RunAnonymous(ctx context.Context, input any) (any, error) {
	in, ok := input.(*Input)
	if !ok {
		return nil, errors.New("invalid tool input schema")
	}
	out := new(Output)
	if err := t.Run(ctx, in, out); err != nil {
		return nil, err
	}
	return out, nil
}
