package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/citydesk/citydesk/lookup"
	"github.com/citydesk/citydesk/schema"
	"github.com/citydesk/citydesk/tools"
)

type Mode = string

const (
	DrivingMode   Mode = "driving"
	WalkingMode   Mode = "walking"
	BicyclingMode Mode = "bicycling"
	TransitMode   Mode = "transit"
)

// Input Schema for a tool fetching a route between two places from a
// Google-Directions-style API.
type Input struct {
	schema.Base
	// Origin starting place of the route.
	Origin string `json:"origin" jsonschema:"title=origin,description=Starting place of the route." validate:"required"`
	// Destination end place of the route.
	Destination string `json:"destination" jsonschema:"title=destination,description=End place of the route." validate:"required"`
	// Mode travel mode.
	Mode Mode `json:"mode,omitempty" jsonschema:"title=mode,enum=driving,enum=walking,enum=bicycling,enum=transit,default=driving,description=Travel mode."`
}

func NewInput(origin, destination string, mode Mode) *Input {
	if mode == "" {
		mode = DrivingMode
	}
	return &Input{
		Origin:      origin,
		Destination: destination,
		Mode:        mode,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output Schema for the output of the directions tool.
type Output struct {
	schema.Base
	// Summary route name
	Summary string `json:"summary,omitempty" jsonschema:"title=summary,description=Route name."`
	// Distance human readable total distance
	Distance string `json:"distance,omitempty" jsonschema:"title=distance,description=Human readable total distance."`
	// DistanceMeters total distance in meters
	DistanceMeters int `json:"distance_meters,omitempty" jsonschema:"title=distance_meters,description=Total distance in meters."`
	// Duration human readable total duration
	Duration string `json:"duration,omitempty" jsonschema:"title=duration,description=Human readable total duration."`
	// DurationSeconds total duration in seconds
	DurationSeconds int `json:"duration_seconds,omitempty" jsonschema:"title=duration_seconds,description=Total duration in seconds."`
	// Steps number of steps over all legs
	Steps int `json:"steps,omitempty" jsonschema:"title=steps,description=Number of steps over all legs."`
	// StartAddress resolved start address
	StartAddress string `json:"start_address,omitempty" jsonschema:"title=start_address,description=Resolved start address."`
	// EndAddress resolved end address
	EndAddress string `json:"end_address,omitempty" jsonschema:"title=end_address,description=Resolved end address."`
	// Rendered human readable route report
	Rendered string `json:"rendered,omitempty" jsonschema:"title=rendered,description=Human readable route report."`
	// Succeeded whether the lookup succeeded
	Succeeded bool `json:"succeeded" jsonschema:"title=succeeded,description=Whether the lookup succeeded."`
	// Reason categorized failure reason when the lookup failed
	Reason lookup.Reason `json:"reason,omitempty" jsonschema:"title=reason,description=Categorized failure reason."`
	// Detail provider failure detail
	Detail string `json:"detail,omitempty" jsonschema:"title=detail,description=Provider failure detail."`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

type Config struct {
	tools.Config
	apiKey     string
	baseURL    string
	mode       Mode
	timeout    time.Duration
	httpClient *http.Client
}

// Tool fetches a route between two places with a single outbound call.
// Only the first returned route is reported; legs are summed.
type Tool struct {
	Config
}

var (
	_ tools.Tool[Input, Output] = (*Tool)(nil)
	_ lookup.Client             = (*Tool)(nil)
)

func New(opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("DirectionsTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Fetches a route with distance and duration between two places.")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.mode == "" {
		ret.mode = DrivingMode
	}
	if ret.timeout == 0 {
		ret.timeout = 10 * time.Second
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: ret.timeout}
	}
	return ret
}

// Kind implements lookup.Client
func (t *Tool) Kind() lookup.Kind {
	return lookup.Directions
}

// Lookup implements lookup.Client. The location carries a combined route
// of the form "<origin> -> <destination>".
func (t *Tool) Lookup(ctx context.Context, location string) *lookup.Result {
	origin, destination, err := lookup.SplitRoute(location)
	if err != nil {
		return lookup.Failure(lookup.Directions, location, lookup.InvalidInput, err.Error())
	}
	input := NewInput(origin, destination, t.mode)
	output := new(Output)
	if err := t.Run(ctx, input, output); err != nil {
		return lookup.Failure(lookup.Directions, location, lookup.InvalidInput, err.Error())
	}
	if !output.Succeeded {
		return lookup.Failure(lookup.Directions, location, output.Reason, output.Detail)
	}
	return lookup.Success(lookup.Directions, location, output.Rendered, map[string]any{
		"summary":          output.Summary,
		"distance":         output.Distance,
		"distance_meters":  output.DistanceMeters,
		"duration":         output.Duration,
		"duration_seconds": output.DurationSeconds,
		"steps":            output.Steps,
		"start_address":    output.StartAddress,
		"end_address":      output.EndAddress,
	})
}

// Run fetches a route synchronously. Provider failures never surface as a
// Go error; they are normalized into the Output.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	if input == nil || output == nil {
		return errors.New("nil tool input or output")
	}
	if fn := t.StartHook(); fn != nil {
		fn(ctx, t, input)
	}
	t.fetch(ctx, input, output)
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

func (t *Tool) fetch(ctx context.Context, input *Input, output *Output) {
	origin := strings.TrimSpace(input.Origin)
	destination := strings.TrimSpace(input.Destination)
	if origin == "" || destination == "" {
		t.fail(output, lookup.InvalidInput, "empty origin or destination")
		return
	}
	if t.apiKey == "" {
		t.fail(output, lookup.Unauthorized, "no API key configured")
		return
	}
	mode := input.Mode
	if mode == "" {
		mode = t.mode
	}
	values := url.Values{}
	values.Set("origin", origin)
	values.Set("destination", destination)
	values.Set("mode", mode)
	values.Set("key", t.apiKey)
	reqURL := fmt.Sprintf("%s/maps/api/directions/json?%s", t.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		t.fail(output, lookup.InvalidInput, err.Error())
		return
	}
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		t.fail(output, lookup.ReasonFromError(err), err.Error())
		return
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		t.fail(output, lookup.ReasonFromStatus(httpResp.StatusCode), fmt.Sprintf("provider returned status %d", httpResp.StatusCode))
		return
	}
	var body struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
		Routes       []struct {
			Summary string `json:"summary"`
			Legs    []struct {
				Distance struct {
					Text  string `json:"text"`
					Value int    `json:"value"`
				} `json:"distance"`
				Duration struct {
					Text  string `json:"text"`
					Value int    `json:"value"`
				} `json:"duration"`
				StartAddress string `json:"start_address"`
				EndAddress   string `json:"end_address"`
				Steps        []struct {
					HTMLInstructions string `json:"html_instructions"`
				} `json:"steps"`
			} `json:"legs"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&body); err != nil {
		t.fail(output, lookup.UpstreamError, fmt.Sprintf("malformed provider body: %v", err))
		return
	}
	if body.Status != "OK" {
		t.fail(output, reasonFromStatus(body.Status), statusDetail(body.Status, body.ErrorMessage))
		return
	}
	if len(body.Routes) == 0 || len(body.Routes[0].Legs) == 0 {
		t.fail(output, lookup.NotFound, "provider returned no routes")
		return
	}
	route := body.Routes[0]
	var meters, seconds, steps int
	for _, leg := range route.Legs {
		meters += leg.Distance.Value
		seconds += leg.Duration.Value
		steps += len(leg.Steps)
	}
	firstLeg := route.Legs[0]
	lastLeg := route.Legs[len(route.Legs)-1]
	output.Summary = route.Summary
	output.DistanceMeters = meters
	output.DurationSeconds = seconds
	output.Steps = steps
	output.StartAddress = firstLeg.StartAddress
	output.EndAddress = lastLeg.EndAddress
	if len(route.Legs) == 1 {
		output.Distance = firstLeg.Distance.Text
		output.Duration = firstLeg.Duration.Text
	} else {
		output.Distance = fmt.Sprintf("%.1f km", float64(meters)/1000)
		output.Duration = fmt.Sprintf("%d min", seconds/60)
	}
	output.Succeeded = true
	via := ""
	if route.Summary != "" {
		via = fmt.Sprintf(" via %s", route.Summary)
	}
	output.Rendered = fmt.Sprintf("%s from %s to %s: %s, about %s%s.",
		capitalize(mode), origin, destination, output.Distance, output.Duration, via)
}

func (t *Tool) fail(output *Output, reason lookup.Reason, detail string) {
	output.Succeeded = false
	output.Reason = reason
	output.Detail = detail
}

// reasonFromStatus maps the body-level status of a directions response.
func reasonFromStatus(status string) lookup.Reason {
	switch status {
	case "NOT_FOUND", "ZERO_RESULTS":
		return lookup.NotFound
	case "REQUEST_DENIED":
		return lookup.Unauthorized
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return lookup.RateLimited
	case "INVALID_REQUEST":
		return lookup.InvalidInput
	}
	return lookup.UpstreamError
}

func statusDetail(status, message string) string {
	if message == "" {
		return status
	}
	return fmt.Sprintf("%s: %s", status, message)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
