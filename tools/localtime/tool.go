package localtime

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

const timeLayout = "2006-01-02 15:04:05"

// Input Schema for a tool fetching the current local time of a city from
// TimeZoneDB.
type Input struct {
	schema.Base
	// Location City name or IANA time zone identifier.
	Location string `json:"location" jsonschema:"title=location,description=City name or IANA time zone identifier to fetch the local time for." validate:"required"`
}

func NewInput(location string) *Input {
	return &Input{
		Location: location,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output Schema for the output of the local time tool.
type Output struct {
	schema.Base
	// City the city the time was resolved for
	City string `json:"city,omitempty" jsonschema:"title=city,description=City the time was resolved for."`
	// Zone resolved IANA time zone identifier
	Zone string `json:"zone,omitempty" jsonschema:"title=zone,description=Resolved IANA time zone identifier."`
	// Abbreviation time zone abbreviation
	Abbreviation string `json:"abbreviation,omitempty" jsonschema:"title=abbreviation,description=Time zone abbreviation."`
	// GmtOffset offset from UTC in seconds; zero is UTC itself
	GmtOffset int `json:"gmt_offset" jsonschema:"title=gmt_offset,description=Offset from UTC in seconds."`
	// LocalTime formatted local timestamp
	LocalTime string `json:"local_time,omitempty" jsonschema:"title=local_time,description=Formatted local timestamp."`
	// Rendered human readable time report
	Rendered string `json:"rendered,omitempty" jsonschema:"title=rendered,description=Human readable time report."`
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
	timeout    time.Duration
	localZones bool
	httpClient *http.Client
	now        func() time.Time
}

// Tool fetches the current local time of a city from TimeZoneDB. With
// WithLocalZones it serves the time from the local tz database instead,
// for offline or keyless operation.
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
		ret.SetTitle("TimeTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Fetches the current local time and time zone of a city.")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.timeout == 0 {
		ret.timeout = 10 * time.Second
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: ret.timeout}
	}
	if ret.now == nil {
		ret.now = time.Now
	}
	return ret
}

// Kind implements lookup.Client
func (t *Tool) Kind() lookup.Kind {
	return lookup.Time
}

// Lookup implements lookup.Client
func (t *Tool) Lookup(ctx context.Context, location string) *lookup.Result {
	input := NewInput(location)
	output := new(Output)
	if err := t.Run(ctx, input, output); err != nil {
		return lookup.Failure(lookup.Time, location, lookup.InvalidInput, err.Error())
	}
	if !output.Succeeded {
		return lookup.Failure(lookup.Time, location, output.Reason, output.Detail)
	}
	return lookup.Success(lookup.Time, location, output.Rendered, map[string]any{
		"city":         output.City,
		"zone":         output.Zone,
		"abbreviation": output.Abbreviation,
		"gmt_offset":   output.GmtOffset,
		"local_time":   output.LocalTime,
	})
}

// Run fetches the local time synchronously. Provider failures never
// surface as a Go error; they are normalized into the Output.
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
	location := strings.TrimSpace(input.Location)
	if location == "" {
		t.fail(output, lookup.InvalidInput, "empty location")
		return
	}
	zone, ok := resolveZone(location)
	if !ok {
		t.fail(output, lookup.NotFound, fmt.Sprintf("no time zone known for %q", location))
		return
	}
	if t.localZones {
		t.fromLocalZone(location, zone, output)
		return
	}
	if t.apiKey == "" {
		t.fail(output, lookup.Unauthorized, "no API key configured")
		return
	}
	values := url.Values{}
	values.Set("key", t.apiKey)
	values.Set("format", "json")
	values.Set("by", "zone")
	values.Set("zone", zone)
	reqURL := fmt.Sprintf("%s/v2.1/get-time-zone?%s", t.baseURL, values.Encode())
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
		Message      string `json:"message"`
		ZoneName     string `json:"zoneName"`
		Abbreviation string `json:"abbreviation"`
		GmtOffset    int    `json:"gmtOffset"`
		Formatted    string `json:"formatted"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&body); err != nil {
		t.fail(output, lookup.UpstreamError, fmt.Sprintf("malformed provider body: %v", err))
		return
	}
	if body.Status != "OK" {
		t.fail(output, reasonFromMessage(body.Message), body.Message)
		return
	}
	ts, err := time.Parse(timeLayout, body.Formatted)
	if err != nil {
		t.fail(output, lookup.UpstreamError, fmt.Sprintf("malformed provider timestamp %q", body.Formatted))
		return
	}
	output.City = location
	output.Zone = body.ZoneName
	output.Abbreviation = body.Abbreviation
	output.GmtOffset = body.GmtOffset
	output.LocalTime = body.Formatted
	output.Succeeded = true
	output.Rendered = renderTime(location, body.ZoneName, ts)
}

// fromLocalZone answers from the local tz database, no network call.
func (t *Tool) fromLocalZone(location, zone string, output *Output) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		t.fail(output, lookup.NotFound, fmt.Sprintf("unknown time zone %q", zone))
		return
	}
	now := t.now().In(loc)
	abbreviation, offset := now.Zone()
	output.City = location
	output.Zone = zone
	output.Abbreviation = abbreviation
	output.GmtOffset = offset
	output.LocalTime = now.Format(timeLayout)
	output.Succeeded = true
	output.Rendered = renderTime(location, zone, now)
}

func (t *Tool) fail(output *Output, reason lookup.Reason, detail string) {
	output.Succeeded = false
	output.Reason = reason
	output.Detail = detail
}

func renderTime(city, zone string, ts time.Time) string {
	return fmt.Sprintf("The current time in %s (%s) is %s on %s.", city, zone, ts.Format("15:04"), ts.Format("2006-01-02"))
}

func reasonFromMessage(message string) lookup.Reason {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "key"):
		return lookup.Unauthorized
	case strings.Contains(lower, "limit") || strings.Contains(lower, "rate"):
		return lookup.RateLimited
	}
	return lookup.UpstreamError
}
