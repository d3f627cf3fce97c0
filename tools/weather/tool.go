package weather

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

type Units = string

const (
	ImperialUnits Units = "imperial"
	MetricUnits   Units = "metric"
)

// Input Schema for a tool fetching the current weather of a city from
// OpenWeatherMap.
type Input struct {
	schema.Base
	// Location City name to fetch the weather for.
	Location string `json:"location" jsonschema:"title=location,description=City name to fetch the current weather for." validate:"required"`
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

// Output Schema for the output of the weather tool. A failed lookup keeps
// Succeeded false and carries a categorized reason instead of an error.
type Output struct {
	schema.Base
	// City resolved city name
	City string `json:"city,omitempty" jsonschema:"title=city,description=Resolved city name."`
	// Country country code of the resolved city
	Country string `json:"country,omitempty" jsonschema:"title=country,description=Country code of the resolved city."`
	// Temperature in the configured units; zero is a real reading
	Temperature float64 `json:"temperature" jsonschema:"title=temperature,description=Current temperature."`
	// Condition short weather description
	Condition string `json:"condition,omitempty" jsonschema:"title=condition,description=Short weather description."`
	// Humidity in percent
	Humidity int `json:"humidity" jsonschema:"title=humidity,description=Relative humidity in percent."`
	// WindSpeed in the configured units; zero means calm
	WindSpeed float64 `json:"wind_speed" jsonschema:"title=wind_speed,description=Wind speed."`
	// Pressure in hPa
	Pressure int `json:"pressure,omitempty" jsonschema:"title=pressure,description=Atmospheric pressure in hPa."`
	// Rendered human readable weather report
	Rendered string `json:"rendered,omitempty" jsonschema:"title=rendered,description=Human readable weather report."`
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
	units      Units
	timeout    time.Duration
	httpClient *http.Client
}

// Tool fetches the current weather of a city from OpenWeatherMap with a
// single outbound call, no retries.
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
		ret.SetTitle("WeatherTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Fetches the current weather conditions of a city.")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.units == "" {
		ret.units = ImperialUnits
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
	return lookup.Weather
}

// Lookup implements lookup.Client
func (t *Tool) Lookup(ctx context.Context, location string) *lookup.Result {
	input := NewInput(location)
	output := new(Output)
	if err := t.Run(ctx, input, output); err != nil {
		return lookup.Failure(lookup.Weather, location, lookup.InvalidInput, err.Error())
	}
	if !output.Succeeded {
		return lookup.Failure(lookup.Weather, location, output.Reason, output.Detail)
	}
	return lookup.Success(lookup.Weather, location, output.Rendered, map[string]any{
		"city":        output.City,
		"country":     output.Country,
		"temperature": output.Temperature,
		"condition":   output.Condition,
		"humidity":    output.Humidity,
		"wind_speed":  output.WindSpeed,
		"pressure":    output.Pressure,
	})
}

// Run fetches the current weather synchronously. Provider failures never
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
	if t.apiKey == "" {
		t.fail(output, lookup.Unauthorized, "no API key configured")
		return
	}
	values := url.Values{}
	values.Set("q", location)
	values.Set("appid", t.apiKey)
	values.Set("units", t.units)
	reqURL := fmt.Sprintf("%s/data/2.5/weather?%s", t.baseURL, values.Encode())
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
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
			Pressure int     `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&body); err != nil {
		t.fail(output, lookup.UpstreamError, fmt.Sprintf("malformed provider body: %v", err))
		return
	}
	condition := "unknown conditions"
	if len(body.Weather) > 0 && body.Weather[0].Description != "" {
		condition = body.Weather[0].Description
	}
	output.City = body.Name
	output.Country = body.Sys.Country
	output.Temperature = body.Main.Temp
	output.Condition = capitalize(condition)
	output.Humidity = body.Main.Humidity
	output.WindSpeed = body.Wind.Speed
	output.Pressure = body.Main.Pressure
	output.Succeeded = true
	tempUnit, speedUnit := unitSymbols(t.units)
	output.Rendered = fmt.Sprintf(
		"The weather in %s, %s is %s with a temperature of %.1f°%s. Humidity: %d%%, Wind: %.1f %s, Pressure: %d hPa.",
		output.City, output.Country, output.Condition, output.Temperature, tempUnit,
		output.Humidity, output.WindSpeed, speedUnit, output.Pressure,
	)
}

func (t *Tool) fail(output *Output, reason lookup.Reason, detail string) {
	output.Succeeded = false
	output.Reason = reason
	output.Detail = detail
}

func unitSymbols(units Units) (string, string) {
	if units == MetricUnits {
		return "C", "m/s"
	}
	return "F", "mph"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
