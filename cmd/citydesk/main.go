// Command citydesk answers weather, local time and directions queries for
// cities, either through the fixed command grammar or through a hosted
// LLM agent that calls the registered tools.
//
// Usage:
//
//	citydesk "weather in Paris; time in Tokyo"
//	citydesk -parallel "weather in Paris; directions from Paris to Lyon"
//	citydesk -agent "Should I bring an umbrella in London tomorrow morning?"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/citydesk/citydesk/agents"
	"github.com/citydesk/citydesk/components"
	"github.com/citydesk/citydesk/config"
	"github.com/citydesk/citydesk/lookup"
	"github.com/citydesk/citydesk/query"
	"github.com/citydesk/citydesk/tools"
	"github.com/citydesk/citydesk/tools/cityreport"
	"github.com/citydesk/citydesk/tools/directions"
	"github.com/citydesk/citydesk/tools/localtime"
	"github.com/citydesk/citydesk/tools/weather"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath string
		agentMode  bool
		jsonOut    bool
		parallel   bool
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "", "path to a YAML config file")
	flag.BoolVar(&agentMode, "agent", false, "route the query through the configured LLM instead of the command grammar")
	flag.BoolVar(&jsonOut, "json", false, "print the structured report as JSON")
	flag.BoolVar(&parallel, "parallel", false, "run independent lookups concurrently")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")
	flag.Parse()

	queryText := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if queryText == "" {
		fmt.Fprintln(os.Stderr, "usage: citydesk [flags] <query>")
		flag.PrintDefaults()
		return 2
	}

	logger := newLogger(verbose)
	defer logger.Sync()

	config.LoadDotenv()
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("load config", zap.Error(err))
		return 2
	}
	if missing := cfg.Missing(); len(missing) > 0 {
		logger.Warn("missing provider keys, affected lookups will fail unauthorized", zap.Strings("keys", missing))
	}

	weatherTool := weather.New(
		weather.WithAPIKey(cfg.Weather.APIKey),
		weather.WithBaseURL(cfg.Weather.BaseURL),
		weather.WithUnits(cfg.Weather.Units),
		weather.WithTimeout(cfg.Weather.Timeout),
	)
	timeOpts := []localtime.Option{
		localtime.WithAPIKey(cfg.Time.APIKey),
		localtime.WithBaseURL(cfg.Time.BaseURL),
		localtime.WithTimeout(cfg.Time.Timeout),
	}
	if cfg.Time.LocalZones {
		timeOpts = append(timeOpts, localtime.WithLocalZones())
	}
	timeTool := localtime.New(timeOpts...)
	directionsTool := directions.New(
		directions.WithAPIKey(cfg.Directions.APIKey),
		directions.WithBaseURL(cfg.Directions.BaseURL),
		directions.WithMode(cfg.Directions.Mode),
		directions.WithTimeout(cfg.Directions.Timeout),
	)

	dispatcherOpts := []lookup.DispatcherOption{
		lookup.WithClients(weatherTool, timeTool, directionsTool),
		lookup.WithStartHook(func(ctx context.Context, req lookup.Request) {
			logger.Debug("lookup start", zap.String("kind", string(req.Kind)), zap.String("location", req.Location))
		}),
		lookup.WithEndHook(func(ctx context.Context, req lookup.Request, res *lookup.Result) {
			if res.Succeeded {
				logger.Debug("lookup done", zap.String("kind", string(req.Kind)), zap.String("location", req.Location))
			} else {
				logger.Info("lookup failed",
					zap.String("kind", string(req.Kind)),
					zap.String("location", req.Location),
					zap.String("reason", string(res.Reason)),
					zap.String("detail", res.Detail))
			}
		}),
	}
	if parallel {
		dispatcherOpts = append(dispatcherOpts, lookup.WithParallel())
	}
	dispatcher := lookup.NewDispatcher(dispatcherOpts...)

	ctx := context.Background()
	if agentMode {
		return runAgent(ctx, logger, cfg, dispatcher, weatherTool, timeTool, directionsTool, queryText)
	}
	return runGrammar(ctx, logger, dispatcher, queryText, jsonOut)
}

func runGrammar(ctx context.Context, logger *zap.Logger, dispatcher *lookup.Dispatcher, queryText string, jsonOut bool) int {
	reqs, err := query.Parse(queryText)
	if err != nil {
		logger.Error("parse query", zap.Error(err))
		return 2
	}
	report := dispatcher.Dispatch(ctx, reqs)
	if jsonOut {
		bs, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			logger.Error("encode report", zap.Error(err))
			return 1
		}
		fmt.Println(string(bs))
	} else {
		fmt.Println(report.Render())
	}
	// partial success is success; only a fully failed report is an error
	if len(report.Succeeded()) == 0 {
		return 1
	}
	return 0
}

func runAgent(ctx context.Context, logger *zap.Logger, cfg *config.Config, dispatcher *lookup.Dispatcher,
	weatherTool *weather.Tool, timeTool *localtime.Tool, directionsTool *directions.Tool, queryText string,
) int {
	registry := tools.NewRegistry()
	if err := tools.Register(registry, weatherTool); err != nil {
		logger.Error("register tool", zap.Error(err))
		return 2
	}
	if err := tools.Register(registry, timeTool); err != nil {
		logger.Error("register tool", zap.Error(err))
		return 2
	}
	if err := tools.Register(registry, directionsTool); err != nil {
		logger.Error("register tool", zap.Error(err))
		return 2
	}
	if err := tools.Register(registry, cityreport.New(dispatcher)); err != nil {
		logger.Error("register tool", zap.Error(err))
		return 2
	}

	opts := []agents.Option{
		agents.WithName("CityDeskAgent"),
		agents.WithRegistry(registry),
	}
	switch strings.ToLower(cfg.LLM.Provider) {
	case "anthropic":
		if cfg.LLM.AnthropicKey == "" {
			logger.Error("agent mode needs ANTHROPIC_API_KEY")
			return 2
		}
		var clientOpts []anthropic.ClientOption
		if cfg.LLM.BaseURL != "" {
			clientOpts = append(clientOpts, anthropic.WithBaseURL(cfg.LLM.BaseURL))
		}
		opts = append(opts, agents.WithAnthropic(anthropic.NewClient(cfg.LLM.AnthropicKey, clientOpts...)))
		opts = append(opts, agents.WithModel(modelOrDefault(cfg.LLM.Model, "claude-3-5-haiku-latest")))
	case "gemini":
		if cfg.LLM.GeminiKey == "" {
			logger.Error("agent mode needs GEMINI_API_KEY")
			return 2
		}
		clt, err := genai.NewClient(ctx, option.WithAPIKey(cfg.LLM.GeminiKey))
		if err != nil {
			logger.Error("gemini client", zap.Error(err))
			return 2
		}
		defer clt.Close()
		opts = append(opts, agents.WithGemini(clt))
		opts = append(opts, agents.WithModel(modelOrDefault(cfg.LLM.Model, "gemini-2.0-flash")))
	default:
		if cfg.LLM.OpenAIKey == "" {
			logger.Error("agent mode needs OPENAI_API_KEY")
			return 2
		}
		clientCfg := openai.DefaultConfig(cfg.LLM.OpenAIKey)
		if cfg.LLM.BaseURL != "" {
			clientCfg.BaseURL = cfg.LLM.BaseURL
		}
		opts = append(opts, agents.WithOpenAI(openai.NewClientWithConfig(clientCfg)))
		opts = append(opts, agents.WithModel(modelOrDefault(cfg.LLM.Model, "gpt-4o-mini")))
	}

	agent := agents.New(opts...)
	agent.SetStartHook(func(ctx context.Context, a *agents.Agent, input string) {
		logger.Debug("agent start", zap.String("session", a.SessionID()), zap.String("input", input))
	})
	agent.SetEndHook(func(ctx context.Context, a *agents.Agent, input, answer string, apiResp *components.ApiResponse) {
		if apiResp != nil && apiResp.Usage != nil {
			logger.Debug("agent done",
				zap.String("session", a.SessionID()),
				zap.Int("input_tokens", apiResp.Usage.InputTokens),
				zap.Int("output_tokens", apiResp.Usage.OutputTokens))
		}
	})
	agent.SetErrorHook(func(ctx context.Context, a *agents.Agent, input string, err error) {
		logger.Error("agent failed", zap.String("session", a.SessionID()), zap.Error(err))
	})

	apiResp := new(components.ApiResponse)
	answer, err := agent.Run(ctx, queryText, apiResp)
	if err != nil {
		return 1
	}
	fmt.Println(answer)
	return 0
}

func modelOrDefault(model, fallback string) string {
	if model != "" {
		return model
	}
	return fallback
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
