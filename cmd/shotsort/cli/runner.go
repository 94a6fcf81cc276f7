package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/felixgeelhaar/shotsort/internal/config"
	"github.com/felixgeelhaar/shotsort/internal/executor"
	"github.com/felixgeelhaar/shotsort/internal/namer"
	"github.com/felixgeelhaar/shotsort/internal/observe"
	"github.com/felixgeelhaar/shotsort/internal/ocr"
	"github.com/felixgeelhaar/shotsort/internal/pipeline"
	"github.com/felixgeelhaar/shotsort/internal/provider"
	"github.com/felixgeelhaar/shotsort/internal/store"
	"github.com/felixgeelhaar/shotsort/internal/ui"
	"github.com/felixgeelhaar/shotsort/internal/ui/tui"
)

func runOrganize(opts config.Options) error {
	var obs *observe.Observer
	if opts.CI {
		obs = observe.NewJSON(os.Stdout, opts.Verbose)
	} else {
		obs = observe.New(os.Stdout, opts.Verbose)
	}
	defer obs.Close()

	s := getStore()
	defer s.Close()

	n, engine, err := buildNaming(opts, s, obs)
	if err != nil {
		obs.Log().Error().Err(err).Msg("Failed to initialize naming")
		return err
	}

	p := pipeline.New(opts, obs, n, engine, nil)
	plan, err := p.BuildPlan(context.Background())
	if err != nil {
		obs.Log().Error().Err(err).Msg("Failed to build plan")
		return err
	}

	rendered := ui.RenderPlan(plan)

	if plan.TotalRecords() == 0 {
		fmt.Print(rendered)
		return nil
	}

	if !confirmed(opts, rendered) {
		fmt.Println("Aborted.")
		return nil
	}

	runID := fmt.Sprintf("run-%d", time.Now().Unix())
	exec := executor.New(opts.DryRun, runID, s)
	res := exec.Execute(plan)

	fmt.Print(ui.RenderResult(res, opts.DryRun))
	if res.Failed() {
		return fmt.Errorf("%d moves failed", len(res.Errors))
	}
	return nil
}

// confirmed shows the plan and applies the confirmation gate: dry runs,
// --yes and CI mode pass through, interactive mode asks via the TUI,
// everything else via a plain prompt.
func confirmed(opts config.Options, rendered string) bool {
	if opts.DryRun || opts.AutoConfirm || opts.CI {
		fmt.Print(rendered)
		return true
	}

	if opts.Interactive {
		ok, err := tui.Run(rendered)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return false
		}
		return ok
	}

	fmt.Print(rendered)
	return ui.Confirm(os.Stdin, os.Stdout, "Organize now?")
}

// buildNaming assembles the namer and OCR engine for smart names.
// Without smart names both collaborators stay nil-ish and naming falls
// through to timestamps.
func buildNaming(opts config.Options, s *store.SQLiteStore, obs *observe.Observer) (*namer.Namer, ocr.Engine, error) {
	if !opts.SmartNames {
		return namer.New(namer.WithWarn(obs.Warn)), nil, nil
	}

	p, err := buildProvider(opts, s)
	if err != nil {
		return nil, nil, err
	}

	var engine ocr.Engine
	ocrURL, _ := s.GetConfig("ocr.base_url")
	if ocrURL != "" {
		ocrKey, _ := s.GetConfig("ocr.api_key")
		ocrModel, _ := s.GetConfig("ocr.model")
		engine, err = ocr.NewClient(ocrURL, ocrKey, ocrModel)
		if err != nil {
			return nil, nil, err
		}
	}

	return namer.New(namer.WithProvider(p), namer.WithWarn(obs.Warn)), engine, nil
}

func buildProvider(opts config.Options, s *store.SQLiteStore) (provider.Provider, error) {
	switch opts.Provider {
	case "openai":
		apiKey, _ := s.GetConfig("openai.api_key")
		baseURL, _ := s.GetConfig("openai.base_url")
		return provider.NewOpenAIProvider(apiKey, baseURL, opts.Model)
	case "ollama":
		return provider.NewOllamaProvider(opts.Model)
	case "gemini":
		apiKey, _ := s.GetConfig("gemini.api_key")
		return provider.NewGeminiProvider(apiKey, opts.Model)
	case "anthropic":
		apiKey, _ := s.GetConfig("anthropic.api_key")
		return provider.NewAnthropicProvider(apiKey, opts.Model)
	case "stub":
		return provider.NewStubProvider(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", opts.Provider)
	}
}
