package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/shotsort/internal/config"
)

var (
	configPath   string
	sessionGap   time.Duration
	patterns     []string
	enableSim    bool
	simThreshold int
	smartNames   bool
	providerType string
	modelName    string
	enableMerge  bool
	mergeThresh  float64
	mergeMaxGap  time.Duration
	workers      int
	dryRun       bool
	autoConfirm  bool
	verbose      bool
	ciMode       bool
	interactive  bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "shotsort",
	Short: "Screenshot session organizer",
	Long: `Shotsort groups the screenshots piling up on your desktop into
session folders by capture time, with optional visual refinement and
OCR-driven smart folder names.`,
}

var runCmd = &cobra.Command{
	Use:   "run [directory]",
	Short: "Organize a directory of screenshots",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := buildOptions(cmd, args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := runOrganize(opts); err != nil {
			os.Exit(1)
		}
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (.yaml or .json)")
	runCmd.Flags().DurationVar(&sessionGap, "session-gap", 15*time.Minute, "Max capture gap inside one session")
	runCmd.Flags().StringSliceVar(&patterns, "patterns", nil, "Filename patterns to include (default *.png, *.jpg, *.jpeg)")
	runCmd.Flags().BoolVar(&enableSim, "enable-similarity", false, "Split sessions on visual dissimilarity")
	runCmd.Flags().IntVar(&simThreshold, "similarity-threshold", 10, "Max perceptual hash distance inside one session")
	runCmd.Flags().BoolVar(&smartNames, "smart-names", false, "Name sessions from OCR text via an AI provider")
	runCmd.Flags().StringVarP(&providerType, "provider", "p", "ollama", "AI Provider (ollama, openai, gemini, anthropic)")
	runCmd.Flags().StringVarP(&modelName, "model", "m", "", "Model name (default depends on provider)")
	runCmd.Flags().BoolVar(&enableMerge, "enable-merge", false, "Merge keyword-similar adjacent sessions")
	runCmd.Flags().Float64Var(&mergeThresh, "merge-threshold", 0.5, "Min keyword overlap for merging (0..1)")
	runCmd.Flags().DurationVar(&mergeMaxGap, "merge-max-gap", 4*time.Hour, "Max gap between sessions considered for merging")
	runCmd.Flags().IntVar(&workers, "workers", 4, "Parallel enrichment workers")
	runCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the plan without moving anything")
	runCmd.Flags().BoolVarP(&autoConfirm, "yes", "y", false, "Skip the confirmation prompt")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	runCmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: JSON output, non-interactive")
	runCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Review the plan in a full-screen TUI")
}

// buildOptions layers defaults, the optional config file, then any flag
// the user actually set, and validates the result.
func buildOptions(cmd *cobra.Command, args []string) (config.Options, error) {
	opts := config.Default()

	if configPath != "" {
		var err error
		opts, err = config.LoadFile(configPath, opts)
		if err != nil {
			return opts, err
		}
	}

	if len(args) > 0 {
		opts.TargetDir = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("session-gap") {
		opts.SessionGap = sessionGap
	}
	if flags.Changed("patterns") {
		opts.Patterns = patterns
	}
	if flags.Changed("enable-similarity") {
		opts.EnableSimilarity = enableSim
	}
	if flags.Changed("similarity-threshold") {
		opts.SimilarityThreshold = simThreshold
	}
	if flags.Changed("smart-names") {
		opts.SmartNames = smartNames
	}
	if flags.Changed("provider") {
		opts.Provider = providerType
	}
	if flags.Changed("model") {
		opts.Model = modelName
	}
	if flags.Changed("enable-merge") {
		opts.EnableMerge = enableMerge
	}
	if flags.Changed("merge-threshold") {
		opts.MergeThreshold = mergeThresh
	}
	if flags.Changed("merge-max-gap") {
		opts.MergeMaxGap = mergeMaxGap
	}
	if flags.Changed("workers") {
		opts.Workers = workers
	}
	if flags.Changed("dry-run") {
		opts.DryRun = dryRun
	}
	if flags.Changed("yes") {
		opts.AutoConfirm = autoConfirm
	}
	if flags.Changed("verbose") {
		opts.Verbose = verbose
	}
	if flags.Changed("ci") {
		opts.CI = ciMode
	}
	if flags.Changed("interactive") {
		opts.Interactive = interactive
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
