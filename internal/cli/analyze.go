package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/degrees/pkg/pipeline"
	"github.com/matzehuels/degrees/pkg/report"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	input inputFlags

	threshold int    // hop count for the "within k degrees" figure
	workers   int    // concurrent searches; 0 means one per CPU
	noCache   bool   // bypass the report cache
	refresh   bool   // recompute and overwrite a cached report
	json      bool   // print the report as JSON instead of a table
	output    string // also write the report JSON to this file
}

// analyzeCommand creates the analyze command, which computes and prints the
// separation statistics of an edge list.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze [edges.csv]",
		Short: "Compute degrees-of-separation statistics for an edge list",
		Long: `Analyze reads a two-column edge list (source,target per line) and runs a
breadth-first search from every node. Distances of all reachable ordered
pairs are summarized as a histogram plus mean, standard deviation and the
percentage of pairs within the threshold.

Edges are directed unless --undirected is given.`,
		Example: `  degrees analyze facebook_combined.csv --undirected
  degrees analyze edges.tsv --delimiter '\t' --json -o report.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd, args[0], &opts)
		},
	}

	opts.input.register(cmd)
	cmd.Flags().IntVar(&opts.threshold, "threshold", pipeline.DefaultThreshold, "hop count for the within-threshold percentage")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "concurrent searches (default one per CPU)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the report cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached report exists")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the report JSON to a file")

	return cmd
}

func (c *CLI) runAnalyze(cmd *cobra.Command, path string, opts *analyzeOpts) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}

	popts := cfg.options(path)
	opts.input.apply(cmd, &popts)
	if cmd.Flags().Changed("threshold") {
		popts.Threshold = &opts.threshold
	}
	if cmd.Flags().Changed("workers") {
		popts.Workers = opts.workers
	}
	popts.Refresh = opts.refresh

	runner := c.newRunner(ctx, cfg.Cache, opts.noCache)
	defer runner.Close()

	prog := newProgress(c.Logger)

	var spinner *Spinner
	if c.Logger.GetLevel() > LogDebug {
		spinner = newSpinnerWithContext(ctx, "Computing distances...")
		spinner.Start()
	}
	logProgress := searchProgress(c.Logger)
	popts.Progress = func(done, total int) {
		logProgress(done, total)
		if spinner != nil {
			spinner.SetMessage(fmt.Sprintf("Computing distances %d/%d", done, total))
		}
	}
	result, err := runner.Execute(ctx, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	rep := result.Report
	prog.done(fmt.Sprintf("Analyzed %d nodes", rep.Nodes))

	if opts.json {
		if err := report.Write(rep, os.Stdout); err != nil {
			return err
		}
	} else {
		renderReport(os.Stdout, rep, result.CacheHit)
		if !rep.Symmetric {
			printWarning("Edges are one-way: distances follow edge direction (see --undirected)")
		}
	}

	if opts.output != "" {
		if err := report.WriteFile(rep, opts.output); err != nil {
			return err
		}
		if !opts.json {
			printSuccess("Report written")
			printFile(opts.output)
		}
	}

	return nil
}
