package cmd

import (
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/f3rmion/abc/internal/eval"
)

var evalCmd = &cobra.Command{
	Use:   "eval [letter]",
	Short: "Measure recognition rates on recorded samples",
	Long: `Replay every recorded sample through the recognizer and report how often
each letter is accepted.

Letters without a shape classifier go through a random fallback, so each
sample is recognized --trials times. Use --min-points to try a different
length gate before changing settings.yaml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().Int("trials", 20, "recognitions per sample")
	evalCmd.Flags().Uint64("seed", 0, "random seed for the fallback (0 is random)")
	evalCmd.Flags().Int("workers", runtime.NumCPU(), "letters evaluated in parallel")
}

func runEval(cmd *cobra.Command, args []string) error {
	letter, err := letterArg(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.List(cmd.Context(), letter)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No samples to evaluate. Save strokes with s in the trace view.")
		return nil
	}

	trials, _ := cmd.Flags().GetInt("trials")
	seed, _ := cmd.Flags().GetUint64("seed")
	workers, _ := cmd.Flags().GetInt("workers")

	report, err := eval.Run(cmd.Context(), list, eval.Options{
		MinPoints: cfg.Gesture.MinTracePoints,
		Trials:    trials,
		Workers:   workers,
		Seed:      seed,
	})
	if err != nil {
		return fmt.Errorf("evaluating: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LETTER\tSAMPLES\tTOO SHORT\tACCEPTED\tRATE\tCHECK")
	for _, l := range report.Letters {
		check := "fallback"
		if l.Dedicated {
			check = "shape"
		}
		fmt.Fprintf(w, "%c\t%d\t%d\t%s/%s\t%.0f%%\t%s\n",
			l.Letter, l.Samples, l.TooShort, humanize.Comma(int64(l.Accepted)), humanize.Comma(int64(l.Trials)), l.Rate()*100, check)
	}
	t := report.Totals()
	fmt.Fprintf(w, "ALL\t%d\t%d\t%s/%s\t%.0f%%\t\n",
		t.Samples, t.TooShort, humanize.Comma(int64(t.Accepted)), humanize.Comma(int64(t.Trials)), t.Rate()*100)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nmin_trace_points = %d\n", cfg.Gesture.MinTracePoints)
	return nil
}
