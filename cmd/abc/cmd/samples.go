package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/f3rmion/abc/internal/samples"
	"github.com/f3rmion/abc/internal/tui/components"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Manage recorded strokes",
	Long: `Manage the labelled strokes saved from the trace view.

Samples are kept in a sqlite database (<config>/samples.db, or --db) and
are used by 'abc eval' to tune the recognizer.`,
}

var samplesListCmd = &cobra.Command{
	Use:   "list [letter]",
	Short: "List samples, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSamplesList,
}

var samplesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one sample with a preview",
	Args:  cobra.ExactArgs(1),
	RunE:  runSamplesShow,
}

var samplesExportCmd = &cobra.Command{
	Use:   "export [letter]",
	Short: "Write samples as JSON to stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSamplesExport,
}

var samplesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import samples from a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE:  runSamplesImport,
}

var samplesDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete samples",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSamplesDelete,
}

func init() {
	rootCmd.AddCommand(samplesCmd)
	samplesCmd.AddCommand(samplesListCmd, samplesShowCmd, samplesExportCmd, samplesImportCmd, samplesDeleteCmd)
	samplesExportCmd.Flags().Bool("pretty", false, "indent the JSON output")
}

func letterArg(args []string) (rune, error) {
	if len(args) == 0 {
		return 0, nil
	}
	return samples.ParseLetter(args[0])
}

func runSamplesList(cmd *cobra.Command, args []string) error {
	letter, err := letterArg(args)
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

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No samples.")
		return nil
	}
	for _, s := range list {
		verdict := "miss"
		if s.Matched {
			verdict = "ok"
		}
		fmt.Fprintf(out, "%s  %c  %4d pts  %-4s  %-8s %s\n",
			s.ID, s.Letter, len(s.Stroke), verdict, s.Source, humanize.Time(s.CreatedAt))
	}
	fmt.Fprintf(out, "\n%s samples\n", humanize.Comma(int64(len(list))))
	return nil
}

func runSamplesShow(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	b := s.Stroke.Bounds()
	fmt.Fprintf(out, "ID:       %s\n", s.ID)
	fmt.Fprintf(out, "Letter:   %c\n", s.Letter)
	fmt.Fprintf(out, "Matched:  %t\n", s.Matched)
	fmt.Fprintf(out, "Source:   %s\n", s.Source)
	fmt.Fprintf(out, "Created:  %s (%s)\n", s.CreatedAt.Format("2006-01-02 15:04:05"), humanize.Time(s.CreatedAt))
	fmt.Fprintf(out, "Points:   %d\n", len(s.Stroke))
	fmt.Fprintf(out, "Bounds:   %.0f×%.0f\n\n", b.Width(), b.Height())

	art, err := components.StrokePreview(s.Stroke, 32, 16, components.PreviewInk, components.PreviewPaper)
	if err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}
	fmt.Fprint(out, art)
	return nil
}

func runSamplesExport(cmd *cobra.Command, args []string) error {
	letter, err := letterArg(args)
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
	if list == nil {
		list = []samples.Sample{}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(list)
}

func runSamplesImport(cmd *cobra.Command, args []string) error {
	var r io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening export: %w", err)
		}
		defer f.Close()
		r = f
	}

	var list []samples.Sample
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return fmt.Errorf("parsing export: %w", err)
	}

	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Import(cmd.Context(), list)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s samples.\n", humanize.Comma(int64(n)))
	return nil
}

func runSamplesDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	var failed []string
	for _, id := range args {
		if err := store.Delete(cmd.Context(), id); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", id, err)
			failed = append(failed, id)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
	}
	if len(failed) > 0 {
		return fmt.Errorf("could not delete %s", strings.Join(failed, ", "))
	}
	return nil
}
