package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/abc/internal/gesture"
	"github.com/f3rmion/abc/internal/samples"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <letter> [file]",
	Short: "Recognize a recorded stroke",
	Long: `Recognize a stroke against the expected letter and print the result.

The stroke is read from file, or stdin when file is "-" or missing. Both
point lists and parallel arrays are accepted:

  [{"x": 10, "y": 5}, {"x": 11, "y": 9}, ...]
  {"x": [10, 11, ...], "y": [5, 9, ...]}`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRecognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)
}

func runRecognize(cmd *cobra.Command, args []string) error {
	letter, err := samples.ParseLetter(args[0])
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if len(args) == 2 && args[1] != "-" {
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("opening stroke: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading stroke: %w", err)
	}
	stroke, err := parseStroke(data)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec := cfg.Recognizer()

	out := cmd.OutOrStdout()
	if viper.GetBool("verbose") {
		b := stroke.Bounds()
		fmt.Fprintf(out, "Points:    %d (minimum %d)\n", len(stroke), rec.MinPoints())
		fmt.Fprintf(out, "Bounds:    x %.1f..%.1f  y %.1f..%.1f\n", b.MinX, b.MaxX, b.MinY, b.MaxY)
		fmt.Fprintf(out, "Turns:     %d\n", gesture.DirectionChanges(gesture.Normalize(stroke)))
		if _, ok := gesture.ClassifierFor(letter); ok {
			fmt.Fprintln(out, "Checked by: shape classifier")
		} else {
			fmt.Fprintln(out, "Checked by: complexity fallback")
		}
	}

	if rec.TooShort(stroke) {
		fmt.Fprintf(out, "%c: too short (%d points)\n", letter, len(stroke))
		return nil
	}
	if res := rec.Recognize(stroke, letter); res.Matched() {
		fmt.Fprintf(out, "%c: matched\n", letter)
	} else {
		fmt.Fprintf(out, "%c: %s\n", letter, res)
	}
	return nil
}

// parseStroke accepts a point list or parallel x/y arrays.
func parseStroke(data []byte) (gesture.Stroke, error) {
	var points gesture.Stroke
	if err := json.Unmarshal(data, &points); err == nil {
		return points, nil
	}
	var arrays samples.StrokeData
	if err := json.Unmarshal(data, &arrays); err != nil {
		return nil, fmt.Errorf("parsing stroke: %w", err)
	}
	return arrays.Stroke()
}
