package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/abc/internal/lesson"
	"github.com/f3rmion/abc/internal/samples"
)

var sayCmd = &cobra.Command{
	Use:   "say <letter>",
	Short: "Say a letter the way the trace view does",
	Long: `Say the introduction of a letter with the configured voice, then play
the success tone. Useful to check the speech setup.`,
	Args: cobra.ExactArgs(1),
	RunE: runSay,
}

func init() {
	rootCmd.AddCommand(sayCmd)
	sayCmd.Flags().Bool("no-tone", false, "skip the success tone")
}

func runSay(cmd *cobra.Command, args []string) error {
	letter, err := samples.ParseLetter(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctl := cfg.NewController(newSpeech(), newTones())
	ctl.Select(letter)
	text := ctl.Announce()
	fmt.Fprintln(cmd.OutOrStdout(), text)

	if err := ctl.Speak(cmd.Context(), text); err != nil {
		return err
	}
	if noTone, _ := cmd.Flags().GetBool("no-tone"); noTone {
		return nil
	}
	return ctl.Feedback(cmd.Context(), lesson.Outcome{Kind: lesson.OutcomeMatched})
}
