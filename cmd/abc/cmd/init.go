package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f3rmion/abc/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize abc configuration",
	Long: `Initialize abc configuration in your config directory.

This writes settings.yaml with the built-in defaults:
  - voice     speech on/off, language, rate, auto speak
  - gesture   tracing on/off and the minimum stroke length
  - languages letter pronunciations, example words and phrases

Edit the file to change the phrases or add a language.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.SettingsFile)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("settings already exist: %s\nUse --force to overwrite", path)
	}

	if err := config.Save(configDir, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initializing abc configuration in %s\n\n", configDir)
	fmt.Fprintf(out, "  Created %s\n\n", config.SettingsFile)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit settings.yaml to pick a language and voice rate")
	fmt.Fprintln(out, "  2. Run 'abc say A' to check the voice")
	fmt.Fprintln(out, "  3. Run 'abc' and trace the letters with the mouse")
	return nil
}
