/*
Copyright © 2026 JACOB ARTHURS
*/
package cmd

import (
	"fmt"

	"github.com/jacobarthurs/pgseq/internal/profile"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create config file with example template",
	Long: `Create the pgseq config file (profiles.yaml in the user config directory,
e.g. ~/.config/pgseq/profiles.yaml) with an example template.

The config file stores named database connection profiles so you don't need
to pass connection strings on every invocation, and an optional default
threshold. If a config file already exists, it will not be overwritten.`,
	Example: `  # Create default config
  pgseq init

  # Overwrite existing config
  pgseq init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path, err := profile.Init(force)
		if err != nil {
			return err
		}

		fmt.Printf("Created config at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "Overwrite existing config file")
}
