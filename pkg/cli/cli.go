// Package cli は okfacemixer のコマンドラインを組み立てます。
package cli

import (
	"github.com/spf13/cobra"
)

// NewCLI はルートコマンドを作成します。
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "okfacemixer",
		Short:         "Mix two smiles into one face and serve it as a GIF",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file (default: ./.env when present)")

	rootCmd.AddCommand(
		newServeCmd(),
		newRenderCmd(),
		newSmilesCmd(),
	)
	return rootCmd
}
