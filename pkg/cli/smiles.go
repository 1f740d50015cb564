package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/ok-face-mixer/pkg/domain"
)

func newSmilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smiles",
		Short: "List the accepted smile names",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, k := range domain.SmileKinds() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), k.String()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
