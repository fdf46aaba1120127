package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase a profile's progress and answer history",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this erases all progress for %q; rerun with --yes to confirm", a.user)
		}
		if err := a.svc.Reset(cmd.Context(), a.user); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Progress for %s erased.\n", a.user)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
