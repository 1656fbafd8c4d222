package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSubscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <email>",
		Short: "Subscribe an address to the newsletter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newAPIClient().Subscribe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (member %s)\n", resp.Message, resp.MemberID)
			return err
		},
	}
}

func newContributionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contributions",
		Short: "Show the GitHub contribution calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := newAPIClient().Contributions(cmd.Context())
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), cal)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d contributions in the last year\n", cal.TotalContributions)
			shades := []string{".", "░", "▒", "▓", "█"}
			for i, a := range cal.Activities {
				level := a.Level
				if level < 0 || level >= len(shades) {
					level = 0
				}
				fmt.Fprint(out, shades[level])
				if (i+1)%7 == 0 {
					fmt.Fprintln(out)
				}
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
