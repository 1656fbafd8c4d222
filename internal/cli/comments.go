package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"portfolio/internal/board"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every comment, newest first",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	b := board.New(newAPIClient())
	defer b.Close()

	if err := b.Load(cmd.Context()); err != nil {
		if !isJSON() {
			_ = b.Render(cmd.OutOrStdout())
		}
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), b.Snapshot().Comments)
	}
	return b.Render(cmd.OutOrStdout())
}

func newPostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Leave a comment",
		Long:  "Load the board, submit a comment and show the board with the new comment on top.",
		Args:  cobra.NoArgs,
		RunE:  runPost,
	}
	cmd.Flags().String("name", "", "your name")
	cmd.Flags().String("message", "", "the comment text")
	return cmd
}

func runPost(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	message, _ := cmd.Flags().GetString("message")

	b := board.New(newAPIClient())
	defer b.Close()

	if err := b.Load(cmd.Context()); err != nil {
		return err
	}

	b.SetName(name)
	b.SetMessage(message)
	err := b.Submit(cmd.Context())

	if isJSON() {
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), b.Snapshot().Comments[0])
	}

	if renderErr := b.Render(cmd.OutOrStdout()); renderErr != nil {
		return renderErr
	}
	if errors.Is(err, board.ErrEmptyFields) {
		return fmt.Errorf("--name and --message are required")
	}
	return err
}
