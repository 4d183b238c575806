package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-atomic/pkg/components"
	"github.com/goliatone/go-atomic/pkg/tags"
)

func newRenderCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "render <kind> [arg ...] [key=value ...]",
		Short: "Render a single component to stdout",
		Long: `Render a component the way a template tag would. Bare tokens bind
positionally, key=value tokens bind by name; true/false become booleans and
quotes are stripped.`,
		Example: `  atomic render text "Hello" size=2
  atomic render input_number min=0 max=10 placeholder=Amount
  atomic render dropdown -i`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			spec, ok := tags.Lookup(kind)
			if !ok {
				return fmt.Errorf("%w: %q", tags.ErrUnknownComponent, kind)
			}

			positional, kwargs := tags.ParseKwargs(args[1:])
			if interactive {
				var err error
				kwargs, err = promptOptions(cmd.Context(), newPrompter(), spec, positional, kwargs)
				if err != nil {
					return err
				}
			}

			lib, err := components.NewLibrary()
			if err != nil {
				return err
			}
			html, err := lib.Render(kind, positional, kwargs)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for arguments not given on the command line")
	return cmd
}
