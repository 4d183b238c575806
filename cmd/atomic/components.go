package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-atomic/pkg/components"
	"github.com/goliatone/go-atomic/pkg/tags"
)

func newComponentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List registered components with their arguments and defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := components.NewDefaultRegistry()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tLEVEL\tTEMPLATE\tARGUMENTS")
			for _, name := range reg.Names() {
				spec, ok := tags.Lookup(name)
				if !ok {
					continue
				}
				desc, _ := reg.Descriptor(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", spec.Name, spec.Level, desc.TemplateRef, describeArgs(spec))
			}
			return w.Flush()
		},
	}
}

func describeArgs(spec tags.ComponentSpec) string {
	defaults := spec.Defaults()
	parts := make([]string, 0, len(defaults))
	for _, name := range spec.Recognized() {
		if value := defaults[name]; value != nil {
			parts = append(parts, fmt.Sprintf("%s=%v", name, value))
		} else {
			parts = append(parts, name)
		}
	}
	if spec.VarArgs {
		parts = append(parts, "*args")
	}
	if spec.HTMLAttrs {
		parts = append(parts, "**attrs")
	}
	return strings.Join(parts, " ")
}
