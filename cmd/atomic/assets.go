package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-atomic/pkg/assets"
	"github.com/goliatone/go-atomic/pkg/components"
)

func newAssetsCmd() *cobra.Command {
	var (
		root      string
		kind      string
		html      bool
		staticURL string
	)

	cmd := &cobra.Command{
		Use:   "assets [component ...]",
		Short: "List the scripts and stylesheets found under <root>/static",
		Long: `List asset paths relative to the static directory. Named components
restrict the listing to their own files; with no names every asset is listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind = strings.ToLower(strings.TrimSpace(kind))
			if kind != "all" && kind != "scripts" && kind != "stylesheets" {
				return fmt.Errorf("unknown asset kind %q (want scripts, stylesheets or all)", kind)
			}

			cache := assets.NewCache(assets.NewResolver(root))
			lib, err := components.NewLibrary(
				components.WithAssets(cache),
				components.WithStaticURL(staticURL),
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if html {
				if kind != "scripts" {
					tags, err := lib.Stylesheets(args...)
					if err != nil {
						return err
					}
					fmt.Fprint(out, tags)
				}
				if kind != "stylesheets" {
					tags, err := lib.Scripts(args...)
					if err != nil {
						return err
					}
					fmt.Fprint(out, tags)
				}
				return nil
			}

			if kind != "scripts" {
				for _, p := range cache.Stylesheets(args...) {
					fmt.Fprintln(out, p)
				}
			}
			if kind != "stylesheets" {
				for _, p := range cache.Scripts(args...) {
					fmt.Fprintln(out, p)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Application root containing static/")
	cmd.Flags().StringVar(&kind, "kind", "all", "scripts, stylesheets or all")
	cmd.Flags().BoolVar(&html, "html", false, "Print <script>/<link> tags instead of paths")
	cmd.Flags().StringVar(&staticURL, "static-url", "/static/", "URL prefix for --html output")
	return cmd
}
