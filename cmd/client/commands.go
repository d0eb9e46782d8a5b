package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchLimit int

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunShow(cmd.Context())
	},
}

var addCmd = &cobra.Command{
	Use:     "add <product-id> [quantity]",
	Short:   "Add product to cart",
	Args:    cobra.RangeArgs(1, 2),
	Example: "  storefront add 3f6c2a1e 2",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunAdd(cmd.Context(), args)
	},
}

var incCmd = &cobra.Command{
	Use:   "inc <item-id> [n]",
	Short: "Increase item quantity",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunIncrement(cmd.Context(), args, 1)
	},
}

var decCmd = &cobra.Command{
	Use:   "dec <item-id> [n]",
	Short: "Decrease item quantity (never below 1)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunIncrement(cmd.Context(), args, -1)
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm <item-id>",
	Aliases: []string{"remove"},
	Short:   "Remove item from cart",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunRemove(cmd.Context(), args)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search products",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunSearch(cmd.Context(), args, searchLimit)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show local cache status (works offline)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunStatus(cmd.Context())
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive cart session",
	Long: `Interactive cart session.

'+ <item>' and '- <item>' change quantities right away on screen.
Changes are sent to the server after a short pause, all in one request.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunShell(cmd.Context())
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Send pending changes and start a new cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunReset(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Show version information",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{"setup": "skip"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Storefront Client\n")
		fmt.Printf("Version:    %s\n", Version)
		fmt.Printf("Build Date: %s\n", BuildDate)
		fmt.Printf("Git Commit: %s\n", GitCommit)
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "Maximum number of products")
}
