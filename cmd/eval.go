package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"recalc/internal/engine"
)

var evalTimeout int

var evalCmd = &cobra.Command{
	Use:   "eval [expression]",
	Short: "Evaluate a single expression and exit",
	Long: `Evaluate one expression without starting the interactive session.

Example:
  recalc eval "10 km in mi"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := engine.New(engine.Config{Timeout: evalTimeout})

		val, err := eng.Evaluate(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), val.String())
		return nil
	},
}

func init() {
	evalCmd.Flags().IntVar(&evalTimeout, "timeout", 0, "Evaluation timeout in seconds (0 = default)")
	rootCmd.AddCommand(evalCmd)
}
