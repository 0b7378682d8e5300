package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// pathCommand creates the path command, which prints the hop distance
// between two labeled nodes.
func (c *CLI) pathCommand() *cobra.Command {
	var input inputFlags

	cmd := &cobra.Command{
		Use:   "path [edges.csv] [from] [to]",
		Short: "Print the degrees of separation between two nodes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			opts := cfg.options(args[0])
			input.apply(cmd, &opts)

			runner := c.newRunner(cmd.Context(), cfg.Cache, true)
			defer runner.Close()

			from, to := args[1], args[2]
			d, ok, err := runner.Distance(cmd.Context(), opts, from, to)
			if err != nil {
				return err
			}
			fmt.Println(formatDistance(from, to, d, ok))
			return nil
		},
	}

	input.register(cmd)
	return cmd
}

// formatDistance renders one path lookup result.
func formatDistance(from, to string, d int, ok bool) string {
	pair := StyleValue.Render(from) + " " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(to)
	if !ok {
		return pair + ": " + styleUndefined.Render("unreachable")
	}
	unit := "degrees"
	if d == 1 {
		unit = "degree"
	}
	return fmt.Sprintf("%s: %s %s", pair, StyleNumber.Render(fmt.Sprint(d)), unit)
}
