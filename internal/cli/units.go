package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/exchanger/internal/domain/unitconv"
)

func newUnitsCmd(svc unitconv.Service, format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List the supported unit codes per type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := svc.Units(cmd.Context())
			out := cmd.OutOrStdout()
			if *format == formatJSON {
				return writeJSON(out, groups)
			}
			for _, g := range groups {
				codes := make([]string, 0, len(g.Units))
				for _, u := range g.Units {
					codes = append(codes, string(u))
				}
				if _, err := fmt.Fprintf(out, "%s: %s\n", g.Type, strings.Join(codes, ", ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
