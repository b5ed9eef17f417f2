package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yanqian/exchanger/internal/domain/unitconv"
)

func newConvertCmd(svc unitconv.Service, format *string) *cobra.Command {
	var unitType string

	cmd := &cobra.Command{
		Use:   "convert VALUE FROM TO",
		Short: "Convert a value between two units of the same type",
		Example: "  unitconv convert 1.5 km m --type length\n" +
			"  unitconv convert --type temperature -- -40 C F",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := svc.Convert(cmd.Context(), unitconv.Request{
				Type:  unitType,
				Value: unitconv.ValueText(args[0]),
				From:  args[1],
				To:    args[2],
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if *format == formatJSON {
				return writeJSON(out, resp)
			}
			_, err = fmt.Fprintf(out, "%s %s = %s %s\n",
				formatNumber(resp.Value), resp.From, formatNumber(resp.Result), resp.To)
			return err
		},
	}
	cmd.Flags().StringVarP(&unitType, "type", "t", "", "Unit type: length, weight or temperature (required)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
