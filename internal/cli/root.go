// Package cli implements the unitconv command line tool.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yanqian/exchanger/internal/domain/unitconv"
)

const (
	formatJSON = "json"
	formatText = "text"
)

// NewRootCmd builds the command tree around a unit service.
func NewRootCmd(svc unitconv.Service) *cobra.Command {
	var format string

	root := &cobra.Command{
		Use:           "unitconv",
		Short:         "Convert length, weight and temperature values",
		Long:          "Offline unit conversion using the same rules as the exchanger API.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatText {
				return fmt.Errorf("unsupported format %q (want json or text)", format)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&format, "format", "f", formatText, "Output format: json or text")

	root.AddCommand(newConvertCmd(svc, &format))
	root.AddCommand(newUnitsCmd(svc, &format))
	return root
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
