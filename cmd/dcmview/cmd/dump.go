package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpfielding/dcmview/pkg/dcm"
)

// NewDumpCmd lists the recognized elements of a DICOM file
func NewDumpCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "DICOM element dump",
		Long:  "Lists the recognized elements of a DICOM file with their VR, value and byte location.",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := inputFromFlags(ctx, cmd)
			if err != nil {
				return err
			}
			dataset, err := dcm.Parse(data)
			if err != nil {
				return fmt.Errorf("parse error: %w", err)
			}
			out := cmd.OutOrStdout()
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "json":
				j, err := json.Marshal(dataset)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(j))
			default:
				fmt.Fprintf(out, "Transfer syntax: %s\n", dataset.TransferSyntax().Name())
				fmt.Fprint(out, dataset)
			}
			return nil
		},
	}
	addInputFlags(cmd)
	cmd.PersistentFlags().StringP("format", "f", "text", "output format (text|json)")
	return cmd
}
