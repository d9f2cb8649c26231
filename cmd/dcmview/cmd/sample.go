package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jpfielding/dcmview/pkg/sample"
)

// NewSampleCmd writes a synthetic gradient image
func NewSampleCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "write a synthetic DICOM image",
		Long:  "Writes a single-frame gradient image, handy for trying the viewer without patient data.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return fmt.Errorf("an output path is required (-o)")
			}
			o := sample.DefaultOptions()
			o.BitsAllocated, _ = cmd.Flags().GetInt("bits")
			o.SamplesPerPixel, _ = cmd.Flags().GetInt("samples")
			o.Columns, _ = cmd.Flags().GetInt("cols")
			o.Rows, _ = cmd.Flags().GetInt("rows")
			o.Monochrome1, _ = cmd.Flags().GetBool("monochrome1")
			if err := sample.WriteFile(out, o); err != nil {
				return err
			}
			slog.InfoContext(ctx, "Wrote sample", "path", out, "columns", o.Columns, "rows", o.Rows,
				"bits", o.BitsAllocated, "samples", o.SamplesPerPixel)
			return nil
		},
	}
	defaults := sample.DefaultOptions()
	pf := cmd.PersistentFlags()
	pf.StringP("out", "o", "", "output DICOM path")
	pf.Int("bits", defaults.BitsAllocated, "bits allocated (8|16)")
	pf.Int("samples", defaults.SamplesPerPixel, "samples per pixel (1|3)")
	pf.Int("cols", defaults.Columns, "image columns")
	pf.Int("rows", defaults.Rows, "image rows")
	pf.Bool("monochrome1", false, "mark grayscale images MONOCHROME1")
	return cmd
}
