package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpfielding/dcmview/pkg/dcm"
	"github.com/jpfielding/dcmview/pkg/render"
)

// NewDecodeCmd prints the metadata of a DICOM file and optionally renders it
func NewDecodeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "DICOM metadata and pixel decode",
		Long:  "Prints the metadata of a DICOM file as JSON or a text report and optionally writes its pixel data as PNG.",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := inputFromFlags(ctx, cmd)
			if err != nil {
				return err
			}
			res, err := dcm.Decode(data)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			if pngPath, _ := cmd.Flags().GetString("png"); pngPath != "" {
				if res.PixelErr != nil {
					slog.WarnContext(ctx, "No PNG written", "error", res.PixelErr)
				} else if err := writePNG(cmd, pngPath, res); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "text":
				uri, _ := cmd.Flags().GetString("uri")
				fmt.Fprintln(out, renderReport(uri, res.Metadata, res.PixelErr))
			default:
				doc := struct {
					Metadata dcm.Metadata `json:"metadata"`
					Error    string       `json:"error,omitempty"`
				}{Metadata: res.Metadata}
				if res.PixelErr != nil {
					doc.Error = res.PixelErr.Error()
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}
			return nil
		},
	}
	addInputFlags(cmd)
	pf := cmd.PersistentFlags()
	pf.StringP("format", "f", "json", "output format (text|json)")
	pf.String("png", "", "write the rendered image to this PNG file")
	pf.Int("max-dim", 0, "scale the PNG so its longest side is at most this many pixels")
	pf.Bool("invert-monochrome1", true, "display MONOCHROME1 images with minimum values white")
	return cmd
}

func writePNG(cmd *cobra.Command, path string, res *dcm.Result) (err error) {
	maxDim, _ := cmd.Flags().GetInt("max-dim")
	invert, _ := cmd.Flags().GetBool("invert-monochrome1")
	opts := render.Options{MaxDim: maxDim, InvertMonochrome1: invert}.ForMetadata(res.Metadata)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create png: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render.EncodePNG(f, res.Bitmap, opts)
}
