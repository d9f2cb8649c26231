package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jpfielding/dcmview/pkg/server"
)

// NewServeCmd runs the DICOM upload service
func NewServeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "DICOM upload service",
		Long:  "Serves the upload route used by the viewer: a multipart POST of a DICOM file returns its metadata and a base64 PNG.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.DefaultConfig()
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				loaded, err := server.LoadConfig(path)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr, _ = flags.GetString("addr")
			}
			if flags.Changed("max-upload-mb") {
				cfg.MaxUploadMB, _ = flags.GetInt64("max-upload-mb")
			}
			if flags.Changed("cors-origin") {
				cfg.CORSOrigin, _ = flags.GetString("cors-origin")
			}
			if flags.Changed("max-dim") {
				cfg.MaxDim, _ = flags.GetInt("max-dim")
			}
			return server.New(cfg).Run(ctx)
		},
	}
	defaults := server.DefaultConfig()
	pf := cmd.PersistentFlags()
	pf.StringP("config", "c", "", "YAML configuration file")
	pf.String("addr", defaults.Addr, "listen address")
	pf.Int64("max-upload-mb", defaults.MaxUploadMB, "largest accepted upload in MB")
	pf.String("cors-origin", defaults.CORSOrigin, "Access-Control-Allow-Origin value")
	pf.Int("max-dim", defaults.MaxDim, "scale rendered images so the longest side is at most this (0 keeps size)")
	return cmd
}
