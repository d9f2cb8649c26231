package cmd

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// readInput loads a DICOM file from a path, stdin ("-") or an http(s) URL
func readInput(ctx context.Context, uri string, insecure, verbose bool) ([]byte, error) {
	uri = strings.TrimPrefix(uri, "file://")
	switch {
	case uri == "":
		return nil, fmt.Errorf("a DICOM uri is required (-u)")
	case uri == "-":
		return io.ReadAll(os.Stdin)
	case strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://"):
		cl := &http.Client{
			Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: insecure}},
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		resp, err := cl.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to download: %w", err)
		}
		defer resp.Body.Close()
		if verbose {
			reqDump, _ := httputil.DumpRequest(req, true)
			os.Stderr.Write(reqDump)
			resDump, _ := httputil.DumpResponse(resp, false)
			os.Stderr.Write(resDump)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to download: %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	default:
		data, err := os.ReadFile(uri)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		return data, nil
	}
}

func addInputFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringP("uri", "u", "", "DICOM file path, - for stdin, or http(s) URL")
	pf.Bool("insecure", false, "skip TLS verification for https downloads")
	pf.BoolP("verbose", "v", false, "dump http request/response headers to stderr")
}

func inputFromFlags(ctx context.Context, cmd *cobra.Command) ([]byte, error) {
	uri, _ := cmd.Flags().GetString("uri")
	insecure, _ := cmd.Flags().GetBool("insecure")
	verbose, _ := cmd.Flags().GetBool("verbose")
	return readInput(ctx, uri, insecure, verbose)
}
