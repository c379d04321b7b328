package cli

import (
	"bytes"
	"fmt"

	"github.com/dmitrijs2005/verischol/internal/filex"
	"github.com/dmitrijs2005/verischol/internal/netx"
	"github.com/spf13/cobra"
)

var reportDownload string

// download is a test seam for netx.DownloadPresignedURL.
var download = netx.DownloadPresignedURL

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Integrity reports",
}

func init() {
	reportExportCmd.Flags().StringVar(&reportDownload, "download", "", "also fetch the report to this file")

	reportCmd.AddCommand(reportExportCmd)
	RootCmd.AddCommand(reportCmd)
}

var reportExportCmd = &cobra.Command{
	Use:   "export <project-id>",
	Short: "Export a project's integrity report to object storage",
	Long: `Builds a JSON report of every record in the project with its status and
audit trail, uploads it to the server's S3 bucket and prints a presigned
download link. Record contents are never included.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		r, err := remote.ExportReport(ctx, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Report: %s\n", r.Key)
		fmt.Fprintf(out, "URL:    %s\n", r.URL)
		fmt.Fprintf(out, "Valid:  until %s\n", formatTime(r.ExpiresAt))

		if reportDownload == "" {
			return nil
		}
		var buf bytes.Buffer
		if _, err := download(ctx, r.URL, &buf); err != nil {
			return fmt.Errorf("fetch report: %w", err)
		}
		if err := filex.WritePrivate(reportDownload, buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved to %s\n", reportDownload)
		return nil
	},
}
