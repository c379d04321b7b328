package cli

import (
	"fmt"

	"github.com/dmitrijs2005/verischol/internal/filex"
	"github.com/spf13/cobra"
)

var (
	recordProject     string
	recordTitle       string
	recordDescription string
	recordFile        string
	recordOut         string
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Upload, read and verify sealed records",
	Long: `Records are encrypted on the server for a single recipient: the project's
verifier, or the producer when the project has none. Only that recipient
can read or verify a record, and only with their password.`,
}

func init() {
	recordUploadCmd.Flags().StringVarP(&recordProject, "project", "p", "", "project id")
	recordUploadCmd.Flags().StringVarP(&recordTitle, "title", "t", "", "record title")
	recordUploadCmd.Flags().StringVarP(&recordDescription, "description", "d", "", "record description")
	recordUploadCmd.Flags().StringVarP(&recordFile, "file", "f", "", `content file, "-" for stdin`)
	_ = recordUploadCmd.MarkFlagRequired("project")
	_ = recordUploadCmd.MarkFlagRequired("title")
	_ = recordUploadCmd.MarkFlagRequired("file")

	recordUpdateCmd.Flags().StringVarP(&recordTitle, "title", "t", "", "record title")
	recordUpdateCmd.Flags().StringVarP(&recordDescription, "description", "d", "", "record description")
	recordUpdateCmd.Flags().StringVarP(&recordFile, "file", "f", "", `content file, "-" for stdin`)
	_ = recordUpdateCmd.MarkFlagRequired("title")
	_ = recordUpdateCmd.MarkFlagRequired("file")

	recordListCmd.Flags().StringVarP(&recordProject, "project", "p", "", "project id")
	_ = recordListCmd.MarkFlagRequired("project")

	recordReadCmd.Flags().StringVarP(&recordOut, "out", "o", "", "write content to this file instead of stdout")
	recordRetainedCmd.Flags().StringVarP(&recordOut, "out", "o", "", "write content to this file instead of stdout")

	recordCmd.AddCommand(recordUploadCmd, recordUpdateCmd, recordShowCmd, recordListCmd, recordReadCmd,
		recordVerifyCmd, recordAttackCmd, recordDeleteCmd, recordAuditCmd, recordRetainedCmd)
	RootCmd.AddCommand(recordCmd)
}

var recordUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Seal and upload a record (producers)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readContent(input, recordFile)
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		r, err := remote.UploadRecord(ctx, recordProject, recordTitle, recordDescription, content)
		if err != nil {
			return err
		}
		printRecord(cmd.OutOrStdout(), r)
		return nil
	},
}

var recordUpdateCmd = &cobra.Command{
	Use:   "update <record-id>",
	Short: "Replace a record's content; it goes back to pending",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readContent(input, recordFile)
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		r, err := remote.UpdateRecord(ctx, args[0], recordTitle, recordDescription, content)
		if err != nil {
			return err
		}
		printRecord(cmd.OutOrStdout(), r)
		return nil
	},
}

var recordShowCmd = &cobra.Command{
	Use:   "show <record-id>",
	Short: "Show record metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		r, err := remote.GetRecord(ctx, args[0])
		if err != nil {
			return err
		}
		printRecord(cmd.OutOrStdout(), r)
		return nil
	},
}

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the records of a project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		rs, err := remote.ListRecords(ctx, recordProject)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(rs) == 0 {
			fmt.Fprintln(out, "No records")
			return nil
		}
		tw := newTable(out)
		fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tUPDATED")
		for _, r := range rs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Title, colorStatus(r.Status), formatTime(r.UpdatedAt))
		}
		return tw.Flush()
	},
}

func writeContent(cmd *cobra.Command, content []byte) error {
	if recordOut == "" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}
	if err := filex.WritePrivate(recordOut, content); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(content), recordOut)
	return nil
}

var recordReadCmd = &cobra.Command{
	Use:   "read <record-id>",
	Short: "Decrypt a record you are the recipient of",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := GetPassword(input, "Password", cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		content, err := remote.ReadRecord(ctx, args[0], pw)
		if err != nil {
			return err
		}
		return writeContent(cmd, content)
	},
}

var recordVerifyCmd = &cobra.Command{
	Use:   "verify <record-id>",
	Short: "Decrypt a record and compare it with its stored digest (verifiers)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := GetPassword(input, "Password", cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		v, err := remote.VerifyRecord(ctx, args[0], pw)
		if err != nil {
			return err
		}
		printVerdict(cmd.OutOrStdout(), v)
		return nil
	},
}

var recordAttackCmd = &cobra.Command{
	Use:   "attack <record-id>",
	Short: "Corrupt a record's ciphertext to demonstrate tamper detection (verifiers)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		if err := remote.SimulateAttack(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Ciphertext of %s altered; run \"verischol record verify %s\"\n", args[0], args[0])
		return nil
	},
}

var recordDeleteCmd = &cobra.Command{
	Use:   "delete <record-id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		if err := remote.DeleteRecord(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var recordAuditCmd = &cobra.Command{
	Use:   "audit <record-id>",
	Short: "Show a record's audit trail (verifiers and administrators)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		entries, err := remote.AuditTrail(ctx, args[0])
		if err != nil {
			return err
		}
		return printAuditEntries(cmd.OutOrStdout(), entries, false)
	},
}

var recordRetainedCmd = &cobra.Command{
	Use:   "retained <record-id>",
	Short: "Show the server's plaintext debug copy, when retention is enabled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		content, err := remote.ReadRetained(ctx, args[0])
		if err != nil {
			return err
		}
		return writeContent(cmd, content)
	},
}
