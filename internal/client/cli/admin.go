package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(principalsCmd, roleCmd, statsCmd, auditCmd)
}

var principalsCmd = &cobra.Command{
	Use:   "principals",
	Short: "List all principals (administrators only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		ps, err := remote.ListPrincipals(ctx)
		if err != nil {
			return err
		}

		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE")
		for _, p := range ps {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Username, p.Email, p.Role)
		}
		return tw.Flush()
	},
}

var roleCmd = &cobra.Command{
	Use:   "role <principal-id> <role>",
	Short: "Change a principal's role (administrators only)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		if err := remote.ChangeRole(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], args[1])
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show system-wide counts (administrators only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		st, err := remote.SystemStats(ctx)
		if err != nil {
			return err
		}
		return printStats(cmd.OutOrStdout(), st)
	},
}

var auditCmd = &cobra.Command{
	Use:   "audit <project-id>",
	Short: "Show the audit log of every record in a project, deleted ones included",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		entries, err := remote.ListAuditLog(ctx, args[0])
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No audit entries")
			return nil
		}
		return printAuditEntries(cmd.OutOrStdout(), entries, true)
	},
}
