package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	projectName        string
	projectDescription string
	assignRole         string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Create projects and manage their members",
}

func init() {
	projectCreateCmd.Flags().StringVarP(&projectName, "name", "n", "", "project name")
	projectCreateCmd.Flags().StringVarP(&projectDescription, "description", "d", "", "free-form description")
	_ = projectCreateCmd.MarkFlagRequired("name")

	projectAssignCmd.Flags().StringVarP(&assignRole, "role", "r", "", "role in the project, must match the principal's role")
	_ = projectAssignCmd.MarkFlagRequired("role")

	projectCmd.AddCommand(projectCreateCmd, projectAssignCmd, projectListCmd, projectShowCmd)
	RootCmd.AddCommand(projectCmd)
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project (administrators only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		p, err := remote.CreateProject(ctx, projectName, projectDescription)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (id %s)\n", p.Name, p.ID)
		return nil
	},
}

var projectAssignCmd = &cobra.Command{
	Use:   "assign <project-id> <principal-id>",
	Short: "Add a principal to a project (administrators only)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		if err := remote.AssignToProject(ctx, args[0], args[1], assignRole); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s to %s as %s\n", args[1], args[0], assignRole)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the projects you can see",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		ps, err := remote.ListProjects(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(ps) == 0 {
			fmt.Fprintln(out, "No projects")
			return nil
		}
		tw := newTable(out)
		fmt.Fprintln(tw, "ID\tNAME\tCREATED")
		for _, p := range ps {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, formatTime(p.CreatedAt))
		}
		return tw.Flush()
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show one project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		p, err := remote.GetProject(ctx, args[0])
		if err != nil {
			return err
		}
		printProject(cmd.OutOrStdout(), p)
		return nil
	},
}
