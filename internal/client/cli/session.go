package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	registerUsername string
	registerEmail    string
	registerRole     string
	loginEmail       string
	loginCode        string
)

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "display name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "email address used to sign in")
	registerCmd.Flags().StringVarP(&registerRole, "role", "r", "producer", "producer, verifier or administrator")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("email")

	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "email address")
	loginCmd.Flags().StringVar(&loginCode, "code", "", "one-time code, prompted for when empty")
	_ = loginCmd.MarkFlagRequired("email")

	RootCmd.AddCommand(pingCmd, registerCmd, loginCmd, logoutCmd, whoamiCmd, passwdCmd)
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the server is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		if err := remote.Ping(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is up\n", cfg.ServerEndpointAddr)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and its key pair",
	Long: `Creates a principal on the server. The server generates an RSA key pair
and seals the private key with your password, so the password cannot be
recovered or reset by anyone.

The first account on an empty server may take the administrator role.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		pw, err := GetNewPassword(input, out)
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		p, err := remote.Register(ctx, registerUsername, registerEmail, pw, registerRole)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Registered %s as %s (id %s)\n", p.Username, p.Role, p.ID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with password and one-time code",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		pw, err := GetPassword(input, "Password", out)
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		ch, err := remote.Login(ctx, loginEmail, pw)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "A one-time code was sent to %s, valid until %s\n", ch.SentTo, formatTime(ch.ExpiresAt))
		if ch.DemoCode != "" {
			fmt.Fprintf(out, "Demo code: %s\n", yellow(ch.DemoCode))
		}

		code := loginCode
		if code == "" {
			code, err = GetSimpleText(input, "One-time code", out)
			if err != nil {
				return err
			}
		}

		resp, err := remote.VerifyOTP(ctx, ch.PrincipalID, code)
		if err != nil {
			return err
		}

		p := resp.Principal
		if err := store.Save(ctx, cfg.ServerEndpointAddr, p.ID, p.Email, p.Role, resp.AccessToken); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		fmt.Fprintf(out, "Signed in as %s (%s)\n", p.Username, p.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session for this server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.Clear(cmd.Context(), cfg.ServerEndpointAddr); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in principal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		p, err := remote.Profile(ctx)
		if err != nil {
			return err
		}
		printPrincipal(cmd.OutOrStdout(), p)
		return nil
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password and re-seal your private key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		old, err := GetPassword(input, "Current password", out)
		if err != nil {
			return err
		}
		pw, err := GetNewPassword(input, out)
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		if err := remote.ChangePassword(ctx, old, pw); err != nil {
			return err
		}
		fmt.Fprintln(out, "Password changed")
		return nil
	},
}
