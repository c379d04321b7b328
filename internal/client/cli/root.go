package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/verischol/internal/client/client"
	"github.com/dmitrijs2005/verischol/internal/client/config"
	"github.com/dmitrijs2005/verischol/internal/client/session"
	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	serverAddr  string
	sessionFile string
	configFile  string

	cfg    config.Config
	remote Client
	store  SessionStore
	input  *bufio.Reader

	RootCmd = &cobra.Command{
		Use:   "verischol",
		Short: "VeriSchol client: sealed research records with verifiable integrity",
		Long: `verischol talks to a VeriSchol server over gRPC.

Sign in with "verischol login"; the session is kept in a local SQLite file
and reused until you run "verischol logout" or it expires.

Examples:
  verischol register --username alice --email alice@lab.org --role producer
  verischol login --email alice@lab.org
  verischol record upload --project <id> --title "Run 7" --file results.csv
  verischol record verify <record-id>`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
)

// Seams for tests.
var (
	lookupEnv = os.LookupEnv

	dialClient = func(addr string) (Client, error) {
		return client.NewVeriScholClient(addr)
	}

	openSessionStore = func(ctx context.Context, path string) (SessionStore, error) {
		return session.Open(ctx, path)
	}
)

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverAddr, "server", "a", "", "server address host:port (env "+config.EnvServer+")")
	RootCmd.PersistentFlags().StringVar(&sessionFile, "session", "", "session database file (env "+config.EnvSession+")")
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "JSON config file")
}

// resolveConfig applies defaults, the JSON file, the environment and then
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var c config.Config
	c.LoadDefaults()

	if configFile != "" {
		if err := c.LoadJSON(configFile); err != nil {
			return c, err
		}
	}
	c.ApplyEnv(lookupEnv)

	flags := cmd.Flags()
	if flags.Changed("server") {
		c.ServerEndpointAddr = serverAddr
	}
	if flags.Changed("session") {
		c.SessionFile = sessionFile
	}
	return c, nil
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg = c
	input = bufio.NewReader(cmd.InOrStdin())

	store, err = openSessionStore(cmd.Context(), cfg.SessionFile)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}

	remote, err = dialClient(cfg.ServerEndpointAddr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.ServerEndpointAddr, err)
	}

	s, err := store.Load(cmd.Context(), cfg.ServerEndpointAddr)
	if err != nil {
		return err
	}
	if s != nil {
		remote.SetAccessToken(s.AccessToken)
	}
	return nil
}

func teardown() {
	if remote != nil {
		_ = remote.Close()
		remote = nil
	}
	if store != nil {
		_ = store.Close()
		store = nil
	}
}

// Execute runs the command line and releases the connection and the session
// store afterwards.
func Execute(ctx context.Context) error {
	defer teardown()
	err := RootCmd.ExecuteContext(ctx)
	return explain(err)
}

// requestContext bounds a single server call by the configured timeout.
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, cfg.RequestTimeout)
}

func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrInvalidToken):
		return fmt.Errorf("%w (run \"verischol login\")", err)
	case errors.Is(err, client.ErrUnavailable):
		return fmt.Errorf("%w at %s", err, cfg.ServerEndpointAddr)
	}
	return err
}

// resetState restores package state and every flag to its default.
func resetState() {
	teardown()
	serverAddr, sessionFile, configFile = "", "", ""
	cfg = config.Config{}
	input = nil
	resetFlags(RootCmd)
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
