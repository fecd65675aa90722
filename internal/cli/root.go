package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ErlanBelekov/league-manager/internal/auth"
	"github.com/ErlanBelekov/league-manager/internal/email"
	"github.com/ErlanBelekov/league-manager/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/league-manager/internal/log"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var errNoDatabase = errors.New("no database configured: set DATABASE_URL or pass --database-url")

// session is the state one leaguectl invocation shares between commands.
// The pool is opened on first use.
type session struct {
	cfg    *Config
	logger *slog.Logger
	pool   *pgxpool.Pool
}

func (s *session) open(ctx context.Context) (*pgxpool.Pool, error) {
	if s.pool != nil {
		return s.pool, nil
	}
	if s.cfg.DatabaseURL == "" {
		return nil, errNoDatabase
	}
	pool, err := postgres.NewPool(ctx, s.cfg.DatabaseURL, s.cfg.DBConnectAttempts, s.logger)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	s.pool = pool
	return pool, nil
}

func (s *session) close() {
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}

// hasher is the password hasher operator commands use.
var hasher auth.SecretHasher = auth.NewBcryptHasher(0)

// notifier logs welcome emails instead of sending them.
func (s *session) notifier() *email.Notifier {
	return email.NewNotifier(email.NewSender("local", "", "", s.logger), s.logger)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	s := &session{cfg: DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:   "leaguectl",
		Short: "Operator tooling for the league manager database",
		Long: `leaguectl prepares and maintains the league manager database.

It applies the bootstrap schema, creates the first admin account and loads
demo data for local development. It reads the same environment as the
server (DATABASE_URL, LOG_LEVEL, DB_CONNECT_ATTEMPTS).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s.logger = ctxlog.New(s.cfg.Env, ctxlog.ParseLevel(s.cfg.LogLevel), cmd.ErrOrStderr()).
				With("component", "leaguectl")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			s.close()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&s.cfg.DatabaseURL, "database-url", s.cfg.DatabaseURL, "Postgres connection string (env: DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&s.cfg.LogLevel, "log-level", s.cfg.LogLevel, "Log level: debug, info, warn, error (env: LOG_LEVEL)")
	rootCmd.PersistentFlags().Uint64Var(&s.cfg.DBConnectAttempts, "connect-attempts", s.cfg.DBConnectAttempts, "Connection attempts before giving up (env: DB_CONNECT_ATTEMPTS)")

	rootCmd.AddCommand(newSchemaCmd(s))
	rootCmd.AddCommand(newCreateAdminCmd(s))
	rootCmd.AddCommand(newSeedCmd(s))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
