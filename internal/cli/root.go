package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/IamHazels/employee-tool/internal/config"
	"github.com/IamHazels/employee-tool/internal/db"
	"github.com/IamHazels/employee-tool/internal/logger"
	"github.com/IamHazels/employee-tool/internal/service"
)

var (
	Version = "dev"
	Commit  = "none"
)

// Store is an open record store scoped to one command or menu session.
type Store struct {
	Registry service.Registry
	Logger   *zap.Logger
	Close    func() error
}

// Opener acquires a Store. The caller must call Close on every exit path.
type Opener func(ctx context.Context, configPath string) (*Store, error)

type app struct {
	configPath string
	open       Opener
	in         io.Reader
	out        io.Writer
}

func Execute() {
	cmd := newRootCmd(&app{
		open: OpenStore,
		in:   os.Stdin,
		out:  os.Stdout,
	})
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "employee-tool",
		Short:        "Track employees and their disciplinary records",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd.Context(), func(store *Store) error {
				return NewMenu(store.Registry, a.in, a.out, store.Logger).Run(cmd.Context())
			})
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: ./employee-tool.yaml)")
	cmd.SetIn(a.in)
	cmd.SetOut(a.out)

	cmd.AddCommand(
		employeeCmd(a),
		recordCmd(a),
		departmentCmd(a),
		exportCmd(a),
		migrateCmd(a),
		versionCmd(),
	)
	return cmd
}

func (a *app) withStore(ctx context.Context, fn func(store *Store) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := a.open(ctx, a.configPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(store)
}

// OpenStore loads config, connects, and brings the schema up to date.
func OpenStore(_ context.Context, configPath string) (*Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	database, err := db.Connect(cfg.Database, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	if err := db.Migrate(database, cfg.Database.Driver, log); err != nil {
		_ = db.Close(database)
		_ = log.Sync()
		return nil, err
	}

	registry := service.NewRecordService(database,
		service.WithIdentityRule(service.IdentityRule(cfg.Identity.Match)),
		service.WithLogger(log),
	)

	return &Store{
		Registry: registry,
		Logger:   log,
		Close: func() error {
			cerr := db.Close(database)
			// Sync on stderr reports EINVAL on some platforms; it carries no data loss.
			_ = log.Sync()
			if cerr != nil {
				return fmt.Errorf("close store: %w", cerr)
			}
			return nil
		},
	}, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "employee-tool %s (commit=%s)\n", Version, Commit)
			return err
		},
	}
}

func migrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the store schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd.Context(), func(_ *Store) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return err
			})
		},
	}
}
