// Command migrate manages the postgres schema of the ledger store.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/HeyDYF/Money-Manager/internal/config"
	"github.com/HeyDYF/Money-Manager/internal/database"
	"github.com/HeyDYF/Money-Manager/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		logger.Get().Errorf("migration failed: %v", err)
		logger.Sync()
		os.Exit(1)
	}
}

type migrator struct {
	source string
	m      *migrate.Migrate
}

func newRootCmd() *cobra.Command {
	mg := &migrator{}

	root := &cobra.Command{
		Use:               "migrate",
		Short:             "Apply or roll back SQL migrations for the postgres ledger store",
		SilenceUsage:      true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return mg.open() },
		PersistentPostRunE: func(*cobra.Command, []string) error {
			mg.close()
			return nil
		},
	}
	root.PersistentFlags().StringVar(&mg.source, "source", "", "migration source URL (default file://migrations)")

	root.AddCommand(
		&cobra.Command{
			Use:   "up [N]",
			Short: "Apply all pending migrations, or the next N",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				if len(args) == 0 {
					return mg.apply("up", mg.m.Up)
				}
				n, err := parseSteps(args[0])
				if err != nil {
					return err
				}
				return mg.apply("up", func() error { return mg.m.Steps(n) })
			},
		},
		&cobra.Command{
			Use:   "down [N]",
			Short: "Roll back N migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				n := 1
				if len(args) == 1 {
					var err error
					if n, err = parseSteps(args[0]); err != nil {
						return err
					}
				}
				return mg.apply("down", func() error { return mg.m.Steps(-n) })
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, dirty, err := mg.m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
					return nil
				}
				if err != nil {
					return fmt.Errorf("read version: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %v)\n", v, dirty)
				return nil
			},
		},
		&cobra.Command{
			Use:   "force V",
			Short: "Mark version V as applied and clear the dirty flag",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				if err := mg.m.Force(v); err != nil {
					return fmt.Errorf("force version %d: %w", v, err)
				}
				logger.Get().Infow("schema version forced", "version", v)
				return nil
			},
		},
	)
	return root
}

func (mg *migrator) open() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.StoreDriver != config.StorePostgres {
		return fmt.Errorf("SQL migrations only apply to the postgres store (STORE_DRIVER=%s)", cfg.StoreDriver)
	}

	dbCfg := database.NewConfig(cfg)
	if mg.source == "" {
		mg.source = dbCfg.MigrationsPath
	}
	mg.m, err = migrate.New(mg.source, dbCfg.MigrateURL())
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	return nil
}

func (mg *migrator) close() {
	if mg.m == nil {
		return
	}
	srcErr, dbErr := mg.m.Close()
	if err := errors.Join(srcErr, dbErr); err != nil {
		logger.Get().Warnw("closing migrator", "error", err)
	}
}

// apply runs step and treats "nothing to do" as success.
func (mg *migrator) apply(direction string, step func() error) error {
	err := step()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Get().Infow("schema already current", "direction", direction)
		return nil
	case err != nil:
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	v, dirty, _ := mg.m.Version()
	logger.Get().Infow("migrations applied", "direction", direction, "version", v, "dirty", dirty)
	return nil
}

func parseSteps(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("step count must be a positive integer, got %q", arg)
	}
	return n, nil
}
