// Command migrate manages the storefront schema. Database commands read
// DATABASE_URL through the same configuration loader as the server.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/storefront/platform/internal/infrastructure/config"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"github.com/storefront/platform/internal/infrastructure/migration"
	"github.com/storefront/platform/migrations"
	"go.uber.org/zap"
)

const usage = `Usage: migrate [-path dir] [-log-level level] <command> [args]

File commands:
  create <name> [desc]  write an empty up/down pair into -path (default ./migrations)
  list                  print the migrations that would be applied

Database commands:
  up                    apply everything pending
  down                  roll everything back
  step <n>              apply n migrations, negative rolls back
  version               print the applied version
  force <version>       mark a version as applied without running it
`

var errUsage = errors.New("invalid usage")

type options struct {
	path string
	log  *zap.Logger
	args []string
}

type dbCommand func(m *migration.Migrator, o options) error

var dbCommands = map[string]dbCommand{
	"up":   func(m *migration.Migrator, _ options) error { return m.Up() },
	"down": func(m *migration.Migrator, _ options) error { return m.Down() },
	"step": func(m *migration.Migrator, o options) error {
		n, err := intArg(o.args, "step count")
		if err != nil {
			return err
		}
		return m.Steps(n)
	},
	"force": func(m *migration.Migrator, o options) error {
		v, err := intArg(o.args, "version")
		if err != nil {
			return err
		}
		o.log.Warn("Forcing migration version", zap.Int("version", v))
		return m.Force(v)
	},
	"version": func(m *migration.Migrator, o options) error {
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		o.log.Info("Schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return nil
	},
}

func main() {
	path := flag.String("path", "", "migrations directory, defaults to the embedded set")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	log := logger.New(logger.Config{Level: *level, Format: "console", Output: "stdout", Service: "migrate"})
	defer func() { _ = log.Sync() }()

	if err := run(flag.Args(), options{path: *path, log: log}); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
		}
		log.Error("Migration command failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(args []string, o options) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	o.args = rest

	switch cmd {
	case "create":
		return create(o)
	case "list":
		return list(o)
	}

	exec, ok := dbCommands[cmd]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, o.path, migrations.FS, o.log)
	if err != nil {
		return err
	}
	defer m.Close()

	o.log.Info("Running migration command", zap.String("command", cmd))
	return exec(m, o)
}

func create(o options) error {
	if len(o.args) == 0 {
		return fmt.Errorf("%w: create needs a name", errUsage)
	}
	dir := o.path
	if dir == "" {
		dir = "migrations"
	}
	var desc string
	if len(o.args) > 1 {
		desc = o.args[1]
	}
	f, err := migration.Create(dir, o.args[0], desc)
	if err != nil {
		return err
	}
	o.log.Info("Migration created", zap.Uint("version", f.Version), zap.String("up", f.UpPath), zap.String("down", f.DownPath))
	return nil
}

func list(o options) error {
	var fsys fs.FS = migrations.FS
	if o.path != "" {
		fsys = os.DirFS(o.path)
	}
	entries, err := migration.List(fsys)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%06d  %s\n", e.Version, e.Name)
	}
	return nil
}

func intArg(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: %s required", errUsage, what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errUsage, what)
	}
	return n, nil
}
