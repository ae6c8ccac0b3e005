package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/saransh1220/linkhub/internal/modules/profile/application"
	"github.com/saransh1220/linkhub/internal/modules/profile/domain"
	"github.com/saransh1220/linkhub/internal/modules/profile/infrastructure/persistence/postgres"
	"github.com/saransh1220/linkhub/internal/shared/infrastructure/config"
	"github.com/saransh1220/linkhub/internal/shared/infrastructure/database"
	"github.com/saransh1220/linkhub/internal/shared/infrastructure/logging"
	"github.com/saransh1220/linkhub/pkg/migration"
	"github.com/spf13/cobra"
)

type schemaMigrator interface {
	Up() error
	Down() error
	Force(version int) error
	Version() (migration.Status, error)
}

// deps are swapped out in tests.
type deps struct {
	loadConfig   func() (config.Config, error)
	newMigrator  func(cfg config.Config) schemaMigrator
	openProfiles func(cfg config.Config) (domain.ProfileRepository, func(), error)
}

func defaultDeps() deps {
	return deps{
		loadConfig: config.Load,
		newMigrator: func(cfg config.Config) schemaMigrator {
			return migration.NewRunner(migration.Config{
				MigrationsPath: cfg.Store.MigrationsPath,
				DatabaseURL:    cfg.Database.URL(),
				Logger:         logging.New(cfg.Log.Level),
			})
		},
		openProfiles: func(cfg config.Config) (domain.ProfileRepository, func(), error) {
			db, err := database.NewPostgresDB(cfg.Database)
			if err != nil {
				return nil, nil, err
			}
			return postgres.NewProfileRepository(db), func() { db.Close() }, nil
		},
	}
}

func newRootCmd(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:          "linkhubctl",
		Short:        "Operate a linkhub deployment",
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(d), newThemesCmd(), newUsernameCmd(d))
	return root
}

func newMigrateCmd(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	withMigrator := func(fn func(cmd *cobra.Command, m schemaMigrator, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := d.loadConfig()
			if err != nil {
				return err
			}
			return fn(cmd, d.newMigrator(cfg), args)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m schemaMigrator, _ []string) error {
				if err := m.Up(); err != nil {
					return err
				}
				return printVersion(cmd, m)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m schemaMigrator, _ []string) error {
				if err := m.Down(); err != nil {
					return err
				}
				return printVersion(cmd, m)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m schemaMigrator, _ []string) error {
				return printVersion(cmd, m)
			}),
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Mark the schema as clean at version",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(cmd *cobra.Command, m schemaMigrator, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("version must be an integer: %w", err)
				}
				if err := m.Force(v); err != nil {
					return err
				}
				return printVersion(cmd, m)
			}),
		},
	)
	return cmd
}

func printVersion(cmd *cobra.Command, m schemaMigrator) error {
	st, err := m.Version()
	if err != nil {
		return err
	}
	dirty := ""
	if st.Dirty {
		dirty = " (dirty)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d%s\n", st.Version, dirty)
	return nil
}

func newThemesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the theme presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			presets := domain.ThemePresets()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(presets)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tBACKGROUND\tLINK\tFONT\tSTYLE")
			for _, p := range presets {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.Theme.BackgroundColor, p.Theme.LinkColor, p.Theme.FontFamily, p.Theme.LinkStyle)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print presets as JSON")
	return cmd
}

func newUsernameCmd(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "username",
		Short: "Username utilities",
	}

	var offline bool
	check := &cobra.Command{
		Use:   "check <candidate>",
		Short: "Validate a username and report whether it is free",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidate := args[0]
			out := cmd.OutOrStdout()

			if err := domain.ValidateUsername(candidate); err != nil {
				fmt.Fprintf(out, "%s: invalid, %v\n", candidate, err)
				return err
			}
			if offline {
				fmt.Fprintf(out, "%s: valid format\n", candidate)
				return nil
			}

			cfg, err := d.loadConfig()
			if err != nil {
				return err
			}
			repo, closeFn, err := d.openProfiles(cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			svc := application.NewProfileService(repo, nil, logging.Discard(), cfg.Server.PublicBaseURL)
			available, err := svc.IsUsernameAvailable(cmd.Context(), candidate, "")
			if err != nil {
				return err
			}
			if !available {
				fmt.Fprintf(out, "%s: taken\n", candidate)
				return errUsernameTaken
			}
			fmt.Fprintf(out, "%s: available\n", candidate)
			return nil
		},
	}
	check.Flags().BoolVar(&offline, "offline", false, "only validate the format")
	cmd.AddCommand(check)
	return cmd
}

var errUsernameTaken = errors.New("username is taken")
