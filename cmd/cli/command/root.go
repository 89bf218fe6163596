package command

// root.go defines the root command of the bookhub management CLI.
// Every subcommand talks to the database directly, configured from the
// same environment as the API server.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"bookhub/database"
	"bookhub/internal/app"
	"bookhub/internal/config"
	"bookhub/internal/microservices/http-api/handler"
	"bookhub/pkg/logger"
)

// env is what a subcommand works with once connected.
type env struct {
	cfg      *config.Config
	db       *gorm.DB
	repos    app.Repositories
	services handler.Services
}

// connect opens the database for a subcommand. Tests replace it.
var connect = func() (*env, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	// revocation is an API concern; the CLI never needs redis
	e := &env{
		cfg:      cfg,
		db:       db,
		repos:    app.NewRepositories(db),
		services: app.NewServices(db, nil, cfg),
	}
	return e, func() { database.Close(db) }, nil
}

// withEnv adapts a subcommand body that needs the database.
func withEnv(run func(cmd *cobra.Command, args []string, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, closeFn, err := connect()
		if err != nil {
			return err
		}
		defer closeFn()
		return run(cmd, args, e)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bookhub",
		Short: "bookhub - catalog, library and blog management",
		Long: `bookhub manages the data behind the bookhub API:
- seed the demo catalog
- create an administrator account
- run the catalog query samples
- prune expired refresh tokens

Use "bookhub command --help" to see the flags of a command.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newSeedCmd(),
		newCreateSuperuserCmd(),
		newBooksByAuthorCmd(),
		newBooksInLibraryCmd(),
		newLibrarianForLibraryCmd(),
		newCleanupTokensCmd(),
	)
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		os.Exit(1)
	}
}
