package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"multiblog/cmd/blog/ui"
	"multiblog/internal/blog"
	"multiblog/internal/config"
	"multiblog/internal/logging"
	"multiblog/internal/store"
)

var (
	// Global flags
	rootDir string
	cfgPath string
	verbose bool

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "Multi-user blog manager over flat files",
	Long: `blog manages a small multi-user blog persisted to flat files:
authors in autores.csv, posts (with their comments) in posts.json.

Identity is the email address: logging in is looking yourself up, there
is no password. Run without arguments to start the interactive menu.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg = zap.NewDevelopmentConfig()
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if cfgPath != "" {
			cfg, err = config.LoadFile(rootDir, cfgPath)
		} else {
			cfg, err = config.Load(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		debug := cfg.Logging.DebugMode || verbose
		if err := logging.Initialize(rootDir, debug, cfg.Logging.Level); err != nil {
			return fmt.Errorf("failed to initialize file logging: %w", err)
		}

		logger.Debug("configuration loaded",
			zap.String("root", rootDir),
			zap.String("data_dir", cfg.Storage.DataDir))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the interactive menu
		svc, _, _ := openService()
		return ui.Run(ui.Options{
			Service: svc,
			DataDir: cfg.Storage.DataDir,
			Theme:   cfg.UI.Theme,
			Wrap:    cfg.UI.WordWrap,
		})
	},
}

// openService wires the file-backed stores and the use-case layer for the
// configured data directory.
func openService() (*blog.Service, *store.AuthorStore, *store.PostStore) {
	authors := store.NewAuthorStore(cfg.AuthorsFile())
	posts := store.NewPostStore(cfg.PostsFile())
	return blog.NewService(authors, posts), authors, posts
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", ".", "Project root holding the data directory")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: <root>/.blog/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(authorsCmd)
	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(commentsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
