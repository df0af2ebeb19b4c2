package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// initCmd bootstraps the data directory
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data files and the welcome post",
	Long: `Creates the data directory with an empty autores.csv and posts.json,
then publishes the welcome post under the system account. Safe to run
repeatedly: existing data is never touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, authors, posts := openService()

		if err := authors.Bootstrap(); err != nil {
			return fmt.Errorf("failed to create authors file: %w", err)
		}
		if err := posts.Bootstrap(); err != nil {
			return fmt.Errorf("failed to create posts file: %w", err)
		}

		p, created, err := svc.EnsureWelcome()
		if err != nil {
			return err
		}
		logger.Info("data directory initialized",
			zap.String("data_dir", cfg.Storage.DataDir),
			zap.Bool("welcome_created", created))

		fmt.Printf("Data directory: %s\n", cfg.Storage.DataDir)
		fmt.Printf("  %s\n", authors.Path())
		fmt.Printf("  %s\n", posts.Path())
		if created {
			fmt.Printf("Welcome post published (id %s)\n", p.ID)
		} else {
			fmt.Println("Welcome post already present")
		}
		return nil
	},
}

// statusCmd reports data file locations and counts
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show data file locations and content counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, authors, posts := openService()

		st, err := svc.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Data directory: %s\n", cfg.Storage.DataDir)
		fmt.Printf("  %-12s %s (%s)\n", "authors:", authors.Path(), fileState(authors.Path()))
		fmt.Printf("  %-12s %s (%s)\n", "posts:", posts.Path(), fileState(posts.Path()))
		fmt.Println()
		fmt.Printf("Authors:  %d\n", st.Authors)
		fmt.Printf("Posts:    %d\n", st.Posts)
		fmt.Printf("Comments: %d\n", st.Comments)
		return nil
	},
}

func fileState(path string) string {
	if _, err := os.Stat(path); err != nil {
		return "missing"
	}
	return "present"
}
