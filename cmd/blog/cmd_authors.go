package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"multiblog/internal/blog"
)

var (
	authorName  string
	authorEmail string
)

// authorsCmd groups author management
var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Manage authors",
}

var authorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered authors",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, _ := openService()
		authors, err := svc.ListAuthors()
		if err != nil {
			return err
		}
		if len(authors) == 0 {
			fmt.Println("No authors registered")
			return nil
		}
		for _, a := range authors {
			fmt.Printf("%-4s %-25s %s\n", a.ID, a.Name, a.Email)
		}
		return nil
	},
}

var authorsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new author",
	Example: `  blog authors create --name "Ana García" --email ana@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, _ := openService()
		a, err := svc.Register(authorName, authorEmail)
		if err != nil {
			return err
		}
		fmt.Printf("Author %s registered with id %s\n", a.Email, a.ID)
		return nil
	},
}

var authorsUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change an author's name or email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, _ := openService()

		var changes blog.AuthorChanges
		if cmd.Flags().Changed("name") {
			changes.Name = &authorName
		}
		if cmd.Flags().Changed("email") {
			changes.Email = &authorEmail
		}
		if changes.Name == nil && changes.Email == nil {
			return fmt.Errorf("nothing to change: pass --name and/or --email")
		}

		a, err := svc.UpdateAuthor(args[0], changes)
		if err != nil {
			return err
		}
		fmt.Printf("Author %s updated: %s <%s>\n", a.ID, a.Name, a.Email)
		return nil
	},
}

var authorsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Remove an author (their posts remain)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, _ := openService()
		if err := svc.DeleteAuthor(args[0]); err != nil {
			return err
		}
		fmt.Printf("Author %s removed\n", args[0])
		return nil
	},
}

func init() {
	authorsCreateCmd.Flags().StringVar(&authorName, "name", "", "Display name (required)")
	authorsCreateCmd.Flags().StringVar(&authorEmail, "email", "", "Email address (required)")
	authorsCreateCmd.MarkFlagRequired("name")
	authorsCreateCmd.MarkFlagRequired("email")

	authorsUpdateCmd.Flags().StringVar(&authorName, "name", "", "New display name")
	authorsUpdateCmd.Flags().StringVar(&authorEmail, "email", "", "New email address")

	authorsCmd.AddCommand(authorsListCmd)
	authorsCmd.AddCommand(authorsCreateCmd)
	authorsCmd.AddCommand(authorsUpdateCmd)
	authorsCmd.AddCommand(authorsDeleteCmd)
}
