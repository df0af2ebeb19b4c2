package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	commentEmail   string
	commentName    string
	commentContent string
)

// commentsCmd groups comment management
var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Manage comments on posts",
}

var commentsAddCmd = &cobra.Command{
	Use:   "add [post-id]",
	Short: "Comment on a post",
	Long: `Adds a comment to a post. With --email the comment is signed by that
registered author; with only --name it is anonymous.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, _ := openService()

		name := commentName
		authorID := ""
		if commentEmail != "" {
			a, err := svc.Login(commentEmail)
			if err != nil {
				return err
			}
			name = a.Name
			authorID = a.ID
		}

		c, err := svc.AddComment(args[0], name, commentContent, authorID)
		if err != nil {
			return err
		}
		fmt.Printf("Comment %s added to post %s\n", c.ID, args[0])
		return nil
	},
}

var commentsListCmd = &cobra.Command{
	Use:   "list [post-id]",
	Short: "List the comments of a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, _ := openService()
		comments, err := svc.ListComments(args[0])
		if err != nil {
			return err
		}
		if len(comments) == 0 {
			fmt.Println("No comments")
			return nil
		}
		for _, c := range comments {
			fmt.Printf("%-4s %s (%s): %s\n", c.ID, c.Author, c.Date, c.Content)
		}
		return nil
	},
}

var commentsEditCmd = &cobra.Command{
	Use:   "edit [post-id] [comment-id]",
	Short: "Edit one of your comments",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, _ := openService()
		actor, err := svc.Login(commentEmail)
		if err != nil {
			return err
		}
		c, err := svc.EditComment(actor.ID, args[0], args[1], commentContent)
		if err != nil {
			return err
		}
		fmt.Printf("Comment %s updated\n", c.ID)
		return nil
	},
}

var commentsDeleteCmd = &cobra.Command{
	Use:   "delete [post-id] [comment-id]",
	Short: "Delete a comment you own (or moderate anonymous ones on your posts)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, _ := openService()
		actor, err := svc.Login(commentEmail)
		if err != nil {
			return err
		}
		if err := svc.DeleteComment(actor.ID, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Comment %s deleted\n", args[1])
		return nil
	},
}

func init() {
	commentsAddCmd.Flags().StringVar(&commentEmail, "email", "", "Sign as this registered author")
	commentsAddCmd.Flags().StringVar(&commentName, "name", "", "Display name for an anonymous comment")
	commentsAddCmd.Flags().StringVar(&commentContent, "content", "", "Comment text (required)")
	commentsAddCmd.MarkFlagRequired("content")

	commentsEditCmd.Flags().StringVar(&commentEmail, "email", "", "Your email (required)")
	commentsEditCmd.Flags().StringVar(&commentContent, "content", "", "New comment text (required)")
	commentsEditCmd.MarkFlagRequired("email")
	commentsEditCmd.MarkFlagRequired("content")

	commentsDeleteCmd.Flags().StringVar(&commentEmail, "email", "", "Your email (required)")
	commentsDeleteCmd.MarkFlagRequired("email")

	commentsCmd.AddCommand(commentsAddCmd)
	commentsCmd.AddCommand(commentsListCmd)
	commentsCmd.AddCommand(commentsEditCmd)
	commentsCmd.AddCommand(commentsDeleteCmd)
}
