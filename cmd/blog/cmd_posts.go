package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"multiblog/internal/blog"
)

var (
	postEmail   string
	postTitle   string
	postContent string
	postTags    string
	listByEmail string
)

// postsCmd groups post management
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Manage posts",
}

var postsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new post",
	Example: `  blog posts create --email ana@example.com --title "Hola" --content "Mi primer post" --tags go,web`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, _ := openService()
		p, err := svc.CreatePostByEmail(postEmail, postTitle, postContent, blog.ParseTags(postTags))
		if err != nil {
			return err
		}
		fmt.Printf("Post %s published: %s\n", p.ID, p.Title)
		return nil
	},
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, optionally filtered by author",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, _ := openService()

		var (
			posts []blog.Post
			err   error
		)
		if listByEmail != "" {
			var a blog.Author
			a, err = svc.Login(listByEmail)
			if err != nil {
				return err
			}
			posts, err = svc.ListPostsByAuthor(a.ID)
		} else {
			posts, err = svc.ListPosts()
		}
		if err != nil {
			return err
		}
		printPosts(svc, posts)
		return nil
	},
}

var postsSearchCmd = &cobra.Command{
	Use:   "search [tag]",
	Short: "List posts carrying a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, _ := openService()
		posts, err := svc.SearchPostsByTag(args[0])
		if err != nil {
			return err
		}
		printPosts(svc, posts)
		return nil
	},
}

var postsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, _ := openService()
		p, err := svc.GetPost(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n%s\n", p.Title, strings.Repeat("=", len(p.Title)))
		fmt.Printf("by %s on %s", authorLabel(svc, p.AuthorID), p.Published)
		if len(p.Tags) > 0 {
			fmt.Printf("  [%s]", strings.Join(p.Tags, ", "))
		}
		fmt.Printf("\n\n%s\n", p.Content)

		if len(p.Comments) > 0 {
			fmt.Printf("\nComments (%d):\n", len(p.Comments))
			for _, c := range p.Comments {
				fmt.Printf("  %s. %s (%s): %s\n", c.ID, c.Author, c.Date, c.Content)
			}
		}
		return nil
	},
}

var postsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, _ := openService()
		actor, err := svc.Login(postEmail)
		if err != nil {
			return err
		}

		var changes blog.PostChanges
		if cmd.Flags().Changed("title") {
			changes.Title = &postTitle
		}
		if cmd.Flags().Changed("content") {
			changes.Content = &postContent
		}
		if cmd.Flags().Changed("tags") {
			changes.Tags = blog.ParseTags(postTags)
		}
		if changes.Title == nil && changes.Content == nil && changes.Tags == nil {
			return fmt.Errorf("nothing to change: pass --title, --content and/or --tags")
		}

		p, err := svc.EditPost(actor.ID, args[0], changes)
		if err != nil {
			return err
		}
		fmt.Printf("Post %s updated\n", p.ID)
		return nil
	},
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, _ := openService()
		actor, err := svc.Login(postEmail)
		if err != nil {
			return err
		}
		if err := svc.DeletePost(actor.ID, args[0]); err != nil {
			return err
		}
		fmt.Printf("Post %s deleted\n", args[0])
		return nil
	},
}

// printPosts renders a one-line summary per post.
func printPosts(svc *blog.Service, posts []blog.Post) {
	if len(posts) == 0 {
		fmt.Println("No posts found")
		return
	}
	for _, p := range posts {
		line := fmt.Sprintf("%-4s %s  %s  (%s", p.ID, p.Published, p.Title, authorLabel(svc, p.AuthorID))
		if len(p.Tags) > 0 {
			line += "; " + strings.Join(p.Tags, ", ")
		}
		line += ")"
		if n := len(p.Comments); n > 0 {
			line += fmt.Sprintf(" [%d comments]", n)
		}
		fmt.Println(line)
	}
}

// authorLabel resolves an author id to a display name, falling back to the
// raw id for orphaned posts.
func authorLabel(svc *blog.Service, authorID string) string {
	a, err := svc.GetAuthor(authorID)
	if err != nil {
		return "author #" + authorID
	}
	return a.Name
}

func init() {
	postsCreateCmd.Flags().StringVar(&postEmail, "email", "", "Your email (required)")
	postsCreateCmd.Flags().StringVar(&postTitle, "title", "", "Post title (required)")
	postsCreateCmd.Flags().StringVar(&postContent, "content", "", "Post body (required)")
	postsCreateCmd.Flags().StringVar(&postTags, "tags", "", "Comma-separated tags")
	postsCreateCmd.MarkFlagRequired("email")
	postsCreateCmd.MarkFlagRequired("title")
	postsCreateCmd.MarkFlagRequired("content")

	postsListCmd.Flags().StringVar(&listByEmail, "author", "", "Only posts by this author email")

	postsEditCmd.Flags().StringVar(&postEmail, "email", "", "Your email (required)")
	postsEditCmd.Flags().StringVar(&postTitle, "title", "", "New title")
	postsEditCmd.Flags().StringVar(&postContent, "content", "", "New body")
	postsEditCmd.Flags().StringVar(&postTags, "tags", "", "Replacement comma-separated tags")
	postsEditCmd.MarkFlagRequired("email")

	postsDeleteCmd.Flags().StringVar(&postEmail, "email", "", "Your email (required)")
	postsDeleteCmd.MarkFlagRequired("email")

	postsCmd.AddCommand(postsCreateCmd)
	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsSearchCmd)
	postsCmd.AddCommand(postsShowCmd)
	postsCmd.AddCommand(postsEditCmd)
	postsCmd.AddCommand(postsDeleteCmd)
}
