package ui

import (
	"fmt"
	"strings"
)

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Multi-User Blog"))
	b.WriteString("\n")

	switch m.page {
	case pageLogin:
		m.viewLogin(&b)
	case pageRegister:
		m.viewRegister(&b)
	case pageMenu:
		m.viewMenu(&b)
	case pagePosts:
		m.viewPosts(&b)
	case pagePostView:
		m.viewPostDetail(&b)
	case pageComposeTitle, pageComposeTags:
		m.viewComposeLine(&b)
	case pageComposeBody:
		m.viewComposeBody(&b)
	case pageComment:
		m.viewComment(&b)
	case pageAuthors:
		m.viewAuthors(&b)
	}

	b.WriteString("\n")
	if m.lastErr != "" {
		b.WriteString(m.styles.Error.Render("✗ " + m.lastErr))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Success.Render("✓ " + m.status))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *model) sessionLine() string {
	if m.author == nil {
		return m.styles.Muted.Render("not logged in")
	}
	return m.styles.Badge.Render(m.author.Name) +
		m.styles.Muted.Render(" <"+m.author.Email+">")
}

func (m *model) viewLogin(b *strings.Builder) {
	b.WriteString(m.styles.Subtitle.Render("Log in with your email. New here? An unknown email starts registration."))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Prompt.Render("email> "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("enter: continue · esc: quit"))
}

func (m *model) viewRegister(b *strings.Builder) {
	b.WriteString(m.styles.Subtitle.Render("No account for " + m.draftEmail + " yet. Pick a display name to register."))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Prompt.Render("name> "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("enter: register · esc: back"))
}

func (m *model) viewMenu(b *strings.Builder) {
	b.WriteString(m.sessionLine())
	b.WriteString("\n\n")
	for i, item := range m.menuItems {
		if i == m.menuIdx {
			b.WriteString(m.styles.Selected.Render("> " + item.label))
		} else {
			b.WriteString(m.styles.Body.Render("  " + item.label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("↑/↓: move · enter: select · q: quit"))
}

func (m *model) viewPosts(b *strings.Builder) {
	b.WriteString(m.sessionLine())
	b.WriteString("\n\n")

	if len(m.posts) == 0 {
		b.WriteString(m.styles.Muted.Render("No posts yet."))
		b.WriteString("\n")
	}
	for i, p := range m.posts {
		line := fmt.Sprintf("%s  %s", p.Published, p.Title)
		if len(p.Tags) > 0 {
			line += "  [" + strings.Join(p.Tags, ", ") + "]"
		}
		if n := len(p.Comments); n > 0 {
			line += fmt.Sprintf("  (%d comments)", n)
		}
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Body.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("enter: read · r: refresh · esc: menu"))
}

func (m *model) viewPostDetail(b *strings.Builder) {
	p := m.current

	author := "author #" + p.AuthorID
	if a, err := m.opts.Service.GetAuthor(p.AuthorID); err == nil {
		author = a.Name
	}

	b.WriteString(m.styles.Prompt.Render(p.Title))
	b.WriteString("\n")
	meta := "by " + author + " on " + p.Published
	if len(p.Tags) > 0 {
		meta += "  [" + strings.Join(p.Tags, ", ") + "]"
	}
	b.WriteString(m.styles.Subtitle.Render(meta))
	b.WriteString("\n")
	b.WriteString(m.safeRenderMarkdown(p.Content))
	b.WriteString("\n")

	if len(p.Comments) > 0 {
		b.WriteString(m.styles.Prompt.Render(fmt.Sprintf("Comments (%d)", len(p.Comments))))
		b.WriteString("\n")
		for _, c := range p.Comments {
			b.WriteString(m.styles.Card.Render(
				m.styles.Body.Render(c.Content) + "\n" +
					m.styles.Muted.Render(c.Author+" · "+c.Date)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	hints := "c: comment · esc: back"
	if m.author != nil && m.author.ID == p.AuthorID {
		hints = "c: comment · d: delete · esc: back"
	}
	b.WriteString(m.styles.Muted.Render(hints))
}

func (m *model) viewComposeLine(b *strings.Builder) {
	b.WriteString(m.sessionLine())
	b.WriteString("\n\n")
	if m.page == pageComposeTitle {
		b.WriteString(m.styles.Prompt.Render("title> "))
	} else {
		b.WriteString(m.styles.Body.Render("Title: " + m.draftTitle))
		b.WriteString("\n")
		b.WriteString(m.styles.Prompt.Render("tags> "))
	}
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("enter: next · esc: cancel"))
}

func (m *model) viewComposeBody(b *strings.Builder) {
	b.WriteString(m.styles.Body.Render("Title: " + m.draftTitle))
	b.WriteString("\n\n")
	b.WriteString(m.body.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("ctrl+d: publish · esc: cancel"))
}

func (m *model) viewComment(b *strings.Builder) {
	b.WriteString(m.styles.Body.Render("Commenting on: " + m.current.Title))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Prompt.Render("comment> "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("enter: send · esc: back"))
}

func (m *model) viewAuthors(b *strings.Builder) {
	b.WriteString(m.styles.Prompt.Render("Authors"))
	b.WriteString("\n\n")
	if len(m.authors) == 0 {
		b.WriteString(m.styles.Muted.Render("No authors registered."))
		b.WriteString("\n")
	}
	for _, a := range m.authors {
		b.WriteString(m.styles.Body.Render(fmt.Sprintf("%-4s %-25s ", a.ID, a.Name)))
		b.WriteString(m.styles.Muted.Render(a.Email))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("r: refresh · esc: menu"))
}

// safeRenderMarkdown renders markdown with panic recovery; glamour can
// panic on pathological input and the fallback is the raw text.
func (m *model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}
