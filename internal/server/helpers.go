package server

import (
	"fmt"
	"html"
	"strings"

	"warbler/internal/middleware"
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	sessionCookieName = "warbler_session"

	// sessionUserKey is the single session key holding the authenticated
	// user's id. Absence, or an id that no longer resolves to a user,
	// means the request is anonymous.
	sessionUserKey = "curr_user"

	flashKey = "_flash"
)

// currentUser resolves the session to a user. It returns nil for anonymous
// requests and for sessions whose stored id no longer exists.
func (s *Server) currentUser(c *fiber.Ctx) *models.User {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return nil
	}
	id, ok := sess.Get(sessionUserKey).(uint)
	if !ok {
		return nil
	}
	user, err := s.userRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return nil
	}
	c.SetUserContext(middleware.WithUserID(c.UserContext(), user.ID))
	return user
}

// signIn stores the user's id in the session.
func (s *Server) signIn(c *fiber.Ctx, userID uint) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionUserKey, userID)
	return sess.Save()
}

// signOut drops the session's user id, keeping the session itself.
func (s *Server) signOut(c *fiber.Ctx) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Delete(sessionUserKey)
	return sess.Save()
}

// flash stores a one-shot message that the next rendered page displays.
func (s *Server) flash(c *fiber.Ctx, message string) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return
	}
	sess.Set(flashKey, message)
	_ = sess.Save()
}

// popFlash returns the pending flash message, clearing it.
func (s *Server) popFlash(c *fiber.Ctx) string {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return ""
	}
	message, ok := sess.Get(flashKey).(string)
	if !ok || message == "" {
		return ""
	}
	sess.Delete(flashKey)
	_ = sess.Save()
	return message
}

// unauthorized flashes "Access unauthorized." and redirects home without
// touching any state. Every rejected mutation funnels through here so the
// anonymous and wrong-owner cases are indistinguishable.
func (s *Server) unauthorized(c *fiber.Ctx) error {
	s.flash(c, "Access unauthorized.")
	return c.Redirect("/", fiber.StatusFound)
}

// renderPage writes a minimal HTML page: pending flash first, then body.
func (s *Server) renderPage(c *fiber.Ctx, title, body string) error {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString(" / Warbler</title></head><body>")
	if message := s.popFlash(c); message != "" {
		b.WriteString(`<div class="alert">`)
		b.WriteString(html.EscapeString(message))
		b.WriteString("</div>")
	}
	b.WriteString(body)
	b.WriteString("</body></html>")
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(b.String())
}

// notFound writes a plain 404 page.
func (s *Server) notFound(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusNotFound).
		SendString("<!DOCTYPE html><html><body><h1>404. Page not found.</h1></body></html>")
}

// parseID extracts a route parameter as a positive uint.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", param)
	}
	return uint(id), nil
}

// userCards renders a list of users as @username cards.
func userCards(users []models.User) string {
	var b strings.Builder
	b.WriteString(`<ul class="user-list">`)
	for i := range users {
		u := &users[i]
		fmt.Fprintf(&b, `<li class="user-card"><a href="/users/%d">@%s</a></li>`,
			u.ID, html.EscapeString(u.Username))
	}
	b.WriteString("</ul>")
	return b.String()
}

// warbleList renders messages with their text and owner handle.
func warbleList(messages []models.Message) string {
	var b strings.Builder
	b.WriteString(`<ul class="warble-list">`)
	for i := range messages {
		m := &messages[i]
		fmt.Fprintf(&b, `<li class="warble" id="message-%d"><a href="/messages/%d">%s</a>`,
			m.ID, m.ID, html.EscapeString(m.Text))
		if m.User.Username != "" {
			fmt.Fprintf(&b, ` <span class="author">@%s</span>`, html.EscapeString(m.User.Username))
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
