package server

import (
	"fmt"
	"html"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

const newMessageForm = `<form method="POST" action="/messages/new">
<textarea name="text" placeholder="What's happening?"></textarea>
<button type="submit">Add my message!</button>
</form>`

// NewMessagePage handles GET /messages/new
func (s *Server) NewMessagePage(c *fiber.Ctx) error {
	if s.currentUser(c) == nil {
		return s.unauthorized(c)
	}
	return s.renderPage(c, "New Warble", newMessageForm)
}

// NewMessage handles POST /messages/new. Anonymous requests, including
// sessions whose user id no longer resolves, change nothing.
func (s *Server) NewMessage(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}

	var req struct {
		Text string `form:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		s.flash(c, "Invalid request.")
		return s.renderPage(c, "New Warble", newMessageForm)
	}

	if _, err := s.messageService.Post(c.UserContext(), user.ID, req.Text); err != nil {
		if models.IsValidation(err) {
			s.flash(c, err.Error())
			return s.renderPage(c, "New Warble", newMessageForm)
		}
		return err
	}

	return c.Redirect(fmt.Sprintf("/users/%d", user.ID), fiber.StatusFound)
}

// ShowMessage handles GET /messages/:id. Unknown ids are a 404, not an error.
func (s *Server) ShowMessage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}

	message, err := s.messageService.Get(c.UserContext(), id)
	if err != nil {
		if models.IsNotFound(err) {
			return s.notFound(c)
		}
		return err
	}

	body := fmt.Sprintf(`<article class="warble"><p>%s</p><span class="author">@%s</span></article>`,
		html.EscapeString(message.Text), html.EscapeString(message.User.Username))
	return s.renderPage(c, "Warble", body)
}

// DeleteMessage handles POST /messages/:id/delete. Only the owner may
// delete; a non-owner, authenticated or not, gets the same unauthorized
// response and the warble survives.
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}

	if err := s.messageService.Delete(c.UserContext(), user.ID, id); err != nil {
		switch {
		case models.IsUnauthorized(err):
			return s.unauthorized(c)
		case models.IsNotFound(err):
			return s.notFound(c)
		}
		return err
	}

	s.flash(c, "Successfully deleted your warble.")
	return c.Redirect(fmt.Sprintf("/users/%d", user.ID), fiber.StatusFound)
}
