package server

import (
	"github.com/gofiber/fiber/v2"
)

const timelineLimit = 100

// Home handles GET /. Logged-in users see the warbles of the people they
// follow plus their own; everyone else gets the signup pitch. Pending
// flash messages from redirected mutations surface here.
func (s *Server) Home(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		body := `<h1>What's Happening?</h1>
<p>Sign up now to get your own personalized timeline!</p>
<a href="/signup">Sign up</a>`
		return s.renderPage(c, "Home", body)
	}

	timeline, err := s.socialService.Timeline(c.UserContext(), user.ID, timelineLimit)
	if err != nil {
		return err
	}
	return s.renderPage(c, "Home", warbleList(timeline))
}
