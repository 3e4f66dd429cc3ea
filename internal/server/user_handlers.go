package server

import (
	"fmt"
	"html"

	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /users. With no filter every user is listed; the
// q query parameter narrows the list to usernames containing it.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	users, err := s.userService.ListUsers(c.UserContext(), query)
	if err != nil {
		return err
	}

	body := `<form method="GET" action="/users"><input name="q" value="` +
		html.EscapeString(query) + `" placeholder="Search Warbler"></form>` +
		userCards(users)
	return s.renderPage(c, "Users", body)
}

// ShowUser handles GET /users/:id, the profile page with the user's
// warbles newest-first.
func (s *Server) ShowUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}

	user, err := s.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		if models.IsNotFound(err) {
			return s.notFound(c)
		}
		return err
	}

	messages, err := s.messageService.ListByUser(c.UserContext(), user.ID)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(`<h1>@%s</h1>`, html.EscapeString(user.Username))
	if user.Bio != "" {
		body += fmt.Sprintf(`<p class="bio">%s</p>`, html.EscapeString(user.Bio))
	}
	if user.Location != "" {
		body += fmt.Sprintf(`<p class="location">%s</p>`, html.EscapeString(user.Location))
	}
	body += warbleList(messages)
	return s.renderPage(c, "@"+user.Username, body)
}

// ShowFollowing handles GET /users/:id/following
func (s *Server) ShowFollowing(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}
	user, err := s.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		if models.IsNotFound(err) {
			return s.notFound(c)
		}
		return err
	}

	following, err := s.socialService.Following(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return s.renderPage(c, "Following", userCards(following))
}

// ShowFollowers handles GET /users/:id/followers
func (s *Server) ShowFollowers(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}
	user, err := s.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		if models.IsNotFound(err) {
			return s.notFound(c)
		}
		return err
	}

	followers, err := s.socialService.Followers(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return s.renderPage(c, "Followers", userCards(followers))
}

// ShowLikes handles GET /users/:id/likes
func (s *Server) ShowLikes(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}
	user, err := s.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		if models.IsNotFound(err) {
			return s.notFound(c)
		}
		return err
	}

	liked, err := s.socialService.ListLiked(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return s.renderPage(c, "Likes", warbleList(liked))
}

// AddFollow handles POST /users/follow/:id
func (s *Server) AddFollow(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}

	followedID, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}

	if _, err := s.socialService.Follow(c.UserContext(), user.ID, followedID); err != nil {
		if models.IsNotFound(err) {
			return s.notFound(c)
		}
		return err
	}
	return c.Redirect(fmt.Sprintf("/users/%d/following", user.ID), fiber.StatusFound)
}

// StopFollowing handles POST /users/stop-following/:id
func (s *Server) StopFollowing(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}

	followedID, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}

	followed, err := s.socialService.Unfollow(c.UserContext(), user.ID, followedID)
	if err != nil {
		if models.IsNotFound(err) {
			return s.notFound(c)
		}
		return err
	}

	s.flash(c, fmt.Sprintf("Stopped following %s", followed.Username))
	return c.Redirect(fmt.Sprintf("/users/%d/following", user.ID), fiber.StatusFound)
}

// AddLike handles POST /users/add_like/:messageId. Posting against an
// already-liked warble removes the like; otherwise it adds one.
func (s *Server) AddLike(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}

	messageID, err := parseID(c, "messageId")
	if err != nil {
		return s.notFound(c)
	}

	if _, err := s.socialService.ToggleLike(c.UserContext(), user.ID, messageID); err != nil {
		if models.IsNotFound(err) {
			return s.notFound(c)
		}
		return err
	}
	return c.Redirect("/", fiber.StatusFound)
}

// ProfilePage handles GET /users/profile, the edit-profile form.
func (s *Server) ProfilePage(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}

	body := fmt.Sprintf(`<h2>Edit Your Profile.</h2>
<form method="POST" action="/users/profile">
<input name="username" value="%s">
<input name="email" value="%s">
<input name="image_url" value="%s">
<input name="header_image_url" value="%s">
<textarea name="bio">%s</textarea>
<input name="location" value="%s">
<input name="password" type="password" placeholder="Enter your password to confirm">
<button type="submit">Edit this user!</button>
</form>`,
		html.EscapeString(user.Username),
		html.EscapeString(user.Email),
		html.EscapeString(user.ImageURL),
		html.EscapeString(user.HeaderImageURL),
		html.EscapeString(user.Bio),
		html.EscapeString(user.Location),
	)
	return s.renderPage(c, "Edit Profile", body)
}

// UpdateProfile handles POST /users/profile. The current password must be
// supplied; a wrong password is rejected the same way as an anonymous call.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}

	var req struct {
		Username       string `form:"username"`
		Email          string `form:"email"`
		ImageURL       string `form:"image_url"`
		HeaderImageURL string `form:"header_image_url"`
		Bio            string `form:"bio"`
		Location       string `form:"location"`
		Password       string `form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.unauthorized(c)
	}

	if !s.authService.VerifyPassword(user, req.Password) {
		return s.unauthorized(c)
	}

	updated, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:         user.ID,
		Username:       req.Username,
		Email:          req.Email,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
		Bio:            req.Bio,
		Location:       req.Location,
	})
	if err != nil {
		switch {
		case models.IsIntegrity(err):
			s.flash(c, "Username already taken")
			return c.Redirect("/users/profile", fiber.StatusFound)
		case models.IsValidation(err):
			s.flash(c, err.Error())
			return c.Redirect("/users/profile", fiber.StatusFound)
		}
		return err
	}

	return c.Redirect(fmt.Sprintf("/users/%d", updated.ID), fiber.StatusFound)
}

// DeleteUser handles POST /users/delete. It removes the logged-in user's
// account and everything attached to it.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}

	if err := s.signOut(c); err != nil {
		return err
	}
	if err := s.userService.DeleteAccount(c.UserContext(), user.ID); err != nil {
		return err
	}
	return c.Redirect("/signup", fiber.StatusFound)
}
