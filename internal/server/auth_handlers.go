package server

import (
	"fmt"

	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

const signupForm = `<h2>Join Warbler today.</h2>
<form method="POST" action="/signup">
<input name="username" placeholder="Username">
<input name="email" placeholder="E-mail">
<input name="password" type="password" placeholder="Password">
<input name="image_url" placeholder="(Optional) Image URL">
<button type="submit">Sign me up!</button>
</form>`

const loginForm = `<h2>Welcome back.</h2>
<form method="POST" action="/login">
<input name="username" placeholder="Username">
<input name="password" type="password" placeholder="Password">
<button type="submit">Log in</button>
</form>`

// SignupPage handles GET /signup
func (s *Server) SignupPage(c *fiber.Ctx) error {
	return s.renderPage(c, "Sign up", signupForm)
}

// Signup handles POST /signup. On success the new user is logged in and
// redirected home. Validation problems re-render the form; a duplicate
// username or email is only detected when the insert commits.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `form:"username"`
		Email    string `form:"email"`
		Password string `form:"password"`
		ImageURL string `form:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		s.flash(c, "Invalid request.")
		return s.renderPage(c, "Sign up", signupForm)
	}

	user, err := s.authService.Signup(c.UserContext(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		switch {
		case models.IsIntegrity(err):
			s.flash(c, "Username already taken")
		case models.IsValidation(err):
			s.flash(c, err.Error())
		default:
			return err
		}
		return s.renderPage(c, "Sign up", signupForm)
	}

	if err := s.signIn(c, user.ID); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusFound)
}

// LoginPage handles GET /login
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return s.renderPage(c, "Log in", loginForm)
}

// Login handles POST /login. A failed match is a normal response, not an
// error: the form is re-rendered with a flash.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `form:"username"`
		Password string `form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		s.flash(c, "Invalid request.")
		return s.renderPage(c, "Log in", loginForm)
	}

	user, err := s.authService.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	if user == nil {
		s.flash(c, "Invalid credentials.")
		return s.renderPage(c, "Log in", loginForm)
	}

	if err := s.signIn(c, user.ID); err != nil {
		return err
	}
	s.flash(c, fmt.Sprintf("Hello, %s!", user.Username))
	return c.Redirect("/", fiber.StatusFound)
}

// Logout handles GET /logout
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.signOut(c); err != nil {
		return err
	}
	s.flash(c, "You have successfully logged out.")
	return c.Redirect("/login", fiber.StatusFound)
}
