package server

import (
	"fmt"
	"net/url"
	"testing"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMessage(t *testing.T) {
	_, app, db := newTestServer(t)
	createUser(t, db, 666, "test1")

	cookies := login(t, app, "test1", "test")

	resp := doRequest(t, app, "POST", "/messages/new", url.Values{
		"text": {"test"},
	}, cookies)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users/666", resp.Header.Get("Location"))

	var messages []models.Message
	require.NoError(t, db.Find(&messages).Error)
	require.Len(t, messages, 1)
	assert.Equal(t, "test", messages[0].Text)
	assert.EqualValues(t, 666, messages[0].UserID)
}

func TestAddMessageRequiresAuth(t *testing.T) {
	_, app, db := newTestServer(t)
	createUser(t, db, 666, "test1")

	resp := doRequest(t, app, "POST", "/messages/new", url.Values{
		"text": {"test"},
	}, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	home := doRequest(t, app, "GET", "/", nil, resp.Cookies())
	assert.Contains(t, readBody(t, home), "Access unauthorized.")

	var count int64
	db.Model(&models.Message{}).Count(&count)
	assert.Zero(t, count)
}

func TestAddMessageStaleSession(t *testing.T) {
	_, app, db := newTestServer(t)
	user := createUser(t, db, 0, "ghost")

	cookies := login(t, app, "ghost", "test")

	// The account disappears while the session is still live.
	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	resp := doRequest(t, app, "POST", "/messages/new", url.Values{
		"text": {"from beyond"},
	}, cookies)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	home := doRequest(t, app, "GET", "/", nil, cookies)
	assert.Contains(t, readBody(t, home), "Access unauthorized.")

	var count int64
	db.Model(&models.Message{}).Count(&count)
	assert.Zero(t, count)
}

func TestAddMessageValidation(t *testing.T) {
	_, app, db := newTestServer(t)
	createUser(t, db, 0, "test1")

	cookies := login(t, app, "test1", "test")

	resp := doRequest(t, app, "POST", "/messages/new", url.Values{
		"text": {"   "},
	}, cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "warble text is required")

	var count int64
	db.Model(&models.Message{}).Count(&count)
	assert.Zero(t, count)
}

func TestNewMessagePageRequiresAuth(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := doRequest(t, app, "GET", "/messages/new", nil, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestShowMessage(t *testing.T) {
	_, app, db := newTestServer(t)
	user := createUser(t, db, 0, "test1")
	msg := createMessage(t, db, user.ID, "a public warble")

	resp := doRequest(t, app, "GET", fmt.Sprintf("/messages/%d", msg.ID), nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "a public warble")
	assert.Contains(t, body, "@test1")
}

func TestDeleteMessageOwner(t *testing.T) {
	_, app, db := newTestServer(t)
	user := createUser(t, db, 0, "owner")
	msg := createMessage(t, db, user.ID, "short-lived")

	cookies := login(t, app, "owner", "test")

	resp := doRequest(t, app, "POST", fmt.Sprintf("/messages/%d/delete", msg.ID), nil, cookies)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/users/%d", user.ID), resp.Header.Get("Location"))

	profile := doRequest(t, app, "GET", resp.Header.Get("Location"), nil, cookies)
	assert.Contains(t, readBody(t, profile), "Successfully deleted your warble.")

	var count int64
	db.Model(&models.Message{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteMessageNonOwner(t *testing.T) {
	_, app, db := newTestServer(t)
	owner := createUser(t, db, 0, "owner")
	createUser(t, db, 0, "intruder")
	msg := createMessage(t, db, owner.ID, "not yours")

	cookies := login(t, app, "intruder", "test")

	resp := doRequest(t, app, "POST", fmt.Sprintf("/messages/%d/delete", msg.ID), nil, cookies)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	home := doRequest(t, app, "GET", "/", nil, cookies)
	assert.Contains(t, readBody(t, home), "Access unauthorized.")

	var count int64
	db.Model(&models.Message{}).Count(&count)
	assert.EqualValues(t, 1, count, "the warble must survive")
}

func TestDeleteMessageRequiresAuth(t *testing.T) {
	_, app, db := newTestServer(t)
	owner := createUser(t, db, 0, "owner")
	msg := createMessage(t, db, owner.ID, "not yours")

	resp := doRequest(t, app, "POST", fmt.Sprintf("/messages/%d/delete", msg.ID), nil, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var count int64
	db.Model(&models.Message{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
