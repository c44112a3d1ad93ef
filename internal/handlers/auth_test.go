package handlers_test

import (
	"net/http"
	"net/url"
	"testing"
	"yatube/internal/config"
	"yatube/internal/handlers"
	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	app := newTestApp(t)

	require.Equal(t, http.StatusOK, app.get("/auth/signup/", nil).Code)

	form := url.Values{
		"first_name": {"Leo"},
		"last_name":  {"Tolstoy"},
		"username":   {"leo"},
		"email":      {"leo@example.com"},
		"password1":  {testPassword},
		"password2":  {testPassword},
	}
	w := app.post("/auth/signup/", form, nil)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/", w.Header().Get("Location"))

	var user models.User
	require.NoError(t, app.db.Where("username = ?", "leo").First(&user).Error)
	assert.Equal(t, "Leo Tolstoy", user.FullName())
	assert.NotEqual(t, testPassword, user.Password)

	// the new account is logged in straight away
	assert.Equal(t, http.StatusOK, app.get("/create/", w.Result().Cookies()).Code)

	w = app.post("/auth/signup/", form, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "A user with that username already exists.")

	form.Set("username", "fyodor")
	form.Set("password2", "something-else")
	w = app.post("/auth/signup/", form, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The two password fields didn")
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	app.createUser("leo", "", "")

	w := app.get("/auth/login/?next=/follow/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="/follow/"`)

	w = app.post("/auth/login/", url.Values{"username": {"leo"}, "password": {"wrong"}}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a correct username and password.")

	w = app.post("/auth/login/", url.Values{"username": {"nobody"}, "password": {"wrong"}}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a correct username and password.")

	w = app.post("/auth/login/", url.Values{"username": {"leo"}, "password": {testPassword}, "next": {"/follow/"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/follow/", w.Header().Get("Location"))

	w = app.post("/auth/login/", url.Values{"username": {"leo"}, "password": {testPassword}, "next": {"//evil.example.com/"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)
	app.createUser("leo", "", "")
	cookies := app.login("leo")
	require.Equal(t, http.StatusOK, app.get("/follow/", cookies).Code)

	w := app.post("/auth/logout/", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You have logged out")

	w = app.get("/follow/", w.Result().Cookies())
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestSessionSaveFailure(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) { cfg.SessionStore = "db" })
	app.createUser("leo", "", "")

	login := url.Values{"username": {"leo"}, "password": {testPassword}}
	w := app.post("/auth/login/", login, nil)
	require.Equal(t, http.StatusFound, w.Code)

	require.NoError(t, app.db.Migrator().DropTable("sessions"))

	w = app.post("/auth/login/", login, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.Empty(t, w.Result().Cookies())

	w = app.post("/auth/signup/", url.Values{
		"username":  {"fyodor"},
		"password1": {testPassword},
		"password2": {testPassword},
	}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Location"))

	w = app.post("/auth/logout/", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "You have logged out")
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                    "/",
		"/follow/":            "/follow/",
		"/posts/1/?page=2":    "/posts/1/?page=2",
		"//evil.example.com":  "/",
		"/\\evil.example.com": "/",
		"https://evil.com/":   "/",
		"relative/path":       "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, handlers.SafeNext(in), in)
	}
}
