package handlers_test

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/migrations"
	"yatube/internal/models"
	"yatube/internal/router"
	"yatube/internal/storage"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "war-and-peace"

type testApp struct {
	t        *testing.T
	db       *gorm.DB
	engine   *gin.Engine
	mediaDir string
}

func newTestApp(t *testing.T, opts ...func(*config.Config)) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.SQLiteFile = filepath.Join(t.TempDir(), "yatube.db")
	cfg.MediaDir = t.TempDir()
	cfg.Gzip = false
	for _, opt := range opts {
		opt(cfg)
	}

	conn, err := db.Open("sqlite", cfg.SQLiteFile, false)
	require.NoError(t, err)
	require.NoError(t, migrations.Migrate(conn))

	engine, err := router.New(cfg, conn, storage.NewDiskStorage(cfg.MediaDir, cfg.MediaURL))
	require.NoError(t, err)
	return &testApp{t: t, db: conn, engine: engine, mediaDir: cfg.MediaDir}
}

func (a *testApp) createUser(username, first, last string) *models.User {
	a.t.Helper()
	hash, err := utils.HashPassword(testPassword)
	require.NoError(a.t, err)
	user := &models.User{Username: username, FirstName: first, LastName: last, Password: hash}
	require.NoError(a.t, a.db.Create(user).Error)
	return user
}

func (a *testApp) createGroup(title, slug string) *models.Group {
	a.t.Helper()
	group := &models.Group{Title: title, Slug: slug, Description: "about " + title}
	require.NoError(a.t, a.db.Create(group).Error)
	return group
}

func (a *testApp) createPost(author *models.User, text string, group *models.Group) *models.Post {
	a.t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		post.GroupID = &group.ID
	}
	require.NoError(a.t, a.db.Create(post).Error)
	return post
}

func (a *testApp) createComment(post *models.Post, author *models.User, text string) *models.Comment {
	a.t.Helper()
	comment := &models.Comment{PostID: post.ID, AuthorID: author.ID, Text: text}
	require.NoError(a.t, a.db.Create(comment).Error)
	return comment
}

// login signs in through the login form and returns the session cookies.
func (a *testApp) login(username string) []*http.Cookie {
	a.t.Helper()
	w := a.post("/auth/login/", url.Values{"username": {username}, "password": {testPassword}}, nil)
	require.Equal(a.t, http.StatusFound, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	require.NotEmpty(a.t, cookies)
	return cookies
}

func (a *testApp) serve(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	return a.serve(httptest.NewRequest(http.MethodGet, path, nil), cookies)
}

func (a *testApp) post(path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.serve(req, cookies)
}

func (a *testApp) postMultipart(path string, fields map[string]string, fileField string, file []byte, cookies []*http.Cookie) *httptest.ResponseRecorder {
	a.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(a.t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, "upload.png")
		require.NoError(a.t, err)
		_, err = io.Copy(fw, bytes.NewReader(file))
		require.NoError(a.t, err)
	}
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.serve(req, cookies)
}

func (a *testApp) count(model interface{}, query string, args ...interface{}) int64 {
	a.t.Helper()
	var n int64
	require.NoError(a.t, a.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func postCards(body string) int {
	return strings.Count(body, `<article class="post">`)
}
