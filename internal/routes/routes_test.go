package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgvault/internal/app"
	"imgvault/internal/db"
	"imgvault/internal/model"
	"imgvault/internal/repository"
	"imgvault/internal/service"
	"imgvault/internal/uploader"
)

var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 64)...)

// stubUploader stands in for the media provider and returns a canonical URL
// in the provider's shape.
type stubUploader struct {
	lastParams uploader.Params
}

func (u *stubUploader) Upload(_ context.Context, _ io.Reader, p uploader.Params) (string, error) {
	u.lastParams = p
	return "http://host/upload/" + p.PublicID, nil
}

type testEnv struct {
	handler  http.Handler
	users    *service.UserService
	links    repository.LinkRepository
	uploader *stubUploader
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))

	userRepo := repository.NewUserRepository(conn)
	tierRepo := repository.NewTierRepository(conn)
	imageRepo := repository.NewImageRepository(conn)
	linkRepo := repository.NewLinkRepository(conn)

	emailService := service.NewEmailService("", "noreply@example.com", "imgvault", true)
	authService := service.NewAuthService(userRepo, tierRepo, emailService, "test-secret", false, time.Hour)
	userService := service.NewUserService(userRepo, tierRepo)
	up := &stubUploader{}
	imageService := service.NewImageService(imageRepo, linkRepo, up, "http://host")
	linkService := service.NewLinkService(linkRepo, time.UTC)

	a := &app.App{
		DB:           conn,
		AuthService:  authService,
		UserService:  userService,
		ImageService: imageService,
		LinkService:  linkService,
		EmailService: emailService,
	}

	return &testEnv{
		handler:  SetupRoutes(a),
		users:    userService,
		links:    linkRepo,
		uploader: up,
	}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	req.RemoteAddr = "192.0.2.1:40000"
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin creates an account and returns its user id and JWT.
func (e *testEnv) registerAndLogin(t *testing.T, email string) (string, string) {
	t.Helper()

	creds := fmt.Sprintf(`{"email":%q,"password":"tr0ub4dor-staple-horse"}`, email)

	rec := e.do(t, httptest.NewRequest("POST", "/auth/register", strings.NewReader(creds)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	rec = e.do(t, httptest.NewRequest("POST", "/auth/login", strings.NewReader(creds)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var logged struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logged))
	require.NotEmpty(t, logged.Token)

	return registered.ID, logged.Token
}

func uploadRequest(t *testing.T, token, name, ttl string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", name))
	if ttl != "" {
		require.NoError(t, w.WriteField("link_expiry_time", ttl))
	}
	fw, err := w.CreateFormFile("image", name+".png")
	require.NoError(t, err)
	_, err = fw.Write(pngBytes)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/image/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestImageEndpointsRequireCredentials(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{"/image/", "/image/some-id/"} {
		rec := env.do(t, httptest.NewRequest("GET", target, nil))
		assert.Equal(t, http.StatusForbidden, rec.Code, target)
		assert.Equal(t, `{"detail":"Authentication credentials were not provided."}`, rec.Body.String(), target)
	}

	// Garbage tokens are treated the same as no token
	req := httptest.NewRequest("GET", "/image/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := env.do(t, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUploadAndRepresentationPerTier(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.registerAndLogin(t, "alice@example.com")

	// Entry tier: scaled upload, thumbnail hidden from the representation
	rec := env.do(t, uploadRequest(t, token, "first", ""))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "c_scale,w_200,h_200", env.uploader.lastParams.Transformation)
	assert.JSONEq(t, `{"name":"first","url":"http://host/upload/first"}`, rec.Body.String())

	// Premium: original plus both thumbnails
	require.NoError(t, env.users.AssignTierByName(userID, model.TierPremium))

	rec = env.do(t, uploadRequest(t, token, "second", ""))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Empty(t, env.uploader.lastParams.Transformation)
	assert.JSONEq(t, `{
		"name": "second",
		"url": "http://host/upload/second",
		"Thumbnail 200px": "http://host/upload/w_200,h_200/second",
		"Thumbnail 400px": "http://host/upload/w_400,h_400/second"
	}`, rec.Body.String())

	// Listing returns the caller's images with the same shape
	req := httptest.NewRequest("GET", "/image/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = env.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestUploadValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t, "alice@example.com")

	rec := env.do(t, uploadRequest(t, token, "foo", ""))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Global name collision
	rec = env.do(t, uploadRequest(t, token, "foo", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"name":["image with this name already exists"]}`, rec.Body.String())

	// Out-of-range TTL is rejected before anything is uploaded
	rec = env.do(t, uploadRequest(t, token, "bar", "30001"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errs map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errs))
	assert.Contains(t, errs, "link_expiry_time")
}

func TestExpiringLinkLifecycle(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.registerAndLogin(t, "alice@example.com")
	require.NoError(t, env.users.AssignTierByName(userID, model.TierEnterprise))

	rec := env.do(t, uploadRequest(t, token, "foo", "300"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var rep map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	linkURL, ok := rep["Expiring link"]
	require.True(t, ok, "link-issuing tiers get the link in the representation")
	require.True(t, strings.HasPrefix(linkURL, "http://host/expiringlink/"))

	// The link resolves publicly, no credentials needed
	path := strings.TrimPrefix(linkURL, "http://host")
	rec = env.do(t, httptest.NewRequest("GET", path, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"http://host/upload/foo"}`, rec.Body.String())

	rec = env.do(t, httptest.NewRequest("GET", "/expiringlink/unknown/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not found."}`, rec.Body.String())
}

func TestExpiredLinkKeepsSuccessStatus(t *testing.T) {
	env := newTestEnv(t)

	link := &model.ExpiringLink{
		ImageID:   "img-1",
		URL:       "http://host/upload/foo",
		ExpiresIn: 300,
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, env.links.Create(link))

	rec := env.do(t, httptest.NewRequest("GET", "/expiringlink/"+link.ID+"/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"This link has expired!"}`, rec.Body.String())
}

func TestOwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.registerAndLogin(t, "alice@example.com")
	_, bobToken := env.registerAndLogin(t, "bob@example.com")

	rec := env.do(t, uploadRequest(t, aliceToken, "foo", ""))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Alice's image never shows up for bob
	req := httptest.NewRequest("GET", "/image/", nil)
	req.Header.Set("Authorization", "Bearer "+bobToken)
	rec = env.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCheckoutUnavailableWithoutProvider(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t, "alice@example.com")

	req := httptest.NewRequest("POST", "/billing/checkout", strings.NewReader(`{"plan":"premium"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := env.do(t, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
