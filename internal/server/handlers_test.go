package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"zogakzip/internal/config"
	"zogakzip/internal/models"
	"zogakzip/internal/repository"
	"zogakzip/internal/service"
	"zogakzip/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer builds a Server against an in-memory sqlite database
// and returns it with a Fiber app that has all routes registered.
// Prometheus middleware is deliberately left out so repeated test
// setups do not re-register collectors.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Group{},
		&models.Post{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	// A single connection keeps every query on the same in-memory DB
	// and serializes concurrent writers.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	uploads, err := storage.NewUploads(t.TempDir())
	require.NoError(t, err)

	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config:      &config.Config{Port: "0", UploadDir: uploads.Dir()},
		db:          db,
		uploads:     uploads,
		groupRepo:   groupRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
	s.groupService = service.NewGroupService(groupRepo, postRepo)
	s.postService = service.NewPostService(postRepo, groupRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		},
	})
	s.SetupRoutes(app)

	return s, app
}

func groupPath(id uint) string      { return fmt.Sprintf("/api/groups/%d", id) }
func groupPostsPath(id uint) string { return fmt.Sprintf("/api/groups/%d/posts", id) }
func postPath(id uint) string       { return fmt.Sprintf("/api/posts/%d", id) }
func commentPath(id uint) string    { return fmt.Sprintf("/api/comments/%d", id) }

// doJSON performs a JSON request against the app and decodes the
// response body into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

// doMultipart posts a multipart form with the given text fields and an
// optional file part under the "image" field.
func doMultipart(t *testing.T, app *fiber.App, path string, fields map[string]string, imageName string, imageContent []byte) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write(imageContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

// createTestGroup creates a group through the API and returns its ID.
func createTestGroup(t *testing.T, app *fiber.App, name, password string, isPublic bool) uint {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/groups", map[string]any{
		"name":         name,
		"password":     password,
		"isPublic":     isPublic,
		"introduction": "a place for " + name,
	})
	require.Equal(t, http.StatusCreated, status, "body: %v", body)

	group, ok := body["group"].(map[string]any)
	require.True(t, ok, "missing group in response: %v", body)
	return uint(group["id"].(float64))
}

// createTestPost publishes a post into the group and returns its ID.
func createTestPost(t *testing.T, app *fiber.App, groupID uint, groupPassword, title, postPassword string, isPublic bool) uint {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, groupPostsPath(groupID), map[string]any{
		"nickname":      "tester",
		"title":         title,
		"content":       "content of " + title,
		"groupPassword": groupPassword,
		"postPassword":  postPassword,
		"isPublic":      isPublic,
		"tags":          []string{"memory"},
	})
	require.Equal(t, http.StatusCreated, status, "body: %v", body)

	post, ok := body["post"].(map[string]any)
	require.True(t, ok, "missing post in response: %v", body)
	return uint(post["id"].(float64))
}
