package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadImage(t *testing.T) {
	s, app := setupTestServer(t)

	t.Run("stores the file and returns its public URL", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake png bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/image", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var body ImageUploadResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.True(t, strings.HasPrefix(body.ImageURL, "/uploads/"))
		assert.True(t, strings.HasSuffix(body.ImageURL, ".png"))

		// file landed on disk under the random name
		name := strings.TrimPrefix(body.ImageURL, "/uploads/")
		content, err := os.ReadFile(filepath.Join(s.uploads.Dir(), name))
		require.NoError(t, err)
		assert.Equal(t, "fake png bytes", string(content))
	})

	t.Run("rejects a request without a file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/image", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
