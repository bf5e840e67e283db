package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal PNG signature, enough for content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func (e *testEnv) doMultipart(t *testing.T, path, token, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func setupUploadEnv(t *testing.T) (*testEnv, string) {
	t.Helper()
	env := setupEnv(t)
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)
	// Force the local backend regardless of ambient cloud configuration.
	t.Setenv("USE_GCS", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("K_SERVICE", "")
	return env, dir
}

func TestUploadPhoto(t *testing.T) {
	env, dir := setupUploadEnv(t)

	w := env.doMultipart(t, "/api/v1/upload", env.pilotToken, "crane.png", pngBytes)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Filename, "crane.png")
	assert.Equal(t, "/uploads/"+resp.Filename, resp.URL)

	_, err := os.Stat(filepath.Join(dir, resp.Filename))
	assert.NoError(t, err, "uploaded photo should exist on disk")
}

func TestUploadPhotoRejectsNonImage(t *testing.T) {
	env, dir := setupUploadEnv(t)

	w := env.doMultipart(t, "/api/v1/upload", env.pilotToken, "notes.txt", []byte("definitely not an image"))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected upload must not leave a file behind")
}

func TestUploadPhotoStripsPathComponents(t *testing.T) {
	env, dir := setupUploadEnv(t)

	w := env.doMultipart(t, "/api/v1/upload", env.pilotToken, "../../escape.png", pngBytes)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Filename string `json:"filename"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotContains(t, resp.Filename, "/")
	assert.Contains(t, resp.Filename, "escape.png")

	_, err := os.Stat(filepath.Join(dir, resp.Filename))
	assert.NoError(t, err, "photo should land inside the upload directory")
}
