package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const maxPhotoBytes = 20 << 20

// allowedPhotoTypes is the closed set of content types accepted for obstacle
// photos. The type is sniffed from the file bytes, not taken from the client.
var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadDir is the local photo directory, UPLOAD_DIR or ./uploads.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// sniffPhotoType reads the first bytes of the upload, rewinds, and returns the
// detected content type. Anything outside the photo allow-list is an error.
func sniffPhotoType(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	ct := http.DetectContentType(buf[:n])
	if !allowedPhotoTypes[ct] {
		return "", fmt.Errorf("unsupported photo type %s", ct)
	}
	return ct, nil
}

// photoFilename builds a timestamped name from the client filename, stripped
// of any path components.
func photoFilename(original string) string {
	return fmt.Sprintf("%s-%s", time.Now().Format("20060102-150405"), filepath.Base(original))
}

// UploadPhotoLocal stores an obstacle photo on the local filesystem and
// returns its serving URL. Development counterpart of UploadPhotoGCS.
func UploadPhotoLocal(w http.ResponseWriter, r *http.Request) {
	dir := UploadDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		http.Error(w, "failed to create upload directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	if _, err := sniffPhotoType(file); err != nil {
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}

	filename := photoFilename(header.Filename)
	path := filepath.Join(dir, filename)

	dst, err := os.Create(path)
	if err != nil {
		http.Error(w, "failed to create file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		http.Error(w, "failed to save file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"url":      "/uploads/" + filename,
		"filename": filename,
	})
}
