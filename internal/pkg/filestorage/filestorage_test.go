package filestorage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coachcenter/internal/pkg/apperrors"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

var minimalPDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// fileHeader builds a multipart.FileHeader the way net/http parses it from a request.
func fileHeader(t *testing.T, field, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	require.Len(t, form.File[field], 1)
	return form.File[field][0]
}

func TestLocalStorageSaveFileNamesAndWrites(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "uploads")
	require.NoError(t, err)
	ls.now = func() time.Time { return time.UnixMilli(1700000000000) }

	info, err := ls.SaveFile(fileHeader(t, "pdf", "Week 1 Notes.PDF", PDFMimeType, minimalPDF), "pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(info.Filename, "pdf-1700000000000-"))
	assert.True(t, strings.HasSuffix(info.Filename, "-week-1-notes.pdf"))
	assert.Equal(t, "uploads/"+info.Filename, info.Path)
	assert.Equal(t, "Week 1 Notes.PDF", info.OriginalName)
	assert.Equal(t, int64(len(minimalPDF)), info.FileSize)

	written, err := os.ReadFile(filepath.Join(dir, info.Filename))
	require.NoError(t, err)
	assert.Equal(t, minimalPDF, written)
	assert.True(t, ls.Exists(info.Path))
}

func TestLocalStorageDeleteFile(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "uploads")
	require.NoError(t, err)

	info, err := ls.SaveFile(fileHeader(t, "pdf", "a.pdf", PDFMimeType, minimalPDF), "pdf")
	require.NoError(t, err)

	require.NoError(t, ls.DeleteFile(info.Path))
	assert.False(t, ls.Exists(info.Path))

	// Deleting twice is fine.
	assert.NoError(t, ls.DeleteFile(info.Path))
}

func TestLocalStorageGetFullPathStaysInsideBase(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "uploads")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "passwd"), ls.GetFullPath("../../etc/passwd"))
}

func TestStagingStorageLivesUnderTempDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	ls, err := NewStagingStorage()
	require.NoError(t, err)

	info, err := ls.SaveFile(fileHeader(t, "file", "a.pdf", PDFMimeType, minimalPDF), "drive")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, StagingDirName), filepath.Dir(info.FullPath))

	require.NoError(t, ls.DeleteFile(info.Path))
	assert.NoFileExists(t, info.FullPath)
}

func TestCheckPDF(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		content     []byte
		wantErr     bool
	}{
		{name: "pdf", contentType: PDFMimeType, content: minimalPDF},
		{name: "declared pdf with params", contentType: "application/pdf; charset=binary", content: minimalPDF},
		{name: "text declared as text", contentType: "text/plain", content: []byte("hello"), wantErr: true},
		{name: "text declared as pdf", contentType: PDFMimeType, content: []byte("hello there"), wantErr: true},
		{name: "pdf declared as octet stream", contentType: "application/octet-stream", content: minimalPDF, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPDF(fileHeader(t, "pdf", "x.pdf", tt.contentType, tt.content))
			if tt.wantErr {
				assert.True(t, errors.Is(err, apperrors.ErrUnsupportedFileType))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPageCountOfUnreadableFileIsZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 truncated"), 0o600))

	assert.Equal(t, 0, PageCount(path))
	assert.Equal(t, 0, PageCount(filepath.Join(t.TempDir(), "missing.pdf")))
}

func TestDriveStorageUploadSharesFile(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/permissions") {
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "perm-1", "type": "anyone", "role": "reader"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":          "drive-file-1",
			"name":        "notes.pdf",
			"webViewLink": "https://drive.google.com/file/d/drive-file-1/view",
		})
	}))
	defer srv.Close()

	ctx := context.Background()
	service, err := drive.NewService(ctx, option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication(), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	local := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(local, minimalPDF, 0o600))

	remote, err := NewDriveStorageWithService(service, "folder-1").Upload(ctx, local, "notes.pdf", PDFMimeType)
	require.NoError(t, err)

	assert.Equal(t, "drive-file-1", remote.ID)
	assert.Equal(t, "notes.pdf", remote.Name)
	assert.Equal(t, "https://drive.google.com/file/d/drive-file-1/view", remote.WebViewLink)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 2)
	assert.True(t, strings.HasSuffix(calls[1], "/files/drive-file-1/permissions"))
}

func TestNewDriveStorageRequiresCredentials(t *testing.T) {
	_, err := NewDriveStorage(context.Background(), DriveConfig{})
	assert.Error(t, err)
}
