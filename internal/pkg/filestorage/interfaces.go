package filestorage

import (
	"context"
	"mime/multipart"
)

// FileInfo describes a file written to the upload directory.
type FileInfo struct {
	Path         string // Public path, e.g. uploads/pdf-1700000000000-42-notes.pdf
	FullPath     string // Location on disk
	Filename     string // Stored name
	OriginalName string // Name sent by the client
	FileSize     int64
	MimeType     string
}

// RemoteFile is a file hosted by a remote drive provider.
type RemoteFile struct {
	ID          string
	Name        string
	WebViewLink string
}

// FileStorage defines the local file storage operations
type FileStorage interface {
	// SaveFile writes the uploaded file under a generated name starting with prefix.
	SaveFile(fileHeader *multipart.FileHeader, prefix string) (*FileInfo, error)

	// DeleteFile removes a stored file. Missing files are not an error.
	DeleteFile(filePath string) error

	// Exists reports whether a stored file is present on disk.
	Exists(filePath string) bool

	// GetFullPath returns the filesystem path for a stored file path
	GetFullPath(filePath string) string
}

// RemoteStorage uploads local files to a third-party drive and shares them publicly.
type RemoteStorage interface {
	Upload(ctx context.Context, localPath, name, mimeType string) (*RemoteFile, error)
}
