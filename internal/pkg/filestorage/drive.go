package filestorage

import (
	"context"
	"fmt"
	"os"

	"github.com/yigit/coachcenter/internal/pkg/logger"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DriveConfig holds service account credentials for Google Drive.
type DriveConfig struct {
	CredentialsFile string
	CredentialsJSON string
	FolderID        string
}

// DriveStorage uploads files to Google Drive.
type DriveStorage struct {
	service  *drive.Service
	folderID string
}

// NewDriveStorage builds a Drive client from service account credentials.
// Inline JSON credentials take precedence over a credentials file.
func NewDriveStorage(ctx context.Context, cfg DriveConfig) (*DriveStorage, error) {
	opts := []option.ClientOption{option.WithScopes(drive.DriveFileScope)}
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	default:
		return nil, fmt.Errorf("drive: no credentials configured")
	}

	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive: failed to create service: %w", err)
	}

	return NewDriveStorageWithService(service, cfg.FolderID), nil
}

// NewDriveStorageWithService wraps an existing Drive service.
func NewDriveStorageWithService(service *drive.Service, folderID string) *DriveStorage {
	return &DriveStorage{service: service, folderID: folderID}
}

// Upload sends the local file to Drive and makes it readable by anyone with the link.
func (d *DriveStorage) Upload(ctx context.Context, localPath, name, mimeType string) (*RemoteFile, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("drive: failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	meta := &drive.File{Name: name, MimeType: mimeType}
	if d.folderID != "" {
		meta.Parents = []string{d.folderID}
	}

	created, err := d.service.Files.Create(meta).
		Media(f, googleapi.ContentType(mimeType)).
		Fields("id", "name", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		logger.Error().Err(err).Str("name", name).Msg("Drive upload failed")
		return nil, fmt.Errorf("drive: upload failed: %w", err)
	}

	permission := &drive.Permission{Type: "anyone", Role: "reader"}
	if _, err := d.service.Permissions.Create(created.Id, permission).Context(ctx).Do(); err != nil {
		logger.Error().Err(err).Str("fileId", created.Id).Msg("Drive permission grant failed")
		return nil, fmt.Errorf("drive: failed to share file: %w", err)
	}

	logger.Info().Str("fileId", created.Id).Str("name", created.Name).Msg("File uploaded to Drive")
	return &RemoteFile{ID: created.Id, Name: created.Name, WebViewLink: created.WebViewLink}, nil
}
