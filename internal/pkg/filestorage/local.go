package filestorage

import (
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/yigit/coachcenter/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath  string // The root directory where files will be stored
	urlPrefix string // Prefix of the returned public paths, e.g. "uploads"
	now       func() time.Time
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
// Returned paths take the form urlPrefix/<stored name>.
func NewLocalStorage(basePath, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	if urlPrefix == "" {
		urlPrefix = filepath.Base(basePath)
	}

	return &LocalStorage{
		basePath:  basePath,
		urlPrefix: strings.Trim(urlPrefix, "/"),
		now:       time.Now,
	}, nil
}

// StagingDirName is the directory under os.TempDir() used for short-lived copies.
const StagingDirName = "coachcenter-staging"

// NewStagingStorage returns storage for files that are only kept while a request
// forwards them elsewhere. It lives outside any served directory.
func NewStagingStorage() (*LocalStorage, error) {
	return NewLocalStorage(filepath.Join(os.TempDir(), StagingDirName), "staging")
}

// SaveFile writes the uploaded file as <prefix>-<unixms>-<rand>-<slug><ext>.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, prefix string) (*FileInfo, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	storedName := ls.generateName(fileHeader.Filename, prefix)
	dstPath := filepath.Join(ls.basePath, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	info := &FileInfo{
		Path:         path.Join(ls.urlPrefix, storedName),
		FullPath:     dstPath,
		Filename:     storedName,
		OriginalName: fileHeader.Filename,
		FileSize:     written,
		MimeType:     fileHeader.Header.Get("Content-Type"),
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", storedName).Int64("size", written).Msg("File saved successfully")
	return info, nil
}

func (ls *LocalStorage) generateName(original, prefix string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := slug.Make(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if base == "" {
		base = "file"
	}
	if prefix == "" {
		prefix = "file"
	}
	return fmt.Sprintf("%s-%d-%d-%s%s", prefix, ls.now().UnixMilli(), rand.IntN(1_000_000_000), base, ext)
}

// DeleteFile removes a stored file
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	fullPath := ls.GetFullPath(filePath)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		logger.Error().Err(err).Str("path", fullPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", fullPath).Msg("File deleted")
	return nil
}

// Exists reports whether the stored file is present
func (ls *LocalStorage) Exists(filePath string) bool {
	if filePath == "" {
		return false
	}
	_, err := os.Stat(ls.GetFullPath(filePath))
	return err == nil
}

// GetFullPath maps a stored path back into the storage directory.
// Only the base name is kept so a stored path can never leave the directory.
func (ls *LocalStorage) GetFullPath(filePath string) string {
	return filepath.Join(ls.basePath, filepath.Base(filepath.FromSlash(filePath)))
}
