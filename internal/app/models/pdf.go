package models

import "time"

// StorageKind tells where the bytes of a Pdf live.
type StorageKind string

const (
	StorageLocal StorageKind = "local"
	StorageDrive StorageKind = "drive"
)

// Pdf is an uploaded study material.
type Pdf struct {
	ID          string      `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	FilePath    string      `json:"filePath" db:"file_path"`
	FileName    string      `json:"fileName" db:"file_name"`
	Storage     StorageKind `json:"storage" db:"storage"`
	RemoteID    *string     `json:"remoteId,omitempty" db:"remote_id"`
	FileSize    int64       `json:"fileSize" db:"file_size"`
	PageCount   int         `json:"pageCount" db:"page_count"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
}
