package models

import "time"

// File describes server-side metadata for an uploaded file. The bytes
// themselves live in object storage; URL is the storage reference the
// service hands out after an authorization check.
type File struct {
	ID        string
	Name      string
	URL       string
	OwnerID   string
	CreatedAt time.Time
}

// FileUploadTask instructs the client to upload a file using a presigned URL.
type FileUploadTask struct {
	FileID string
	// URL is a temporary presigned HTTP URL for the client to PUT the contents.
	URL string
}

// SharedFile is a file visible to a grantee, annotated with the owner's name.
type SharedFile struct {
	FileID   string
	FileName string
	Owner    string
}
