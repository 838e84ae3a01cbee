package domain

import (
	"io"
	"path/filepath"
	"strings"
)

// FileStatus is the lifecycle status of an UploadedFile.
type FileStatus string

// File lifecycle states.
const (
	// FileUploading is the initial state while the submit call is outstanding.
	FileUploading FileStatus = "uploading"

	// FileCompleted means the service answered with a 2xx status.
	FileCompleted FileStatus = "completed"

	// FileError means the service answered with a failure status, an unreadable
	// body, or could not be reached at all.
	FileError FileStatus = "error"
)

// IsTerminal reports whether the status can only be left by replacing the file.
func (s FileStatus) IsTerminal() bool {
	return s == FileCompleted || s == FileError
}

// String returns the string representation.
func (s FileStatus) String() string {
	return string(s)
}

// Progress checkpoints reported while a file is submitted.
const (
	ProgressSelected   = 0
	ProgressSending    = 10
	ProgressResponding = 50
	ProgressDone       = 100
)

// SupportedExtensions lists the document types the Analysis Service accepts.
var SupportedExtensions = []string{".pdf", ".docx", ".txt"}

// IsSupportedFile reports whether name has one of the SupportedExtensions.
// The comparison ignores case.
func IsSupportedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// Payload gives access to the raw bytes of a selected file.
// Open may be called more than once; each call returns a fresh reader.
type Payload interface {
	Open() (io.ReadCloser, error)
}

// PayloadFunc adapts a function to the Payload interface.
type PayloadFunc func() (io.ReadCloser, error)

// Open calls f.
func (f PayloadFunc) Open() (io.ReadCloser, error) {
	return f()
}

// CandidateFile is a file offered for selection by a front end
// (drop folder, file picker, command line).
type CandidateFile struct {
	// Name is the display name, usually the base name of Path.
	Name string

	// Path is where the file was found. Informational only.
	Path string

	// Size is the byte size.
	Size int64

	// MediaType is the detected MIME type.
	MediaType string

	// Payload opens the raw content.
	Payload Payload
}

// UploadedFile is the one file currently selected for analysis.
type UploadedFile struct {
	// ID is unique per selection, so re-selecting the same path yields a new ID.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Size is the byte size.
	Size int64 `json:"size"`

	// MediaType is the MIME type.
	MediaType string `json:"type"`

	// Status is the lifecycle status.
	Status FileStatus `json:"status"`

	// Progress is a percentage between 0 and 100.
	Progress int `json:"progress"`

	// Payload references the raw content. Nil when the file was restored
	// without its bytes.
	Payload Payload `json:"-"`
}

// HasPayload reports whether the file can be (re)submitted.
func (f *UploadedFile) HasPayload() bool {
	return f != nil && f.Payload != nil
}
