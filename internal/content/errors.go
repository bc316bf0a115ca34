package content

import "go.llib.dev/frameless/pkg/errorkit"

const (
	ErrNotFound       errorkit.Error = "project not found"
	ErrNoFrontMatter  errorkit.Error = "missing front matter"
	ErrMalformed      errorkit.Error = "malformed front matter"
	ErrMissingField   errorkit.Error = "missing required field"
	ErrInvalidDate    errorkit.Error = "invalid date"
	ErrEmptySlug      errorkit.Error = "empty slug"
	ErrDuplicateSlug  errorkit.Error = "duplicate slug"
	ErrUnreadableFile errorkit.Error = "unreadable content file"
)
