package git

import "errors"

// Revision lookup errors
var (
	ErrNotRepository   = errors.New("path is not inside a git repository")
	ErrFileNotInCommit = errors.New("file does not exist at the requested revision")
	ErrBinaryFile      = errors.New("file at the requested revision is binary")
)
