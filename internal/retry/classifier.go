package retry

import (
	"errors"
	"io/fs"
	"syscall"
)

// transientErrnos are errors a file operation can hit while another process
// briefly holds the file, such as a renderer still writing a frame or a
// network share stalling.
var transientErrnos = []syscall.Errno{
	syscall.EAGAIN,
	syscall.EBUSY,
	syscall.EINTR,
	syscall.ETXTBSY,
}

// FileOpClassifier classifies errors from copying, renaming and removing
// files. Missing files, permission problems and full disks are fatal.
type FileOpClassifier struct{}

// NewFileOpClassifier creates a new file operation error classifier.
func NewFileOpClassifier() *FileOpClassifier {
	return &FileOpClassifier{}
}

// IsTransient reports whether err is worth retrying.
func (c *FileOpClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrExist) {
		return false
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		for _, t := range transientErrnos {
			if errno == t {
				return true
			}
		}
		return false
	}

	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return true
	}
	return false
}

var _ Classifier = (*FileOpClassifier)(nil)
