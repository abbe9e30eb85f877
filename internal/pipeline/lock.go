package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// ErrLocked is returned when another run holds the project's lock
var ErrLocked = errors.New("another build is running for this project")

type runLock struct {
	fl *flock.Flock
}

// lockPath names the lock after the project's absolute path so runs on
// the same project contend and runs on different projects do not.
func lockPath(base string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(base)))
	return filepath.Join(os.TempDir(), "codepdf-"+id.String()+".lock")
}

func acquireLock(base string) (*runLock, error) {
	fl := flock.New(lockPath(base))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", base, ErrLocked)
	}
	return &runLock{fl: fl}, nil
}

func (l *runLock) path() string { return l.fl.Path() }

// release unlocks but leaves the file in place. Unlinking it would let a
// waiting run lock the old inode while a new run locks a fresh file.
func (l *runLock) release() error {
	return l.fl.Unlock()
}
