package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"wavscribe/internal/services"
)

// LockPath returns the lock file guarding outputDir. Lock files live in
// lockDir so the output directory only ever holds run outputs.
func LockPath(lockDir, outputDir string) (string, error) {
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs)).String()
	return filepath.Join(lockDir, fmt.Sprintf("wavscribe-%s.lock", name)), nil
}

func acquireOutputLock(lockDir, outputDir string) (*flock.Flock, error) {
	path, err := LockPath(lockDir, outputDir)
	if err != nil {
		return nil, services.Wrap(services.ErrWrite, "persist", "lock", outputDir, err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrWrite, "persist", "lock", path, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrWrite, "persist", "lock", fmt.Sprintf("output directory %s is in use by another run", outputDir), nil)
	}
	return lock, nil
}

// releaseOutputLock removes the lock file and then unlocks it. Runs only
// ever TryLock, so nobody blocks on the removed inode.
func releaseOutputLock(lock *flock.Flock) error {
	removeErr := os.Remove(lock.Path())
	if errors.Is(removeErr, fs.ErrNotExist) {
		removeErr = nil
	}
	return errors.Join(removeErr, lock.Unlock())
}
