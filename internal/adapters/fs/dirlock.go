package fs

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"go.mup.dev/mup/internal/core/domain"
	"go.trai.ch/zerr"
)

// lockFilename is the advisory lock guarding a server directory. One mup
// invocation owns the directory at a time; concurrent invocations against the
// same directory must be serialized externally.
const lockFilename = ".mup.pid"

// DirLock is a held advisory lock on a server directory.
type DirLock struct {
	path string
}

// AcquireDirLock takes the advisory lock for dir. It fails with
// domain.ErrDirectoryLocked, carrying the holder pid, when another invocation
// holds it. A lock whose holder pid no longer exists is considered stale and
// is replaced.
func AcquireDirLock(dir string) (*DirLock, error) {
	path := filepath.Join(dir, lockFilename)

	for {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FilePerm) //nolint:gosec // Path is inside the managed directory
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
			cerr := f.Close()
			if werr == nil {
				werr = cerr
			}
			if werr != nil {
				_ = os.Remove(path)
				return nil, zerr.Wrap(werr, "failed to write lock file")
			}
			return &DirLock{path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, zerr.With(zerr.Wrap(err, "failed to create lock file"), "path", path)
		}

		pid, readErr := readLockPid(path)
		if readErr == nil && pid > 0 && processAlive(pid) {
			lockedErr := zerr.With(domain.ErrDirectoryLocked, "path", path)
			return nil, zerr.With(lockedErr, "holder_pid", pid)
		}

		// Holder is gone; clear the stale lock and retry once more.
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			return nil, zerr.With(zerr.Wrap(rmErr, "failed to clear stale lock"), "path", path)
		}
	}
}

// Release drops the lock. Safe to call once per acquisition.
func (l *DirLock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return zerr.With(zerr.Wrap(err, "failed to release lock"), "path", l.path)
	}
	return nil
}

func readLockPid(path string) (int, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is inside the managed directory
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// processAlive reports whether a process with the given pid exists. Signal 0
// probes for existence without delivering anything.
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
