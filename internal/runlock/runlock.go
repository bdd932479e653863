// Package runlock keeps two generation runs from sharing a data directory.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/logger"
)

var ErrRunInProgress = errors.New("another almanac run is in progress")

var findProcessFunc = ps.FindProcess

// Lock is a held lockfile. The file content is "pid|executable|started_at".
type Lock struct {
	path string
	pid  int
}

// Holder describes the process named in an existing lockfile.
type Holder struct {
	PID        int
	Executable string
	StartedAt  time.Time
}

// Acquire creates the lockfile in dir. A lockfile left by a process that is no
// longer running is replaced.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.LockfileName)

	for range 2 {
		err := create(path)
		if err == nil {
			return &Lock{path: path, pid: os.Getpid()}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		holder, err := read(path)
		if err == nil && alive(holder) {
			return nil, fmt.Errorf("%w (pid %d since %s)", ErrRunInProgress,
				holder.PID, holder.StartedAt.Format(time.RFC3339))
		}
		logger.Warn("Removing stale lockfile", "path", path)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, ErrRunInProgress
}

func create(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	exe := filepath.Base(os.Args[0])
	_, werr := fmt.Fprintf(f, "%d|%s|%s", os.Getpid(), exe, time.Now().UTC().Format(time.RFC3339))
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = os.Remove(path)
	}
	return werr
}

func read(path string) (Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, err
	}
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return Holder{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Holder{}, errors.New("invalid process ID in lockfile")
	}
	started, _ := time.Parse(time.RFC3339, parts[2])
	return Holder{PID: pid, Executable: parts[1], StartedAt: started}, nil
}

// alive reports whether the holder PID is running the same executable. The
// process table truncates names, so either one may be a prefix of the other.
func alive(h Holder) bool {
	p, err := findProcessFunc(h.PID)
	if err != nil || p == nil {
		return false
	}
	name := p.Executable()
	if h.Executable == "" || name == "" {
		return true
	}
	return strings.HasPrefix(h.Executable, name) || strings.HasPrefix(name, h.Executable)
}

// Release removes the lockfile if this process still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := read(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if holder.PID != l.pid {
		return fmt.Errorf("lockfile is held by pid %d", holder.PID)
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

func (l *Lock) Path() string { return l.path }
