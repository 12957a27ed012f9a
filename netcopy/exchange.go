package netcopy

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
)

// Exchange maps the current user to a folder under the base directory and
// moves payloads in and out of the shared tree.
type Exchange struct {
	fs          afero.Fs
	baseDir     string
	payloadName string
	atomic      bool
	user        string
}

// NewExchange creates an exchange for user on afs. Pass afero.NewOsFs() for
// the real filesystem.
func NewExchange(afs afero.Fs, cfg *Config, user string) (*Exchange, error) {
	if cfg == nil || cfg.BaseDir == "" {
		return nil, fmt.Errorf("%w: base_dir", ErrConfigMissing)
	}
	if err := ValidateUser(user); err != nil {
		return nil, err
	}
	name := cfg.PayloadName
	if name == "" {
		name = DefaultPayloadName
	}
	return &Exchange{
		fs:          afs,
		baseDir:     cfg.BaseDir,
		payloadName: name,
		atomic:      cfg.AtomicWrite,
		user:        user,
	}, nil
}

// BaseDir returns the shared root.
func (e *Exchange) BaseDir() string {
	return e.baseDir
}

// PayloadPath returns the payload file path for user.
func (e *Exchange) PayloadPath(user string) string {
	return filepath.Join(e.baseDir, user, e.payloadName)
}

// EnsureUserFolder creates the current user's folder (and the base directory)
// if it does not exist yet. Calling it again is a no-op.
func (e *Exchange) EnsureUserFolder() error {
	l := sub("exchange")
	dir := filepath.Join(e.baseDir, e.user)

	info, err := e.fs.Stat(dir)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		l.Warn("user folder blocked", "path", dir)
		return fmt.Errorf("%w: %s", ErrFolderBlocked, dir)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		l.Warn("user folder stat failed", "path", dir, "err", err)
		return fmt.Errorf("%w: stat %s: %w", ErrFolderDenied, dir, err)
	}

	if err := e.fs.MkdirAll(dir, 0755); err != nil {
		// MkdirAll fails on a non-directory ancestor too; report that as blocked.
		if info, statErr := e.fs.Stat(e.baseDir); statErr == nil && !info.IsDir() {
			l.Warn("base dir blocked", "path", e.baseDir)
			return fmt.Errorf("%w: %s", ErrFolderBlocked, e.baseDir)
		}
		l.Warn("user folder create failed", "path", dir, "err", err)
		return fmt.Errorf("%w: mkdir %s: %w", ErrFolderDenied, dir, err)
	}
	l.Info("user folder created", "path", dir)
	return nil
}

// Export writes the output of src to the current user's payload file,
// replacing any previous export. It returns the payload path.
func (e *Exchange) Export(src PayloadSource) (string, error) {
	l := sub("exchange")
	dst := e.PayloadPath(e.user)

	data, err := renderPayload(src)
	if err != nil {
		l.Warn("export render failed", "user", e.user, "err", err)
		return "", err
	}

	if err := e.EnsureUserFolder(); err != nil {
		return "", err
	}

	if e.atomic {
		err = writeAtomic(e.fs, dst, data)
	} else {
		err = writeInPlace(e.fs, dst, data)
	}
	if err != nil {
		l.Error("export write failed", "path", dst, "err", err)
		return "", err
	}

	l.Info("exported", "user", e.user, "path", dst, "bytes", len(data), "atomic", e.atomic)
	return dst, nil
}

// ReadPayload returns the payload stored in user's folder. It returns
// ErrNotFound when the folder or the payload file is absent.
func (e *Exchange) ReadPayload(user string) ([]byte, error) {
	l := sub("exchange")
	if err := ValidateUser(user); err != nil {
		return nil, err
	}
	path := e.PayloadPath(user)

	// A stray file at the folder's place reads as ENOTDIR on a real disk.
	dir := filepath.Join(e.baseDir, user)
	if info, err := e.fs.Stat(dir); err != nil || !info.IsDir() {
		if err != nil && !isMissing(err) {
			l.Warn("user folder stat failed", "path", dir, "err", err)
			return nil, fmt.Errorf("%w: stat %s: %w", ErrReadIO, dir, err)
		}
		l.Debug("user folder not found", "path", dir)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	info, err := e.fs.Stat(path)
	if err != nil {
		if isMissing(err) {
			l.Debug("payload not found", "path", path)
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: stat %s: %w", ErrReadIO, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		l.Warn("payload read failed", "path", path, "err", err)
		return nil, fmt.Errorf("%w: read %s: %w", ErrReadIO, path, err)
	}
	l.Debug("payload read", "path", path, "bytes", len(data))
	return data, nil
}

// isMissing reports whether err means a path component is absent or is not a
// directory.
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
