package netcopy

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// ListEntries reports every immediate subdirectory of the base directory
// together with the modification time of its payload. Entries come back in
// directory enumeration order; sorting is left to the presentation layer.
//
// The current user's folder is created first if missing, so the artist always
// sees their own row. A failure there is logged and does not abort the listing.
func (e *Exchange) ListEntries() ([]Entry, error) {
	l := sub("scanner")
	l.Debug("scan start", "root", e.baseDir)

	info, err := e.fs.Stat(e.baseDir)
	if err != nil || !info.IsDir() {
		l.Warn("base dir unusable", "path", e.baseDir, "err", err)
		return nil, fmt.Errorf("%w: %s", ErrBaseDirMissing, e.baseDir)
	}

	if err := e.EnsureUserFolder(); err != nil {
		l.Warn("ensure user folder failed", "user", e.user, "err", err)
	}

	dir, err := e.fs.Open(e.baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrReadIO, e.baseDir, err)
	}
	defer dir.Close()

	infos, err := dir.Readdir(-1)
	if err != nil {
		return nil, fmt.Errorf("%w: readdir %s: %w", ErrReadIO, e.baseDir, err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, fi := range infos {
		if fi.Mode()&fs.ModeSymlink != 0 {
			// follow links so a linked user folder still lists
			if target, err := e.fs.Stat(filepath.Join(e.baseDir, fi.Name())); err == nil {
				fi = target
			}
		}
		if !fi.IsDir() {
			continue
		}
		entry := Entry{User: fi.Name()}

		payloadPath := filepath.Join(e.baseDir, fi.Name(), e.payloadName)
		pi, err := e.fs.Stat(payloadPath)
		switch {
		case err == nil && !pi.IsDir():
			entry.ModTime = pi.ModTime()
			entry.HasPayload = true
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			l.Warn("payload stat failed", "path", payloadPath, "err", err)
		}

		entries = append(entries, entry)
	}

	l.Debug("scan complete", "root", e.baseDir, "entries", len(entries))
	return entries, nil
}
