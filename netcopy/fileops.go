package netcopy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const tmpMarker = ".netcopy-tmp-"

// PayloadSource is the host routine that serializes the current selection.
// It returns ErrNoSelection (possibly wrapped) when nothing is selected.
type PayloadSource interface {
	WritePayload(w io.Writer) error
}

// PayloadFunc adapts a function to PayloadSource.
type PayloadFunc func(w io.Writer) error

// WritePayload calls f(w).
func (f PayloadFunc) WritePayload(w io.Writer) error {
	return f(w)
}

// BytesPayload is a PayloadSource that emits fixed content.
type BytesPayload []byte

// WritePayload writes the bytes to w.
func (b BytesPayload) WritePayload(w io.Writer) error {
	if len(b) == 0 {
		return ErrNoSelection
	}
	_, err := w.Write(b)
	return err
}

// renderPayload runs the host serializer into memory, so a failing host
// never truncates the previous export.
func renderPayload(src PayloadSource) ([]byte, error) {
	var buf bytes.Buffer
	if err := src.WritePayload(&buf); err != nil {
		if errors.Is(err, ErrNoSelection) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrExportHost, err)
	}
	if buf.Len() == 0 {
		return nil, ErrNoSelection
	}
	return buf.Bytes(), nil
}

// writeInPlace truncates dst and writes data into it.
func writeInPlace(afs afero.Fs, dst string, data []byte) error {
	f, err := afs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return classifyWriteErr("open payload", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return classifyWriteErr("write payload", err)
	}
	if err := f.Close(); err != nil {
		return classifyWriteErr("close payload", err)
	}
	return nil
}

// writeAtomic writes data to a uniquely named temp file beside dst and
// renames it over dst. Readers on other machines never see a partial file.
func writeAtomic(afs afero.Fs, dst string, data []byte) error {
	tmpPath := tmpPathFor(dst)

	f, err := afs.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return classifyWriteErr("create tmp", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		afs.Remove(tmpPath) //nolint:errcheck
		return classifyWriteErr("write tmp", err)
	}
	if err := f.Close(); err != nil {
		afs.Remove(tmpPath) //nolint:errcheck
		return classifyWriteErr("close tmp", err)
	}

	if err := afs.Rename(tmpPath, dst); err != nil {
		afs.Remove(tmpPath) //nolint:errcheck
		return classifyWriteErr("rename tmp to payload", err)
	}
	return nil
}

// tmpPathFor returns a temp name in dst's directory. The random suffix keeps
// two machines exporting for the same user from sharing a temp file.
func tmpPathFor(dst string) string {
	return filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+tmpMarker+uuid.NewString())
}

func classifyWriteErr(op string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s: %w", ErrExportDenied, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrExportIO, op, err)
}
