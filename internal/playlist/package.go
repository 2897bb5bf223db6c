package playlist

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mholt/archives"
)

// Package zips the staged bundle into a single <Name>.pro6plx next to the
// bundle directory. The archive is built in a temp file and renamed into
// place only on success, so a failed run never leaves a partial container.
func (b *Bundle) Package(ctx context.Context) (string, error) {
	target := filepath.Join(filepath.Dir(b.Dir), b.Name+".pro6plx")

	files, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		b.Dir: b.Name,
	})
	if err != nil {
		return "", &Error{Path: target, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.Dir), ".pro6plx-*")
	if err != nil {
		return "", &Error{Path: target, Err: err}
	}
	tmpName := tmp.Name()

	if err := (archives.Zip{}).Archive(ctx, tmp, files); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", &Error{Path: target, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", &Error{Path: target, Err: err}
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", &Error{Path: target, Err: err}
	}
	return target, nil
}
