// Package playlist assembles playlist bundles: the per-directory documents,
// the union of their media relocated into the bundle, the playlist
// descriptor, and optionally a single-file container.
//
// Media is relocated flat into Media/<basename> and every document's cue
// sources are rewritten to the bundle-relative path before serialization, so
// an unpacked bundle resolves on any machine. Base-name collisions keep the
// last file written and log a warning; documents that referenced the earlier
// file will show the later one.
package playlist

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"chorale/internal/identity"
	"chorale/internal/pro6"
	"chorale/internal/textutil"
)

// Error reports a bundle that could not be assembled or packaged. Packaging
// failures are fatal to the run, unlike per-document failures.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("playlist %s: %v", e.Path, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Stage classifies the error for engine reporting.
func (e *Error) Stage() string { return "packaging" }

// Options control bundle assembly.
type Options struct {
	// Name is the playlist display name and the bundle directory name.
	Name string
	// OutputDir receives the bundle directory and the container file.
	OutputDir string

	NewID  func() string
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = "Playlist"
	}
	if o.NewID == nil {
		o.NewID = identity.New
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Bundle is one assembled playlist directory. Close releases the staging
// lock; callers must call it once done, after Package if a container is
// wanted.
type Bundle struct {
	Name string
	Dir  string

	PlaylistPath  string
	DocumentPaths []string
	MediaPaths    []string

	lock *flock.Flock
}

// Close releases the staging lock.
func (b *Bundle) Close() error {
	if b.lock == nil {
		return nil
	}
	err := b.lock.Unlock()
	b.lock = nil
	return err
}

// Assemble stages a playlist bundle for the given documents, in order. Each
// document file name carries an auto-incrementing display label. The staging
// directory is locked until Close.
func Assemble(ctx context.Context, docs []*pro6.Document, opts Options) (*Bundle, error) {
	opts = opts.withDefaults()

	dir := filepath.Join(opts.OutputDir, opts.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &Error{Path: dir, Err: err}
	}

	lock := flock.New(filepath.Join(opts.OutputDir, "."+opts.Name+".lock"))
	locked, err := lock.TryLockContext(ctx, 250*time.Millisecond)
	if err != nil {
		return nil, &Error{Path: dir, Err: fmt.Errorf("lock staging directory: %w", err)}
	}
	if !locked {
		return nil, &Error{Path: dir, Err: fmt.Errorf("staging directory is locked by another run")}
	}

	bundle := &Bundle{Name: opts.Name, Dir: dir, lock: lock}
	if err := bundle.stage(docs, opts); err != nil {
		bundle.Close()
		return nil, err
	}
	return bundle, nil
}

func (b *Bundle) stage(docs []*pro6.Document, opts Options) error {
	if err := b.relocateMedia(docs, opts); err != nil {
		return err
	}

	entries := make([]documentEntry, 0, len(docs))
	for i, doc := range docs {
		label := fmt.Sprintf("%03d %s", i+1, doc.Title)
		fileName := textutil.SanitizeFileName(label) + ".pro6"
		path := filepath.Join(b.Dir, fileName)
		if err := pro6.WriteFile(doc, path); err != nil {
			return err
		}
		b.DocumentPaths = append(b.DocumentPaths, path)
		entries = append(entries, documentEntry{
			uuid:        opts.NewID(),
			displayName: label,
			fileName:    fileName,
		})
	}

	b.PlaylistPath = filepath.Join(b.Dir, "data.pro6pl")
	data, err := playlistXML(b.Name, entries, opts.NewID)
	if err != nil {
		return &Error{Path: b.PlaylistPath, Err: err}
	}
	if err := os.WriteFile(b.PlaylistPath, data, 0o644); err != nil {
		return &Error{Path: b.PlaylistPath, Err: err}
	}
	return nil
}

// relocateMedia copies every referenced media file into Media/ and rewrites
// the cue sources to the bundle-relative path.
func (b *Bundle) relocateMedia(docs []*pro6.Document, opts Options) error {
	mediaDir := filepath.Join(b.Dir, "Media")
	sources := map[string]string{} // base name -> first source path

	var relocateErr error
	for _, doc := range docs {
		doc.EachMediaCue(func(cue *pro6.MediaCue) {
			if relocateErr != nil {
				return
			}
			base := filepath.Base(cue.MediaPath)
			if prev, ok := sources[base]; ok {
				if prev != cue.MediaPath {
					opts.Logger.Warn("media base name collision, last file wins",
						slog.String("kept", cue.MediaPath),
						slog.String("replaced", prev))
					sources[base] = cue.MediaPath
					relocateErr = copyInto(cue.MediaPath, mediaDir, base, b)
				}
			} else {
				sources[base] = cue.MediaPath
				relocateErr = copyInto(cue.MediaPath, mediaDir, base, b)
			}
			cue.Source = pro6.RelativeURL("Media/" + base)
		})
	}
	return relocateErr
}

func copyInto(src, mediaDir, base string, b *Bundle) error {
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		return &Error{Path: mediaDir, Err: err}
	}
	dest := filepath.Join(mediaDir, base)

	in, err := os.Open(src)
	if err != nil {
		return &Error{Path: src, Err: err}
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return &Error{Path: dest, Err: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return &Error{Path: dest, Err: err}
	}
	if err := out.Close(); err != nil {
		return &Error{Path: dest, Err: err}
	}

	for _, existing := range b.MediaPaths {
		if existing == dest {
			return nil
		}
	}
	b.MediaPaths = append(b.MediaPaths, dest)
	return nil
}
