package engine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Walker enumerates regular files under a root, pruning any subtree whose
// path contains a skipped segment. A symbolic link to a regular file is
// yielded under its own path; links to directories are never descended, so
// link cycles cannot trap the walk.
type Walker struct {
	SkipDirs map[string]bool
	Logger   zerolog.Logger
}

// Walk invokes handle for each regular file in lexical order. It stops when
// handle returns an error or ctx is cancelled.
func (w Walker) Walk(ctx context.Context, root string, handle func(path string) error) error {
	base := root
	// WalkDir does not descend into a root that is itself a link.
	if li, err := os.Lstat(root); err == nil && li.Mode()&fs.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			base = resolved
		}
	}
	return filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			w.Logger.Warn().Err(err).Str("path", p).Msg("cannot read directory entry")
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, relErr := filepath.Rel(base, p)
		if relErr != nil {
			return nil
		}
		if rel == "." {
			return nil
		}
		if hasSkipSegment(rel, w.SkipDirs) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			// file links are scanned; directory links are never descended
			st, err := os.Stat(p)
			if err != nil || !st.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		return handle(filepath.Join(root, rel))
	})
}
