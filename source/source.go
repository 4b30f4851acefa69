// Package source packages compute function code for upload.
package source

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Archive compresses the contents of dir into a zip archive written to w and
// returns the hex encoded sha256 digest of the archive.
//
// Files are added in sorted path order with fixed metadata, so archiving an
// unchanged directory produces an unchanged digest. File paths in the archive
// are relative to dir.
func Archive(w io.Writer, dir string) (digest string, err error) {
	dir = filepath.Clean(dir)

	var files []string
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.WithStack(err)
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return "", errors.Wrapf(err, "walk %s", dir)
	}
	sort.Strings(files)

	h := sha256.New()
	z := zip.NewWriter(io.MultiWriter(w, h))
	for _, path := range files {
		name := strings.TrimPrefix(path, dir+string(filepath.Separator))
		name = filepath.ToSlash(name)
		// Fixed header: no timestamps or modes, they would change the digest
		// without changing the code.
		zw, err := z.CreateHeader(&zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		})
		if err != nil {
			return "", errors.Wrap(err, "create zip header")
		}
		f, err := os.Open(path)
		if err != nil {
			return "", errors.WithStack(err)
		}
		if _, err := io.Copy(zw, f); err != nil {
			f.Close()
			return "", errors.Wrapf(err, "copy %s", name)
		}
		if err := f.Close(); err != nil {
			return "", errors.WithStack(err)
		}
	}
	if err := z.Close(); err != nil {
		return "", errors.Wrap(err, "close zip writer")
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
