package process

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mrz1836/rcli/internal/constants"
	"github.com/mrz1836/rcli/internal/crypto"
	"github.com/mrz1836/rcli/internal/crypto/keyed"
	"github.com/mrz1836/rcli/internal/crypto/native"
	"github.com/mrz1836/rcli/internal/ctxutil"
	"github.com/mrz1836/rcli/internal/errors"
	"github.com/mrz1836/rcli/internal/flock"
)

func generator(format crypto.Format) (crypto.KeyGenerator, error) {
	switch format {
	case crypto.FormatBlake3:
		return keyed.Generator, nil
	case crypto.FormatEd25519:
		return native.Generator, nil
	case crypto.FormatUnknown:
	}
	return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedFormat, format)
}

// GenerateKey creates fresh key material for format and writes it into
// outputDir: blake3.txt for the keyed hash, ed25519.sk then ed25519.pk for
// Ed25519. It returns the written paths in that order. Existing files are
// replaced, all of them or none.
func GenerateKey(ctx context.Context, format crypto.Format, outputDir string) ([]string, error) {
	if err := ctxutil.Canceled(ctx, "key generation"); err != nil {
		return nil, err
	}

	gen, err := generator(format)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(outputDir)
	if err != nil {
		return nil, errors.Tag(errors.ErrIO, err, "checking output directory")
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: output path %s is not a directory", errors.ErrIO, outputDir)
	}

	lock, err := flock.Acquire(ctx, filepath.Join(outputDir, constants.KeygenLockFileName), constants.KeygenLockTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "locking output directory")
	}
	defer func() { _ = lock.Release() }()

	keys, err := gen.GenerateKey()
	if err != nil {
		return nil, errors.Wrap(err, "generating key")
	}
	defer func() {
		for _, k := range keys {
			crypto.Zero(k)
		}
	}()

	names := format.KeyFileNames()
	if len(names) != len(keys) {
		return nil, fmt.Errorf("%w: %s produced %d keys for %d files", errors.ErrKeyFormat, format, len(keys), len(names))
	}

	files := make([]keyFile, len(names))
	for i, name := range names {
		files[i] = keyFile{path: filepath.Join(outputDir, name), data: keys[i]}
	}
	paths, err := writeKeyFiles(files, constants.KeyFileMode)
	if err != nil {
		return nil, errors.Tag(errors.ErrIO, err, "writing key files")
	}

	zerolog.Ctx(ctx).Debug().
		Str("format", format.String()).
		Strs("paths", paths).
		Msg("generated key material")

	return paths, nil
}

// keyFile is one key destined for path.
type keyFile struct {
	path string
	data []byte
}

// stagedFile tracks one key through writeKeyFiles: its temp file, and the
// backup of whatever it replaced once it has been moved into place.
type stagedFile struct {
	keyFile
	tmp    string
	backup string
	placed bool
}

// writeKeyFiles replaces every file in files or none of them. Each key is
// written to a temp file with perm first; only then are the targets swapped
// in, and a failed swap restores the files already replaced.
func writeKeyFiles(files []keyFile, perm os.FileMode) ([]string, error) {
	staged := make([]*stagedFile, 0, len(files))
	cleanup := func() {
		for _, s := range staged {
			_ = os.Remove(s.tmp)
		}
	}

	for _, kf := range files {
		tmp, err := writeTemp(kf.path, kf.data, perm)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("staging %s: %w", kf.path, err)
		}
		staged = append(staged, &stagedFile{keyFile: kf, tmp: tmp})
	}

	for _, s := range staged {
		if err := s.swapIn(); err != nil {
			rollback(staged)
			cleanup()
			return nil, fmt.Errorf("replacing %s: %w", s.path, err)
		}
	}

	paths := make([]string, len(staged))
	for i, s := range staged {
		if s.backup != "" {
			_ = os.Remove(s.backup)
		}
		paths[i] = s.path
	}
	return paths, nil
}

// swapIn moves any existing target aside and renames the temp file over it.
func (s *stagedFile) swapIn() error {
	if _, err := os.Lstat(s.path); err == nil {
		backup, err := reserveSibling(s.path, ".*.bak")
		if err != nil {
			return err
		}
		if err := os.Rename(s.path, backup); err != nil {
			_ = os.Remove(backup)
			return fmt.Errorf("moving existing file aside: %w", err)
		}
		s.backup = backup
	}

	if err := os.Rename(s.tmp, s.path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	s.placed = true
	return nil
}

// rollback undoes swapIn for every staged file, newest first.
func rollback(staged []*stagedFile) {
	for i := len(staged) - 1; i >= 0; i-- {
		s := staged[i]
		if s.placed {
			_ = os.Remove(s.path)
		}
		if s.backup != "" {
			_ = os.Rename(s.backup, s.path)
		}
	}
}

// reserveSibling creates an empty, uniquely named file next to path.
func reserveSibling(path, pattern string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+pattern)
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}

// writeTemp writes data to a new temp file beside path, forces its mode to
// perm and syncs it. The temp file name is returned.
func writeTemp(path string, data []byte, perm os.FileMode) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	name := f.Name()

	fail := func(step string, err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("%s: %w", step, err)
	}

	if err := f.Chmod(perm); err != nil {
		return fail("setting permissions", err)
	}
	if _, err := f.Write(data); err != nil {
		return fail("writing data", err)
	}
	if err := f.Sync(); err != nil {
		return fail("syncing file", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("closing file: %w", err)
	}
	return name, nil
}
