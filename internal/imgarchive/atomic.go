package imgarchive

import (
	"os"
	"path/filepath"
)

// writeFileAtomic writes data to path atomically (best effort): it creates a
// temp file in the same directory, flushes it, and renames it over the
// target. Used by Sync to commit a VER1 *.dir file without ever leaving path
// in a half-written state; the VER2 header and directory are written in
// place at the start of the payload file instead.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".gtaimg-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	ok := false
	defer func() {
		_ = tmp.Close()
		if !ok {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmpName, perm)

	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	ok = true
	return nil
}

// createFileAt opens destPath for a fresh write, creating parent directories
// as needed so ExtractEntry works against a destination tree that doesn't
// exist yet.
func createFileAt(destPath string) (*os.File, error) {
	if dir := filepath.Dir(destPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, wrapErr(KindIO, "create parent directory for "+destPath, err)
		}
	}
	f, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, wrapErr(KindIO, "create "+destPath, err)
	}
	return f, nil
}
