package imgarchive

import "os"

func fileMode(f *os.File) os.FileMode {
	fi, err := f.Stat()
	if err != nil {
		return 0o644
	}
	return fi.Mode().Perm()
}

// reopenSameFlags closes old and reopens path for read-write. Used after
// writeFileAtomic renames a replacement file over path: old's file
// descriptor still refers to the now-unlinked original, so any further
// reads/writes on the handle need a fresh open of the renamed-into-place
// file.
func reopenSameFlags(old *os.File, path string) (*os.File, error) {
	_ = old.Close()
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, wrapErr(KindIO, "reopen "+path, err)
	}
	return f, nil
}
