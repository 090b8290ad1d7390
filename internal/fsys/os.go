package fsys

import (
	"io/fs"
	"os"
	"path/filepath"

	"fflagedit/internal/errors"
)

const (
	ownerWrite = 0o200
	anyWrite   = 0o222
	newFile    = 0o644
)

// OS implements FS on the host filesystem.
//
// ReadOnly maps onto the write permission bits. On Windows os.Chmod translates
// the owner write bit into FILE_ATTRIBUTE_READONLY, so the same mapping
// toggles the native attribute there.
type OS struct{}

// NewOS returns the host filesystem
func NewOS() *OS {
	return &OS{}
}

func (OS) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FromOS("read", path, err)
	}
	return data, nil
}

// WriteFile truncates and rewrites path, keeping the permissions of an
// existing file.
func (OS) WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, newFile); err != nil {
		return errors.FromOS("write", path, err)
	}
	return nil
}

func (OS) Attributes(path string) (Attributes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, errors.FromOS("stat", path, err)
	}
	return attributesFromMode(info.Mode()), nil
}

func (OS) SetAttributes(path string, attrs Attributes) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.FromOS("stat", path, err)
	}
	if err := os.Chmod(path, modeFromAttributes(info.Mode().Perm(), attrs)); err != nil {
		return errors.FromOS("chmod", path, err)
	}
	return nil
}

func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// UserDataDir returns %LocalAppData% on Windows and the user cache
// directory elsewhere.
func (OS) UserDataDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(err, "locating user data directory")
	}
	return dir, nil
}

func (OS) DesktopDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "locating home directory")
	}
	return filepath.Join(home, "Desktop"), nil
}

func attributesFromMode(mode fs.FileMode) Attributes {
	var attrs Attributes
	if mode.Perm()&ownerWrite == 0 {
		attrs = attrs.With(ReadOnly)
	}
	return attrs
}

func modeFromAttributes(perm fs.FileMode, attrs Attributes) fs.FileMode {
	if attrs.Has(ReadOnly) {
		return perm &^ anyWrite
	}
	return perm | ownerWrite
}
