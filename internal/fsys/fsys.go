// Package fsys is the filesystem seam the editor talks through.
//
// [OS] is the production implementation. [Mem] keeps files in memory, records
// every call and can be told to fail, which lets the editor be tested against
// the error paths the OS rarely produces on demand.
package fsys

// Attributes is the set of file attribute flags the editor understands.
type Attributes uint8

const (
	// ReadOnly prevents writes until cleared.
	ReadOnly Attributes = 1 << iota
)

// Has reports whether every flag in f is present.
func (a Attributes) Has(f Attributes) bool {
	return a&f == f
}

// With returns a with f added.
func (a Attributes) With(f Attributes) Attributes {
	return a | f
}

// Without returns a with f removed.
func (a Attributes) Without(f Attributes) Attributes {
	return a &^ f
}

func (a Attributes) String() string {
	if a.Has(ReadOnly) {
		return "ReadOnly"
	}
	return "Normal"
}

// FS is the set of filesystem operations the editor needs.
// Errors are *errors.FileError values classified by errors.FromOS.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Attributes(path string) (Attributes, error)
	SetAttributes(path string, attrs Attributes) error
	Exists(path string) bool
	// UserDataDir is the per-user local application data directory.
	UserDataDir() (string, error)
	DesktopDir() (string, error)
}
