package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.NotNil(t, err)
	assert.Equal(t, "formatted error", err.Error())

	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, "formatted error", appErr.Error())
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.NotNil(t, wrappedErr)
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())

	unwrappedErr := Unwrap(wrappedErr)
	assert.Equal(t, origErr, unwrappedErr)

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.NotNil(t, wrappedFormatted)
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())

	assert.True(t, Is(wrappedErr, origErr))
	assert.True(t, Is(deepWrapped, origErr))
}

func TestFileError(t *testing.T) {
	fileErr := NewFileError("cannot access", "/path/to/file", FileAccessDenied, nil)
	assert.NotNil(t, fileErr)
	assert.Equal(t, "cannot access: /path/to/file", fileErr.Error())
	assert.Equal(t, "/path/to/file", fileErr.Path())
	assert.Equal(t, FileAccessDenied, fileErr.Kind())

	origErr := fmt.Errorf("permission denied")
	fileErr = NewFileError("cannot access", "/path/to/file", FileAccessDenied, origErr)
	assert.Equal(t, "cannot access: /path/to/file: permission denied", fileErr.Error())
	assert.Equal(t, origErr, Unwrap(fileErr))

	assert.Equal(t, "file not found", ErrFileNotFound.Error())
	assert.Equal(t, FileNotFound, ErrFileNotFound.Kind())

	notFoundErr := NewFileError("file not found", "/missing/file", FileNotFound, nil)
	assert.True(t, IsFileNotFound(notFoundErr))
	assert.False(t, IsFileNotFound(fileErr))

	assert.True(t, IsFileAccessDenied(fileErr))
	assert.False(t, IsFileAccessDenied(notFoundErr))

	var fe *FileError
	assert.True(t, As(fileErr, &fe))
	assert.Equal(t, "/path/to/file", fe.Path())
}

func TestFileErrorMatchesSentinelByKind(t *testing.T) {
	err := NewFileError("read failed", "/a/b.json", FileNotFound, os.ErrNotExist)

	assert.True(t, Is(err, ErrFileNotFound))
	assert.False(t, Is(err, ErrFileAccess))
	assert.True(t, Is(Wrap(err, "load"), ErrFileNotFound))

	// A concrete error with a path is not a sentinel
	other := NewFileError("read failed", "/x", FileNotFound, nil)
	assert.False(t, Is(err, other))
}

func TestEditorKinds(t *testing.T) {
	assert.True(t, IsNoFileSelected(ErrNoFileSelected))
	assert.False(t, IsNoFileSelected(ErrFileNotFound))
	assert.True(t, IsInvalidJSON(ErrInvalidJSON))
	assert.True(t, IsInvalidJSON(NewFileError("not valid JSON", "", InvalidJSON, errors.New("unexpected end"))))
	assert.False(t, IsInvalidJSON(New("plain")))

	assert.Equal(t, "no file selected", NoFileSelected.String())
	assert.Equal(t, "io error", FileOperationFailed.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
}

func TestFromOS(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    ErrorKind
		message string
	}{
		{
			name:    "not exist",
			err:     &fs.PathError{Op: "open", Path: "/a.json", Err: fs.ErrNotExist},
			kind:    FileNotFound,
			message: "read failed: /a.json: file does not exist",
		},
		{
			name:    "permission",
			err:     &fs.PathError{Op: "open", Path: "/a.json", Err: fs.ErrPermission},
			kind:    FileAccessDenied,
			message: "read failed: /a.json: permission denied",
		},
		{
			name:    "other",
			err:     errors.New("disk on fire"),
			kind:    FileOperationFailed,
			message: "read failed: /a.json: disk on fire",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromOS("read", "/a.json", tt.err)
			assert.Equal(t, tt.kind, KindOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}

	assert.Nil(t, FromOS("read", "/a.json", nil))
}

func TestFromOSRealFile(t *testing.T) {
	_, err := os.ReadFile("/definitely/not/here.json")
	converted := FromOS("read", "/definitely/not/here.json", err)
	assert.True(t, IsFileNotFound(converted))
	assert.True(t, Is(converted, fs.ErrNotExist))
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "indent", InvalidConfig, nil)
	assert.NotNil(t, configErr)
	assert.Equal(t, "invalid value: indent", configErr.Error())
	assert.Equal(t, "indent", configErr.Param())
	assert.Equal(t, InvalidConfig, configErr.Kind())

	origErr := fmt.Errorf("must be whitespace")
	configErr = NewConfigError("invalid value", "indent", InvalidConfig, origErr)
	assert.Equal(t, "invalid value: indent: must be whitespace", configErr.Error())
	assert.Equal(t, origErr, Unwrap(configErr))

	assert.Equal(t, "invalid configuration", ErrInvalidConfig.Error())
	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsInvalidConfig(New("some other error")))
	assert.Equal(t, InvalidConfig, KindOf(configErr))
}

func TestErrorChains(t *testing.T) {
	baseErr := errors.New("base error")
	fileErr := NewFileError("file error", "/path/to/file", FileNotFound, baseErr)
	configErr := NewConfigError("config error", "default_dir", InvalidConfig, fileErr)

	assert.Equal(t, "config error: default_dir: file error: /path/to/file: base error", configErr.Error())

	assert.True(t, Is(configErr, baseErr))
	assert.True(t, Is(configErr, fileErr))

	var fe *FileError
	assert.True(t, As(configErr, &fe))
	assert.Equal(t, "/path/to/file", fe.Path())

	assert.True(t, IsFileNotFound(configErr))
	assert.True(t, IsInvalidConfig(configErr))
}
