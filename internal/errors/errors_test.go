package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	// Test creating a new error
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	// Test creating a new formatted error
	err = Newf("formatted %s", "error")
	assert.NotNil(t, err)
	assert.Equal(t, "formatted error", err.Error())

	// Check that the error is an ApplicationError
	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, "formatted error", appErr.Error())
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	// Test wrapping an error
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.NotNil(t, wrappedErr)
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())

	// Test unwrapping
	unwrappedErr := Unwrap(wrappedErr)
	assert.Equal(t, origErr, unwrappedErr)

	// Test wrapped formatted error
	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.NotNil(t, wrappedFormatted)
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Test wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	// Test deeper wrapping
	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())

	// Test Is function
	assert.True(t, Is(wrappedErr, origErr))
	assert.True(t, Is(deepWrapped, origErr))
}

func TestFileError(t *testing.T) {
	// Test creating a file error
	fileErr := NewFileError("cannot access", "/path/to/file", FileAccessDenied, nil)
	assert.NotNil(t, fileErr)
	assert.Equal(t, "cannot access: /path/to/file", fileErr.Error())
	assert.Equal(t, "/path/to/file", fileErr.Path())
	assert.Equal(t, FileAccessDenied, fileErr.Kind())

	// Test with wrapped error
	origErr := fmt.Errorf("permission denied")
	fileErr = NewFileError("cannot access", "/path/to/file", FileAccessDenied, origErr)
	assert.Equal(t, "cannot access: /path/to/file: permission denied", fileErr.Error())
	assert.Equal(t, origErr, Unwrap(fileErr))

	// Test predefined errors
	assert.Equal(t, "file not found", ErrFileNotFound.Error())
	assert.Equal(t, FileNotFound, ErrFileNotFound.Kind())

	// Test IsFileNotFound predicate
	notFoundErr := NewFileError("file not found", "/missing/file", FileNotFound, nil)
	assert.True(t, IsFileNotFound(notFoundErr))
	assert.False(t, IsFileNotFound(fileErr)) // This is FileAccessDenied

	// Test IsFileAccessDenied predicate
	assert.True(t, IsFileAccessDenied(fileErr))
	assert.False(t, IsFileAccessDenied(notFoundErr))

	// Test As for FileError
	var fe *FileError
	assert.True(t, As(fileErr, &fe))
	assert.Equal(t, "/path/to/file", fe.Path())
}

func TestConfigError(t *testing.T) {
	// Test creating a config error
	configErr := NewConfigError("invalid value", "timeout", InvalidConfig, nil)
	assert.NotNil(t, configErr)
	assert.Equal(t, "invalid value: timeout", configErr.Error())
	assert.Equal(t, "timeout", configErr.Param())
	assert.Equal(t, InvalidConfig, configErr.Kind())

	// Test with wrapped error
	origErr := fmt.Errorf("value out of range")
	configErr = NewConfigError("invalid value", "timeout", InvalidConfig, origErr)
	assert.Equal(t, "invalid value: timeout: value out of range", configErr.Error())
	assert.Equal(t, origErr, Unwrap(configErr))

	// Test predefined errors
	assert.Equal(t, "invalid configuration", ErrInvalidConfig.Error())
	assert.Equal(t, InvalidConfig, ErrInvalidConfig.Kind())

	// Test IsInvalidConfig predicate
	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsInvalidConfig(New("some other error")))

	// Test As for ConfigError
	var ce *ConfigError
	assert.True(t, As(configErr, &ce))
	assert.Equal(t, "timeout", ce.Param())
}

func TestTagError(t *testing.T) {
	origErr := fmt.Errorf("no tags found")
	tagErr := NewTagError("/music/a.mp3", origErr)
	assert.Equal(t, "cannot read tags: /music/a.mp3: no tags found", tagErr.Error())
	assert.Equal(t, "/music/a.mp3", tagErr.Path())
	assert.Equal(t, TagParseFailed, tagErr.Kind())
	assert.Equal(t, origErr, Unwrap(tagErr))

	assert.True(t, IsTagParse(tagErr))
	assert.True(t, IsTagParse(Wrap(tagErr, "toggle")))
	assert.False(t, IsTagParse(New("some other error")))
	assert.False(t, IsFileError(tagErr))

	assert.Equal(t, "cannot read tags: /music/b.mp3", NewTagError("/music/b.mp3", nil).Error())
}

func TestFromOS(t *testing.T) {
	assert.Nil(t, FromOS("read directory", "/x", nil))

	err := FromOS("read directory", "/missing", fs.ErrNotExist)
	assert.True(t, IsFileNotFound(err))
	assert.True(t, Is(err, fs.ErrNotExist))

	err = FromOS("read directory", "/locked", &fs.PathError{Op: "open", Path: "/locked", Err: fs.ErrPermission})
	assert.True(t, IsFileAccessDenied(err))

	err = FromOS("read directory", "/odd", errors.New("i/o error"))
	var fe *FileError
	require.True(t, As(err, &fe))
	assert.Equal(t, ReadDirFailed, fe.Kind())
	assert.Equal(t, "/odd", fe.Path())
	assert.Equal(t, "read directory: /odd: i/o error", err.Error())

	// Already classified errors pass through untouched
	assert.Same(t, fe, FromOS("stat", "/other", fe))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "file_not_found", FileNotFound.String())
	assert.Equal(t, "tag_parse_failed", TagParseFailed.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
}

func TestErrorChains(t *testing.T) {
	// Create a chain of errors
	baseErr := errors.New("base error")
	fileErr := NewFileError("file error", "/path/to/file", FileNotFound, baseErr)
	configErr := NewConfigError("config error", "start", InvalidConfig, fileErr)
	wrapped := Wrap(configErr, "load")

	// Test complete error message
	assert.Equal(t, "load: config error: start: file error: /path/to/file: base error", wrapped.Error())

	// Test Is function through the chain
	assert.True(t, Is(wrapped, baseErr))
	assert.True(t, Is(wrapped, fileErr))
	assert.True(t, Is(wrapped, configErr))

	// Test As function through the chain
	var fe *FileError
	assert.True(t, As(wrapped, &fe))
	assert.Equal(t, "/path/to/file", fe.Path())

	var ce *ConfigError
	assert.True(t, As(wrapped, &ce))
	assert.Equal(t, "start", ce.Param())

	// Test error predicates through the chain
	assert.True(t, IsFileNotFound(wrapped))
	assert.True(t, IsInvalidConfig(wrapped))
	assert.False(t, IsTagParse(wrapped))
}
