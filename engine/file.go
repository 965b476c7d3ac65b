package engine

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/readahead"
)

// isPathToken reports whether token has the shape of a file reference.
func isPathToken(token string) bool {
	return strings.HasPrefix(token, "/") || strings.HasPrefix(token, "./")
}

// isFile reports whether path names an existing regular file.
func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

// ReadAll reads r to completion through a read-ahead buffer.
func ReadAll(r io.Reader) (string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadInput.Wrap(err)
	}

	return string(data), nil
}

// ReadFile returns the full contents of the file at path as text.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", ErrReadInput.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	text, err := ReadAll(f)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return "", e.With(slog.String("path", path))
		}

		return "", err
	}

	return text, nil
}

// WriteExisting replaces the contents of the file at path with text.
//
// Only files that already exist are written. If path does not exist,
// WriteExisting writes nothing and reports false with a nil error.
func WriteExisting(path, text string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, ErrWriteOutput.Wrap(err).With(slog.String("path", path))
	}

	err = os.WriteFile(path, []byte(text), info.Mode().Perm())
	if err != nil {
		return false, ErrWriteOutput.Wrap(err).With(slog.String("path", path))
	}

	return true, nil
}
