package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxFileBytes is the ceiling for a picked file before compression.
const MaxFileBytes = 10 << 20

var acceptedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// File is an image held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) Size() int64 { return int64(len(f.Data)) }

// readFile is swapped in tests.
var readFile = os.ReadFile

// OpenFile reads path and sniffs its content type.
func OpenFile(path string) (File, error) {
	data, err := readFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return File{
		Name:        filepath.Base(path),
		ContentType: DetectContentType(path, data),
		Data:        data,
	}, nil
}

// DetectContentType sniffs data, falling back to the file extension for
// formats the sniffer does not know.
func DetectContentType(name string, data []byte) string {
	ct, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	if ct != "application/octet-stream" {
		return ct
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	return ct
}

// CheckFile enforces accepted types and the size ceiling.
func CheckFile(contentType string, size int64) error {
	if _, ok := acceptedTypes[contentType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	if size <= 0 {
		return ErrEmptyFile
	}
	if size > MaxFileBytes {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, size)
	}
	return nil
}

func extFor(contentType string) string {
	if ext, ok := acceptedTypes[contentType]; ok {
		return ext
	}
	return ".bin"
}
