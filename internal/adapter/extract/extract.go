// Package extract pulls raw text out of CV files. Extraction failures are
// recoverable: callers skip the offending file and continue.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Supported reports whether the file extension has a registered extractor.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".txt":
		return true
	}
	return false
}

// Text extracts raw text from the file at path, dispatching on extension.
// An empty result with nil error means the file had no extractable text.
func Text(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pdfText(path)
	case ".docx":
		return docxText(path)
	case ".txt":
		return txtText(path)
	}
	return "", fmt.Errorf("unsupported format: %s", filepath.Ext(path))
}

func txtText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
