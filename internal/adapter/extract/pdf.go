package extract

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfText extracts the plain text of every page. Encrypted or malformed
// PDFs yield an empty string rather than an error so ingestion can skip
// them with a warning.
func pdfText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", nil
	}

	out, err := io.ReadAll(plain)
	if err != nil {
		return "", nil
	}
	return strings.TrimSpace(string(out)), nil
}
