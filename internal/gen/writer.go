package gen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/tools/txtar"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	// Create output directory if it doesn't exist
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// WriteArchive writes all generated files to w as a single txtar archive.
func WriteArchive(w io.Writer, files []GeneratedFile) error {
	ar := &txtar.Archive{
		Comment: []byte(fragmentHeader + "\n"),
	}

	for _, file := range files {
		ar.Files = append(ar.Files, txtar.File{Name: file.Filename, Data: file.Content})
	}

	if _, err := w.Write(txtar.Format(ar)); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}

	return nil
}
