// Package export renders query results as JSON documents.
package export

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arbys/arbitrations/pkg/core"
)

// Document is the root JSON structure of every export.
type Document struct {
	Query        string              `json:"query"`
	GeneratedAt  time.Time           `json:"generatedAt"`
	Count        int                 `json:"count"`
	Arbitrations []*core.Arbitration `json:"arbitrations"`
}

// NewDocument wraps records for query. A nil slice encodes as [].
func NewDocument(query string, now time.Time, records []*core.Arbitration) Document {
	if records == nil {
		records = make([]*core.Arbitration, 0)
	}
	return Document{
		Query:        query,
		GeneratedAt:  now.UTC(),
		Count:        len(records),
		Arbitrations: records,
	}
}

// Write encodes doc to w, gzipped when compress is set.
func Write(w io.Writer, doc Document, compress bool) error {
	if !compress {
		return encode(w, doc)
	}

	gzWriter := gzip.NewWriter(w)
	if err := encode(gzWriter, doc); err != nil {
		gzWriter.Close()
		return err
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return nil
}

func encode(w io.Writer, doc Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode %s export: %w", doc.Query, err)
	}
	return nil
}

// FileName returns arbitrations_<query>_<UTC timestamp>.json, with .gz
// appended when compressed.
func FileName(doc Document, compress bool) string {
	query := strings.ReplaceAll(doc.Query, " ", "_")
	query = strings.ReplaceAll(query, ":", "_")
	timestamp := doc.GeneratedAt.UTC().Format("20060102_150405")

	name := fmt.Sprintf("arbitrations_%s_%s.json", query, timestamp)
	if compress {
		name += ".gz"
	}
	return name
}

// WriteFile writes doc into outputDir and returns the path written.
func WriteFile(outputDir string, doc Document, compress bool) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(outputDir, FileName(doc, compress))
	f, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if err := Write(f, doc, compress); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", outputPath, err)
	}
	return outputPath, nil
}
