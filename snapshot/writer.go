package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var slugPattern = regexp.MustCompile(`[^\w-]+`)

// Writer stores one pretty-printed JSON snapshot per processed request,
// named <yyyy-mm-dd>_<title-slug>.json.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

func (w *Writer) Write(result any, title string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.json", time.Now().Format("2006-01-02"), slugify(title))

	buf, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(filepath.Join(w.dir, filename), buf, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return filename, nil
}

func slugify(title string) string {
	slug := slugPattern.ReplaceAllString(title, "_")
	if slug == "" {
		slug = "video"
	}
	return slug
}
