package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// SnapshotMeta describes the analysis context for a snapshot file.
type SnapshotMeta struct {
	ID         string
	URL        string
	DeviceType string
	Title      string
	TotalScore int
	CreatedAt  time.Time
}

// SnapshotWriter deposits analyzed pages as markdown files with YAML
// frontmatter. Files are written atomically (write .tmp then rename) to
// prevent partial reads by consumers.
type SnapshotWriter struct {
	dir    string
	policy *bluemonday.Policy
	conv   *converter.Converter
}

// NewSnapshotWriter creates a SnapshotWriter targeting dir.
// The directory is created on first write if it does not exist.
func NewSnapshotWriter(dir string) *SnapshotWriter {
	return &SnapshotWriter{
		dir:    dir,
		policy: bluemonday.UGCPolicy(),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Write sanitizes htmlText, converts it to markdown and writes
// <id>.md under the snapshot directory. Returns the written path.
func (w *SnapshotWriter) Write(ctx context.Context, meta SnapshotMeta, htmlText string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: mkdir %s: %w", w.dir, err)
	}

	body := w.toMarkdown(meta.URL, htmlText)

	target := filepath.Join(w.dir, meta.ID+".md")
	tmp := target + ".tmp"

	content := formatFrontmatter(meta) + body + "\n"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("snapshot: write tmp: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("snapshot: rename: %w", err)
	}

	return target, nil
}

// toMarkdown strips scripts and unsafe markup, then converts. An empty or
// failed conversion falls back to the page title so the file stays useful.
func (w *SnapshotWriter) toMarkdown(pageURL, htmlText string) string {
	clean := w.policy.Sanitize(htmlText)
	md, err := w.conv.ConvertString(clean, converter.WithDomain(pageURL))
	if err != nil || strings.TrimSpace(md) == "" {
		return ""
	}
	return strings.TrimSpace(md)
}

func formatFrontmatter(m SnapshotMeta) string {
	return "---\n" +
		"id: " + m.ID + "\n" +
		"url: " + strconv.Quote(m.URL) + "\n" +
		"device_type: " + m.DeviceType + "\n" +
		"title: " + strconv.Quote(m.Title) + "\n" +
		"total_score: " + strconv.Itoa(m.TotalScore) + "\n" +
		"created_at: " + m.CreatedAt.UTC().Format(time.RFC3339) + "\n" +
		"---\n\n"
}
