// Package fs provides file-based storage for extracted page media.
package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagemedia"
)

// Ensure FileStore implements pagemedia.PageMediaStore at compile time.
var _ pagemedia.PageMediaStore = (*FileStore)(nil)

// TitleToPath converts a page title to a relative JSON file name.
// Spaces become underscores and path separators are escaped, so every
// title maps to a single file directly inside the output directory.
// Example: "AC/DC discography" → AC%2FDC_discography.json
func TitleToPath(title string) (string, error) {
	name := strings.TrimSpace(title)
	if name == "" {
		return "", pagemedia.Errorf(pagemedia.EINVALID, "page title required")
	}
	name = url.PathEscape(strings.ReplaceAll(name, " ", "_"))
	if name == "." || name == ".." {
		return "", pagemedia.Errorf(pagemedia.EINVALID, "path traversal in title %q", title)
	}
	return name + ".json", nil
}

// FileStore implements pagemedia.PageMediaStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the page as indented JSON into the temporary directory.
func (s *FileStore) Save(ctx context.Context, page *pagemedia.PageMedia) error {
	relPath, err := TitleToPath(page.Title)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	content, err := FormatPageMedia(page)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), relPath), content, 0644)
}

// FormatPageMedia renders a page's media list as indented JSON.
func FormatPageMedia(page *pagemedia.PageMedia) ([]byte, error) {
	b, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func (s *FileStore) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Nothing saved: leave an empty output directory.
	if _, err := os.Stat(s.tempDir()); os.IsNotExist(err) {
		return os.MkdirAll(s.finalDir(), 0755)
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
