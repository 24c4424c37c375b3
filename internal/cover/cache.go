// Package cover checks the on-disk cover cache for user supplied artwork.
package cover

import (
	"fmt"
	"os"
	"path/filepath"

	"media_syncer/internal/domain"
)

// Cache looks for custom covers stored as "<dir>/<kind>/<id>.jpg".
type Cache struct {
	dir string
}

func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// HasCustomCover reports whether a custom cover file exists for ref. An
// unconfigured cache never has one.
func (c *Cache) HasCustomCover(ref domain.ContentRef) bool {
	if c == nil || c.dir == "" {
		return false
	}
	info, err := os.Stat(c.Path(ref))
	return err == nil && info.Mode().IsRegular()
}

func (c *Cache) Path(ref domain.ContentRef) string {
	return filepath.Join(c.dir, string(ref.Kind), fmt.Sprintf("%d.jpg", ref.ID))
}
