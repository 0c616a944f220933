package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

type Asset struct {
	Filename string
	MIME     string
	Data     []byte
}

// WriteAssets streams assets into a zip archive on w. Entry names pass through
// SafeName; a repeated name gets a numeric suffix.
func WriteAssets(w io.Writer, assets []Asset, modified time.Time) error {
	zw := zip.NewWriter(w)
	used := make(map[string]int, len(assets))
	for _, asset := range assets {
		name := uniqueName(SafeName(asset.Filename), used)
		hdr := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: modified}
		if strings.HasPrefix(asset.MIME, "image/png") || strings.HasPrefix(asset.MIME, "image/jpeg") {
			// already compressed
			hdr.Method = zip.Store
		}
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("zip: create %s: %w", name, err)
		}
		if _, err := fw.Write(asset.Data); err != nil {
			return fmt.Errorf("zip: write %s: %w", name, err)
		}
	}
	return zw.Close()
}

// ArchiveAssets returns the archive of assets in memory.
func ArchiveAssets(assets []Asset) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := WriteAssets(buf, assets, time.Now()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SafeName flattens filename into a single path element: separators become
// hyphens, so no part of the name is dropped.
func SafeName(filename string) string {
	name := pathSeparators.Replace(strings.TrimSpace(filename))
	if strings.Trim(name, ".") == "" {
		return "asset"
	}
	return name
}

var pathSeparators = strings.NewReplacer("/", "-", "\\", "-")

func uniqueName(name string, used map[string]int) string {
	n := used[name]
	used[name] = n + 1
	if n == 0 {
		return name
	}
	ext := path.Ext(name)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n+1, ext)
}
