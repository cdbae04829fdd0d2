package artifact

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

// Archive packs artifacts into one zip, used to return a session bundle as a single download.
func Archive(artifacts []Artifact) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	seen := map[string]int{}
	for _, a := range artifacts {
		name := a.FileName()
		if n := seen[name]; n > 0 {
			name = fmt.Sprintf("%s-%d.%s", a.Name, n+1, a.Extension)
		}
		seen[a.FileName()]++
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: time.Now()})
		if err != nil {
			return nil, fmt.Errorf("archive %s: %w", name, err)
		}
		if _, err := w.Write(a.Data); err != nil {
			return nil, fmt.Errorf("archive %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}
