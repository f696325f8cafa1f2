package scan

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	correctedName = "_chat_corrected.txt"
	rawName       = "_chat.txt"
	pagesDir      = "_chat_pages"
)

type FileInfo struct {
	Path  string
	Mtime int64
	Size  int64
}

// ScanRoot walks root for chat exports (.txt files). The correction pass's
// page directories are skipped, and when a directory holds both the raw and
// the corrected export only the corrected one is returned.
func ScanRoot(root string) ([]FileInfo, error) {
	if root == "" {
		return nil, nil
	}
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if filepath.Base(path) == pagesDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		if filepath.Base(path) == rawName {
			if _, err := os.Stat(filepath.Join(filepath.Dir(path), correctedName)); err == nil {
				return nil
			}
		}
		files = append(files, FileInfo{
			Path:  path,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	return files, err
}
