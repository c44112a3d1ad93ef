package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

type DiskStorage struct {
	// BasePath is a directory writable by the current process
	BasePath  string
	URLPrefix string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(basePath, urlPrefix string) *DiskStorage {
	return &DiskStorage{
		BasePath:  basePath,
		URLPrefix: strings.TrimSuffix(urlPrefix, "/"),
		dirs:      make(map[string]bool, 10),
	}
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	s.dirs[dir] = true
	return nil
}

func (s *DiskStorage) getFullPath(p string) string {
	return filepath.Join(s.BasePath, filepath.FromSlash(path.Clean("/"+p)))
}

func (s *DiskStorage) Save(_ context.Context, p string, reader io.Reader, _ string) error {
	fileName := s.getFullPath(p)
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if _, err = io.Copy(file, reader); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (s *DiskStorage) Delete(_ context.Context, p string) error {
	err := os.Remove(s.getFullPath(p))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *DiskStorage) URL(p string) string {
	return s.URLPrefix + path.Clean("/"+p)
}
