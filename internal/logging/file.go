package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Default size limits for a log file. Once the file grows past
// DefaultMaxSize it is cut back to roughly its last DefaultKeepSize bytes.
const (
	DefaultMaxSize  = 6 * 1024 * 1024
	DefaultKeepSize = 5 * 1024 * 1024
)

// FileWriter appends to a log file and trims its head when it grows too large.
type FileWriter struct {
	MaxSize  int64
	KeepSize int64

	mu   sync.Mutex
	file *os.File
}

// OpenFile opens (or creates) the log file at path, creating parent
// directories as needed.
func OpenFile(path string) (*FileWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	w := &FileWriter{MaxSize: DefaultMaxSize, KeepSize: DefaultKeepSize, file: file}
	if err := w.trim(); err != nil {
		file.Close()
		return nil, err
	}
	return w, nil
}

func (w *FileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.trim()
}

// Close closes the underlying file.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// trim keeps the tail of the file, starting at a line boundary, once the
// file exceeds MaxSize.
func (w *FileWriter) trim() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= w.MaxSize || size <= w.KeepSize {
		return nil
	}

	buf := make([]byte, w.KeepSize)
	n, err := w.file.ReadAt(buf, size-w.KeepSize)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]
	if i := bytes.IndexByte(buf, '\n'); i >= 0 {
		buf = buf[i+1:]
	}

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err = w.file.Write(buf)
	return err
}
