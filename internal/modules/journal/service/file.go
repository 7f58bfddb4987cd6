package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"

	"momentum_bot/internal/models"
)

// File — плоский JSON-массив на диске. Каждый Append — полный
// read-modify-write с atomic tmp+rename; для одного писателя этого хватает.
type File struct {
	path string
	mu   sync.Mutex
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Append(ctx context.Context, rec models.TradeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	recs, err := f.readLocked()
	if err != nil {
		return err
	}
	recs = append(recs, rec)
	return f.writeLocked(recs)
}

func (f *File) Recent(ctx context.Context, n int) ([]models.TradeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	recs, err := f.readLocked()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(recs) > n {
		recs = recs[len(recs)-n:]
	}
	return recs, nil
}

func (f *File) All(ctx context.Context) ([]models.TradeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readLocked()
}

func (f *File) readLocked() ([]models.TradeRecord, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	var recs []models.TradeRecord
	if err := sonic.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return recs, nil
}

func (f *File) writeLocked(recs []models.TradeRecord) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	b, err := sonic.MarshalIndent(recs, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path) // атомарно
}
