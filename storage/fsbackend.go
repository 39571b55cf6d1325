package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"
)

type FsBackend struct {
	BasePath string
}

func (b *FsBackend) GetFile(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(b.BasePath, name))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// PutFile 先写临时文件再 rename，失败时不会留下半截的目标文件
func (b *FsBackend) PutFile(_ context.Context, name string, content *bytes.Buffer) error {
	target := filepath.Join(b.BasePath, name)
	tmp := filepath.Join(b.BasePath, "."+name+"."+ksuid.New().String()+".tmp")

	if err := os.WriteFile(tmp, content.Bytes(), 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}

func (b *FsBackend) FileExists(_ context.Context, name string) bool {
	_, err := os.Stat(filepath.Join(b.BasePath, name))
	return err == nil
}
