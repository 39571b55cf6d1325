package storage

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
)

// Backend 图片字节的来源与去处
type Backend interface {
	GetFile(ctx context.Context, name string) ([]byte, error)
	PutFile(ctx context.Context, name string, content *bytes.Buffer) error
	FileExists(ctx context.Context, name string) bool
}

// New 把一个位置拆成 backend 和文件名
// http(s):// 开头的走 S3，其余按本地路径处理
func New(pathSpec string) (Backend, string, error) {
	if strings.HasPrefix(pathSpec, "http://") || strings.HasPrefix(pathSpec, "https://") {
		backend, key, err := NewS3Backend(pathSpec)
		if err != nil {
			return nil, "", err
		}
		return backend, key, nil
	}

	return &FsBackend{BasePath: filepath.Dir(pathSpec)}, filepath.Base(pathSpec), nil
}
