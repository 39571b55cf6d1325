package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Backend struct {
	Client *minio.Client
	Bucket string
}

// NewS3Backend 解析 https://host[:port]/bucket/key 形式的位置
// 凭证从环境变量 <host>_<bucket>_ACCESS_KEY_ID / <host>_<bucket>_SECRET_ACCESS_KEY 读取
// 设置了 <host>_<bucket>_REGION 时不再向服务端查询 bucket 所在区域
func NewS3Backend(location string) (*S3Backend, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, "", fmt.Errorf("parse location: %w", err)
	}

	var secure bool
	switch u.Scheme {
	case "http":
		secure = false
	case "https":
		secure = true
	default:
		return nil, "", fmt.Errorf("invalid scheme: %s. valid schemes are: http, https", u.Scheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, "", fmt.Errorf("invalid path %q, expected /bucket/key", u.Path)
	}
	bucket, key := parts[0], parts[1]

	accessKey := os.Getenv(u.Host + "_" + bucket + "_ACCESS_KEY_ID")
	secretKey := os.Getenv(u.Host + "_" + bucket + "_SECRET_ACCESS_KEY")
	region := os.Getenv(u.Host + "_" + bucket + "_REGION")

	client, err := minio.New(u.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
		Region: region,
	})
	if err != nil {
		return nil, "", fmt.Errorf("new s3 client: %w", err)
	}

	return &S3Backend{Client: client, Bucket: bucket}, key, nil
}

func (s *S3Backend) GetFile(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	defer func() {
		_ = obj.Close()
	}()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *S3Backend) PutFile(ctx context.Context, name string, content *bytes.Buffer) error {
	_, err := s.Client.PutObject(ctx, s.Bucket, name, content, int64(content.Len()),
		minio.PutObjectOptions{ContentType: "image/png"})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (s *S3Backend) FileExists(ctx context.Context, name string) bool {
	_, err := s.Client.StatObject(ctx, s.Bucket, name, minio.StatObjectOptions{})
	return err == nil
}
