package rembg

import (
	"context"
	"image"
)

// Remover 去除图片背景，返回新的图片，不修改输入
type Remover interface {
	Remove(ctx context.Context, img image.Image) (image.Image, error)
}
