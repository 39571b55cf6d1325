package rembg

import (
	"context"
	"image"
	"image/color"
	"log/slog"

	"golang.org/x/image/draw"
)

// WhiteThreshold R、G、B 三个通道都严格大于该值时视为背景白色
const WhiteThreshold uint8 = 240

// WhiteRemBG 把接近白色的像素替换为完全透明的白色
type WhiteRemBG struct{}

func NewWhiteRemBG() *WhiteRemBG {
	return &WhiteRemBG{}
}

func (w *WhiteRemBG) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dst := toNRGBA(img)

	// 只要存在非 255 的 alpha，就认为原图已带透明信息
	hadAlpha := false
	removed := 0
	width, height := dst.Bounds().Dx(), dst.Bounds().Dy()
	for y := 0; y < height; y++ {
		row := y * dst.Stride
		for x := 0; x < width; x++ {
			i := row + x*4
			p := dst.Pix[i : i+4 : i+4]
			if p[3] != 255 {
				hadAlpha = true
			}
			if !isNearWhite(p[0], p[1], p[2]) {
				continue
			}
			p[0], p[1], p[2], p[3] = 255, 255, 255, 0
			removed++
		}
	}

	slog.Debug("removed white background",
		"removed", removed, "total", width*height, "sourceAlpha", hadAlpha)

	return dst, nil
}

// isNearWhite 阈值判断，严格大于，不看 alpha
func isNearWhite(r, g, b uint8) bool {
	return r > WhiteThreshold && g > WhiteThreshold && b > WhiteThreshold
}

// toNRGBA 总是返回一份新的 NRGBA 拷贝
// 非预乘的来源直接读通道值，避免经过预乘颜色时丢失透明像素的 RGB
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(b)

	switch src := img.(type) {
	case *image.NRGBA:
		n := b.Dx() * 4
		for y := b.Min.Y; y < b.Max.Y; y++ {
			si := src.PixOffset(b.Min.X, y)
			di := dst.PixOffset(b.Min.X, y)
			copy(dst.Pix[di:di+n], src.Pix[si:si+n])
		}

	case *image.NRGBA64:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			si := src.PixOffset(b.Min.X, y)
			di := dst.PixOffset(b.Min.X, y)
			for x := 0; x < b.Dx(); x++ {
				// 每个通道大端 16 位，取高字节即右移 8 位
				s := src.Pix[si+x*8 : si+x*8+8 : si+x*8+8]
				d := dst.Pix[di+x*4 : di+x*4+4 : di+x*4+4]
				d[0], d[1], d[2], d[3] = s[0], s[2], s[4], s[6]
			}
		}

	case *image.Paletted:
		palette := make([]color.NRGBA, len(src.Palette))
		for i, c := range src.Palette {
			palette[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			si := src.PixOffset(b.Min.X, y)
			di := dst.PixOffset(b.Min.X, y)
			for x := 0; x < b.Dx(); x++ {
				var c color.NRGBA
				if idx := int(src.Pix[si+x]); idx < len(palette) {
					c = palette[idx]
				}
				d := dst.Pix[di+x*4 : di+x*4+4 : di+x*4+4]
				d[0], d[1], d[2], d[3] = c.R, c.G, c.B, c.A
			}
		}

	default:
		draw.Draw(dst, b, img, b.Min, draw.Src)
	}

	return dst
}
