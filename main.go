package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/chaos-io/whiteout/rembg"
	"github.com/chaos-io/whiteout/storage"
	"github.com/chaos-io/whiteout/util"
)

const (
	sourcePath = "assets/logo.png"
	targetPath = "assets/logo_transparent.png"
)

func main() {
	err := run(context.Background(), rembg.NewWhiteRemBG(), sourcePath, targetPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Success: Created %s\n", targetPath)
}

func run(ctx context.Context, remover rembg.Remover, source, target string) error {
	src, srcName, err := storage.New(source)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	dst, dstName, err := storage.New(target)
	if err != nil {
		return fmt.Errorf("open target: %w", err)
	}

	return process(ctx, remover, src, srcName, dst, dstName)
}

func process(ctx context.Context, remover rembg.Remover,
	src storage.Backend, srcName string, dst storage.Backend, dstName string) error {
	data, err := src.GetFile(ctx, srcName)
	if err != nil {
		return err
	}

	img, format, err := util.DecodeImage(data)
	if err != nil {
		return err
	}
	slog.Debug("loaded image", "source", srcName, "format", format, "bounds", img.Bounds())

	out, err := remover.Remove(ctx, img)
	if err != nil {
		return fmt.Errorf("remove background: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := util.EncodePNG(buf, out); err != nil {
		return err
	}

	slog.Debug("writing image", "target", dstName, "overwrite", dst.FileExists(ctx, dstName))
	return dst.PutFile(ctx, dstName, buf)
}
