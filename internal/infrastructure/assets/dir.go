package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// 10 MiB; uploads above this never reach the asset directory
const maxAssetBytes = 10 << 20

var ErrEmptyPath = errors.New("assets: empty path")

// Dir reads files below a root directory. Paths that escape the root are
// rejected by os.OpenInRoot.
type Dir struct{ root string }

func NewDir(root string) *Dir { return &Dir{root: root} }

func (d *Dir) Load(ctx context.Context, rel string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel = strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(rel)), "/")
	rel = strings.TrimPrefix(rel, "uploads/")
	if rel == "" {
		return nil, ErrEmptyPath
	}
	f, err := os.OpenInRoot(d.root, filepath.FromSlash(rel))
	if err != nil {
		return nil, fmt.Errorf("open asset %q: %w", rel, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxAssetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read asset %q: %w", rel, err)
	}
	if len(data) > maxAssetBytes {
		return nil, fmt.Errorf("asset %q exceeds %d bytes", rel, maxAssetBytes)
	}
	return data, nil
}
