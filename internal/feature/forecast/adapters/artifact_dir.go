// Package adapters はforecastフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"stock_predictor/internal/feature/forecast/registry"
)

// artifactDir はローカルファイルシステム上のモデルアーティファクト置き場です。
// 1銘柄につき <dir>/<symbol>_model.json を読み取り専用で参照します。
type artifactDir struct {
	dir string
}

var _ registry.ArtifactStore = (*artifactDir)(nil)

// NewArtifactDir は指定ディレクトリを参照するArtifactStoreを生成します。
func NewArtifactDir(dir string) *artifactDir {
	return &artifactDir{dir: dir}
}

// Read は銘柄のアーティファクトを読み込みます。存在しない場合は fs.ErrNotExist を返します。
func (s *artifactDir) Read(symbol string) ([]byte, error) {
	// 銘柄名がパスとして解釈されないようにする
	if strings.ContainsAny(symbol, `/\`) {
		return nil, fmt.Errorf("artifact %q: %w", symbol, fs.ErrNotExist)
	}
	return os.ReadFile(filepath.Join(s.dir, symbol+"_model.json"))
}
