package project

import (
	"fmt"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// Classifier はファイル名パターンに基づいてプロジェクト内のファイルを分類する
// 種別ごとのパターンは起動時に1度だけコンパイルされる。
type Classifier struct {
	matchers map[FileType][]*ignore.GitIgnore
}

// NewClassifier は静的パターンテーブルをコンパイルして Classifier を作成する
func NewClassifier() *Classifier {
	matchers := make(map[FileType][]*ignore.GitIgnore, len(filePatterns))
	for ft, patterns := range filePatterns {
		for _, pattern := range patterns {
			matchers[ft] = append(matchers[ft], ignore.CompileIgnoreLines(pattern))
		}
	}
	return &Classifier{matchers: matchers}
}

// Scan はルート直下（非再帰）の通常ファイルを種別ごとのバケットに分類する
// 各パターンの寄与はファイル名の昇順で決定的に並ぶ。
func (c *Classifier) Scan(root string) (map[FileType][]ProjectFile, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan project root: %w", err)
	}

	buckets := make(map[FileType][]ProjectFile)
	for _, ft := range fileTypeOrder {
		for _, matcher := range c.matchers[ft] {
			for _, entry := range entries {
				if entry.IsDir() || !matcher.MatchesPath(entry.Name()) {
					continue
				}

				pf := ProjectFile{
					Path:   filepath.Join(root, entry.Name()),
					Type:   ft,
					Name:   entry.Name(),
					Exists: true,
				}
				if info, err := entry.Info(); err == nil {
					pf.Size = info.Size()
				}
				buckets[ft] = append(buckets[ft], pf)
			}
		}
	}
	return buckets, nil
}

// IsProjectRoot はディレクトリがSWATプロジェクトのルートかを判定する
// 制御ファイル（file.cio）またはマスター流域ファイルが直下にあれば真。
func (c *Classifier) IsProjectRoot(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return false
	}

	indicators := append(c.matchers[FileTypeControl], c.matchers[FileTypeMasterWatershed]...)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		for _, matcher := range indicators {
			if matcher.MatchesPath(entry.Name()) {
				return true
			}
		}
	}
	return false
}
