package project

import (
	"log/slog"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// defaultSkipPatterns は探索時に無視するディレクトリのパターン
// シミュレーション成果物と無関係なノイズを読みに行かないためのもの。
var defaultSkipPatterns = []string{
	".git/",
	".svn/",
	".hg/",
	"__pycache__/",
	".venv/",
	"node_modules/",
	"vendor/",
}

// Locator は探索パス配下からSWATプロジェクトのルートを見つける
type Locator struct {
	classifier *Classifier
	skip       *ignore.GitIgnore
	logger     *slog.Logger
}

// LocatorOption は Locator のオプション設定
type LocatorOption func(*Locator)

// WithLocatorLogger は Locator にロガーを設定する
func WithLocatorLogger(logger *slog.Logger) LocatorOption {
	return func(l *Locator) {
		l.logger = logger
	}
}

// NewLocator は新しい Locator を作成する
func NewLocator(classifier *Classifier, opts ...LocatorOption) *Locator {
	l := &Locator{
		classifier: classifier,
		skip:       ignore.CompileIgnoreLines(defaultSkipPatterns...),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Find は root 配下を深さ優先で走査し、プロジェクトルートのパスを返す
// プロジェクトルートを見つけた場合はその内部には降りない。
// maxDepth より深いディレクトリは訪問しない。
// root が存在しない・ディレクトリでない場合は空の結果を返す（探索は助言的であり失敗しない）。
func (l *Locator) Find(root string, maxDepth int) []string {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		l.logger.Debug("search root is not a directory", "path", root)
		return []string{}
	}

	found := []string{}
	l.walk(root, 0, maxDepth, &found)
	return found
}

func (l *Locator) walk(dir string, depth, maxDepth int, found *[]string) {
	if l.classifier.IsProjectRoot(dir) {
		*found = append(*found, dir)
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Warn("failed to read directory during discovery", "path", dir, "error", err)
		return
	}

	// os.ReadDir はファイル名の昇順で返すため、走査順は決定的になる
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if l.skip.MatchesPath(entry.Name() + "/") {
			continue
		}
		if depth+1 > maxDepth {
			continue
		}
		l.walk(filepath.Join(dir, entry.Name()), depth+1, maxDepth, found)
	}
}
