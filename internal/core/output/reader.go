package output

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/jinford/swat-lens/internal/core/table"
)

// defaultSkipLines はSWAT出力ファイルの前置き行数
// 出力ファイルは列ヘッダ行の前に常に9行のプリアンブルを持つ。
const defaultSkipLines = 9

// Reader はSWAT出力ファイルを読み取る
// パース失敗は警告ログと空のデータセットに縮退し、呼び出し側には伝播しない。
type Reader struct {
	skipLines int
	logger    *slog.Logger
}

// ReaderOption は Reader のオプション設定
type ReaderOption func(*Reader)

// WithSkipLines はプリアンブルの行数を上書きする
func WithSkipLines(n int) ReaderOption {
	return func(r *Reader) {
		r.skipLines = n
	}
}

// WithReaderLogger は Reader にロガーを設定する
func WithReaderLogger(logger *slog.Logger) ReaderOption {
	return func(r *Reader) {
		r.logger = logger
	}
}

// NewReader は新しい Reader を作成する
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{
		skipLines: defaultSkipLines,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read は出力ファイルをパースしてデータセットを返す
// プリアンブルをスキップした後、最初の非空行を列ヘッダとして使い、
// 以降をデータ行として読む。不正な行は読み取り全体を中断せずスキップされる。
// ファイルが存在しない場合のみエラーを返す。
func (r *Reader) Read(path string, kind Kind) (*Data, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}

	if enry.IsBinary(content) {
		r.logger.Warn("output file is not text, returning empty dataset", "path", path)
		return r.empty(path, kind), nil
	}

	lines := strings.Split(string(content), "\n")
	if len(lines) <= r.skipLines {
		r.logger.Warn("output file shorter than preamble, returning empty dataset",
			"path", path, "lines", len(lines))
		return r.empty(path, kind), nil
	}
	rest := lines[r.skipLines:]

	// プリアンブル直後の最初の非空行が列ヘッダ
	headerIdx := -1
	var names []string
	for i, line := range rest {
		if strings.TrimSpace(line) != "" {
			headerIdx = i
			names = strings.Fields(line)
			break
		}
	}
	if headerIdx < 0 {
		r.logger.Warn("output file has no header line, returning empty dataset", "path", path)
		return r.empty(path, kind), nil
	}

	tbl, diags, err := table.FromLines(names, rest[headerIdx+1:], r.skipLines+headerIdx+2)
	if err != nil {
		r.logger.Warn("failed to parse output file, returning empty dataset",
			"path", path, "error", err)
		return r.empty(path, kind), nil
	}
	if len(diags) > 0 {
		r.logger.Warn("skipped malformed rows in output file",
			"path", path, "skipped", len(diags), "firstLine", diags[0].Line)
	}

	return &Data{Kind: kind, Path: path, Table: tbl}, nil
}

func (r *Reader) empty(path string, kind Kind) *Data {
	return &Data{Kind: kind, Path: path, Table: table.New(nil, nil)}
}
