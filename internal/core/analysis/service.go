package analysis

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/jinford/swat-lens/internal/core/output"
	"github.com/jinford/swat-lens/internal/core/project"
	"github.com/jinford/swat-lens/internal/core/table"
)

// kindFileTypes は出力種別とプロジェクト内のファイル種別の対応
var kindFileTypes = map[output.Kind]project.FileType{
	output.KindStd:       project.FileTypeOutputStd,
	output.KindReach:     project.FileTypeOutputReach,
	output.KindSubbasin:  project.FileTypeOutputSubbasin,
	output.KindHRU:       project.FileTypeOutputHRU,
	output.KindReservoir: project.FileTypeOutputReservoir,
}

// Engine はSWAT出力の解析ユースケースを提供する
// データセットは呼び出しのたびにファイルから読み直され、キャッシュしない。
// 状態を持たないため、別々のファイルに対する読み取りは自由に並列化できる。
type Engine struct {
	project *project.Project
	reader  *output.Reader
	logger  *slog.Logger
}

// EngineOption は Engine のオプション設定
type EngineOption func(*Engine)

// WithEngineLogger は Engine にロガーを設定する
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine は新しい Engine を作成する
func NewEngine(p *project.Project, opts ...EngineOption) *Engine {
	e := &Engine{
		project: p,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.reader = output.NewReader(output.WithReaderLogger(e.logger))
	return e
}

// dataset は出力種別に対応するデータセットを開く
// ファイルがプロジェクトに存在しない場合は ErrNoData を返す。
func (e *Engine) dataset(kind output.Kind) (*output.Data, error) {
	ft, ok := kindFileTypes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown output kind %q", ErrNoData, kind)
	}

	pf, ok := e.project.File(ft)
	if !ok {
		return nil, fmt.Errorf("%w: project has no %s file", ErrNoData, ft)
	}

	data, err := e.reader.Read(pf.Path, kind)
	if err != nil {
		e.logger.Warn("failed to open output file", "path", pf.Path, "error", err)
		return nil, fmt.Errorf("%w: %s", ErrNoData, pf.Path)
	}
	return data, nil
}

// VariableStatistics は変数の記述統計を計算する
// spatialID が指定され、かつ絞り込みが1行以上を残す場合のみフィルタを適用する。
// 絞り込み結果が空の場合は全体の系列にフォールバックする（フィルタは助言的）。
func (e *Engine) VariableStatistics(variable string, kind output.Kind, spatialID *int) (*Statistics, error) {
	data, err := e.dataset(kind)
	if err != nil {
		return nil, err
	}

	col, ok := data.Table.Column(variable)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVariableNotFound, variable)
	}

	if spatialID != nil {
		if idCol, ok := data.Kind.IDColumn(); ok && data.Table.HasColumn(idCol) {
			filtered := data.Table.FilterInt(idCol, *spatialID)
			if !filtered.Empty() {
				col, _ = filtered.Column(variable)
			}
		}
	}

	if !col.Numeric {
		return nil, fmt.Errorf("variable %s is not numeric", variable)
	}
	if len(col.Numbers) == 0 {
		return nil, fmt.Errorf("%w: %s has no rows", ErrNoData, variable)
	}

	return describe(variable, col.Numbers), nil
}

// WaterBalance は水収支成分ごとの合計を計算する
// 各成分はエイリアスを優先順に試し、最初に存在した列の合計を採用する。
// どのエイリアスも存在しない成分は結果から省かれる（ゼロ埋めはしない）。
func (e *Engine) WaterBalance(kind output.Kind) (map[string]float64, error) {
	data, err := e.dataset(kind)
	if err != nil {
		return nil, err
	}

	balance := make(map[string]float64)
	for _, comp := range waterBalanceComponents {
		for _, alias := range comp.Aliases {
			col, ok := data.Table.Column(alias)
			if !ok || !col.Numeric {
				continue
			}
			sum := 0.0
			for _, v := range col.Numbers {
				sum += v
			}
			balance[comp.Name] = sum
			break
		}
	}
	return balance, nil
}

// TimeSeries は変数の時系列を取り出す
// 時間キー列（MON, YEAR, DAYがあれば日次）と要求変数だけを射影して返す。
// spatialID の絞り込みはここでは厳密で、結果が空なら ErrNoData を返す
// （VariableStatistics のフォールバックとは意図的に挙動が異なる）。
func (e *Engine) TimeSeries(variable string, kind output.Kind, spatialID *int) (*table.Table, error) {
	data, err := e.dataset(kind)
	if err != nil {
		return nil, err
	}

	if !data.Table.HasColumn(variable) {
		return nil, fmt.Errorf("%w: %s", ErrNoData, variable)
	}

	tbl := data.Table
	if spatialID != nil {
		if idCol, ok := data.Kind.IDColumn(); ok && tbl.HasColumn(idCol) {
			tbl = tbl.FilterInt(idCol, *spatialID)
		}
	}
	if tbl.Empty() {
		return nil, fmt.Errorf("%w: no rows for requested series", ErrNoData)
	}

	timeCols := []string{"MON", "YEAR"}
	if tbl.HasColumn("DAY") {
		timeCols = []string{"MON", "YEAR", "DAY"}
	}
	selected := tbl.Select(append(timeCols, variable)...)
	if len(selected.Columns) == 0 {
		return nil, fmt.Errorf("%w: no usable columns", ErrNoData)
	}
	return selected, nil
}

// describe は数値系列の記述統計を計算する
// 標準偏差は不偏（n-1）、分位点は線形補間で求める。
func describe(variable string, values []float64) *Statistics {
	n := len(values)

	sum := 0.0
	minV := values[0]
	maxV := values[0]
	for _, v := range values {
		sum += v
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	mean := sum / float64(n)

	std := 0.0
	if n > 1 {
		ss := 0.0
		for _, v := range values {
			d := v - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(n-1))
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return &Statistics{
		Variable: variable,
		Count:    n,
		Mean:     mean,
		Std:      std,
		Min:      minV,
		Max:      maxV,
		Median:   quantile(sorted, 0.5),
		Q25:      quantile(sorted, 0.25),
		Q75:      quantile(sorted, 0.75),
	}
}

// quantile はソート済み系列の分位点を線形補間で返す
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
