package summary

import (
	"log/slog"
	"math"

	"github.com/jinford/swat-lens/internal/core/output"
	"github.com/jinford/swat-lens/internal/core/project"
)

// ProjectSummary はプロジェクトの高レベルなメタデータを表す
type ProjectSummary struct {
	Name          string            `json:"name"`
	Path          string            `json:"path"`
	Description   string            `json:"description"`
	FileCounts    map[string]int    `json:"fileCounts"`
	HasOutputs    bool              `json:"hasOutputs"`
	SizeMB        float64           `json:"sizeMB"`
	ControlParams map[string]string `json:"controlParams,omitempty"`
}

// OutputEntry は1つの出力ファイルの概要を表す
// 読めなかったファイルはエラー文字列ごと吸収され、全体の生成を止めない。
type OutputEntry struct {
	Kind      output.Kind `json:"kind"`
	Path      string      `json:"path"`
	Rows      int         `json:"rows"`
	Cols      int         `json:"cols"`
	Variables []string    `json:"variables,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// OutputSummary は出力ファイル群の概要を表す
type OutputSummary struct {
	HasOutputs  bool                     `json:"hasOutputs"`
	OutputFiles []OutputEntry            `json:"outputFiles"`
	Variables   map[output.Kind][]string `json:"variables"`
}

// Service はプロジェクトの要約を生成する
// 新しいアルゴリズムは持たず、分類済みバケットとリーダーの合成だけを行う。
type Service struct {
	project *project.Project
	reader  *output.Reader
	logger  *slog.Logger
}

// ServiceOption は Service のオプション設定
type ServiceOption func(*Service)

// WithServiceLogger は Service にロガーを設定する
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService は新しい Service を作成する
func NewService(p *project.Project, opts ...ServiceOption) *Service {
	s := &Service{
		project: p,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reader = output.NewReader(output.WithReaderLogger(s.logger))
	return s
}

// ProjectSummary はプロジェクト全体の要約を生成する
// 欠損データがあってもエラーにはならず、得られた分だけを返す。
func (s *Service) ProjectSummary() ProjectSummary {
	sum := ProjectSummary{
		Name:        s.project.Name,
		Path:        s.project.Root,
		Description: s.project.Description,
		FileCounts:  s.countFilesByType(),
		HasOutputs:  s.project.HasOutputs(),
		SizeMB:      s.projectSizeMB(),
	}

	if control, ok := s.project.File(project.FileTypeControl); ok {
		params, err := output.ReadControl(control.Path)
		if err != nil {
			s.logger.Warn("failed to read control file", "path", control.Path, "error", err)
		} else {
			sum.ControlParams = params
		}
	}
	return sum
}

// OutputSummary は出力種別ごとの概要を生成する
func (s *Service) OutputSummary() OutputSummary {
	sum := OutputSummary{
		OutputFiles: []OutputEntry{},
		Variables:   make(map[output.Kind][]string),
	}
	if !s.project.HasOutputs() {
		return sum
	}
	sum.HasOutputs = true

	kinds := []struct {
		ft   project.FileType
		kind output.Kind
	}{
		{project.FileTypeOutputReach, output.KindReach},
		{project.FileTypeOutputSubbasin, output.KindSubbasin},
		{project.FileTypeOutputHRU, output.KindHRU},
	}

	for _, k := range kinds {
		pf, ok := s.project.File(k.ft)
		if !ok {
			continue
		}
		entry := OutputEntry{Kind: k.kind, Path: pf.Path}
		data, err := s.reader.Read(pf.Path, k.kind)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Rows, entry.Cols = data.Shape()
			entry.Variables = data.Variables()
			sum.Variables[k.kind] = data.Variables()
		}
		sum.OutputFiles = append(sum.OutputFiles, entry)
	}
	return sum
}

// countFilesByType はファイルのあるバケットだけを数える
func (s *Service) countFilesByType() map[string]int {
	counts := make(map[string]int)
	for ft, files := range s.project.Files {
		if len(files) > 0 {
			counts[string(ft)] = len(files)
		}
	}
	return counts
}

// projectSizeMB は分類済みファイルの合計サイズをMB単位（小数2桁）で返す
func (s *Service) projectSizeMB() float64 {
	var total int64
	for _, files := range s.project.Files {
		for _, f := range files {
			total += f.Size
		}
	}
	mb := float64(total) / (1024 * 1024)
	return math.Round(mb*100) / 100
}
