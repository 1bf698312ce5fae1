package project

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Manager はプロジェクトのライフサイクルと探索を管理する
// 「現在のプロジェクト」は単一の参照で、Load のたびに無条件に置き換えられる。
// 解析エンジン自体は *Project を明示的に受け取るため、Manager はCLIのような
// 長命のフロントエンドが文脈を保持するためだけに存在する。
type Manager struct {
	mu          sync.Mutex
	current     *Project
	classifier  *Classifier
	locator     *Locator
	defaultRoot string
	searchDepth int
	logger      *slog.Logger
}

// ManagerOption は Manager のオプション設定
type ManagerOption func(*Manager)

// WithDefaultRoot は探索パス省略時のデフォルトルートを設定する
func WithDefaultRoot(root string) ManagerOption {
	return func(m *Manager) {
		m.defaultRoot = root
	}
}

// WithSearchDepth はデフォルトの探索深さを設定する
func WithSearchDepth(depth int) ManagerOption {
	return func(m *Manager) {
		m.searchDepth = depth
	}
}

// WithManagerLogger は Manager にロガーを設定する
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager は新しい Manager を作成する
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		classifier:  NewClassifier(),
		searchDepth: 3,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.defaultRoot == "" {
		if wd, err := os.Getwd(); err == nil {
			m.defaultRoot = wd
		}
	}
	m.locator = NewLocator(m.classifier, WithLocatorLogger(m.logger))
	return m
}

// Load はプロジェクトを読み込み、現在のプロジェクトとして設定する
// ルートが存在しない場合は ErrPathNotFound、指標ファイルを欠く場合は
// ErrNotProject を返す。成功時は以前のプロジェクトを完全に置き換える。
func (m *Manager) Load(path string) (*Project, error) {
	p, err := New(path)
	if err != nil {
		return nil, err
	}

	if !m.classifier.IsProjectRoot(p.Root) {
		return nil, fmt.Errorf("%w: %s", ErrNotProject, p.Root)
	}

	files, err := m.classifier.Scan(p.Root)
	if err != nil {
		return nil, err
	}
	p.Files = files

	m.mu.Lock()
	m.current = p
	m.mu.Unlock()

	m.logger.Info("プロジェクトを読み込みました",
		"project", p.Name, "root", p.Root, "files", p.FileCount())
	return p, nil
}

// Current は現在読み込まれているプロジェクトを返す
func (m *Manager) Current() (*Project, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.current != nil
}

// Find は探索パス配下のSWATプロジェクトを列挙する
// searchPath が空ならデフォルトルート、maxDepth が非正ならデフォルト深さを使う。
func (m *Manager) Find(searchPath string, maxDepth int) []string {
	if searchPath == "" {
		searchPath = m.defaultRoot
	}
	if maxDepth <= 0 {
		maxDepth = m.searchDepth
	}
	return m.locator.Find(searchPath, maxDepth)
}

// ValidationResult はプロジェクト構造の検証結果を表す
type ValidationResult struct {
	Path     string   `json:"path"`
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate はプロジェクト構造を検証する
// 部分的・欠損データでもエラーにはならず、結果に吸収される。
func (m *Manager) Validate(path string) ValidationResult {
	result := ValidationResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		result.Errors = append(result.Errors, "path does not exist")
		return result
	}
	if !info.IsDir() {
		result.Errors = append(result.Errors, "path is not a directory")
		return result
	}
	if !m.classifier.IsProjectRoot(path) {
		result.Errors = append(result.Errors, "missing required SWAT files (file.cio)")
		return result
	}

	result.IsValid = true

	entries, err := os.ReadDir(path)
	if err == nil {
		hasOutputs := false
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasPrefix(entry.Name(), "output.") {
				hasOutputs = true
				break
			}
		}
		if !hasOutputs {
			result.Warnings = append(result.Warnings,
				"no output files found - project may not have been run")
		}
	}
	return result
}

// Info はプロジェクトの概要を表す
type Info struct {
	Path       string `json:"path"`
	Name       string `json:"name"`
	Exists     bool   `json:"exists"`
	IsValid    bool   `json:"isValid"`
	FileCount  int    `json:"fileCount"`
	HasOutputs bool   `json:"hasOutputs"`
}

// GetInfo はプロジェクトを完全に読み込まずに概要を取得する
func (m *Manager) GetInfo(path string) Info {
	info := Info{Path: path, Name: filepath.Base(path)}

	if _, err := os.Stat(path); err != nil {
		return info
	}
	info.Exists = true
	info.IsValid = m.classifier.IsProjectRoot(path)

	files, err := m.classifier.Scan(path)
	if err != nil {
		return info
	}
	for ft, bucket := range files {
		info.FileCount += len(bucket)
		if ft.IsOutput() && len(bucket) > 0 {
			info.HasOutputs = true
		}
	}
	return info
}
