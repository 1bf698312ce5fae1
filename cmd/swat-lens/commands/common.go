package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jinford/swat-lens/internal/core/project"
	"github.com/jinford/swat-lens/internal/platform/config"
	"github.com/jinford/swat-lens/internal/platform/logger"
)

// AppContext はコマンド実行に必要な共通コンテキストを保持する
type AppContext struct {
	Config  *config.Config
	Manager *project.Manager
	Logger  *slog.Logger
}

// NewAppContext は設定を読み込み、プロジェクトマネージャを初期化して AppContext を作成する
func NewAppContext(ctx context.Context, envFile string) (*AppContext, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	appLogger := logger.New(logger.Config{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: cfg.LogFormat,
	})

	manager := project.NewManager(
		project.WithDefaultRoot(cfg.DefaultProjectRoot),
		project.WithSearchDepth(cfg.SearchDepth),
		project.WithManagerLogger(appLogger),
	)

	return &AppContext{
		Config:  cfg,
		Manager: manager,
		Logger:  appLogger,
	}, nil
}

// LoadProject は--projectフラグで指定されたプロジェクトを読み込む
func (ac *AppContext) LoadProject(path string) (*project.Project, error) {
	p, err := ac.Manager.Load(path)
	if err != nil {
		return nil, fmt.Errorf("プロジェクトの読み込みに失敗: %w", err)
	}
	return p, nil
}
