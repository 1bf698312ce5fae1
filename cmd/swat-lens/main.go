package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/jinford/swat-lens/cmd/swat-lens/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 構造化ログの設定
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	app := &cli.Command{
		Name:  "swat-lens",
		Usage: "SWATプロジェクトの探索・分類・出力解析ツール",
		Commands: []*cli.Command{
			{
				Name:  "project",
				Usage: "プロジェクト管理コマンド",
				Commands: []*cli.Command{
					{
						Name:  "discover",
						Usage: "探索パス配下のSWATプロジェクトを列挙",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:  "path",
								Usage: "探索ルート（省略時はSWAT_PROJECT_DIR）",
							},
							&cli.IntFlag{
								Name:  "max-depth",
								Usage: "探索の最大深さ（省略時はSWAT_SEARCH_DEPTH）",
							},
						},
						Action: commands.ProjectDiscoverAction,
					},
					{
						Name:  "validate",
						Usage: "プロジェクト構造を検証",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "project",
								Usage:    "SWATプロジェクトルートのパス",
								Required: true,
							},
						},
						Action: commands.ProjectValidateAction,
					},
					{
						Name:  "info",
						Usage: "プロジェクトの概要を表示",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "project",
								Usage:    "SWATプロジェクトルートのパス",
								Required: true,
							},
						},
						Action: commands.ProjectInfoAction,
					},
				},
			},
			{
				Name:  "summary",
				Usage: "プロジェクトと出力ファイルの要約を表示",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.StringFlag{
						Name:     "project",
						Usage:    "SWATプロジェクトルートのパス",
						Required: true,
					},
				},
				Action: commands.SummaryAction,
			},
			{
				Name:  "stats",
				Usage: "変数の記述統計を表示",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.StringFlag{
						Name:     "project",
						Usage:    "SWATプロジェクトルートのパス",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "出力種別 (std/reach/subbasin/hru/reservoir)",
						Value: "reach",
					},
					&cli.StringFlag{
						Name:     "variable",
						Usage:    "変数名 (例: FLOW_OUT)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "id",
						Usage: "空間ID (reach/subbasin/HRU番号)",
					},
				},
				Action: commands.StatsAction,
			},
			{
				Name:  "water-balance",
				Usage: "水収支成分の合計を表示",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.StringFlag{
						Name:     "project",
						Usage:    "SWATプロジェクトルートのパス",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "出力種別 (std/reach/subbasin/hru/reservoir)",
						Value: "subbasin",
					},
				},
				Action: commands.WaterBalanceAction,
			},
			{
				Name:  "timeseries",
				Usage: "変数の時系列を表示",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.StringFlag{
						Name:     "project",
						Usage:    "SWATプロジェクトルートのパス",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "出力種別 (std/reach/subbasin/hru/reservoir)",
						Value: "reach",
					},
					&cli.StringFlag{
						Name:     "variable",
						Usage:    "変数名 (例: FLOW_OUT)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "id",
						Usage: "空間ID (reach/subbasin/HRU番号)",
					},
				},
				Action: commands.TimeSeriesAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
