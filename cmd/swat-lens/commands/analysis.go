package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/jinford/swat-lens/internal/core/analysis"
	"github.com/jinford/swat-lens/internal/core/output"
)

// spatialIDFlag は--idフラグを省略可能なポインタに変換する
func spatialIDFlag(cmd *cli.Command) *int {
	if !cmd.IsSet("id") {
		return nil
	}
	id := int(cmd.Int("id"))
	return &id
}

// StatsAction は変数の記述統計を表示するアクション
func StatsAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}

	kind, err := output.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}

	p, err := appCtx.LoadProject(cmd.String("project"))
	if err != nil {
		return err
	}

	engine := analysis.NewEngine(p, analysis.WithEngineLogger(appCtx.Logger))
	stats, err := engine.VariableStatistics(cmd.String("variable"), kind, spatialIDFlag(cmd))
	if err != nil {
		return err
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.Header("Statistic", "Value")
	tbl.Append([]string{"variable", stats.Variable})
	tbl.Append([]string{"count", strconv.Itoa(stats.Count)})
	addFloat := func(name string, v float64) {
		tbl.Append([]string{name, fmt.Sprintf("%.4f", v)})
	}
	addFloat("mean", stats.Mean)
	addFloat("std", stats.Std)
	addFloat("min", stats.Min)
	addFloat("max", stats.Max)
	addFloat("median", stats.Median)
	addFloat("q25", stats.Q25)
	addFloat("q75", stats.Q75)
	return tbl.Render()
}

// WaterBalanceAction は水収支成分の合計を表示するアクション
func WaterBalanceAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}

	kind, err := output.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}

	p, err := appCtx.LoadProject(cmd.String("project"))
	if err != nil {
		return err
	}

	engine := analysis.NewEngine(p, analysis.WithEngineLogger(appCtx.Logger))
	balance, err := engine.WaterBalance(kind)
	if err != nil {
		return err
	}
	if len(balance) == 0 {
		fmt.Println("水収支に使える列が出力に含まれていません")
		return nil
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.Header("Component", "Total")
	// 固定の成分順で表示する（マップの順序に依存しない）
	for _, name := range []string{
		"precipitation", "surface_runoff", "lateral_flow",
		"groundwater", "evapotranspiration", "percolation",
	} {
		if v, ok := balance[name]; ok {
			tbl.Append([]string{name, fmt.Sprintf("%.4f", v)})
		}
	}
	return tbl.Render()
}

// TimeSeriesAction は変数の時系列を表示するアクション
func TimeSeriesAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}

	kind, err := output.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}

	p, err := appCtx.LoadProject(cmd.String("project"))
	if err != nil {
		return err
	}

	engine := analysis.NewEngine(p, analysis.WithEngineLogger(appCtx.Logger))
	series, err := engine.TimeSeries(cmd.String("variable"), kind, spatialIDFlag(cmd))
	if err != nil {
		return err
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.Header(series.Names())
	for ri := 0; ri < series.NumRows(); ri++ {
		row := make([]string, len(series.Columns))
		for ci, col := range series.Columns {
			row[ci] = col.Values[ri]
		}
		tbl.Append(row)
	}
	return tbl.Render()
}
