package commands

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/jinford/swat-lens/internal/core/summary"
)

// SummaryAction はプロジェクトと出力ファイルの要約を表示するアクション
func SummaryAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}

	p, err := appCtx.LoadProject(cmd.String("project"))
	if err != nil {
		return err
	}

	svc := summary.NewService(p, summary.WithServiceLogger(appCtx.Logger))
	sum := svc.ProjectSummary()

	fmt.Printf("project: %s\n", sum.Name)
	fmt.Printf("path: %s\n", sum.Path)
	fmt.Printf("size: %.2f MB\n", sum.SizeMB)
	fmt.Printf("has outputs: %t\n", sum.HasOutputs)

	if len(sum.FileCounts) > 0 {
		types := make([]string, 0, len(sum.FileCounts))
		for ft := range sum.FileCounts {
			types = append(types, ft)
		}
		sort.Strings(types)

		tbl := tablewriter.NewWriter(os.Stdout)
		tbl.Header("File Type", "Count")
		for _, ft := range types {
			tbl.Append([]string{ft, fmt.Sprintf("%d", sum.FileCounts[ft])})
		}
		if err := tbl.Render(); err != nil {
			return err
		}
	}

	out := svc.OutputSummary()
	for _, entry := range out.OutputFiles {
		if entry.Error != "" {
			fmt.Printf("%s: 読み取りエラー (%s)\n", entry.Kind, entry.Error)
			continue
		}
		fmt.Printf("%s: %d rows x %d cols (%s)\n", entry.Kind, entry.Rows, entry.Cols, entry.Path)
	}
	return nil
}
