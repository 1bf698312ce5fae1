package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

// ProjectDiscoverAction は探索パス配下のSWATプロジェクトを列挙するアクション
func ProjectDiscoverAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}

	searchPath := cmd.String("path")
	maxDepth := int(cmd.Int("max-depth"))

	found := appCtx.Manager.Find(searchPath, maxDepth)
	if len(found) == 0 {
		fmt.Println("プロジェクトが見つかりませんでした")
		return nil
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.Header("Name", "Path", "Files", "Outputs")
	for _, path := range found {
		info := appCtx.Manager.GetInfo(path)
		tbl.Append([]string{
			info.Name,
			info.Path,
			fmt.Sprintf("%d", info.FileCount),
			fmt.Sprintf("%t", info.HasOutputs),
		})
	}
	return tbl.Render()
}

// ProjectValidateAction はプロジェクト構造を検証するアクション
func ProjectValidateAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}

	result := appCtx.Manager.Validate(cmd.String("project"))
	fmt.Printf("path: %s\n", result.Path)
	fmt.Printf("valid: %t\n", result.IsValid)
	if len(result.Errors) > 0 {
		fmt.Printf("errors: %s\n", strings.Join(result.Errors, "; "))
	}
	if len(result.Warnings) > 0 {
		fmt.Printf("warnings: %s\n", strings.Join(result.Warnings, "; "))
	}
	return nil
}

// ProjectInfoAction はプロジェクトの概要を表示するアクション
func ProjectInfoAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}

	info := appCtx.Manager.GetInfo(cmd.String("project"))
	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.Header("Field", "Value")
	tbl.Append([]string{"name", info.Name})
	tbl.Append([]string{"path", info.Path})
	tbl.Append([]string{"exists", fmt.Sprintf("%t", info.Exists)})
	tbl.Append([]string{"valid", fmt.Sprintf("%t", info.IsValid)})
	tbl.Append([]string{"files", fmt.Sprintf("%d", info.FileCount)})
	tbl.Append([]string{"has outputs", fmt.Sprintf("%t", info.HasOutputs)})
	return tbl.Render()
}
