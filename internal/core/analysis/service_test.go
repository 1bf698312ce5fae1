package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/swat-lens/internal/core/output"
	"github.com/jinford/swat-lens/internal/core/project"
)

// newTestProject はfile.cioと指定の出力ファイルを持つプロジェクトを組み立てる
// 出力ファイルの本文には9行のプリアンブルが前置される。
func newTestProject(t *testing.T, outputs map[string]string) *project.Project {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.cio"), []byte("demo\n"), 0o644))

	preamble := "p1\np2\np3\np4\np5\np6\np7\np8\np9\n"
	for name, body := range outputs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(preamble+body), 0o644))
	}

	m := project.NewManager()
	p, err := m.Load(dir)
	require.NoError(t, err)
	return p
}

func intPtr(i int) *int { return &i }

// TestVariableStatistics_Basic は基本統計量の計算をテストします
func TestVariableStatistics_Basic(t *testing.T) {
	p := newTestProject(t, map[string]string{
		"output.rch": "RCH MON FLOW_OUT\n1 1 10.0\n1 2 20.0\n1 3 30.0\n",
	})
	e := NewEngine(p)

	stats, err := e.VariableStatistics("FLOW_OUT", output.KindReach, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 20.0, stats.Mean, 1e-9)
	assert.InDelta(t, 10.0, stats.Min, 1e-9)
	assert.InDelta(t, 30.0, stats.Max, 1e-9)
	assert.InDelta(t, 20.0, stats.Median, 1e-9)
	assert.InDelta(t, 15.0, stats.Q25, 1e-9)
	assert.InDelta(t, 25.0, stats.Q75, 1e-9)
	assert.InDelta(t, 10.0, stats.Std, 1e-9)
}

// TestVariableStatistics_VariableNotFound は存在しない変数で
// ErrVariableNotFound になることをテストします
func TestVariableStatistics_VariableNotFound(t *testing.T) {
	p := newTestProject(t, map[string]string{
		"output.rch": "RCH MON FLOW_OUT\n1 1 10.0\n",
	})
	e := NewEngine(p)

	_, err := e.VariableStatistics("SED_OUT", output.KindReach, nil)
	assert.ErrorIs(t, err, ErrVariableNotFound)
}

// TestVariableStatistics_MissingOutput は出力ファイルのないプロジェクトで
// ErrNoData になることをテストします
func TestVariableStatistics_MissingOutput(t *testing.T) {
	p := newTestProject(t, nil)
	e := NewEngine(p)

	_, err := e.VariableStatistics("FLOW_OUT", output.KindReach, nil)
	assert.ErrorIs(t, err, ErrNoData)
}

// TestVariableStatistics_SpatialFilter は空間IDでの絞り込みをテストします
func TestVariableStatistics_SpatialFilter(t *testing.T) {
	p := newTestProject(t, map[string]string{
		"output.rch": "RCH MON FLOW_OUT\n1 1 10.0\n2 1 100.0\n1 2 30.0\n",
	})
	e := NewEngine(p)

	stats, err := e.VariableStatistics("FLOW_OUT", output.KindReach, intPtr(1))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 20.0, stats.Mean, 1e-9)
}

// TestVariableStatistics_FilterFallback は一致ゼロ件の絞り込みが
// 全体の統計にフォールバックすることをテストします（助言的フィルタ）
func TestVariableStatistics_FilterFallback(t *testing.T) {
	p := newTestProject(t, map[string]string{
		"output.rch": "RCH MON FLOW_OUT\n1 1 10.0\n1 2 20.0\n1 3 30.0\n",
	})
	e := NewEngine(p)

	stats, err := e.VariableStatistics("FLOW_OUT", output.KindReach, intPtr(99))
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 20.0, stats.Mean, 1e-9)
}

// TestWaterBalance_SumsFirstAlias はエイリアス優先順位と成分合計をテストします
func TestWaterBalance_SumsFirstAlias(t *testing.T) {
	p := newTestProject(t, map[string]string{
		"output.sub": "SUB MON PRECIPmm SURQmm ETmm\n1 1 100.0 20.0 30.0\n1 2 50.0 10.0 40.0\n",
	})
	e := NewEngine(p)

	balance, err := e.WaterBalance(output.KindSubbasin)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, balance["precipitation"], 1e-9)
	assert.InDelta(t, 30.0, balance["surface_runoff"], 1e-9)
	assert.InDelta(t, 70.0, balance["evapotranspiration"], 1e-9)
}

// TestWaterBalance_OmitsAbsentComponents はエイリアスが全て欠けている成分が
// ゼロ埋めされずに省かれることをテストします
func TestWaterBalance_OmitsAbsentComponents(t *testing.T) {
	p := newTestProject(t, map[string]string{
		"output.sub": "SUB MON PRECIPmm\n1 1 100.0\n",
	})
	e := NewEngine(p)

	balance, err := e.WaterBalance(output.KindSubbasin)
	require.NoError(t, err)
	assert.Contains(t, balance, "precipitation")
	assert.NotContains(t, balance, "surface_runoff")
	assert.NotContains(t, balance, "lateral_flow")
	assert.NotContains(t, balance, "groundwater")
	assert.NotContains(t, balance, "evapotranspiration")
	assert.NotContains(t, balance, "percolation")
}

// TestWaterBalance_AliasPriority は先頭のエイリアスが後続より優先されることをテストします
func TestWaterBalance_AliasPriority(t *testing.T) {
	p := newTestProject(t, map[string]string{
		"output.sub": "SUB PRECIP PRECIPmm\n1 1.0 100.0\n",
	})
	e := NewEngine(p)

	balance, err := e.WaterBalance(output.KindSubbasin)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, balance["precipitation"], 1e-9)
}

// TestTimeSeries_MonthlyAndDaily は時間キー列の選択をテストします
func TestTimeSeries_MonthlyAndDaily(t *testing.T) {
	p := newTestProject(t, map[string]string{
		"output.rch": "RCH MON YEAR FLOW_OUT\n1 1 2020 10.0\n1 2 2020 20.0\n",
		"output.hru": "HRU DAY MON YEAR ETmm\n1 1 1 2020 3.0\n1 2 1 2020 4.0\n",
	})
	e := NewEngine(p)

	monthly, err := e.TimeSeries("FLOW_OUT", output.KindReach, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"MON", "YEAR", "FLOW_OUT"}, monthly.Names())

	daily, err := e.TimeSeries("ETmm", output.KindHRU, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"MON", "YEAR", "DAY", "ETmm"}, daily.Names())
	assert.Equal(t, 2, daily.NumRows())
}

// TestTimeSeries_StrictSpatialFilter は一致ゼロ件の絞り込みが ErrNoData になる
// ことをテストします（VariableStatistics のフォールバックとは意図的に異なる挙動）
func TestTimeSeries_StrictSpatialFilter(t *testing.T) {
	p := newTestProject(t, map[string]string{
		"output.rch": "RCH MON YEAR FLOW_OUT\n1 1 2020 10.0\n",
	})
	e := NewEngine(p)

	_, err := e.TimeSeries("FLOW_OUT", output.KindReach, intPtr(99))
	assert.ErrorIs(t, err, ErrNoData)

	// 同じ条件でも統計側はフォールバックして成功する
	stats, err := e.VariableStatistics("FLOW_OUT", output.KindReach, intPtr(99))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
}

// TestTimeSeries_VariableAbsent は存在しない変数で ErrNoData になることをテストします
func TestTimeSeries_VariableAbsent(t *testing.T) {
	p := newTestProject(t, map[string]string{
		"output.rch": "RCH MON YEAR FLOW_OUT\n1 1 2020 10.0\n",
	})
	e := NewEngine(p)

	_, err := e.TimeSeries("SED_OUT", output.KindReach, nil)
	assert.ErrorIs(t, err, ErrNoData)
}
