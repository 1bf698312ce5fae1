package project

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_MissingRoot は存在しないルートで ErrPathNotFound になることをテストします
func TestNew_MissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrPathNotFound)
}

// TestNew_ResolvesAbsoluteRoot はルートが絶対パスに解決されることをテストします
func TestNew_ResolvesAbsoluteRoot(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p.Root))
	assert.Equal(t, filepath.Base(dir), p.Name)
	assert.NotEqual(t, p.ID.String(), "00000000-0000-0000-0000-000000000000")
}

// TestHasOutputs は出力バケットの有無による判定をテストします
func TestHasOutputs(t *testing.T) {
	p := &Project{Files: map[FileType][]ProjectFile{
		FileTypeSubbasin: {{Name: "0001.sub"}},
	}}
	assert.False(t, p.HasOutputs())

	p.Files[FileTypeOutputReach] = []ProjectFile{{Name: "output.rch"}}
	assert.True(t, p.HasOutputs())
}

// TestReadSubTable_PrefersTablesOut はTablesOut/sub.txtが優先されることをテストします
func TestReadSubTable_PrefersTablesOut(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "TablesOut"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "TablesOut", "sub.txt"),
		[]byte("1 12.5\n2 20.0\n"), 0o644))
	// フォールバック経路でしか拾われないファイルも置いておく
	writeProjectFiles(t, dir, "0009.sub")

	p, err := New(dir)
	require.NoError(t, err)

	tbl, err := p.ReadSubTable()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, tbl.UniqueInts("SUB"))

	area, ok := tbl.Column("AREA_KM2")
	require.True(t, ok)
	assert.Equal(t, []float64{12.5, 20.0}, area.Numbers)
}

// TestReadSubTable_FallbackFromFilenames は*.subファイル名からIDを導出し、
// 面積がNaNになることをテストします
func TestReadSubTable_FallbackFromFilenames(t *testing.T) {
	dir := t.TempDir()
	writeProjectFiles(t, dir, "0002.sub", "0001.sub", "basins.sub")

	p, err := New(dir)
	require.NoError(t, err)

	tbl, err := p.ReadSubTable()
	require.NoError(t, err)
	// 数値に解釈できないbasins.subは無視される
	assert.Equal(t, []int{1, 2}, tbl.UniqueInts("SUB"))

	area, ok := tbl.Column("AREA_KM2")
	require.True(t, ok)
	require.Len(t, area.Numbers, 2)
	assert.True(t, math.IsNaN(area.Numbers[0]))
}

// TestHRUFiles はHRUファイル名が昇順で列挙されることをテストします
func TestHRUFiles(t *testing.T) {
	dir := t.TempDir()
	writeProjectFiles(t, dir, "000010002.hru", "000010001.hru", "file.cio")

	p, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000010001.hru", "000010002.hru"}, p.HRUFiles())
}
