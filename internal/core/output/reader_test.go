package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// preamble はSWAT出力ファイルの9行の前置き
const preamble = ` SWAT Sep 7 2023    VER 2012/Rev 670
 General Input/Output section (file.cio):
 Watershed name: demo

 Simulation length:
 Number of years: 2

 Output section
`

func writeOutputFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "output.rch")
	content := preamble + "\n" + body
	// 本文の前にちょうど9行（空行含む）が並ぶことをフィクスチャ側で保証する
	require.Len(t, strings.Split(preamble, "\n"), 9)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestRead_ParsesHeaderAndRows は9行スキップ後のヘッダ行と
// データ行のパースをテストします
func TestRead_ParsesHeaderAndRows(t *testing.T) {
	path := writeOutputFile(t, "RCH MON FLOW_OUT\n1 1 10.0\n2 1 20.0\n1 2 30.0\n")

	r := NewReader()
	data, err := r.Read(path, KindReach)
	require.NoError(t, err)

	assert.Equal(t, []string{"RCH", "MON", "FLOW_OUT"}, data.Variables())
	rows, cols := data.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
}

// TestRead_SkipsMalformedRows は不正な行が読み取り全体を止めないことをテストします
func TestRead_SkipsMalformedRows(t *testing.T) {
	path := writeOutputFile(t, "RCH MON FLOW_OUT\n1 1 10.0\nbroken\n2 1 20.0\n")

	r := NewReader()
	data, err := r.Read(path, KindReach)
	require.NoError(t, err)

	rows, _ := data.Shape()
	assert.Equal(t, 2, rows)
}

// TestRead_MissingFile はファイルが存在しない場合にエラーとなることをテストします
func TestRead_MissingFile(t *testing.T) {
	r := NewReader()
	_, err := r.Read(filepath.Join(t.TempDir(), "output.rch"), KindReach)
	assert.Error(t, err)
}

// TestRead_TooShort はプリアンブルより短いファイルが空データセットに
// 縮退することをテストします
func TestRead_TooShort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.rch")
	require.NoError(t, os.WriteFile(path, []byte("just\ntwo lines\n"), 0o644))

	r := NewReader()
	data, err := r.Read(path, KindReach)
	require.NoError(t, err)
	assert.True(t, data.Empty())
	assert.Empty(t, data.Variables())
}

// TestSpatialIDs はIDカラムのユニーク値が昇順で返ることをテストします
func TestSpatialIDs(t *testing.T) {
	path := writeOutputFile(t, "RCH MON FLOW_OUT\n3 1 10.0\n1 1 20.0\n3 2 30.0\n")

	r := NewReader()
	data, err := r.Read(path, KindReach)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, data.SpatialIDs())

	// IDカラムの規約がない種別では空
	data.Kind = KindStd
	assert.Empty(t, data.SpatialIDs())
}

// TestRowsFor は空間IDによる行の絞り込みをテストします
func TestRowsFor(t *testing.T) {
	path := writeOutputFile(t, "RCH MON FLOW_OUT\n1 1 10.0\n2 1 20.0\n1 2 30.0\n")

	r := NewReader()
	data, err := r.Read(path, KindReach)
	require.NoError(t, err)

	sub := data.RowsFor(1)
	rows, _ := sub.Shape()
	assert.Equal(t, 2, rows)

	none := data.RowsFor(99)
	assert.True(t, none.Empty())
}

// TestParseKind は出力種別の文字列解釈をテストします
func TestParseKind(t *testing.T) {
	k, err := ParseKind("reach")
	require.NoError(t, err)
	assert.Equal(t, KindReach, k)

	_, err = ParseKind("basin")
	assert.Error(t, err)
}

// TestReadControl は制御ファイルからのベストエフォート抽出をテストします
func TestReadControl(t *testing.T) {
	lines := []string{
		"Master Watershed File: demo.Master.Watershed.dat",
		" General Input/Output section (file.cio):",
		"",
		"               2    | NBYR : Number of years simulated",
		"            1990    | IYR : Beginning year of simulation",
		"               1    | IPRINT: print code",
		"filler", "filler", "filler", "filler", "filler",
	}
	path := filepath.Join(t.TempDir(), "file.cio")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))

	params, err := ReadControl(path)
	require.NoError(t, err)
	assert.Equal(t, "Master Watershed File: demo.Master.Watershed.dat", params["master_watershed"])
	assert.Equal(t, "2", params["nbyr"])
	assert.Equal(t, "1990", params["iyr"])
	assert.Equal(t, "1", params["iprint"])
}

// TestReadControl_TooShort は10行未満の制御ファイルで空マップが返ることをテストします
func TestReadControl_TooShort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.cio")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))

	params, err := ReadControl(path)
	require.NoError(t, err)
	assert.Empty(t, params)
}
