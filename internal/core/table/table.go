package table

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Column はテーブルの1列を表す
// 全ての非空トークンが数値として解釈できた列だけが Numeric になり、
// その場合 Numbers に変換済みの値が入る。Values は常に生トークンを保持する。
type Column struct {
	Name    string
	Values  []string
	Numbers []float64
	Numeric bool
}

// Table は空白区切りテキストから読み取った表形式データを表す
// 列は入力で指定された順序、行はファイル内の出現順序を保つ。
type Table struct {
	Columns []Column
}

// Diagnostic は読み取り時にスキップされた行とその理由を表す
// 呼び出し側が厳密なパースを必要とする場合、ここからデータ欠落を検出できる。
type Diagnostic struct {
	Line   int // 1始まりの物理行番号（行に紐付かない場合は0）
	Reason string
}

// Read はファイルを空白区切りテーブルとして読み取る
// ヘッダ行を仮定せず、names で与えられた列名をそのまま使う。
// 空白のみの行は捨て、トークン数が不足する行は Diagnostic を添えてスキップし、
// 超過するトークンは切り捨てる。使用可能な行がゼロでもエラーにはならない。
func Read(path string, names []string) (*Table, []Diagnostic, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read table file: %w", err)
	}

	if enry.IsBinary(content) {
		diags := []Diagnostic{{Line: 0, Reason: "binary content"}}
		return New(names, nil), diags, nil
	}

	lines := strings.Split(string(content), "\n")
	return FromLines(names, lines, 1)
}

// FromLines はテキスト行の並びを names の列を持つテーブルに変換する
// offset は lines[0] の物理行番号で、Diagnostic の行番号に使われる。
func FromLines(names []string, lines []string, offset int) (*Table, []Diagnostic, error) {
	var rows [][]string
	var diags []Diagnostic

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tokens := strings.Fields(line)
		if len(tokens) < len(names) {
			diags = append(diags, Diagnostic{
				Line:   offset + i,
				Reason: fmt.Sprintf("expected %d tokens, got %d", len(names), len(tokens)),
			})
			continue
		}
		rows = append(rows, tokens[:len(names)])
	}

	return New(names, rows), diags, nil
}

// New は列名と行データからテーブルを構築する
// 列ごとに独立して数値化を試み、全ての値が数値として解釈できた列のみ Numeric とする。
func New(names []string, rows [][]string) *Table {
	t := &Table{Columns: make([]Column, len(names))}
	for ci, name := range names {
		col := Column{Name: name, Values: make([]string, len(rows))}
		for ri, row := range rows {
			col.Values[ri] = row[ci]
		}
		col.Numbers, col.Numeric = coerceNumeric(col.Values)
		t.Columns[ci] = col
	}
	return t
}

// coerceNumeric は列の全値が数値として解釈可能な場合のみ変換結果を返す
func coerceNumeric(values []string) ([]float64, bool) {
	numbers := make([]float64, len(values))
	for i, v := range values {
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		numbers[i] = f
	}
	return numbers, true
}

// Names は列名を定義順に返す
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// NumRows は行数を返す
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Empty は使用可能な行が1つもないかを返す
func (t *Table) Empty() bool {
	return t.NumRows() == 0
}

// Column は列名で列を引く
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// HasColumn は列の存在だけを確認する
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// Select は指定した列だけを残した新しいテーブルを返す
// 存在しない列名は黙って無視する。
func (t *Table) Select(names ...string) *Table {
	sub := &Table{}
	for _, name := range names {
		if col, ok := t.Column(name); ok {
			sub.Columns = append(sub.Columns, *col)
		}
	}
	return sub
}

// FilterInt は数値列 name の値が id と一致する行だけを残した新しいテーブルを返す
// 列が存在しない、または数値列でない場合は空のテーブルを返す。
func (t *Table) FilterInt(name string, id int) *Table {
	col, ok := t.Column(name)
	if !ok || !col.Numeric {
		return New(t.Names(), nil)
	}

	var keep []int
	for i, v := range col.Numbers {
		if v == float64(id) {
			keep = append(keep, i)
		}
	}

	filtered := &Table{Columns: make([]Column, len(t.Columns))}
	for ci := range t.Columns {
		src := &t.Columns[ci]
		dst := Column{Name: src.Name, Numeric: src.Numeric}
		dst.Values = make([]string, 0, len(keep))
		if src.Numeric {
			dst.Numbers = make([]float64, 0, len(keep))
		}
		for _, ri := range keep {
			dst.Values = append(dst.Values, src.Values[ri])
			if src.Numeric {
				dst.Numbers = append(dst.Numbers, src.Numbers[ri])
			}
		}
		filtered.Columns[ci] = dst
	}
	return filtered
}

// UniqueInts は数値列 name のユニークな値を整数として昇順で返す
// 列が存在しない、または数値列でない場合は空のスライスを返す。
func (t *Table) UniqueInts(name string) []int {
	col, ok := t.Column(name)
	if !ok || !col.Numeric {
		return []int{}
	}

	seen := make(map[int]struct{})
	for _, v := range col.Numbers {
		seen[int(v)] = struct{}{}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
