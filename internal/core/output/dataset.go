package output

import (
	"fmt"

	"github.com/jinford/swat-lens/internal/core/table"
)

// Kind はSWAT出力の種別を表す
// どの空間IDカラムとヘッダスキップ規約を適用するかを決める。
type Kind string

const (
	KindStd       Kind = "std"
	KindReach     Kind = "reach"
	KindSubbasin  Kind = "subbasin"
	KindHRU       Kind = "hru"
	KindReservoir Kind = "reservoir"
)

// ParseKind は文字列表現から Kind を解釈する
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindStd, KindReach, KindSubbasin, KindHRU, KindReservoir:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown output kind: %q", s)
}

// IDColumn は種別の空間IDカラム名を返す
// std と reservoir の出力にはIDカラムの規約がない。
func (k Kind) IDColumn() (string, bool) {
	switch k {
	case KindReach:
		return "RCH", true
	case KindSubbasin:
		return "SUB", true
	case KindHRU:
		return "HRU", true
	}
	return "", false
}

// Data はパース済みの出力データセットを表す
// 読み取りのたびに新しく作られる派生ビューであり、キャッシュされない。
type Data struct {
	Kind  Kind
	Path  string
	Table *table.Table
}

// Variables は利用可能な変数（列名）の一覧を返す
func (d *Data) Variables() []string {
	return d.Table.Names()
}

// Shape は (行数, 列数) を返す
func (d *Data) Shape() (int, int) {
	return d.Table.NumRows(), len(d.Table.Columns)
}

// Empty はデータ行が1つもないかを返す
func (d *Data) Empty() bool {
	return d.Table.Empty()
}

// SpatialIDs は種別のIDカラムのユニークな値を昇順で返す
// IDカラムがない種別、または列が存在しない場合は空のスライスを返す。
func (d *Data) SpatialIDs() []int {
	idCol, ok := d.Kind.IDColumn()
	if !ok {
		return []int{}
	}
	return d.Table.UniqueInts(idCol)
}

// RowsFor は空間IDが一致する行だけに絞った新しいデータセットを返す
// IDカラムがない、または一致する行がない場合は空のデータセットになる。
func (d *Data) RowsFor(id int) *Data {
	idCol, ok := d.Kind.IDColumn()
	if !ok {
		return &Data{Kind: d.Kind, Path: d.Path, Table: table.New(d.Table.Names(), nil)}
	}
	return &Data{Kind: d.Kind, Path: d.Path, Table: d.Table.FilterInt(idCol, id)}
}
