package project

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jinford/swat-lens/internal/core/table"
)

// FileType はSWATプロジェクト内のファイルの意味的役割を表す
type FileType string

const (
	FileTypeControl         FileType = "control"
	FileTypeMasterWatershed FileType = "master_watershed"
	FileTypeSubbasin        FileType = "subbasin"
	FileTypeHRU             FileType = "hru"
	FileTypeRouting         FileType = "routing"
	FileTypeSoil            FileType = "soil"
	FileTypeManagement      FileType = "management"
	FileTypeGroundwater     FileType = "groundwater"
	FileTypeReservoir       FileType = "reservoir"
	FileTypePond            FileType = "pond"
	FileTypeWeather         FileType = "weather"
	FileTypeOutputStd       FileType = "output_std"
	FileTypeOutputReach     FileType = "output_rch"
	FileTypeOutputSubbasin  FileType = "output_sub"
	FileTypeOutputHRU       FileType = "output_hru"
	FileTypeOutputReservoir FileType = "output_rsv"
)

// filePatterns はファイル種別ごとのグロブパターンの静的テーブル
// パターン集合は拡張子で互いに素になるよう設計されており、
// 1つのファイルが複数の種別に分類されることはない。
var filePatterns = map[FileType][]string{
	FileTypeControl:         {"file.cio"},
	FileTypeMasterWatershed: {"*.Master.Watershed.dat"},
	FileTypeSubbasin:        {"*.sub"},
	FileTypeHRU:             {"*.hru"},
	FileTypeRouting:         {"*.rte"},
	FileTypeSoil:            {"*.sol"},
	FileTypeManagement:      {"*.mgt"},
	FileTypeGroundwater:     {"*.gw"},
	FileTypeReservoir:       {"*.res"},
	FileTypePond:            {"*.pnd"},
	FileTypeWeather:         {"*.pcp", "*.tmp", "*.slr", "*.hmd", "*.wnd"},
	FileTypeOutputStd:       {"output.std"},
	FileTypeOutputReach:     {"output.rch"},
	FileTypeOutputSubbasin:  {"output.sub"},
	FileTypeOutputHRU:       {"output.hru"},
	FileTypeOutputReservoir: {"output.rsv"},
}

// fileTypeOrder はスキャン結果を決定的にするための種別の走査順
var fileTypeOrder = []FileType{
	FileTypeControl,
	FileTypeMasterWatershed,
	FileTypeSubbasin,
	FileTypeHRU,
	FileTypeRouting,
	FileTypeSoil,
	FileTypeManagement,
	FileTypeGroundwater,
	FileTypeReservoir,
	FileTypePond,
	FileTypeWeather,
	FileTypeOutputStd,
	FileTypeOutputReach,
	FileTypeOutputSubbasin,
	FileTypeOutputHRU,
	FileTypeOutputReservoir,
}

// IsOutput はシミュレーション出力の種別かを返す
func (ft FileType) IsOutput() bool {
	switch ft {
	case FileTypeOutputStd, FileTypeOutputReach, FileTypeOutputSubbasin,
		FileTypeOutputHRU, FileTypeOutputReservoir:
		return true
	}
	return false
}

// ProjectFile はプロジェクトに属する1ファイルを表す
// 再スキャンでは常に新しいインスタンスが作られる。
type ProjectFile struct {
	Path   string   `json:"path"`
	Type   FileType `json:"type"`
	Name   string   `json:"name"`
	Size   int64    `json:"size"`
	Exists bool     `json:"exists"`
}

// Project はディスク上のSWATプロジェクトを表す
type Project struct {
	ID          uuid.UUID                  `json:"id"`
	Root        string                     `json:"root"`
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Files       map[FileType][]ProjectFile `json:"files"`
	Metadata    map[string]string          `json:"metadata"`
}

// New はルートディレクトリからプロジェクトを構築する
// ルートは絶対パスに解決され、存在しない場合は ErrPathNotFound を返す。
func New(root string) (*Project, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, abs)
	}

	return &Project{
		ID:          uuid.New(),
		Root:        abs,
		Name:        filepath.Base(abs),
		Description: fmt.Sprintf("SWAT project at %s", abs),
		Files:       make(map[FileType][]ProjectFile),
		Metadata:    make(map[string]string),
	}, nil
}

// File は指定種別の先頭のファイルを返す
func (p *Project) File(ft FileType) (ProjectFile, bool) {
	files := p.Files[ft]
	if len(files) == 0 {
		return ProjectFile{}, false
	}
	return files[0], true
}

// HasOutputs は出力系の種別に1つでもファイルがあるかを返す
func (p *Project) HasOutputs() bool {
	for ft, files := range p.Files {
		if ft.IsOutput() && len(files) > 0 {
			return true
		}
	}
	return false
}

// FileCount は分類済みファイルの総数を返す
func (p *Project) FileCount() int {
	n := 0
	for _, files := range p.Files {
		n += len(files)
	}
	return n
}

// ReadSubTable はサブ流域の集計テーブルを読み取る
// TablesOut/sub.txt（ヘッダなし SUB, AREA_KM2 の2列）があればそれを優先し、
// なければ *.sub ファイル名からIDを導出する。フォールバック経路の面積はNaNになる。
func (p *Project) ReadSubTable() (*table.Table, error) {
	path := filepath.Join(p.Root, "TablesOut", "sub.txt")
	if _, err := os.Stat(path); err == nil {
		tbl, _, err := table.Read(path, []string{"SUB", "AREA_KM2"})
		return tbl, err
	}

	entries, err := os.ReadDir(p.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to list project root: %w", err)
	}

	var ids []int
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sub") {
			continue
		}
		stem := strings.SplitN(entry.Name(), ".", 2)[0]
		id, err := strconv.Atoi(stem)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	sub := table.Column{Name: "SUB", Numeric: true}
	area := table.Column{Name: "AREA_KM2", Numeric: true}
	for _, id := range ids {
		sub.Values = append(sub.Values, strconv.Itoa(id))
		sub.Numbers = append(sub.Numbers, float64(id))
		area.Values = append(area.Values, "")
		area.Numbers = append(area.Numbers, math.NaN())
	}
	return &table.Table{Columns: []table.Column{sub, area}}, nil
}

// HRUFiles はプロジェクト直下の *.hru ファイル名を昇順で返す
func (p *Project) HRUFiles() []string {
	entries, err := os.ReadDir(p.Root)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".hru") {
			names = append(names, entry.Name())
		}
	}
	return names
}
