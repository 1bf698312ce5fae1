package analysis

// Statistics は1変数の記述統計を表す
type Statistics struct {
	Variable string  `json:"variable"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Std      float64 `json:"std"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
}

// balanceComponent は水収支の1成分と、フォーマット世代ごとの列名エイリアスを表す
// エイリアスは優先順で並び、最初に存在した列が採用される。
type balanceComponent struct {
	Name    string
	Aliases []string
}

// waterBalanceComponents は水収支成分の固定セット
// 列名はSWATのバージョンによって揺れるため、世代別のエイリアスを持つ。
var waterBalanceComponents = []balanceComponent{
	{Name: "precipitation", Aliases: []string{"PRECIP", "PRECIPmm"}},
	{Name: "surface_runoff", Aliases: []string{"SURQ", "SURQmm"}},
	{Name: "lateral_flow", Aliases: []string{"LATQ", "LATQmm"}},
	{Name: "groundwater", Aliases: []string{"GW_Q", "GWQmm"}},
	{Name: "evapotranspiration", Aliases: []string{"ET", "ETmm"}},
	{Name: "percolation", Aliases: []string{"PERC", "PERCmm"}},
}
