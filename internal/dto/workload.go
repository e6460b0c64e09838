package dto

// ── 年度工作量模块 DTO ──

// AnnualWorkloadRow 单个讲师的年度工作量行
// ByTrimester 的键为学期标签，值为该学期总课时（周课时 × 教学周）
type AnnualWorkloadRow struct {
	Lecturer    string         `json:"lecturer"`
	ByTrimester map[string]int `json:"by_trimester"`
	Total       int            `json:"total"`
	AnnualCap   int            `json:"annual_cap"`
}

// AnnualWorkloadResponse 年度工作量汇总响应
// Trimesters 给出各学期列的展示顺序
type AnnualWorkloadResponse struct {
	Trimesters        []string            `json:"trimesters"`
	Rows              []AnnualWorkloadRow `json:"rows"`
	WeeksPerTrimester int                 `json:"weeks_per_trimester"`
	TrimestersPerYear int                 `json:"trimesters_per_year"`
}
