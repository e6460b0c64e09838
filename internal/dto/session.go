package dto

// ── 会话模块 DTO ──

// LecturerRow 讲师输入行：一行代表一条 (讲师, 模块) 授课资格
// WeeklyWorkload 缺省时取配置的默认周课时上限（18）
type LecturerRow struct {
	TeacherName    string `json:"teacher_name"    binding:"required,min=1,max=100"`
	ModuleCode     string `json:"module_code"     binding:"required,min=1,max=50"`
	WeeklyWorkload *int   `json:"weekly_workload" binding:"omitempty,min=1,max=100"`
}

// ModuleRow 模块输入行
type ModuleRow struct {
	Code             string `json:"code"                binding:"required,min=1,max=50"`
	ModuleName       string `json:"module_name"         binding:"required,min=1,max=200"`
	Credits          int    `json:"credits"             binding:"required,min=1"`
	NumberOfStudents int    `json:"number_of_students"  binding:"required,min=1"`
	Cohort           string `json:"cohort"`
	Programme        string `json:"programme"`
	WhenToTakePlace  string `json:"when_to_take_place"  binding:"required,min=1,max=50"`
}

// CreateSessionRequest 创建会话请求：载入讲师与模块输入表
type CreateSessionRequest struct {
	Lecturers []LecturerRow `json:"lecturers" binding:"required,min=1,dive"`
	Modules   []ModuleRow   `json:"modules"   binding:"required,min=1,dive"`
}

// TrimesterBrief 学期状态简要信息
type TrimesterBrief struct {
	Label  string `json:"label"`
	Status string `json:"status"`
}

// SessionResponse 会话信息响应
type SessionResponse struct {
	ID            string           `json:"id"`
	LecturerCount int              `json:"lecturer_count"`
	ModuleCount   int              `json:"module_count"`
	Caps          map[string]int   `json:"caps"`
	Trimesters    []TrimesterBrief `json:"trimesters"`
	CreatedAt     string           `json:"created_at"`
}
