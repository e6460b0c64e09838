package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"edu-workload/backend/config"
	"edu-workload/backend/internal/api/handler"
	"edu-workload/backend/internal/service"
	"edu-workload/backend/internal/store"
)

// envelope 统一响应结构的测试侧镜像
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestRouter() *gin.Engine {
	cfg := &config.Config{
		Engine: config.EngineConfig{
			MinGroupSize:      30,
			MaxGroupSize:      70,
			DefaultWeeklyCap:  18,
			WeeksPerTrimester: 12,
			TrimestersPerYear: 3,
			TrimesterLabels:   []string{"Trimester 1", "Trimester 2", "Trimester 3"},
		},
	}
	st := store.NewMemoryStore()
	svc := service.NewService(cfg, st, zap.NewNop())
	return Setup(cfg, handler.NewHandler(svc), zap.NewNop())
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("响应应为合法 JSON: %v\n%s", err, w.Body.String())
		}
	}
	return w, env
}

const createBody = `{
	"lecturers": [
		{"teacher_name": "张三", "module_code": "M101", "weekly_workload": 18},
		{"teacher_name": "李四", "module_code": "M101", "weekly_workload": 18}
	],
	"modules": [
		{"code": "M101", "module_name": "数据结构", "credits": 15, "number_of_students": 40, "cohort": "2025A", "programme": "BSc IT", "when_to_take_place": "Trimester 1"}
	]
}`

func createTestSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/api/v1/sessions", createBody)
	if w.Code != http.StatusCreated || env.Code != 0 {
		t.Fatalf("创建会话应返回 201/0，实际 %d/%d: %s", w.Code, env.Code, w.Body.String())
	}
	var data struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.ID == "" {
		t.Fatalf("创建响应应含会话 ID: %v %s", err, env.Data)
	}
	return data.ID
}

// ════════════════════════════════════════════════════════════
// 全链路测试
// ════════════════════════════════════════════════════════════

func TestRouter_Health(t *testing.T) {
	r := setupTestRouter()
	w, _ := doJSON(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("健康检查期望 200，实际 %d", w.Code)
	}
}

// 创建会话 → 运行指派 → 应用覆盖 → 年度汇总
func TestRouter_FullFlow(t *testing.T) {
	r := setupTestRouter()
	sid := createTestSession(t, r)

	// 运行指派
	w, env := doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+sid+"/assignments/run",
		`{"trimester": "Trimester 1"}`)
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("运行指派应返回 200/0，实际 %d/%d: %s", w.Code, env.Code, w.Body.String())
	}
	var table struct {
		Status string `json:"status"`
		Rows   []struct {
			Lecturer string `json:"lecturer"`
			Assigned bool   `json:"assigned"`
		} `json:"rows"`
		Ledger map[string]int `json:"ledger"`
	}
	if err := json.Unmarshal(env.Data, &table); err != nil {
		t.Fatalf("结果表解析失败: %v", err)
	}
	if table.Status != "draft" || len(table.Rows) != 1 || table.Rows[0].Lecturer != "张三" {
		t.Fatalf("指派结果不符: %s", env.Data)
	}

	// 候选讲师
	w, env = doJSON(t, r, http.MethodGet,
		"/api/v1/sessions/"+sid+"/assignments/candidates?trimester=Trimester%201&row=0", "")
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("候选查询应返回 200/0，实际 %d/%d", w.Code, env.Code)
	}
	var candidates struct {
		List []struct {
			Name      string `json:"name"`
			Incumbent bool   `json:"incumbent"`
		} `json:"list"`
	}
	if err := json.Unmarshal(env.Data, &candidates); err != nil || len(candidates.List) != 2 {
		t.Fatalf("期望 2 名候选: %v %s", err, env.Data)
	}

	// 应用覆盖并提交
	w, env = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+sid+"/assignments/overrides",
		`{"trimester": "Trimester 1", "overrides": [{"row_index": 0, "lecturer": "李四"}]}`)
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("覆盖应返回 200/0，实际 %d/%d: %s", w.Code, env.Code, w.Body.String())
	}
	if err := json.Unmarshal(env.Data, &table); err != nil {
		t.Fatalf("结果表解析失败: %v", err)
	}
	if table.Status != "committed" || table.Rows[0].Lecturer != "李四" {
		t.Fatalf("覆盖后结果不符: %s", env.Data)
	}

	// 年度汇总
	w, env = doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+sid+"/workload/annual", "")
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("年度汇总应返回 200/0，实际 %d/%d", w.Code, env.Code)
	}
	var annual struct {
		Trimesters []string `json:"trimesters"`
		Rows       []struct {
			Lecturer string `json:"lecturer"`
			Total    int    `json:"total"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(env.Data, &annual); err != nil {
		t.Fatalf("年度汇总解析失败: %v", err)
	}
	if len(annual.Trimesters) != 3 || len(annual.Rows) != 2 {
		t.Fatalf("年度汇总结构不符: %s", env.Data)
	}
	for _, row := range annual.Rows {
		switch row.Lecturer {
		case "李四":
			if row.Total != 60 {
				t.Errorf("李四年度合计期望 60，实际 %d", row.Total)
			}
		case "张三":
			if row.Total != 0 {
				t.Errorf("张三年度合计期望 0，实际 %d", row.Total)
			}
		}
	}

	// 导出
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/sessions/"+sid+"/export/assignments?trimester=Trimester%201", nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("导出应返回 200，实际 %d: %s", w2.Code, w2.Body.String())
	}
	if ct := w2.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("导出 Content-Type 不符: %q", ct)
	}
	if !bytes.HasPrefix(w2.Body.Bytes(), []byte("PK")) {
		t.Error("导出内容应为 xlsx (zip) 文件")
	}
}

func TestRouter_ErrorMapping(t *testing.T) {
	r := setupTestRouter()
	sid := createTestSession(t, r)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   int
	}{
		{"会话不存在", http.MethodGet, "/api/v1/sessions/nonexistent", "", http.StatusNotFound, 11101},
		{"参数校验失败", http.MethodPost, "/api/v1/sessions", `{"lecturers": []}`, http.StatusBadRequest, 11001},
		{"学期无模块", http.MethodPost, "/api/v1/sessions/" + sid + "/assignments/run", `{"trimester": "Trimester 9"}`, http.StatusBadRequest, 12101},
		{"缺少 trimester", http.MethodGet, "/api/v1/sessions/" + sid + "/assignments", "", http.StatusBadRequest, 12001},
		{"未运行指派", http.MethodGet, "/api/v1/sessions/" + sid + "/assignments?trimester=Trimester%201", "", http.StatusBadRequest, 12102},
		{"导出无结果", http.MethodGet, "/api/v1/sessions/" + sid + "/export/assignments?trimester=Trimester%201", "", http.StatusNotFound, 14101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doJSON(t, r, tt.method, tt.path, tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("期望 HTTP %d，实际 %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if env.Code != tt.wantCode {
				t.Errorf("期望业务码 %d，实际 %d", tt.wantCode, env.Code)
			}
		})
	}
}

func TestRouter_DeleteSession(t *testing.T) {
	r := setupTestRouter()
	sid := createTestSession(t, r)

	w, env := doJSON(t, r, http.MethodDelete, "/api/v1/sessions/"+sid, "")
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("删除应返回 200/0，实际 %d/%d", w.Code, env.Code)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+sid, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("删除后查询期望 404，实际 %d", w.Code)
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	r := setupTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("响应应携带 X-Request-ID")
	}

	// 客户端给定的请求 ID 原样透传
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "test-id-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "test-id-123" {
		t.Errorf("期望透传 test-id-123，实际 %q", got)
	}
}

