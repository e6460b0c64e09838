package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"edu-workload/backend/config"
	"edu-workload/backend/internal/dto"
	"edu-workload/backend/internal/store"
)

// ── 测试辅助 ──

// testConfig 与 config.Load 的默认值保持一致
func testConfig() *config.Config {
	return &config.Config{
		Engine: config.EngineConfig{
			MinGroupSize:      30,
			MaxGroupSize:      70,
			DefaultWeeklyCap:  18,
			WeeksPerTrimester: 12,
			TrimestersPerYear: 3,
			TrimesterLabels:   []string{"Trimester 1", "Trimester 2", "Trimester 3"},
		},
	}
}

func setupTestServices(cfg *config.Config) (*Service, store.SessionStore) {
	if cfg == nil {
		cfg = testConfig()
	}
	st := store.NewMemoryStore()
	return NewService(cfg, st, zap.NewNop()), st
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

// lecturerRow 构造一条 (讲师, 模块) 资格行
func lecturerRow(name, code string, cap *int) dto.LecturerRow {
	return dto.LecturerRow{TeacherName: name, ModuleCode: code, WeeklyWorkload: cap}
}

// moduleRow 构造一条模块行
func moduleRow(code, name string, credits, students int, trimester string) dto.ModuleRow {
	return dto.ModuleRow{
		Code:             code,
		ModuleName:       name,
		Credits:          credits,
		NumberOfStudents: students,
		Cohort:           "2025A",
		Programme:        "BSc IT",
		WhenToTakePlace:  trimester,
	}
}

// mustCreateSession 创建会话并返回会话 ID
func mustCreateSession(t *testing.T, svc *Service, req *dto.CreateSessionRequest) string {
	t.Helper()
	resp, err := svc.Session.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("创建会话应成功: %v", err)
	}
	return resp.ID
}
