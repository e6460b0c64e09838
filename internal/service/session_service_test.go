package service

import (
	"context"
	"errors"
	"testing"

	"edu-workload/backend/internal/dto"
)

// ════════════════════════════════════════════════════════════
// 会话生命周期测试
// ════════════════════════════════════════════════════════════

func TestSessionService_Create(t *testing.T) {
	svc, st := setupTestServices(nil)

	resp, err := svc.Session.Create(context.Background(), &dto.CreateSessionRequest{
		Lecturers: []dto.LecturerRow{
			lecturerRow("张三", "M101", intPtr(10)),
			lecturerRow("张三", "M102", nil),
			lecturerRow("李四", "M101", nil),
		},
		Modules: []dto.ModuleRow{
			moduleRow("M101", "数据结构", 15, 40, "Trimester 1"),
			moduleRow("M102", "操作系统", 15, 40, "Trimester 2"),
		},
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if resp.ID == "" {
		t.Error("会话 ID 不应为空")
	}
	if resp.LecturerCount != 2 {
		t.Errorf("讲师按姓名去重后期望 2 人，实际 %d", resp.LecturerCount)
	}
	if resp.ModuleCount != 2 {
		t.Errorf("期望 2 个模块，实际 %d", resp.ModuleCount)
	}
	if resp.Caps["张三"] != 10 || resp.Caps["李四"] != 18 {
		t.Errorf("上限表不符: %v", resp.Caps)
	}
	if len(resp.Trimesters) != 2 {
		t.Fatalf("期望 2 个学期，实际 %d", len(resp.Trimesters))
	}
	for _, tr := range resp.Trimesters {
		if tr.Status != "unevaluated" {
			t.Errorf("新会话学期 %s 期望 unevaluated，实际 %s", tr.Label, tr.Status)
		}
	}
	if st.Count() != 1 {
		t.Errorf("存储中期望 1 个会话，实际 %d", st.Count())
	}
}

// 同名讲师上限不一致时以首次出现的值为准
func TestSessionService_Create_FirstCapWins(t *testing.T) {
	svc, _ := setupTestServices(nil)

	resp, err := svc.Session.Create(context.Background(), &dto.CreateSessionRequest{
		Lecturers: []dto.LecturerRow{
			lecturerRow("张三", "M101", intPtr(10)),
			lecturerRow("张三", "M102", intPtr(16)),
		},
		Modules: []dto.ModuleRow{
			moduleRow("M101", "数据结构", 15, 40, "Trimester 1"),
			moduleRow("M102", "操作系统", 15, 40, "Trimester 1"),
		},
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Caps["张三"] != 10 {
		t.Errorf("期望取首次出现的上限 10，实际 %d", resp.Caps["张三"])
	}
}

func TestSessionService_Create_Errors(t *testing.T) {
	svc, _ := setupTestServices(nil)
	ctx := context.Background()

	_, err := svc.Session.Create(ctx, &dto.CreateSessionRequest{
		Modules: []dto.ModuleRow{moduleRow("M101", "数据结构", 15, 40, "Trimester 1")},
	})
	if !errors.Is(err, ErrNoLecturerRows) {
		t.Errorf("期望 ErrNoLecturerRows，实际: %v", err)
	}

	_, err = svc.Session.Create(ctx, &dto.CreateSessionRequest{
		Lecturers: []dto.LecturerRow{lecturerRow("张三", "M101", nil)},
	})
	if !errors.Is(err, ErrNoModuleRows) {
		t.Errorf("期望 ErrNoModuleRows，实际: %v", err)
	}

	// 同一学期内模块代码重复
	_, err = svc.Session.Create(ctx, &dto.CreateSessionRequest{
		Lecturers: []dto.LecturerRow{lecturerRow("张三", "M101", nil)},
		Modules: []dto.ModuleRow{
			moduleRow("M101", "数据结构", 15, 40, "Trimester 1"),
			moduleRow("M101", "数据结构(重修)", 15, 30, "Trimester 1"),
		},
	})
	if !errors.Is(err, ErrDuplicateModule) {
		t.Errorf("期望 ErrDuplicateModule，实际: %v", err)
	}
}

// 同一模块代码可出现在不同学期
func TestSessionService_Create_SameCodeAcrossTrimesters(t *testing.T) {
	svc, _ := setupTestServices(nil)

	_, err := svc.Session.Create(context.Background(), &dto.CreateSessionRequest{
		Lecturers: []dto.LecturerRow{lecturerRow("张三", "M101", nil)},
		Modules: []dto.ModuleRow{
			moduleRow("M101", "数据结构", 15, 40, "Trimester 1"),
			moduleRow("M101", "数据结构", 15, 40, "Trimester 2"),
		},
	})
	if err != nil {
		t.Errorf("不同学期同代码应被允许: %v", err)
	}
}

func TestSessionService_GetDelete(t *testing.T) {
	svc, st := setupTestServices(nil)
	ctx := context.Background()
	sid := mustCreateSession(t, svc, &dto.CreateSessionRequest{
		Lecturers: []dto.LecturerRow{lecturerRow("张三", "M101", nil)},
		Modules:   []dto.ModuleRow{moduleRow("M101", "数据结构", 15, 40, "Trimester 1")},
	})

	got, err := svc.Session.Get(ctx, sid)
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if got.ID != sid {
		t.Errorf("Get 返回的 ID 不符: %q", got.ID)
	}

	// 运行指派后学期状态随之更新
	if _, err := svc.Assignment.Run(ctx, sid, "Trimester 1"); err != nil {
		t.Fatalf("Run 应成功: %v", err)
	}
	got, err = svc.Session.Get(ctx, sid)
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if got.Trimesters[0].Status != "draft" {
		t.Errorf("运行后期望 draft，实际 %s", got.Trimesters[0].Status)
	}

	if err := svc.Session.Delete(ctx, sid); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if st.Count() != 0 {
		t.Errorf("删除后存储应为空，实际 %d", st.Count())
	}
	if _, err := svc.Session.Get(ctx, sid); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("删除后 Get 期望 ErrSessionNotFound，实际: %v", err)
	}
	if err := svc.Session.Delete(ctx, sid); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("重复删除期望 ErrSessionNotFound，实际: %v", err)
	}
}
