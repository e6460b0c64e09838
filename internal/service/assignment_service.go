package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"edu-workload/backend/config"
	"edu-workload/backend/internal/dto"
	"edu-workload/backend/internal/model"
	"edu-workload/backend/internal/store"
)

// ── 指派模块业务错误 ──

var (
	ErrTrimesterNoModules = errors.New("该学期下无任何模块")
	ErrAssignmentNotRun   = errors.New("该学期尚未运行指派")
)

// AssignmentService 分班与讲师指派业务接口
type AssignmentService interface {
	// Run 运行指派：已提交学期幂等返回快照，否则重新计算（草稿）
	Run(ctx context.Context, sessionID, trimester string) (*dto.AssignmentTableResponse, error)
	// Reset 丢弃学期快照，下次运行重新计算
	Reset(ctx context.Context, sessionID, trimester string) error
	// Get 读取学期当前状态（快照或草稿），不触发计算
	Get(ctx context.Context, sessionID, trimester string) (*dto.AssignmentTableResponse, error)
}

type assignmentService struct {
	cfg    *config.Config
	store  store.SessionStore
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(cfg *config.Config, st store.SessionStore, logger *zap.Logger) AssignmentService {
	return &assignmentService{cfg: cfg, store: st, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Run — 3 阶段贪心指派
// ════════════════════════════════════════════════════════════

func (s *assignmentService) Run(_ context.Context, sessionID, trimester string) (*dto.AssignmentTableResponse, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	// 已提交学期：幂等返回快照，重选学期不丢失用户确认过的结果
	if state, ok := session.Trimesters[trimester]; ok && state.Status == model.StatusCommitted {
		return toTableResponse(trimester, state, session.Caps), nil
	}

	state, err := runEngine(session, trimester, &s.cfg.Engine)
	if err != nil {
		return nil, err
	}

	session.Trimesters[trimester] = state

	assigned := 0
	for i := range state.Table {
		if state.Table[i].Assigned() {
			assigned++
		}
	}
	s.logger.Info("指派完成",
		zap.String("session_id", sessionID),
		zap.String("trimester", trimester),
		zap.Int("groups", len(state.Table)),
		zap.Int("assigned", assigned),
		zap.Int("warnings", len(state.Warnings)),
	)

	return toTableResponse(trimester, state, session.Caps), nil
}

// ────────────────────── Reset ──────────────────────

func (s *assignmentService) Reset(_ context.Context, sessionID, trimester string) error {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return ErrSessionNotFound
	}

	delete(session.Trimesters, trimester)
	s.logger.Info("学期快照已重置",
		zap.String("session_id", sessionID),
		zap.String("trimester", trimester),
	)
	return nil
}

// ────────────────────── Get ──────────────────────

func (s *assignmentService) Get(_ context.Context, sessionID, trimester string) (*dto.AssignmentTableResponse, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	state, ok := session.Trimesters[trimester]
	if !ok {
		return nil, ErrAssignmentNotRun
	}
	return toTableResponse(trimester, state, session.Caps), nil
}

// ════════════════════════════════════════════════════════════
// runEngine — 指派引擎核心（Run 与覆盖提交共用）
// ════════════════════════════════════════════════════════════
//
// 阶段1: 过滤学期模块并按学分政策标注周课时
// 阶段2: 分班展开（每模块 → 若干班级，展开顺序 = 模块输入顺序 × 班级序号）
// 阶段3: 逐班贪心指派：可授讲师按剩余容量降序（稳定排序，输入顺序破平），
//        取首个满足 已承诺 + 周课时 ≤ 上限 的讲师；无人满足则记为未指派
//
// 容量不足不是错误：未指派行连同警告一并进入输出，由用户人工干预

func runEngine(session *model.Session, trimester string, eng *config.EngineConfig) (*model.TrimesterState, error) {
	// ── 阶段1: 学期过滤 + 课时标注 ──
	type annotated struct {
		module model.Module
		hours  int
	}
	var selected []annotated
	for _, m := range session.Modules {
		if m.Trimester != trimester {
			continue
		}
		selected = append(selected, annotated{module: m, hours: WeeklyHoursForCredits(m.Credits)})
	}
	if len(selected) == 0 {
		return nil, ErrTrimesterNoModules
	}

	ledger := make(map[string]int)
	var table []model.AssignmentRow
	warnings := make([]string, 0)

	for _, a := range selected {
		m := a.module

		// ── 阶段2: 分班 ──
		sizes, feasible := SplitGroups(m.StudentCount, eng.MinGroupSize, eng.MaxGroupSize)
		if !feasible {
			warnings = append(warnings, fmt.Sprintf(
				"模块 %s 无法按 [%d, %d] 人数约束分班，%d 人整建制为一个班",
				m.Code, eng.MinGroupSize, eng.MaxGroupSize, m.StudentCount))
		}

		// ── 阶段3: 逐班贪心指派 ──
		for gi, size := range sizes {
			row := model.AssignmentRow{
				ModuleCode:  m.Code,
				ModuleName:  m.Name,
				Credits:     m.Credits,
				Cohort:      m.Cohort,
				Programme:   m.Programme,
				WeeklyHours: a.hours,
				GroupSize:   size,
				GroupNumber: gi + 1,
				Trimester:   trimester,
			}

			eligible := session.Eligibility[m.Code]
			for _, name := range eligible {
				if _, ok := ledger[name]; !ok {
					ledger[name] = 0
				}
			}

			// 剩余容量降序；稳定排序保证输入顺序破平
			candidates := append([]string(nil), eligible...)
			sort.SliceStable(candidates, func(i, j int) bool {
				ri := session.Caps[candidates[i]] - ledger[candidates[i]]
				rj := session.Caps[candidates[j]] - ledger[candidates[j]]
				return ri > rj
			})

			for _, name := range candidates {
				if ledger[name]+a.hours <= session.Caps[name] {
					chosen := name
					row.Lecturer = &chosen
					ledger[name] += a.hours
					break
				}
			}

			if !row.Assigned() {
				warnings = append(warnings, fmt.Sprintf(
					"模块 %s 第 %d 班（%d 课时/周）无剩余容量足够的可授讲师",
					m.Code, gi+1, a.hours))
			}

			table = append(table, row)
		}
	}

	return &model.TrimesterState{
		Status:   model.StatusDraft,
		Table:    table,
		Ledger:   ledger,
		Warnings: warnings,
	}, nil
}

// toTableResponse 转换学期状态为响应
func toTableResponse(trimester string, state *model.TrimesterState, caps map[string]int) *dto.AssignmentTableResponse {
	rows := make([]dto.AssignmentRowResponse, 0, len(state.Table))
	for i := range state.Table {
		r := &state.Table[i]
		resp := dto.AssignmentRowResponse{
			Assigned:    r.Assigned(),
			ModuleCode:  r.ModuleCode,
			ModuleName:  r.ModuleName,
			Credits:     r.Credits,
			Cohort:      r.Cohort,
			Programme:   r.Programme,
			WeeklyHours: r.WeeklyHours,
			GroupSize:   r.GroupSize,
			GroupNumber: r.GroupNumber,
			Trimester:   r.Trimester,
		}
		if r.Lecturer != nil {
			resp.Lecturer = *r.Lecturer
		}
		rows = append(rows, resp)
	}

	return &dto.AssignmentTableResponse{
		Trimester: trimester,
		Status:    string(state.Status),
		Rows:      rows,
		Ledger:    model.CloneLedger(state.Ledger),
		Caps:      model.CloneLedger(caps),
		Warnings:  append([]string(nil), state.Warnings...),
	}
}
