package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"edu-workload/backend/config"
	"edu-workload/backend/internal/dto"
	"edu-workload/backend/internal/model"
	"edu-workload/backend/internal/store"
)

// ── 会话模块业务错误 ──

var (
	ErrSessionNotFound = errors.New("会话不存在")
	ErrDuplicateModule = errors.New("模块代码在同一学期内重复")
	ErrNoLecturerRows  = errors.New("讲师输入表为空")
	ErrNoModuleRows    = errors.New("模块输入表为空")
)

// SessionService 会话业务接口
// 会话承载一次完整的工作量分配过程：输入表、资格关系与各学期快照
type SessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Get(ctx context.Context, id string) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id string) error
}

type sessionService struct {
	cfg    *config.Config
	store  store.SessionStore
	logger *zap.Logger
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(cfg *config.Config, st store.SessionStore, logger *zap.Logger) SessionService {
	return &sessionService{cfg: cfg, store: st, logger: logger}
}

// ────────────────────── Create ──────────────────────
//
// 输入装配规则：
//   - 讲师按姓名去重，周课时上限取首次出现的值
//   - (讲师, 模块) 资格关系去重，保持输入顺序
//   - 模块代码在同一学期内必须唯一

func (s *sessionService) Create(_ context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if len(req.Lecturers) == 0 {
		return nil, ErrNoLecturerRows
	}
	if len(req.Modules) == 0 {
		return nil, ErrNoModuleRows
	}

	// 1. 讲师去重 + 上限表
	caps := make(map[string]int)
	var lecturers []model.Lecturer
	eligibility := make(map[string][]string)
	pairSeen := make(map[string]bool)

	for _, row := range req.Lecturers {
		name := strings.TrimSpace(row.TeacherName)
		code := strings.TrimSpace(row.ModuleCode)

		weeklyCap := s.cfg.Engine.DefaultWeeklyCap
		if row.WeeklyWorkload != nil {
			weeklyCap = *row.WeeklyWorkload
		}

		if existing, ok := caps[name]; ok {
			// 同名讲师以首次出现的上限为准
			if row.WeeklyWorkload != nil && existing != weeklyCap {
				s.logger.Warn("讲师周课时上限在输入中不一致，以首次出现的值为准",
					zap.String("lecturer", name),
					zap.Int("kept", existing),
					zap.Int("ignored", weeklyCap),
				)
			}
		} else {
			caps[name] = weeklyCap
			lecturers = append(lecturers, model.Lecturer{Name: name, WeeklyCap: weeklyCap})
		}

		pairKey := name + "\x00" + code
		if !pairSeen[pairKey] {
			pairSeen[pairKey] = true
			eligibility[code] = append(eligibility[code], name)
		}
	}

	// 2. 模块装配 + 学期内唯一性校验
	var modules []model.Module
	codeSeen := make(map[string]bool)
	for _, row := range req.Modules {
		code := strings.TrimSpace(row.Code)
		trimester := strings.TrimSpace(row.WhenToTakePlace)

		key := trimester + "\x00" + code
		if codeSeen[key] {
			return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicateModule, code, trimester)
		}
		codeSeen[key] = true

		modules = append(modules, model.Module{
			Code:         code,
			Name:         strings.TrimSpace(row.ModuleName),
			Credits:      row.Credits,
			Cohort:       row.Cohort,
			Programme:    row.Programme,
			StudentCount: row.NumberOfStudents,
			Trimester:    trimester,
		})
	}

	session := &model.Session{
		ID:          uuid.New().String(),
		Lecturers:   lecturers,
		Modules:     modules,
		Eligibility: eligibility,
		Caps:        caps,
		Trimesters:  make(map[string]*model.TrimesterState),
		CreatedAt:   time.Now(),
	}
	s.store.Put(session)

	s.logger.Info("会话已创建",
		zap.String("session_id", session.ID),
		zap.Int("lecturers", len(lecturers)),
		zap.Int("modules", len(modules)),
	)

	return s.toSessionResponse(session), nil
}

// ────────────────────── Get ──────────────────────

func (s *sessionService) Get(_ context.Context, id string) (*dto.SessionResponse, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return s.toSessionResponse(session), nil
}

// ────────────────────── Delete ──────────────────────

func (s *sessionService) Delete(_ context.Context, id string) error {
	if err := s.store.Delete(id); err != nil {
		return ErrSessionNotFound
	}
	s.logger.Info("会话已释放", zap.String("session_id", id))
	return nil
}

// ── 内部辅助方法 ──

func (s *sessionService) toSessionResponse(session *model.Session) *dto.SessionResponse {
	// 学期标签：模块输入中出现的标签按首见顺序，附带当前状态
	var labels []string
	labelSeen := make(map[string]bool)
	for _, m := range session.Modules {
		if !labelSeen[m.Trimester] {
			labelSeen[m.Trimester] = true
			labels = append(labels, m.Trimester)
		}
	}
	// 快照中存在但模块表未覆盖的标签也一并呈现
	var extras []string
	for label := range session.Trimesters {
		if !labelSeen[label] {
			labelSeen[label] = true
			extras = append(extras, label)
		}
	}
	sort.Strings(extras)
	labels = append(labels, extras...)

	trimesters := make([]dto.TrimesterBrief, 0, len(labels))
	for _, label := range labels {
		trimesters = append(trimesters, dto.TrimesterBrief{
			Label:  label,
			Status: string(session.State(label).Status),
		})
	}

	return &dto.SessionResponse{
		ID:            session.ID,
		LecturerCount: len(session.Lecturers),
		ModuleCount:   len(session.Modules),
		Caps:          model.CloneLedger(session.Caps),
		Trimesters:    trimesters,
		CreatedAt:     session.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
