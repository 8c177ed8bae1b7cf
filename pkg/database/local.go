package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"strategic-planning-backend/pkg/models"
	"strategic-planning-backend/pkg/utils"
)

// 每个集合一个 JSON 文件
const (
	colUsers            = "users"
	colPlans            = "strategic_plans"
	colObjectives       = "objectives"
	colGoals            = "goals"
	colActivities       = "activities"
	colIndicators       = "indicators"
	colOperationalPlans = "operational_plans"
	colCards            = "card_analyses"
)

// LocalStore 本地文件数据库实现：每个集合一个 JSON 文件，整读整写。
// 供开发与测试使用；并发请求之间用读写锁串行化，文档层面仍是
// last-write-wins。
type LocalStore struct {
	dataDir string
	mu      sync.RWMutex
}

// NewLocalStore 创建本地存储实例
func NewLocalStore(dataDir string) (*LocalStore, error) {
	if dataDir == "" {
		dataDir = "./data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &LocalStore{dataDir: dataDir}, nil
}

// HealthCheck 确认数据目录可写
func (s *LocalStore) HealthCheck(ctx context.Context) error {
	_, err := os.Stat(s.dataDir)
	return err
}

// Close 本地存储无连接可关
func (s *LocalStore) Close() error { return nil }

func (s *LocalStore) path(collection string) string {
	return filepath.Join(s.dataDir, collection+".json")
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// readAll 读取整个集合；文件不存在视为空集合。调用方负责持锁。
func readAll[T any](s *LocalStore, collection string) ([]T, error) {
	data, err := os.ReadFile(s.path(collection))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return items, nil
}

// writeAll 原样覆盖整个集合。调用方负责持锁。
func writeAll[T any](s *LocalStore, collection string, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	if err := os.WriteFile(s.path(collection), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}

// insertDoc 追加一个文档
func insertDoc[T any](s *LocalStore, collection string, item T) error {
	items, err := readAll[T](s, collection)
	if err != nil {
		return err
	}
	return writeAll(s, collection, append(items, item))
}

// replaceDoc 按 id 替换文档
func replaceDoc[T any](s *LocalStore, collection string, id func(T) string, item T, itemID string) error {
	items, err := readAll[T](s, collection)
	if err != nil {
		return err
	}
	for i := range items {
		if id(items[i]) == itemID {
			items[i] = item
			return writeAll(s, collection, items)
		}
	}
	return fmt.Errorf("%s %s: %w", collection, itemID, ErrNotFound)
}

// removeDoc 按 id 删除文档
func removeDoc[T any](s *LocalStore, collection string, id func(T) string, itemID string) error {
	items, err := readAll[T](s, collection)
	if err != nil {
		return err
	}
	kept := items[:0]
	removed := false
	for _, it := range items {
		if id(it) == itemID {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	if !removed {
		return fmt.Errorf("%s %s: %w", collection, itemID, ErrNotFound)
	}
	return writeAll(s, collection, kept)
}

// findDoc 按谓词查找第一个文档
func findDoc[T any](s *LocalStore, collection string, match func(T) bool) (*T, error) {
	items, err := readAll[T](s, collection)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if match(items[i]) {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

// filterDocs 按谓词过滤文档
func filterDocs[T any](s *LocalStore, collection string, match func(T) bool) ([]T, error) {
	items, err := readAll[T](s, collection)
	if err != nil {
		return nil, err
	}
	var out []T
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

// ==== 用户 ====

func (s *LocalStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readAll[userDoc](s, colUsers)
	if err != nil {
		return err
	}
	for _, d := range docs {
		if d.Email == user.Email || d.Name == user.Name {
			return fmt.Errorf("user %q/%q: %w", user.Name, user.Email, ErrDuplicate)
		}
	}
	if user.ID == "" {
		user.ID = utils.NewObjectID()
	}
	user.CreatedAt = nowStamp()
	user.UpdatedAt = user.CreatedAt
	return writeAll(s, colUsers, append(docs, toUserDoc(user)))
}

func (s *LocalStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUser(func(d userDoc) bool { return d.ID == id })
}

func (s *LocalStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUser(func(d userDoc) bool { return d.Email == email })
}

func (s *LocalStore) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUser(func(d userDoc) bool { return d.Name == name })
}

func (s *LocalStore) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUser(func(d userDoc) bool { return d.ResetPasswordToken != "" && d.ResetPasswordToken == token })
}

func (s *LocalStore) findUser(match func(userDoc) bool) (*models.User, error) {
	doc, err := findDoc(s, colUsers, match)
	if err != nil {
		return nil, err
	}
	user := doc.toUser()
	return &user, nil
}

func (s *LocalStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs, err := readAll[userDoc](s, colUsers)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toUser())
	}
	return users, nil
}

func (s *LocalStore) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.UpdatedAt = nowStamp()
	return replaceDoc(s, colUsers, func(d userDoc) string { return d.ID }, toUserDoc(user), user.ID)
}

// ==== 战略规划 ====

func (s *LocalStore) CreatePlan(ctx context.Context, plan *models.StrategicPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if plan.ID == "" {
		plan.ID = utils.NewObjectID()
	}
	plan.CreatedAt = nowStamp()
	plan.UpdatedAt = plan.CreatedAt
	return insertDoc(s, colPlans, *plan)
}

func (s *LocalStore) GetPlan(ctx context.Context, id string) (*models.StrategicPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findDoc(s, colPlans, func(p models.StrategicPlan) bool { return p.ID == id })
}

func (s *LocalStore) ListPlans(ctx context.Context) ([]models.StrategicPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return readAll[models.StrategicPlan](s, colPlans)
}

func (s *LocalStore) ListPlansByMember(ctx context.Context, userID string) ([]models.StrategicPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterDocs(s, colPlans, func(p models.StrategicPlan) bool { return p.HasMember(userID) })
}

func (s *LocalStore) UpdatePlan(ctx context.Context, plan *models.StrategicPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan.UpdatedAt = nowStamp()
	return replaceDoc(s, colPlans, func(p models.StrategicPlan) string { return p.ID }, *plan, plan.ID)
}

func (s *LocalStore) DeletePlan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeDoc(s, colPlans, func(p models.StrategicPlan) string { return p.ID }, id)
}

// ==== 目标 ====

func (s *LocalStore) CreateObjective(ctx context.Context, o *models.Objective) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = utils.NewObjectID()
	}
	o.CreatedAt = nowStamp()
	o.UpdatedAt = o.CreatedAt
	return insertDoc(s, colObjectives, *o)
}

func (s *LocalStore) GetObjective(ctx context.Context, id string) (*models.Objective, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findDoc(s, colObjectives, func(o models.Objective) bool { return o.ID == id })
}

func (s *LocalStore) ListObjectivesByPlan(ctx context.Context, planID string) ([]models.Objective, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterDocs(s, colObjectives, func(o models.Objective) bool { return o.PlanID == planID })
}

func (s *LocalStore) UpdateObjective(ctx context.Context, o *models.Objective) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.UpdatedAt = nowStamp()
	return replaceDoc(s, colObjectives, func(x models.Objective) string { return x.ID }, *o, o.ID)
}

func (s *LocalStore) DeleteObjective(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeDoc(s, colObjectives, func(o models.Objective) string { return o.ID }, id)
}

// ==== 具体目标 ====

func (s *LocalStore) CreateGoal(ctx context.Context, g *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		g.ID = utils.NewObjectID()
	}
	g.CreatedAt = nowStamp()
	g.UpdatedAt = g.CreatedAt
	return insertDoc(s, colGoals, *g)
}

func (s *LocalStore) GetGoal(ctx context.Context, id string) (*models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findDoc(s, colGoals, func(g models.Goal) bool { return g.ID == id })
}

func (s *LocalStore) ListGoalsByObjective(ctx context.Context, objectiveID string) ([]models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterDocs(s, colGoals, func(g models.Goal) bool { return g.ObjectiveID == objectiveID })
}

func (s *LocalStore) UpdateGoal(ctx context.Context, g *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.UpdatedAt = nowStamp()
	return replaceDoc(s, colGoals, func(x models.Goal) string { return x.ID }, *g, g.ID)
}

func (s *LocalStore) DeleteGoal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeDoc(s, colGoals, func(g models.Goal) string { return g.ID }, id)
}

// ==== 活动 ====

func (s *LocalStore) CreateActivity(ctx context.Context, a *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = utils.NewObjectID()
	}
	a.CreatedAt = nowStamp()
	a.UpdatedAt = a.CreatedAt
	return insertDoc(s, colActivities, *a)
}

func (s *LocalStore) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findDoc(s, colActivities, func(a models.Activity) bool { return a.ID == id })
}

func (s *LocalStore) ListActivitiesByGoal(ctx context.Context, goalID string) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterDocs(s, colActivities, func(a models.Activity) bool { return a.GoalID == goalID })
}

func (s *LocalStore) UpdateActivity(ctx context.Context, a *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.UpdatedAt = nowStamp()
	return replaceDoc(s, colActivities, func(x models.Activity) string { return x.ID }, *a, a.ID)
}

func (s *LocalStore) DeleteActivity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeDoc(s, colActivities, func(a models.Activity) string { return a.ID }, id)
}

// ==== 指标 ====

func (s *LocalStore) CreateIndicator(ctx context.Context, in *models.Indicator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.ID == "" {
		in.ID = utils.NewObjectID()
	}
	in.CreatedAt = nowStamp()
	in.UpdatedAt = in.CreatedAt
	return insertDoc(s, colIndicators, *in)
}

func (s *LocalStore) GetIndicator(ctx context.Context, id string) (*models.Indicator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findDoc(s, colIndicators, func(in models.Indicator) bool { return in.ID == id })
}

func (s *LocalStore) ListIndicatorsByActivity(ctx context.Context, activityID string) ([]models.Indicator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterDocs(s, colIndicators, func(in models.Indicator) bool { return in.ActivityID == activityID })
}

func (s *LocalStore) ListIndicatorsByOperationalPlan(ctx context.Context, opPlanID string) ([]models.Indicator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterDocs(s, colIndicators, func(in models.Indicator) bool { return in.OperationalPlanID == opPlanID })
}

func (s *LocalStore) UpdateIndicator(ctx context.Context, in *models.Indicator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	in.UpdatedAt = nowStamp()
	return replaceDoc(s, colIndicators, func(x models.Indicator) string { return x.ID }, *in, in.ID)
}

func (s *LocalStore) DeleteIndicator(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeDoc(s, colIndicators, func(in models.Indicator) string { return in.ID }, id)
}

// ==== 运营计划 ====

func (s *LocalStore) CreateOperationalPlan(ctx context.Context, op *models.OperationalPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if op.ID == "" {
		op.ID = utils.NewObjectID()
	}
	op.CreatedAt = nowStamp()
	op.UpdatedAt = op.CreatedAt
	return insertDoc(s, colOperationalPlans, *op)
}

func (s *LocalStore) GetOperationalPlan(ctx context.Context, id string) (*models.OperationalPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findDoc(s, colOperationalPlans, func(op models.OperationalPlan) bool { return op.ID == id })
}

func (s *LocalStore) ListOperationalPlansByPlan(ctx context.Context, planID string) ([]models.OperationalPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterDocs(s, colOperationalPlans, func(op models.OperationalPlan) bool { return op.PlanID == planID })
}

func (s *LocalStore) UpdateOperationalPlan(ctx context.Context, op *models.OperationalPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	op.UpdatedAt = nowStamp()
	return replaceDoc(s, colOperationalPlans, func(x models.OperationalPlan) string { return x.ID }, *op, op.ID)
}

func (s *LocalStore) DeleteOperationalPlan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeDoc(s, colOperationalPlans, func(op models.OperationalPlan) string { return op.ID }, id)
}

// ==== 分析卡片 ====

func (s *LocalStore) CreateCard(ctx context.Context, c *models.CardAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = utils.NewObjectID()
	}
	c.CreatedAt = nowStamp()
	c.UpdatedAt = c.CreatedAt
	return insertDoc(s, colCards, *c)
}

func (s *LocalStore) GetCard(ctx context.Context, id string) (*models.CardAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findDoc(s, colCards, func(c models.CardAnalysis) bool { return c.ID == id })
}

func (s *LocalStore) ListCardsByPlan(ctx context.Context, planID string) ([]models.CardAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterDocs(s, colCards, func(c models.CardAnalysis) bool { return c.PlanID == planID })
}

func (s *LocalStore) DeleteCard(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeDoc(s, colCards, func(c models.CardAnalysis) string { return c.ID }, id)
}
