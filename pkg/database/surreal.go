package database

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"strategic-planning-backend/pkg/models"
	"strategic-planning-backend/pkg/utils"
)

// SurrealStore 基于 SurrealDB 的文档存储实现。所有访问都通过参数化
// SurrealQL（type::thing / type::table），禁止字符串拼接用户输入。
type SurrealStore struct {
	db *surrealdb.DB
}

// NewSurrealStore 建立 websocket 连接并选择命名空间与数据库。
// 必须使用 surrealcbor 编解码器，否则记录 id 与时间字段会按默认
// 编码损坏。
func NewSurrealStore(wsURL, namespace, db, username, password string) (*SurrealStore, error) {
	ctx := context.Background()

	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	conf := connection.NewConfig(u)
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	conn := gorillaws.New(conf)

	sdb, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if username != "" && password != "" {
		if _, err := sdb.SignIn(ctx, map[string]any{
			"user": username,
			"pass": password,
		}); err != nil {
			return nil, fmt.Errorf("authenticate: %w", err)
		}
	}

	if err := sdb.Use(ctx, namespace, db); err != nil {
		return nil, fmt.Errorf("use namespace/database: %w", err)
	}

	return &SurrealStore{db: sdb}, nil
}

// HealthCheck 执行一条空查询确认连接可用
func (s *SurrealStore) HealthCheck(ctx context.Context) error {
	_, err := surrealdb.Query[any](ctx, s.db, "RETURN 1", nil)
	return err
}

// Close 关闭连接
func (s *SurrealStore) Close() error {
	return s.db.Close(context.Background())
}

// content 把文档转成 CONTENT 参数：JSON 往返后去掉 id 字段，
// 记录 id 由 type::thing 决定。
func content(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	delete(m, "id")
	return m, nil
}

func rows[T any](res *[]surrealdb.QueryResult[[]T], err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if res == nil || len(*res) == 0 {
		return nil, nil
	}
	return (*res)[0].Result, nil
}

func surrealCreate[T any](ctx context.Context, s *SurrealStore, table, id string, doc T) error {
	data, err := content(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", table, err)
	}
	_, err = surrealdb.Query[any](ctx, s.db, "CREATE type::thing($tb, $id) CONTENT $data", map[string]any{
		"tb": table, "id": id, "data": data,
	})
	if err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	return nil
}

func surrealGet[T any](ctx context.Context, s *SurrealStore, table, id string) (*T, error) {
	out, err := rows(surrealdb.Query[[]T](ctx, s.db,
		"SELECT *, record::id(id) AS id FROM type::thing($tb, $id)", map[string]any{
			"tb": table, "id": id,
		}))
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", table, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	return &out[0], nil
}

func surrealListAll[T any](ctx context.Context, s *SurrealStore, table string) ([]T, error) {
	out, err := rows(surrealdb.Query[[]T](ctx, s.db,
		"SELECT *, record::id(id) AS id FROM type::table($tb) ORDER BY created_at", map[string]any{
			"tb": table,
		}))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return out, nil
}

// surrealList 按单字段过滤；field 只接受包内常量，值走参数绑定。
func surrealList[T any](ctx context.Context, s *SurrealStore, table, field, value string) ([]T, error) {
	query := fmt.Sprintf("SELECT *, record::id(id) AS id FROM type::table($tb) WHERE %s = $value ORDER BY created_at", field)
	out, err := rows(surrealdb.Query[[]T](ctx, s.db, query, map[string]any{
		"tb": table, "value": value,
	}))
	if err != nil {
		return nil, fmt.Errorf("list %s by %s: %w", table, field, err)
	}
	return out, nil
}

func surrealFind[T any](ctx context.Context, s *SurrealStore, table, field, value string) (*T, error) {
	out, err := surrealList[T](ctx, s, table, field, value)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s by %s: %w", table, field, ErrNotFound)
	}
	return &out[0], nil
}

func surrealUpdate[T any](ctx context.Context, s *SurrealStore, table, id string, doc T) error {
	data, err := content(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", table, err)
	}
	out, err := rows(surrealdb.Query[[]any](ctx, s.db,
		"UPDATE type::thing($tb, $id) CONTENT $data", map[string]any{
			"tb": table, "id": id, "data": data,
		}))
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if len(out) == 0 {
		return fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	return nil
}

func surrealDelete(ctx context.Context, s *SurrealStore, table, id string) error {
	_, err := surrealdb.Query[any](ctx, s.db, "DELETE type::thing($tb, $id)", map[string]any{
		"tb": table, "id": id,
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

// ==== 用户 ====

func (s *SurrealStore) CreateUser(ctx context.Context, user *models.User) error {
	// 先查唯一字段；无事务，并发注册窗口内的竞态是已记录的缺口
	if _, err := surrealFind[userDoc](ctx, s, colUsers, "email", user.Email); err == nil {
		return fmt.Errorf("user email %q: %w", user.Email, ErrDuplicate)
	}
	if _, err := surrealFind[userDoc](ctx, s, colUsers, "name", user.Name); err == nil {
		return fmt.Errorf("user name %q: %w", user.Name, ErrDuplicate)
	}
	if user.ID == "" {
		user.ID = utils.NewObjectID()
	}
	user.CreatedAt = nowStamp()
	user.UpdatedAt = user.CreatedAt
	return surrealCreate(ctx, s, colUsers, user.ID, toUserDoc(user))
}

func (s *SurrealStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	doc, err := surrealGet[userDoc](ctx, s, colUsers, id)
	if err != nil {
		return nil, err
	}
	user := doc.toUser()
	return &user, nil
}

func (s *SurrealStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	doc, err := surrealFind[userDoc](ctx, s, colUsers, "email", email)
	if err != nil {
		return nil, err
	}
	user := doc.toUser()
	return &user, nil
}

func (s *SurrealStore) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	doc, err := surrealFind[userDoc](ctx, s, colUsers, "name", name)
	if err != nil {
		return nil, err
	}
	user := doc.toUser()
	return &user, nil
}

func (s *SurrealStore) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("empty reset token: %w", ErrNotFound)
	}
	doc, err := surrealFind[userDoc](ctx, s, colUsers, "resetPasswordToken", token)
	if err != nil {
		return nil, err
	}
	user := doc.toUser()
	return &user, nil
}

func (s *SurrealStore) ListUsers(ctx context.Context) ([]models.User, error) {
	docs, err := surrealListAll[userDoc](ctx, s, colUsers)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toUser())
	}
	return users, nil
}

func (s *SurrealStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = nowStamp()
	return surrealUpdate(ctx, s, colUsers, user.ID, toUserDoc(user))
}

// ==== 战略规划 ====

func (s *SurrealStore) CreatePlan(ctx context.Context, plan *models.StrategicPlan) error {
	if plan.ID == "" {
		plan.ID = utils.NewObjectID()
	}
	plan.CreatedAt = nowStamp()
	plan.UpdatedAt = plan.CreatedAt
	return surrealCreate(ctx, s, colPlans, plan.ID, *plan)
}

func (s *SurrealStore) GetPlan(ctx context.Context, id string) (*models.StrategicPlan, error) {
	return surrealGet[models.StrategicPlan](ctx, s, colPlans, id)
}

func (s *SurrealStore) ListPlans(ctx context.Context) ([]models.StrategicPlan, error) {
	return surrealListAll[models.StrategicPlan](ctx, s, colPlans)
}

func (s *SurrealStore) ListPlansByMember(ctx context.Context, userID string) ([]models.StrategicPlan, error) {
	out, err := rows(surrealdb.Query[[]models.StrategicPlan](ctx, s.db,
		"SELECT *, record::id(id) AS id FROM type::table($tb) WHERE $userId IN members_ListIDS ORDER BY created_at",
		map[string]any{"tb": colPlans, "userId": userID}))
	if err != nil {
		return nil, fmt.Errorf("list %s by member: %w", colPlans, err)
	}
	return out, nil
}

func (s *SurrealStore) UpdatePlan(ctx context.Context, plan *models.StrategicPlan) error {
	plan.UpdatedAt = nowStamp()
	return surrealUpdate(ctx, s, colPlans, plan.ID, *plan)
}

func (s *SurrealStore) DeletePlan(ctx context.Context, id string) error {
	return surrealDelete(ctx, s, colPlans, id)
}

// ==== 目标 ====

func (s *SurrealStore) CreateObjective(ctx context.Context, o *models.Objective) error {
	if o.ID == "" {
		o.ID = utils.NewObjectID()
	}
	o.CreatedAt = nowStamp()
	o.UpdatedAt = o.CreatedAt
	return surrealCreate(ctx, s, colObjectives, o.ID, *o)
}

func (s *SurrealStore) GetObjective(ctx context.Context, id string) (*models.Objective, error) {
	return surrealGet[models.Objective](ctx, s, colObjectives, id)
}

func (s *SurrealStore) ListObjectivesByPlan(ctx context.Context, planID string) ([]models.Objective, error) {
	return surrealList[models.Objective](ctx, s, colObjectives, "planId", planID)
}

func (s *SurrealStore) UpdateObjective(ctx context.Context, o *models.Objective) error {
	o.UpdatedAt = nowStamp()
	return surrealUpdate(ctx, s, colObjectives, o.ID, *o)
}

func (s *SurrealStore) DeleteObjective(ctx context.Context, id string) error {
	return surrealDelete(ctx, s, colObjectives, id)
}

// ==== 具体目标 ====

func (s *SurrealStore) CreateGoal(ctx context.Context, g *models.Goal) error {
	if g.ID == "" {
		g.ID = utils.NewObjectID()
	}
	g.CreatedAt = nowStamp()
	g.UpdatedAt = g.CreatedAt
	return surrealCreate(ctx, s, colGoals, g.ID, *g)
}

func (s *SurrealStore) GetGoal(ctx context.Context, id string) (*models.Goal, error) {
	return surrealGet[models.Goal](ctx, s, colGoals, id)
}

func (s *SurrealStore) ListGoalsByObjective(ctx context.Context, objectiveID string) ([]models.Goal, error) {
	return surrealList[models.Goal](ctx, s, colGoals, "objectiveId", objectiveID)
}

func (s *SurrealStore) UpdateGoal(ctx context.Context, g *models.Goal) error {
	g.UpdatedAt = nowStamp()
	return surrealUpdate(ctx, s, colGoals, g.ID, *g)
}

func (s *SurrealStore) DeleteGoal(ctx context.Context, id string) error {
	return surrealDelete(ctx, s, colGoals, id)
}

// ==== 活动 ====

func (s *SurrealStore) CreateActivity(ctx context.Context, a *models.Activity) error {
	if a.ID == "" {
		a.ID = utils.NewObjectID()
	}
	a.CreatedAt = nowStamp()
	a.UpdatedAt = a.CreatedAt
	return surrealCreate(ctx, s, colActivities, a.ID, *a)
}

func (s *SurrealStore) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	return surrealGet[models.Activity](ctx, s, colActivities, id)
}

func (s *SurrealStore) ListActivitiesByGoal(ctx context.Context, goalID string) ([]models.Activity, error) {
	return surrealList[models.Activity](ctx, s, colActivities, "goalId", goalID)
}

func (s *SurrealStore) UpdateActivity(ctx context.Context, a *models.Activity) error {
	a.UpdatedAt = nowStamp()
	return surrealUpdate(ctx, s, colActivities, a.ID, *a)
}

func (s *SurrealStore) DeleteActivity(ctx context.Context, id string) error {
	return surrealDelete(ctx, s, colActivities, id)
}

// ==== 指标 ====

func (s *SurrealStore) CreateIndicator(ctx context.Context, in *models.Indicator) error {
	if in.ID == "" {
		in.ID = utils.NewObjectID()
	}
	in.CreatedAt = nowStamp()
	in.UpdatedAt = in.CreatedAt
	return surrealCreate(ctx, s, colIndicators, in.ID, *in)
}

func (s *SurrealStore) GetIndicator(ctx context.Context, id string) (*models.Indicator, error) {
	return surrealGet[models.Indicator](ctx, s, colIndicators, id)
}

func (s *SurrealStore) ListIndicatorsByActivity(ctx context.Context, activityID string) ([]models.Indicator, error) {
	return surrealList[models.Indicator](ctx, s, colIndicators, "activityId", activityID)
}

func (s *SurrealStore) ListIndicatorsByOperationalPlan(ctx context.Context, opPlanID string) ([]models.Indicator, error) {
	return surrealList[models.Indicator](ctx, s, colIndicators, "operationalPlanId", opPlanID)
}

func (s *SurrealStore) UpdateIndicator(ctx context.Context, in *models.Indicator) error {
	in.UpdatedAt = nowStamp()
	return surrealUpdate(ctx, s, colIndicators, in.ID, *in)
}

func (s *SurrealStore) DeleteIndicator(ctx context.Context, id string) error {
	return surrealDelete(ctx, s, colIndicators, id)
}

// ==== 运营计划 ====

func (s *SurrealStore) CreateOperationalPlan(ctx context.Context, op *models.OperationalPlan) error {
	if op.ID == "" {
		op.ID = utils.NewObjectID()
	}
	op.CreatedAt = nowStamp()
	op.UpdatedAt = op.CreatedAt
	return surrealCreate(ctx, s, colOperationalPlans, op.ID, *op)
}

func (s *SurrealStore) GetOperationalPlan(ctx context.Context, id string) (*models.OperationalPlan, error) {
	return surrealGet[models.OperationalPlan](ctx, s, colOperationalPlans, id)
}

func (s *SurrealStore) ListOperationalPlansByPlan(ctx context.Context, planID string) ([]models.OperationalPlan, error) {
	return surrealList[models.OperationalPlan](ctx, s, colOperationalPlans, "planId", planID)
}

func (s *SurrealStore) UpdateOperationalPlan(ctx context.Context, op *models.OperationalPlan) error {
	op.UpdatedAt = nowStamp()
	return surrealUpdate(ctx, s, colOperationalPlans, op.ID, *op)
}

func (s *SurrealStore) DeleteOperationalPlan(ctx context.Context, id string) error {
	return surrealDelete(ctx, s, colOperationalPlans, id)
}

// ==== 分析卡片 ====

func (s *SurrealStore) CreateCard(ctx context.Context, c *models.CardAnalysis) error {
	if c.ID == "" {
		c.ID = utils.NewObjectID()
	}
	c.CreatedAt = nowStamp()
	c.UpdatedAt = c.CreatedAt
	return surrealCreate(ctx, s, colCards, c.ID, *c)
}

func (s *SurrealStore) GetCard(ctx context.Context, id string) (*models.CardAnalysis, error) {
	return surrealGet[models.CardAnalysis](ctx, s, colCards, id)
}

func (s *SurrealStore) ListCardsByPlan(ctx context.Context, planID string) ([]models.CardAnalysis, error) {
	return surrealList[models.CardAnalysis](ctx, s, colCards, "planId", planID)
}

func (s *SurrealStore) DeleteCard(ctx context.Context, id string) error {
	return surrealDelete(ctx, s, colCards, id)
}
