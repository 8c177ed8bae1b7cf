package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"strategic-planning-backend/pkg/config"
	"strategic-planning-backend/pkg/models"
)

// Sentinel errors shared by every store implementation.
var (
	// ErrNotFound 查询的文档不存在
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate 唯一字段冲突（用户名或邮箱）
	ErrDuplicate = errors.New("duplicate document")
)

// Store 定义文档数据库访问接口
type Store interface {
	// 用户管理
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByName(ctx context.Context, name string) (*models.User, error)
	GetUserByResetToken(ctx context.Context, token string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error

	// 战略规划
	CreatePlan(ctx context.Context, plan *models.StrategicPlan) error
	GetPlan(ctx context.Context, id string) (*models.StrategicPlan, error)
	ListPlans(ctx context.Context) ([]models.StrategicPlan, error)
	ListPlansByMember(ctx context.Context, userID string) ([]models.StrategicPlan, error)
	UpdatePlan(ctx context.Context, plan *models.StrategicPlan) error
	DeletePlan(ctx context.Context, id string) error

	// 目标层级
	CreateObjective(ctx context.Context, o *models.Objective) error
	GetObjective(ctx context.Context, id string) (*models.Objective, error)
	ListObjectivesByPlan(ctx context.Context, planID string) ([]models.Objective, error)
	UpdateObjective(ctx context.Context, o *models.Objective) error
	DeleteObjective(ctx context.Context, id string) error

	CreateGoal(ctx context.Context, g *models.Goal) error
	GetGoal(ctx context.Context, id string) (*models.Goal, error)
	ListGoalsByObjective(ctx context.Context, objectiveID string) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, g *models.Goal) error
	DeleteGoal(ctx context.Context, id string) error

	CreateActivity(ctx context.Context, a *models.Activity) error
	GetActivity(ctx context.Context, id string) (*models.Activity, error)
	ListActivitiesByGoal(ctx context.Context, goalID string) ([]models.Activity, error)
	UpdateActivity(ctx context.Context, a *models.Activity) error
	DeleteActivity(ctx context.Context, id string) error

	CreateIndicator(ctx context.Context, in *models.Indicator) error
	GetIndicator(ctx context.Context, id string) (*models.Indicator, error)
	ListIndicatorsByActivity(ctx context.Context, activityID string) ([]models.Indicator, error)
	ListIndicatorsByOperationalPlan(ctx context.Context, opPlanID string) ([]models.Indicator, error)
	UpdateIndicator(ctx context.Context, in *models.Indicator) error
	DeleteIndicator(ctx context.Context, id string) error

	// 运营计划
	CreateOperationalPlan(ctx context.Context, op *models.OperationalPlan) error
	GetOperationalPlan(ctx context.Context, id string) (*models.OperationalPlan, error)
	ListOperationalPlansByPlan(ctx context.Context, planID string) ([]models.OperationalPlan, error)
	UpdateOperationalPlan(ctx context.Context, op *models.OperationalPlan) error
	DeleteOperationalPlan(ctx context.Context, id string) error

	// SWOT/CAME 卡片
	CreateCard(ctx context.Context, c *models.CardAnalysis) error
	GetCard(ctx context.Context, id string) (*models.CardAnalysis, error)
	ListCardsByPlan(ctx context.Context, planID string) ([]models.CardAnalysis, error)
	DeleteCard(ctx context.Context, id string) error

	// 健康检查
	HealthCheck(ctx context.Context) error

	// 关闭连接
	Close() error
}

// NewStore 根据配置选择数据库实现：配置了 SurrealDB 端点时使用
// SurrealDB，否则退回本地 JSON 文件存储（开发与测试用）。
func NewStore(cfg *config.Config) (Store, error) {
	if cfg.SurrealURL != "" {
		slog.Info("Using SurrealDB store", "url", cfg.SurrealURL, "ns", cfg.SurrealNamespace, "db", cfg.SurrealDatabase)
		store, err := NewSurrealStore(cfg.SurrealURL, cfg.SurrealNamespace, cfg.SurrealDatabase, cfg.SurrealUser, cfg.SurrealPass)
		if err != nil {
			return nil, fmt.Errorf("surrealdb store: %w", err)
		}
		return store, nil
	}

	slog.Info("Using local file store", "dir", cfg.DataDir)
	store, err := NewLocalStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("local store: %w", err)
	}
	return store, nil
}

// userDoc 是 User 的持久化形态：凭据字段在 API 序列化中隐藏
// （json:"-"），但必须写入存储。
type userDoc struct {
	models.User
	Password             string `json:"password,omitempty"`
	ResetPasswordToken   string `json:"resetPasswordToken,omitempty"`
	ResetPasswordExpires string `json:"resetPasswordExpires,omitempty"`
}

func toUserDoc(u *models.User) userDoc {
	return userDoc{
		User:                 *u,
		Password:             u.Password,
		ResetPasswordToken:   u.ResetPasswordToken,
		ResetPasswordExpires: u.ResetPasswordExpires,
	}
}

func (d userDoc) toUser() models.User {
	u := d.User
	u.Password = d.Password
	u.ResetPasswordToken = d.ResetPasswordToken
	u.ResetPasswordExpires = d.ResetPasswordExpires
	return u
}
