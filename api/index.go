// Package handler exposes the HTTP entry point. All API endpoints live
// in one Chi router so the whole surface is assembled in a single place.
package handler

import (
	"fmt"
	"net/http"
	"time"

	"strategic-planning-backend/pkg/config"
	"strategic-planning-backend/pkg/database"
	"strategic-planning-backend/pkg/handlers"
	customMiddleware "strategic-planning-backend/pkg/middleware"
	"strategic-planning-backend/pkg/planning"
	"strategic-planning-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes 请求体大小上限
const maxBodyBytes = 1 << 20 // 1MB

// NewRouter 组装完整的API路由器
func NewRouter(cfg *config.Config, store database.Store) *chi.Mux {
	router := chi.NewRouter()
	setupMiddleware(router, cfg)
	setupRoutes(router, cfg, store)
	return router
}

// setupMiddleware 设置全局中间件
func setupMiddleware(router *chi.Mux, cfg *config.Config) {
	// 基础中间件
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(customMiddleware.Logger)
	router.Use(customMiddleware.Recovery(cfg))

	// CORS中间件
	router.Use(customMiddleware.CORS(cfg))

	// 超时中间件
	router.Use(middleware.Timeout(25 * time.Second))

	// 压缩中间件
	router.Use(middleware.Compress(5))

	// 请求体校验
	router.Use(customMiddleware.ContentTypeJSON)
	router.Use(customMiddleware.MaxBodySize(maxBodyBytes))

	// 开发环境额外中间件
	if cfg.IsDevelopment() {
		router.Use(middleware.Heartbeat("/ping"))
	}
}

// setupRoutes 设置所有API路由
func setupRoutes(router *chi.Mux, cfg *config.Config, store database.Store) {
	service := planning.NewService(store)

	userHandler := handlers.NewUserHandler(cfg, service)
	planHandler := handlers.NewPlanHandler(cfg, service)
	objectiveHandler := handlers.NewObjectiveHandler(cfg, service)
	goalHandler := handlers.NewGoalHandler(cfg, service)
	activityHandler := handlers.NewActivityHandler(cfg, service)
	indicatorHandler := handlers.NewIndicatorHandler(cfg, service)
	opPlanHandler := handlers.NewOperationalPlanHandler(cfg, service)
	analysisHandler := handlers.NewAnalysisHandler(cfg, service)

	// 健康检查端点
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if err := store.HealthCheck(r.Context()); err != nil {
			utils.WriteErrorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
			return
		}
		utils.WriteSuccessResponse(w, "OK", map[string]interface{}{
			"service":     "strategic-planning-backend",
			"environment": cfg.Environment,
		})
	})

	// API路由组
	router.Route("/api", func(r chi.Router) {
		// 公开路由（不需要认证）
		r.Post("/users", userHandler.Register)
		r.Post("/users/login", userHandler.Login)
		r.Post("/users/refresh-token", userHandler.RefreshToken)
		r.Post("/users/forgot-password", userHandler.ForgotPassword)
		r.Post("/users/reset-password", userHandler.ResetPassword)

		// 需要认证的路由
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.AuthMiddleware(cfg))

			// 用户相关路由
			r.Get("/users/all-users", userHandler.ListUsers)
			r.Get("/users/{id}", userHandler.GetUser)

			// 战略计划与邀请路由
			r.Route("/strategic-plans", func(r chi.Router) {
				r.Get("/", planHandler.ListPlans)
				r.Post("/", planHandler.CreatePlan)
				r.Post("/sendInvitation", planHandler.SendInvitation)
				r.Post("/responseInvitation", planHandler.ResponseInvitation)
				r.Get("/invitations/{userId}", planHandler.Invitations)
				r.Get("/{id}", planHandler.GetPlan)
				r.Put("/{id}", planHandler.UpdatePlan)
				r.Delete("/{id}", planHandler.DeletePlan)
			})

			r.Route("/objectives", func(r chi.Router) {
				r.Get("/getObjective/{id}", objectiveHandler.Get)
				r.Get("/getPlanObjectives/{planId}", objectiveHandler.ListByPlan)
				r.Post("/create/{planId}", objectiveHandler.Create)
				r.Put("/update/{id}", objectiveHandler.Update)
				r.Delete("/delete/{id}", objectiveHandler.Delete)
			})

			r.Route("/goals", func(r chi.Router) {
				r.Get("/getObjectiveGoals/{id}", goalHandler.ListByObjective)
				r.Get("/getPlanGoals/{planId}", goalHandler.ListByPlan)
				r.Post("/create/{objectiveId}", goalHandler.Create)
				r.Put("/update/{goalId}", goalHandler.Update)
				r.Delete("/delete/{goalId}", goalHandler.Delete)
			})

			r.Route("/activities", func(r chi.Router) {
				r.Get("/getActivity/{id}", activityHandler.Get)
				r.Get("/getGoalActivities/{goalId}", activityHandler.ListByGoal)
				r.Post("/create/{goalId}", activityHandler.Create)
				r.Put("/update/{id}", activityHandler.Update)
				r.Delete("/delete/{id}", activityHandler.Delete)
			})

			r.Route("/indicators", func(r chi.Router) {
				r.Get("/getIndicator/{id}", indicatorHandler.Get)
				r.Get("/getActivityIndicators/{activityId}", indicatorHandler.ListByActivity)
				r.Post("/create/{activityId}", indicatorHandler.Create)
				r.Put("/update/{id}", indicatorHandler.Update)
				r.Delete("/delete/{id}", indicatorHandler.Delete)
			})

			r.Route("/operational-plans", func(r chi.Router) {
				r.Get("/getPlanOperationalPlans/{planId}", opPlanHandler.ListByPlan)
				r.Get("/getOperationalPlan/{id}", opPlanHandler.Get)
				r.Post("/create/{planId}", opPlanHandler.Create)
				r.Put("/update/{id}", opPlanHandler.Update)
				r.Put("/setActive/{id}", opPlanHandler.SetActive)
				r.Delete("/delete/{id}", opPlanHandler.Delete)
			})

			// 分析卡片路由（allAnalisis 的拼写是对外契约）
			r.Route("/analysis", func(r chi.Router) {
				r.Get("/allAnalisis/{planId}", analysisHandler.AllAnalysis)
				r.Post("/{category}/addCardAnalysis/{planId}", analysisHandler.AddCard)
				r.Post("/{category}/deleteCard/{id}", analysisHandler.DeleteCard)
			})
		})
	})

	// 404处理
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteNotFoundResponse(w, fmt.Sprintf("Route not found: %s %s", r.Method, r.URL.Path))
	})

	// 405处理
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed,
			fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path))
	})
}
