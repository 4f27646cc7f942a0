package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spm_tracker_backend/internal/config"
	"spm_tracker_backend/internal/controller"
	"spm_tracker_backend/internal/repository"
	"spm_tracker_backend/internal/service"
	"spm_tracker_backend/pkg/database"
	"spm_tracker_backend/pkg/logger"
	"spm_tracker_backend/pkg/monitoring"
	"spm_tracker_backend/pkg/security"
	"spm_tracker_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	result         *repository.ResultRepository
	recommendation *repository.RecommendationRepository
}

type services struct {
	storage        *service.StorageService
	result         *service.ResultService
	analytics      *service.AnalyticsService
	recommendation *service.RecommendationService
	list           *service.ListService
	question       *service.QuestionService
	standards      *service.StandardsService
	ai             *service.AIService
	marking        *service.MarkingService
	autoTagging    *service.AutoTaggingService
}

type controllers struct {
	result         *controller.ResultController
	dashboard      *controller.DashboardController
	recommendation *controller.RecommendationController
	list           *controller.ListController
	question       *controller.QuestionController
	standards      *controller.StandardsController
	marking        *controller.MarkingController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口，由配置文件监听器触发
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		result:         repository.NewResultRepository(db),
		recommendation: repository.NewRecommendationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.result = service.NewResultService(repos.result)
	s.analytics = service.NewAnalyticsService(repos.result, repos.recommendation)
	s.recommendation = service.NewRecommendationService(repos.recommendation)
	s.list = service.NewListService(cfg.Tracker.ListsPath)
	s.question = service.NewQuestionService(cfg.Tracker.QuestionsPath, rdb)
	s.standards = service.NewStandardsService(cfg.Tracker.StandardsPath)
	s.ai = service.NewAIService(cfg.AI)
	s.marking = service.NewMarkingService(cfg.Marking, s.storage)
	s.autoTagging = service.NewAutoTaggingService(s.question, s.standards, s.ai)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		result:         controller.NewResultController(s.result),
		dashboard:      controller.NewDashboardController(s.analytics),
		recommendation: controller.NewRecommendationController(s.recommendation),
		list:           controller.NewListController(s.list),
		question:       controller.NewQuestionController(s.question),
		standards:      controller.NewStandardsController(s.standards),
		marking:        controller.NewMarkingController(s.marking),
		health:         controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	// 每天扫一遍题库，给没有章节标签的题目自动打标
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		for range ticker.C {
			s.autoTagging.RunAutoTagging(context.Background())
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	app.RegisterConfigCallback(func(c *config.Config) {
		logger.Log.Info("Runtime config updated",
			zap.String("defaultUserId", c.Tracker.DefaultUserID),
			zap.Int("rateLimitMaxRequests", c.RateLimit.MaxRequests))
	})

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("spm-tracker", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
