// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"ims-service/internal/config"
	"ims-service/internal/db"
	domapp "ims-service/internal/domain/application"
	domauth "ims-service/internal/domain/auth"
	domclosure "ims-service/internal/domain/closure"
	domcompany "ims-service/internal/domain/company"
	domguide "ims-service/internal/domain/guide"
	dominternship "ims-service/internal/domain/internship"
	domnotify "ims-service/internal/domain/notification"
	"ims-service/internal/handlers"
	appHandler "ims-service/internal/handlers/application"
	authHandler "ims-service/internal/handlers/auth"
	closureHandler "ims-service/internal/handlers/closure"
	companyHandler "ims-service/internal/handlers/company"
	guideHandler "ims-service/internal/handlers/guide"
	internshipHandler "ims-service/internal/handlers/internship"
	notifyH "ims-service/internal/handlers/notification"
	"ims-service/internal/middleware"
	"ims-service/internal/pkg/jwt"
	"ims-service/internal/pkg/session"
	"ims-service/internal/repository/mock"
	"ims-service/internal/repository/postgres"
	appUsecase "ims-service/internal/service/application"
	authUsecase "ims-service/internal/service/auth"
	closureUsecase "ims-service/internal/service/closure"
	companyUsecase "ims-service/internal/service/company"
	guideUsecase "ims-service/internal/service/guide"
	internshipUsecase "ims-service/internal/service/internship"
	notifyUsecase "ims-service/internal/service/notification"
	"ims-service/internal/storage"
	"ims-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg         config.AppConfig
	engine      *gin.Engine
	logger      *zap.Logger
	authService *authUsecase.AuthService
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.Default()
	return &Server{cfg: cfg, engine: engine}
}

// repositories groups one implementation of every persistence interface.
// Both the PostgreSQL and the mock backend produce one of these.
type repositories struct {
	Users         domauth.UserRepository
	Internships   dominternship.Repository
	Applications  domapp.Repository
	Guides        domguide.Repository
	Closures      domclosure.Repository
	Companies     domcompany.Repository
	Notifications domnotify.Repository
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- JWT Manager -----
	jwtManager, err := jwt.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT manager: %w", err)
	}

	// ----- Persistence backend -----
	var (
		repos        *repositories
		sessionStore session.Store
	)

	switch s.cfg.Mode {
	case config.ModePostgres:
		pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("failed to ping PostgreSQL: %w", err)
		}

		redisClient, err := db.NewRedisClient(db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       0,
			PoolSize: 10,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		logger.Info("connected to Redis", zap.String("addr", s.cfg.RedisAddr))

		sessionStore = session.NewRedisStore(redisClient)
		repos = &repositories{
			Users:         postgres.NewUserRepository(pool),
			Internships:   postgres.NewInternshipRepository(pool),
			Applications:  postgres.NewApplicationRepository(pool),
			Guides:        postgres.NewGuideRepository(pool),
			Closures:      postgres.NewClosureRepository(pool),
			Companies:     postgres.NewCompanyRepository(pool),
			Notifications: postgres.NewNotificationRepository(pool),
		}

	case config.ModeMock:
		var blobStore storage.Store
		if s.cfg.RedisAddr != "" {
			// Redis, when available, carries both blobs and sessions so
			// demo data survives restarts.
			redisClient, err := db.NewRedisClient(db.RedisConfig{
				Addr:     s.cfg.RedisAddr,
				Password: s.cfg.RedisPass,
				DB:       0,
				PoolSize: 10,
			})
			if err != nil {
				return fmt.Errorf("failed to connect to Redis: %w", err)
			}
			blobStore = storage.NewRedisStore(redisClient, "")
			sessionStore = session.NewRedisStore(redisClient)
			logger.Info("mock persistence backed by Redis", zap.String("addr", s.cfg.RedisAddr))
		} else {
			fileStore, err := storage.NewFileStore(s.cfg.MockDataDir)
			if err != nil {
				return fmt.Errorf("failed to open mock data dir %s: %w", s.cfg.MockDataDir, err)
			}
			blobStore = fileStore
			// Sessions are in-process here; a restart logs everyone out.
			sessionStore = session.NewMemoryStore()
			logger.Info("mock persistence backed by files", zap.String("data_dir", s.cfg.MockDataDir))
		}

		if err := mock.SeedUsers(ctx, blobStore); err != nil {
			return fmt.Errorf("failed to seed mock accounts: %w", err)
		}
		logger.Info("running with mock persistence", zap.Duration("latency", s.cfg.MockLatency))
		lat := s.cfg.MockLatency
		repos = &repositories{
			Users:         mock.NewUserRepository(blobStore, lat),
			Internships:   mock.NewInternshipRepository(blobStore, lat),
			Applications:  mock.NewApplicationRepository(blobStore, lat),
			Guides:        mock.NewGuideRepository(blobStore, lat),
			Closures:      mock.NewClosureRepository(blobStore, lat),
			Companies:     mock.NewCompanyRepository(blobStore, lat),
			Notifications: mock.NewNotificationRepository(blobStore, lat),
		}

	default:
		return fmt.Errorf("unknown IMS_MODE %q (want %q or %q)", s.cfg.Mode, config.ModePostgres, config.ModeMock)
	}

	// ----- Session Manager -----
	sessionManager := session.NewManager(sessionStore)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(jwtManager.Verifier, sessionManager, logger)
	go hub.Run(context.Background())

	// ----- Services -----
	notifService := notifyUsecase.NewNotificationService(repos.Notifications, hub, logger)
	authService := authUsecase.NewAuthService(repos.Users, jwtManager, sessionManager, hub, logger)
	s.authService = authService

	internshipService := internshipUsecase.NewInternshipService(repos.Internships, notifService, logger)
	applicationService := appUsecase.NewApplicationService(repos.Applications, repos.Internships, notifService, logger)
	guideService := guideUsecase.NewGuideService(repos.Guides, repos.Applications, repos.Users, notifService, logger)
	closureService := closureUsecase.NewClosureService(repos.Closures, repos.Guides, repos.Applications, notifService, logger)
	companyService := companyUsecase.NewCompanyService(repos.Companies, notifService, logger)

	// ----- Bootstrap admin -----
	if err := authService.EnsureAdminExists(ctx, s.cfg.AdminEmail, s.cfg.AdminPassword, s.cfg.AdminName); err != nil {
		logger.Error("failed to provision admin account", zap.Error(err))
		// Don't fail startup, just log the error
	}

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authService)
	internshipHandlerInst := internshipHandler.NewInternshipHandler(internshipService, companyService)
	applicationHandlerInst := appHandler.NewApplicationHandler(applicationService)
	guideHandlerInst := guideHandler.NewGuideHandler(guideService)
	closureHandlerInst := closureHandler.NewClosureHandler(closureService)
	companyHandlerInst := companyHandler.NewCompanyHandler(companyService)
	notifHandlerInst := notifyH.NewNotificationHandler(notifService)
	wsHandlerInst := handlers.NewWebSocketHandler(hub, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(authService)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(s.cfg.CORSOrigins),
	)

	// ----- Router -----
	h := &Handlers{
		AuthHandler:        authHandlerInst,
		InternshipHandler:  internshipHandlerInst,
		ApplicationHandler: applicationHandlerInst,
		GuideHandler:       guideHandlerInst,
		ClosureHandler:     closureHandlerInst,
		CompanyHandler:     companyHandlerInst,
		NotifHandler:       notifHandlerInst,
		WSHandler:          wsHandlerInst,
		AuthMiddleware:     authMiddleware,
	}
	SetupRouter(s.engine, logger, h)

	// ----- Start HTTP -----
	log.Printf("server listening on %s (mode=%s)", s.cfg.HTTPAddr, s.cfg.Mode)
	return s.engine.Run(s.cfg.HTTPAddr)
}
