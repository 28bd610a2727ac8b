package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kingsubin/soob/internal/config"
	"github.com/kingsubin/soob/internal/infra/crypto"
	"github.com/kingsubin/soob/internal/infra/mailer"
	s3infra "github.com/kingsubin/soob/internal/infra/s3"
	"github.com/kingsubin/soob/internal/jobs/cleanup"
	pgrepo "github.com/kingsubin/soob/internal/repo/postgres"
	redrepo "github.com/kingsubin/soob/internal/repo/redis"
	accountssvc "github.com/kingsubin/soob/internal/services/accounts"
	attachmentssvc "github.com/kingsubin/soob/internal/services/attachments"
	authsvc "github.com/kingsubin/soob/internal/services/auth"
	commentssvc "github.com/kingsubin/soob/internal/services/comments"
	heartssvc "github.com/kingsubin/soob/internal/services/hearts"
	pointssvc "github.com/kingsubin/soob/internal/services/points"
	postssvc "github.com/kingsubin/soob/internal/services/posts"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, uploads disabled", zap.Error(err))
	} else {
		s3Client = c
		if err := s3infra.EnsureBucket(ctx, s3Client, cfg.S3.Bucket); err != nil {
			log.Warn("ensure s3 bucket", zap.Error(err))
		}
	}

	sessionStore := redrepo.NewSessionStore(redisClient)
	verificationRepo := redrepo.NewVerificationRepo(redisClient)
	accountRepo := pgrepo.NewAccountRepo(pool)
	boardRepo := pgrepo.NewBoardRepo(pool)
	postRepo := pgrepo.NewPostRepo(pool)
	commentRepo := pgrepo.NewCommentRepo(pool)
	heartRepo := pgrepo.NewHeartRepo(pool)
	attachmentRepo := pgrepo.NewAttachmentRepo(pool)

	codec := authsvc.NewCodec(cfg.Auth.JWTSecret)
	resolver := accountssvc.NewPrincipalResolver(accountRepo)
	interceptor := authsvc.NewInterceptor(codec, sessionStore, resolver, cfg.Auth.AccessTTL, cfg.Auth.StoreTimeout, log)
	authService := authsvc.NewService(codec, sessionStore, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL, cfg.Auth.StoreTimeout)

	accountService := accountssvc.NewService(
		accountRepo,
		verificationRepo,
		crypto.NewArgon2Hasher(),
		mailer.NewLogMailer(cfg.Mail.From, log),
		accountssvc.Config{
			VerificationLink: cfg.Mail.VerificationLink,
			VerificationTTL:  cfg.Mail.VerificationTTL,
		},
		log,
	)

	attachmentStorage := attachmentssvc.NewS3Storage(s3Client, cfg.S3.Bucket)
	cleanupJob := cleanup.New(attachmentRepo, attachmentStorage, 24*time.Hour, log)
	go cleanupJob.Start(ctx, time.Hour)

	pointService := pointssvc.NewService(accountRepo, log)
	postService := postssvc.NewService(postRepo, boardRepo, pointService, log)
	commentService := commentssvc.NewService(commentRepo, postRepo, pointService, log)
	heartService := heartssvc.NewService(heartRepo, postRepo, commentRepo, pointService, log)
	attachmentService := attachmentssvc.NewService(attachmentRepo, attachmentStorage, log)

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)
	RegisterRoutes(r, Dependencies{
		AccountService:    accountService,
		AuthService:       authService,
		AuthInterceptor:   interceptor,
		PostService:       postService,
		CommentService:    commentService,
		HeartService:      heartService,
		AttachmentService: attachmentService,
		Logger:            log,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
