package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpServer "github.com/kozydev/kozy-server/internal/api/http/server"

	httpctx "github.com/kozydev/kozy-server/internal/api/http/context"
	"github.com/kozydev/kozy-server/internal/api/http/router"
	"github.com/kozydev/kozy-server/internal/config"
	"github.com/kozydev/kozy-server/internal/identity"
	"github.com/kozydev/kozy-server/internal/logger"
	"github.com/kozydev/kozy-server/internal/model"
	"github.com/kozydev/kozy-server/internal/repository/postgres"
	"github.com/kozydev/kozy-server/internal/server"
	"github.com/kozydev/kozy-server/internal/service"
	"github.com/kozydev/kozy-server/internal/storage/disk"
	objstorage "github.com/kozydev/kozy-server/internal/storage/minio"
	"github.com/kozydev/kozy-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	tokenManager := token.NewJWT(token.Config{
		Secret:        cfg.JWT.Secret,
		Issuer:        cfg.JWT.Issuer,
		Audience:      cfg.JWT.Audience,
		ExpireMinutes: cfg.JWT.ExpireMinutes,
	})

	identityManager := identity.NewManager(userRepo, identity.NewBcryptHasher(), logger)
	authService := service.NewAuth(userRepo, identityManager, tokenManager, logger)

	fileStore, err := newFileStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize file store", "error", err)
	}
	fileService := service.NewFile(fileStore, logger)

	ctxMgr := httpctx.NewManager()
	r := router.New(authService, fileService, tokenManager, ctxMgr, cfg.Files.MaxUploadSize, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newFileStore(ctx context.Context, cfg *config.Config) (model.FileStore, error) {
	switch cfg.Files.Backend {
	case "s3":
		minioClient, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		return objstorage.NewStore(ctx, minioClient, cfg.Minio.Bucket)
	default:
		return disk.NewStore(cfg.Files.Root), nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
