package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaignhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaignhub-api/infrastructure/integrator/meta"
	"github.com/vfg2006/campaignhub-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaignhub-api/infrastructure/repository"
	"github.com/vfg2006/campaignhub-api/internal/api"
	"github.com/vfg2006/campaignhub-api/internal/config"
	"github.com/vfg2006/campaignhub-api/internal/scheduler"
	"github.com/vfg2006/campaignhub-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaignhub-api/internal/usecases/syncing"
	"github.com/vfg2006/campaignhub-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Setup(cfg.App.LogLevel, os.Stdout); err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	adAccountRepo := repository.NewAdAccountRepository(pgConn)
	unitOfWorkFactory := repository.NewSyncUnitOfWorkFactory(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	var secrets config.SecretStorage
	if cfg.Render.APIKey != "" {
		secrets = config.NewRenderClient(cfg)
	}

	tokenManager := metaclient.NewTokenManager(cfg, secrets)
	if cfg.Meta.AutoRefreshToken {
		go tokenManager.StartAutoRefresh(ctx)
		defer tokenManager.StopAutoRefresh()
	} else {
		tokenManager.InitToken(ctx)
	}

	metaClient := metaclient.NewClient(cfg.Meta, tokenManager)
	metaIntegrator := meta.New(metaClient, meta.DefaultBreakerSettings)

	syncService := syncing.NewService(
		metaIntegrator,
		syncing.StoreFactoryFunc(func() syncing.Store { return unitOfWorkFactory.New() }),
		cfg.MetaAdsSync,
	)

	metaAdsSyncService := scheduler.NewMetaAdsSyncService(adAccountRepo, syncService, cfg)

	// Inicia o agendador em background
	if err := metaAdsSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização do Meta Ads")
	} else {
		logrus.Info("Agendador de sincronização do Meta Ads iniciado com sucesso")
	}

	server, err := api.New(cfg, pgConn, authenticator, metaAdsSyncService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
