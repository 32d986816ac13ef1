package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaignhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaignhub-api/internal/config"
	"github.com/vfg2006/campaignhub-api/internal/domain"
)

// schema é aplicado em ordem; todos os comandos são idempotentes
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		lastname      TEXT NOT NULL DEFAULT '',
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		role_id       INTEGER NOT NULL,
		avatar_url    TEXT,
		deleted       BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS ad_accounts (
		id             VARCHAR(21) PRIMARY KEY,
		customer_id    VARCHAR(21) NOT NULL,
		monthly_budget NUMERIC(14, 2) NOT NULL DEFAULT 0,
		goal           TEXT NOT NULL DEFAULT '',
		platform       VARCHAR(20) NOT NULL,
		external_id    TEXT UNIQUE,
		last_synced_at TIMESTAMPTZ,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS campaigns (
		id            VARCHAR(21) PRIMARY KEY,
		ad_account_id VARCHAR(21) NOT NULL REFERENCES ad_accounts (id),
		name          TEXT NOT NULL,
		start_date    TIMESTAMPTZ NOT NULL,
		end_date      TIMESTAMPTZ,
		status        VARCHAR(20) NOT NULL,
		external_id   TEXT UNIQUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS ad_sets (
		id           VARCHAR(21) PRIMARY KEY,
		campaign_id  VARCHAR(21) NOT NULL REFERENCES campaigns (id),
		name         TEXT NOT NULL,
		status       VARCHAR(20) NOT NULL,
		daily_budget NUMERIC(14, 2) NOT NULL DEFAULT 0,
		external_id  TEXT UNIQUE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS ads (
		id          VARCHAR(21) PRIMARY KEY,
		ad_set_id   VARCHAR(21) NOT NULL REFERENCES ad_sets (id),
		name        TEXT NOT NULL,
		status      VARCHAR(20) NOT NULL,
		external_id TEXT UNIQUE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS metric_campaigns (
		id               VARCHAR(21) PRIMARY KEY,
		campaign_id      VARCHAR(21) NOT NULL REFERENCES campaigns (id),
		reference_period DATE NOT NULL,
		expenses         NUMERIC(14, 2) NOT NULL DEFAULT 0,
		leads            INTEGER NOT NULL DEFAULT 0,
		sales            TEXT,
		revenue          TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT metric_campaigns_campaign_period_key UNIQUE (campaign_id, reference_period)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ad_accounts_platform ON ad_accounts (platform)`,
	`CREATE INDEX IF NOT EXISTS idx_campaigns_ad_account_id ON campaigns (ad_account_id)`,
}

// seedAccount vem de um argumento no formato customer_id:external_id
type seedAccount struct {
	CustomerID string
	ExternalID string
}

func parseSeedAccounts(args []string) ([]seedAccount, error) {
	accounts := make([]seedAccount, 0, len(args))
	for _, arg := range args {
		customerID, externalID, ok := strings.Cut(arg, ":")
		if !ok || customerID == "" || externalID == "" {
			return nil, fmt.Errorf("conta inválida %q, use customer_id:external_id", arg)
		}
		accounts = append(accounts, seedAccount{CustomerID: customerID, ExternalID: externalID})
	}
	return accounts, nil
}

func applySchema(ctx context.Context, tx postgres.Queryer) error {
	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro no comando %d do schema: %w", i+1, err)
		}
	}
	logrus.Infof("Schema aplicado: %d comandos", len(schema))
	return nil
}

func insertAccounts(ctx context.Context, tx postgres.Queryer, accounts []seedAccount) error {
	inserted := 0
	for _, seed := range accounts {
		account, err := domain.NewAdAccount(seed.CustomerID, decimal.Zero, "", domain.AdPlatformMetaAds)
		if err != nil {
			return err
		}
		account.SetExternalID(seed.ExternalID)

		query, args, err := squirrel.
			Insert("ad_accounts").
			Columns("id", "customer_id", "monthly_budget", "goal", "platform", "external_id", "created_at").
			Values(account.ID, account.CustomerID, account.MonthlyBudget, account.Goal, account.Platform, account.ExternalID, account.CreatedAt).
			Suffix("ON CONFLICT (external_id) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("erro ao inserir conta %s: %w", seed.ExternalID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		} else {
			logrus.Infof("Conta %s já cadastrada, ignorando", seed.ExternalID)
		}
	}

	logrus.Infof("Contas inseridas: %d de %d", inserted, len(accounts))
	return nil
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "uso: script [customer_id:external_id ...]")
		flag.PrintDefaults()
	}
	flag.Parse()

	seeds, err := parseSeedAccounts(flag.Args())
	if err != nil {
		logrus.Fatal(err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logrus.Info("Conectando ao banco de dados...")
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()
	err = conn.RunInTransaction(ctx, func(tx postgres.Queryer) error {
		if err := applySchema(ctx, tx); err != nil {
			return err
		}
		return insertAccounts(ctx, tx, seeds)
	})
	if err != nil {
		logrus.WithError(err).Fatal("Migração revertida")
	}

	logrus.Infof("Migração concluída em %v", time.Since(startTime))
}
