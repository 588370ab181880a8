package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/denmor86/ya-bankist/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type Database struct {
	Pool   *pgxpool.Pool
	Config *pgx.ConnConfig
	DSN    string
}

const (
	CheckExist     = `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname =$1)`
	CreateDatabase = `CREATE DATABASE %s`

	MaxConns          = 10
	MaxConnIdleTime   = 5 * time.Minute
	HealthCheckPeriod = time.Minute
)

// Создание пула подключений к БД
func NewDatabase(dsn string) (*Database, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	cfg.MaxConns = MaxConns
	cfg.MaxConnIdleTime = MaxConnIdleTime
	cfg.HealthCheckPeriod = HealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	return &Database{Pool: pool, Config: cfg.ConnConfig, DSN: dsn}, nil
}

// Инициализация хранилища (создание БД, миграция)
func (s *Database) Initialize(ctx context.Context) error {
	if err := s.CreateDatabase(ctx); err != nil {
		return fmt.Errorf("error create database: %w", err)
	}
	if err := Migration(ctx, s.DSN); err != nil {
		return fmt.Errorf("error migrate database: %w", err)
	}
	return nil
}

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migration - применение встроенных миграций счетов и движений
func Migration(ctx context.Context, DatabaseDSN string) error {
	db, err := sql.Open("pgx", DatabaseDSN)
	if err != nil {
		return fmt.Errorf("open db error: %w", err)
	}
	defer db.Close()

	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs error: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations)
	if err != nil {
		return fmt.Errorf("goose provider error: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose run migrations error: %w", err)
	}
	for _, r := range results {
		logger.Info("Migration applied", "version", r.Source.Version, "file", r.Source.Path, "duration", r.Duration)
	}
	return nil
}

func (s *Database) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Database) Close() error {
	s.Pool.Close()
	return nil
}

// CreateDatabase - создание БД из строки подключения, если её ещё нет (goose этого не умеет)
func (s *Database) CreateDatabase(ctx context.Context) error {
	conn, err := pgx.ConnectConfig(ctx, s.Config)
	if err == nil {
		return conn.Close(ctx)
	}
	// если не получилось соединиться с БД из строки подключения
	// пробуем использовать дефолтную БД
	cfg := s.Config.Copy()
	cfg.Database = `postgres`
	conn, err = pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer conn.Close(ctx)

	var exist bool
	err = conn.QueryRow(ctx, CheckExist, s.Config.Database).Scan(&exist)
	if err != nil {
		return fmt.Errorf("failed to check database exists: %w", err)
	}
	if !exist {
		_, err = conn.Exec(ctx, fmt.Sprintf(CreateDatabase, pgx.Identifier{s.Config.Database}.Sanitize()))
		if err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
	}
	return nil
}
