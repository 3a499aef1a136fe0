package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"server/config"
	logg "server/internal/logger"
	"time"

	"github.com/valkey-io/valkey-go"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type CacheClient valkey.Client

// Cache holds one valkey client per logical cache so TTL policy and
// flushes stay independent.
type Cache struct {
	General CacheClient
	Session CacheClient
	User    CacheClient
	Case    CacheClient
	Events  CacheClient
}

type DB struct {
	SQL   *gorm.DB
	Cache Cache
	log   logg.Logger
}

func New(config config.Config) (DB, error) {
	log := logg.New("database").Function("New")

	log.Info("Initializing database")
	db := &DB{log: log}

	err := db.initializeDB(config)
	if err != nil {
		return DB{}, log.Err("failed to initialize database", err)
	}

	err = db.initializeCacheDB(config)
	if err != nil {
		return DB{}, log.Err("failed to initialize cache database", err)
	}

	return *db, nil
}

func (s *DB) initializeDB(config config.Config) error {
	gormLogger := logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      false,
			Colorful:                  false,
		},
	)

	gormConfig := &gorm.Config{
		Logger:         gormLogger,
		PrepareStmt:    true,
		TranslateError: true,
	}

	return s.initializeSQLiteDB(gormConfig, config)
}

func (s *DB) initializeSQLiteDB(gormConfig *gorm.Config, config config.Config) error {
	log := s.log.Function("initializeSQLiteDB")

	dbPath := config.DatabaseDbPath
	if dbPath == "" {
		return log.Error("database path is empty", "dbPath", dbPath)
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return log.Err("failed to create database directory", err, "dir", dir)
		}
	}

	log.Info("Connecting with GORM", "dbPath", dbPath)
	db, err := gorm.Open(sqlite.Open(dbPath), gormConfig)
	if err != nil {
		return log.Err("failed to open database with GORM", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return log.Err("failed to ping database through GORM", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	s.SQL = db

	return nil
}

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")

	address := fmt.Sprintf("%s:%d", config.DatabaseCacheAddress, config.DatabaseCachePort)

	caches := []struct {
		client *CacheClient
		dbIdx  int
		name   string
	}{
		{&s.Cache.General, 0, "General"},
		{&s.Cache.Session, 1, "Session"},
		{&s.Cache.User, 2, "User"},
		{&s.Cache.Case, 3, "Case"},
		{&s.Cache.Events, 4, "Events"},
	}

	for _, cache := range caches {
		client, err := valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{address},
			SelectDB:    cache.dbIdx,
		})
		if err != nil {
			return log.Err("failed to create cache client", err, "cache", cache.name)
		}
		*cache.client = client
	}

	log.Info("Connected cache clients", "address", address)
	return nil
}

func (s *DB) Close() (err error) {
	if s.SQL != nil {
		sqlDB, dbErr := s.SQL.DB()
		if dbErr == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				_ = s.log.Err("failed to close database", closeErr)
				err = closeErr
			}
		}
	}

	for _, client := range []CacheClient{
		s.Cache.General,
		s.Cache.Session,
		s.Cache.User,
		s.Cache.Case,
		s.Cache.Events,
	} {
		if client != nil {
			client.Close()
		}
	}

	return err
}

func (s *DB) SQLWithContext(ctx context.Context) *gorm.DB {
	return s.SQL.WithContext(ctx)
}
