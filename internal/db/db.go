package db

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/synctv-org/authd/internal/model"
	"gorm.io/gorm"
)

type DatabaseType string

const (
	DatabaseTypeSqlite3  DatabaseType = "sqlite3"
	DatabaseTypeMysql    DatabaseType = "mysql"
	DatabaseTypePostgres DatabaseType = "postgres"
)

// Repository is the credential store contract. Composite operations run
// through Transactional, which hands fn a Repository bound to the
// transaction and commits only when fn returns nil.
type Repository interface {
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByID(ctx context.Context, id uint) (*model.User, error)
	FindUserByProvider(ctx context.Context, p model.ProviderLinkKey) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
	CreateProviderLink(ctx context.Context, l *model.UserProvider) error
	UpsertProviderLink(ctx context.Context, l *model.UserProvider) error
	ListProviderLinks(ctx context.Context, userID uint) ([]*model.UserProvider, error)
	Transactional(ctx context.Context, fn func(Repository) error) error
}

type Store struct {
	db *gorm.DB
}

var _ Repository = (*Store)(nil)

func New(d *gorm.DB) *Store {
	return &Store{db: d}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) AutoMigrate(dbType DatabaseType) error {
	dst := []any{new(model.User), new(model.UserProvider)}
	switch dbType {
	case DatabaseTypeMysql:
		return s.db.Set("gorm:table_options", "ENGINE=InnoDB CHARSET=utf8mb4").AutoMigrate(dst...)
	case DatabaseTypeSqlite3, DatabaseTypePostgres:
		return s.db.AutoMigrate(dst...)
	default:
		return fmt.Errorf("unknown database type: %s", dbType)
	}
}

func (s *Store) Transactional(ctx context.Context, fn func(Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Close() {
	log.Info("closing db")
	sqlDB, err := s.db.DB()
	if err != nil {
		log.Errorf("failed to get db: %s", err.Error())
		return
	}
	err = sqlDB.Close()
	if err != nil {
		log.Errorf("failed to close db: %s", err.Error())
		return
	}
}
