package bootstrap

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"github.com/synctv-org/authd/cmd/flags"
	"github.com/synctv-org/authd/internal/conf"
	"github.com/synctv-org/authd/internal/db"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDatabase(c conf.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(c)
	if err != nil {
		return nil, err
	}
	gc := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
	if flags.Dev {
		gc.Logger = logger.Default.LogMode(logger.Info)
	}
	return gorm.Open(dialector, gc)
}

func dialectorFor(c conf.DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case db.DatabaseTypeMysql:
		dsn := c.CustomDSN
		switch {
		case dsn != "":
			log.Info("mysql database custom dsn")
		case c.Port == 0:
			dsn = fmt.Sprintf("%s:%s@unix(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&tls=%s",
				c.User, c.Password, c.Host, c.DBName, c.SslMode)
			log.Infof("mysql database unix socket: %s", c.Host)
		default:
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&tls=%s",
				c.User, c.Password, c.Host, c.Port, c.DBName, c.SslMode)
			log.Infof("mysql database tcp: %s:%d", c.Host, c.Port)
		}
		return mysql.New(mysql.Config{
			DSN:                       dsn,
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		}), nil
	case db.DatabaseTypeSqlite3:
		return sqlite.Open(sqliteDSN(c)), nil
	case db.DatabaseTypePostgres:
		dsn := c.CustomDSN
		switch {
		case dsn != "":
			log.Info("postgres database custom dsn")
		case c.Port == 0:
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s",
				c.Host, c.User, c.Password, c.DBName, c.SslMode)
			log.Infof("postgres database unix socket: %s", c.Host)
		default:
			dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				c.Host, c.Port, c.User, c.Password, c.DBName, c.SslMode)
			log.Infof("postgres database tcp: %s:%d", c.Host, c.Port)
		}
		return postgres.New(postgres.Config{DSN: dsn}), nil
	default:
		return nil, errors.New("unknown database type: " + string(c.Type))
	}
}

func sqliteDSN(c conf.DatabaseConfig) string {
	if c.CustomDSN != "" {
		return c.CustomDSN
	}
	if c.DBName == "memory" || strings.HasPrefix(c.DBName, ":memory:") {
		log.Infof("sqlite3 database memory")
		return "file::memory:?cache=shared&_pragma=foreign_keys(1)"
	}
	name := c.DBName
	if !strings.HasSuffix(name, ".db") {
		name += ".db"
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(flags.DataDir, name)
	}
	log.Infof("sqlite3 database file: %s", name)
	return name + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}
