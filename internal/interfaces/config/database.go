// Package config
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type DatabaseType string

const (
	MySQL      DatabaseType = "mysql"
	PostgreSQL DatabaseType = "postgres"
	SQLite     DatabaseType = "sqlite3"
)

var allowedDatabaseType = []DatabaseType{MySQL, PostgreSQL, SQLite}

type DatabaseConfig struct {
	Enabled              bool          `json:"enabled"`
	Type                 string        `json:"type"`
	DBType               DatabaseType  `json:"-"`
	Database             string        `json:"database"`
	Host                 string        `json:"host"`
	Port                 int           `json:"port"`
	Username             string        `json:"username"`
	Password             string        `json:"password"`
	EnableSSL            bool          `json:"enable_ssl"`
	QueryTimeout         string        `json:"query_timeout"`
	QueryDuration        time.Duration `json:"-"`
	ServerMaxConnections int           `json:"server_max_connections"`
}

func defaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Enabled:              true,
		Type:                 "sqlite3",
		Database:             "skyhub.db",
		Host:                 "",
		Port:                 0,
		Username:             "",
		Password:             "",
		EnableSSL:            false,
		QueryTimeout:         "5s",
		ServerMaxConnections: 32,
	}
}

func (config *DatabaseConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if !config.Enabled {
		logger.Warn("Database disabled, record features will be unavailable")
		return ValidPass()
	}

	config.DBType = DatabaseType(config.Type)
	if !slices.Contains(allowedDatabaseType, config.DBType) {
		return ValidFail(fmt.Errorf("database type %s is not allowed, supported databases are %v, please check the configuration file", config.DBType, allowedDatabaseType))
	}

	if duration, err := time.ParseDuration(config.QueryTimeout); err != nil {
		return ValidFailWith(errors.New("invalid json field database.query_timeout"), err)
	} else {
		config.QueryDuration = duration
	}
	return ValidPass()
}

func (config *DatabaseConfig) GetConnection(logger log.LoggerInterface) gorm.Dialector {
	switch config.DBType {
	case MySQL:
		return mySQLConnection(logger, config)
	case PostgreSQL:
		return postgreSQLConnection(logger, config)
	case SQLite:
		return sqliteConnection(logger, config)
	default:
		return nil
	}
}

func mySQLConnection(logger log.LoggerInterface, config *DatabaseConfig) gorm.Dialector {
	encodedUser := url.QueryEscape(config.Username)
	encodedPass := url.QueryEscape(config.Password)
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True",
		encodedUser, encodedPass, config.Host, config.Port, config.Database)
	logger.DebugF("Connect to mysql database %s@%s:%d/%s", config.Username, config.Host, config.Port, config.Database)
	return mysql.Open(dsn)
}

func postgreSQLConnection(logger log.LoggerInterface, config *DatabaseConfig) gorm.Dialector {
	sslMode := "disable"
	if config.EnableSSL {
		sslMode = "require"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		config.Host, config.Username, config.Password, config.Database, config.Port, sslMode)
	logger.DebugF("Connect to postgres database %s@%s:%d/%s", config.Username, config.Host, config.Port, config.Database)
	return postgres.Open(dsn)
}

func sqliteConnection(logger log.LoggerInterface, config *DatabaseConfig) gorm.Dialector {
	logger.DebugF("Connect to sqlite database %s", config.Database)
	return sqlite.Open(config.Database)
}
