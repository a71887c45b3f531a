// Package database 提供数据库连接初始化和模型迁移功能
package database

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/notedrop/notedrop/config"
)

// Init 初始化数据库连接
// 参数: cfg - 数据库配置
// 返回值: *gorm.DB - 数据库连接实例; error - 初始化失败
func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		// 启用WAL模式和外键约束；级联删除依赖外键约束生效
		dsn := cfg.DSN + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=on"
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// SQLite为单写者存储，限制并发连接数以避免锁定问题
	if cfg.Driver == "sqlite" {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return db, nil
}

// Migrate 迁移数据库表结构
// 注册自定义中间表后执行AutoMigrate，保证中间表使用复合主键
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Note{}, "Tags", &NoteTag{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&Note{}, "Mentions", &NoteMention{}); err != nil {
		return err
	}

	return db.AutoMigrate(
		&Note{},
		&Tag{},
		&Mention{},
		&NoteTag{},
		&NoteMention{},
	)
}
