package mysql

import (
	"context"
	"dailyfeed/models"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store 是帖子、评论的权威存储
//
// 所有写方法都接收 tx，tx 为 nil 时使用 Store 自身的连接
type Store struct {
	db *gorm.DB
}

var store *Store

func InitMySQL() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		viper.GetString("mysql.username"),
		viper.GetString("mysql.password"),
		viper.GetString("mysql.host"),
		viper.GetInt("mysql.port"),
		viper.GetString("mysql.database"),
		viper.GetString("mysql.charset"))

	config := &gorm.Config{TranslateError: true}
	if viper.GetBool("mysql.debug") {
		config.Logger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(mysql.Open(dsn), config)
	if err != nil {
		panic(fmt.Sprintf("mysql: %s", err.Error()))
	}

	store, err = NewStore(db)
	if err != nil {
		panic(fmt.Sprintf("mysql: %s", err.Error()))
	}
}

// NewStore 包装一个已经打开的连接，并完成建表
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.Post{}, &models.Comment{}); err != nil {
		return nil, errors.Wrap(err, "mysql:NewStore: AutoMigrate")
	}
	return &Store{db: db}, nil
}

func GetStore() *Store {
	return store
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction 在一个事务中执行 fn，fn 返回错误时回滚
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *Store) getUseDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}
