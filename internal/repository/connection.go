package repository

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConnectionProvider hands out one dedicated database connection per call.
// The connection is released when fn returns, whatever the outcome.
type ConnectionProvider interface {
	WithConnection(ctx context.Context, fn func(conn *gorm.DB) error) error
}

// GormConnectionProvider pins a single pooled connection of db for the
// duration of each call.
type GormConnectionProvider struct {
	db *gorm.DB
}

// NewGormConnectionProvider creates a provider backed by the gorm pool
func NewGormConnectionProvider(db *gorm.DB) *GormConnectionProvider {
	return &GormConnectionProvider{db: db}
}

func (p *GormConnectionProvider) WithConnection(ctx context.Context, fn func(conn *gorm.DB) error) error {
	if p.db == nil {
		return errors.New("connection provider has no database")
	}
	err := p.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return fn(conn.Session(&gorm.Session{NewDB: true}))
	})
	return err
}

// inTx runs fn in an explicit transaction opened on conn. The transaction is
// committed when fn succeeds; otherwise it is rolled back, the failure is
// logged under op and returned to the caller.
func inTx(conn *gorm.DB, op string, fn func(tx *gorm.DB) error) (err error) {
	tx := conn.Begin()
	if tx.Error != nil {
		zap.L().Error("begin transaction failed", zap.String("op", op), zap.Error(tx.Error))
		return errors.Wrapf(tx.Error, "%s: begin", op)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			zap.L().Error("transaction rolled back after panic", zap.String("op", op), zap.Any("panic", r))
			err = errors.Errorf("%s: panic: %s", op, fmt.Sprint(r))
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			zap.L().Error("rollback failed", zap.String("op", op), zap.Error(rbErr))
		}
		zap.L().Error("transaction rolled back", zap.String("op", op), zap.Error(err))
		return errors.Wrap(err, op)
	}

	if err = tx.Commit().Error; err != nil {
		zap.L().Error("commit failed", zap.String("op", op), zap.Error(err))
		return errors.Wrapf(err, "%s: commit", op)
	}
	return nil
}
