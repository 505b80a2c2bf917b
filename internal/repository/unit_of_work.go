package repository

import (
	"context"
	"fmt"

	"stock-scoring/pkg/utils"

	"gorm.io/gorm"
)

// UnitOfWork runs repository calls in one transaction. fn receives the option that binds a call to it.
type UnitOfWork interface {
	Run(ctx context.Context, fn func(opts ...utils.DBOption) error) error
}

type unitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &unitOfWork{db: db}
}

func (u *unitOfWork) Run(ctx context.Context, fn func(opts ...utils.DBOption) error) (err error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin failed: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if commitErr := tx.Commit().Error; commitErr != nil {
			err = fmt.Errorf("commit failed: %w", commitErr)
		}
	}()

	err = fn(utils.WithTx(tx))
	return
}
