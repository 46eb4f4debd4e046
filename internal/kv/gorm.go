package kv

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Entry struct {
	Namespace string    `gorm:"primaryKey;size:128"`
	Key       string    `gorm:"column:entry_key;primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// GormBackend stores entries in the kv_entries table, one row per namespace/key.
type GormBackend struct {
	DB        *gorm.DB
	Namespace string
}

func NewGormBackend(ctx context.Context, db *gorm.DB, namespace string) (*GormBackend, error) {
	if err := db.WithContext(ctx).AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &GormBackend{DB: db, Namespace: namespace}, nil
}

func (g *GormBackend) Get(ctx context.Context, key string) (string, bool, error) {
	var e Entry
	err := g.DB.WithContext(ctx).
		Where("namespace = ? AND entry_key = ?", g.Namespace, key).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return e.Value, true, nil
}

func (g *GormBackend) Set(ctx context.Context, key, value string) error {
	e := Entry{Namespace: g.Namespace, Key: key, Value: value}
	return g.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (g *GormBackend) Delete(ctx context.Context, key string) error {
	return g.DB.WithContext(ctx).
		Where("namespace = ? AND entry_key = ?", g.Namespace, key).
		Delete(&Entry{}).Error
}
