package kv

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is the single-table schema behind the postgres backend: one row
// per key, value stored as jsonb.
type Entry struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Entry) TableName() string { return "kv_entries" }

// Postgres backs the Store contract with a kv_entries table.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := gdb.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Postgres{db: gdb}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var e Entry
	err := p.db.WithContext(ctx).First(&e, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e.Value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	e := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (p *Postgres) Del(ctx context.Context, key string) error {
	return p.db.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error
}

func (p *Postgres) MGet(ctx context.Context, keys ...string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	var rows []Entry
	if err := p.db.WithContext(ctx).Where("key IN ?", keys).Find(&rows).Error; err != nil {
		return nil, err
	}
	byKey := make(map[string][]byte, len(rows))
	for _, r := range rows {
		byKey[r.Key] = r.Value
	}
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = byKey[k]
	}
	return out, nil
}

// IncrBy upserts the counter in a single statement so concurrent bumps of
// the same day key serialize on the row instead of racing a read-modify-write.
func (p *Postgres) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	var n int64
	err := p.db.WithContext(ctx).Raw(`
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, to_jsonb(?::bigint), now())
		ON CONFLICT (key) DO UPDATE
		SET value = to_jsonb((kv_entries.value #>> '{}')::bigint + ?),
		    updated_at = now()
		RETURNING (value #>> '{}')::bigint
	`, key, delta, delta).Scan(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

var (
	_ Store       = (*Postgres)(nil)
	_ Incrementer = (*Postgres)(nil)
)
