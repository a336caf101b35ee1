package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"imgvault/internal/model"
)

var (
	ErrTierNotFound = errors.New("account tier not found")
)

type TierRepository interface {
	ByID(id string) (*model.AccountTier, error)
	ByName(name string) (*model.AccountTier, error)
}

type tierRepository struct {
	db *sqlx.DB
}

func NewTierRepository(db *sqlx.DB) TierRepository {
	return &tierRepository{db: db}
}

func (r *tierRepository) ByID(id string) (*model.AccountTier, error) {
	tier := &model.AccountTier{}
	query := `SELECT * FROM account_tiers WHERE id = $1`

	err := r.db.Get(tier, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrTierNotFound
	}
	if err != nil {
		return nil, err
	}

	return r.withSizes(tier)
}

func (r *tierRepository) ByName(name string) (*model.AccountTier, error) {
	tier := &model.AccountTier{}
	query := `SELECT * FROM account_tiers WHERE name = $1`

	err := r.db.Get(tier, query, name)
	if err == sql.ErrNoRows {
		return nil, ErrTierNotFound
	}
	if err != nil {
		return nil, err
	}

	return r.withSizes(tier)
}

func (r *tierRepository) withSizes(tier *model.AccountTier) (*model.AccountTier, error) {
	query := `
		SELECT ts.size FROM thumbnail_sizes ts
		JOIN account_tier_thumbnails att ON att.thumbnail_id = ts.id
		WHERE att.tier_id = $1
		ORDER BY ts.size
	`

	err := r.db.Select(&tier.Sizes, query, tier.ID)
	if err != nil {
		return nil, err
	}

	return tier, nil
}
