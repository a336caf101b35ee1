package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"imgvault/internal/model"
)

var (
	ErrLinkNotFound = errors.New("expiring link not found")
)

type LinkRepository interface {
	Create(link *model.ExpiringLink) error
	ByID(id string) (*model.ExpiringLink, error)
	ByImageID(imageID string) (*model.ExpiringLink, error)
}

type linkRepository struct {
	db *sqlx.DB
}

func NewLinkRepository(db *sqlx.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) Create(link *model.ExpiringLink) error {
	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO expiring_links (id, image_id, url, expires_in, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(query,
		link.ID,
		link.ImageID,
		link.URL,
		link.ExpiresIn,
		link.CreatedAt,
	)
	return err
}

func (r *linkRepository) ByID(id string) (*model.ExpiringLink, error) {
	link := &model.ExpiringLink{}
	query := `SELECT * FROM expiring_links WHERE id = $1`

	err := r.db.Get(link, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrLinkNotFound
	}

	return link, err
}

func (r *linkRepository) ByImageID(imageID string) (*model.ExpiringLink, error) {
	link := &model.ExpiringLink{}
	query := `SELECT * FROM expiring_links WHERE image_id = $1 ORDER BY created_at DESC LIMIT 1`

	err := r.db.Get(link, query, imageID)
	if err == sql.ErrNoRows {
		return nil, ErrLinkNotFound
	}

	return link, err
}
