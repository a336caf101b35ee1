package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"imgvault/internal/model"
)

var (
	ErrImageNotFound = errors.New("image not found")
	ErrDuplicateName = errors.New("image name already exists")
)

type ImageRepository interface {
	Create(image *model.Image) error
	ByIDAndOwner(id, ownerID string) (*model.Image, error)
	ByOwner(ownerID string) ([]*model.Image, error)
	Delete(id string) error
}

type imageRepository struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(image *model.Image) error {
	query := `INSERT INTO images (id, owner_id, name, url, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, image.ID, image.OwnerID, image.Name, image.URL, image.CreatedAt)
	if err != nil {
		// Name uniqueness is global, enforced by the unique constraint
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateName
		}
		return err
	}

	return nil
}

func (r *imageRepository) ByIDAndOwner(id, ownerID string) (*model.Image, error) {
	image := &model.Image{}
	query := `SELECT * FROM images WHERE id = $1 AND owner_id = $2`

	err := r.db.Get(image, query, id, ownerID)
	if err == sql.ErrNoRows {
		return nil, ErrImageNotFound
	}

	return image, err
}

func (r *imageRepository) ByOwner(ownerID string) ([]*model.Image, error) {
	var images []*model.Image
	query := `SELECT * FROM images WHERE owner_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&images, query, ownerID)
	if err != nil {
		return nil, err
	}

	return images, nil
}

func (r *imageRepository) Delete(id string) error {
	query := `DELETE FROM images WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrImageNotFound
	}

	return nil
}
