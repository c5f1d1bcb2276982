package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/socialite/internal/models"
)

func (d *Database) SavePublication(publication *models.Publication) error {
	return d.db.Create(publication).Error
}

func (d *Database) GetPublication(id string) (*models.Publication, error) {
	publication := models.Publication{}
	if err := d.db.First(&publication, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &publication, nil
}

// DeleteOwnPublication удаляет публикацию только если userID является автором
func (d *Database) DeleteOwnPublication(id, userID string) (int64, error) {
	result := d.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Publication{})
	return result.RowsAffected, result.Error
}

func (d *Database) ListUserPublications(userID string, offset, limit int) ([]models.Publication, error) {
	var publications []models.Publication
	err := d.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Preload("User").
		Find(&publications).Error
	if err != nil {
		return nil, err
	}
	return publications, nil
}

func (d *Database) CountUserPublications(userID string) (int64, error) {
	var total int64
	err := d.db.Model(&models.Publication{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

// ListFeed получает публикации авторов из списка с пагинацией
func (d *Database) ListFeed(authorIDs []uuid.UUID, offset, limit int) ([]models.Publication, error) {
	var publications []models.Publication
	err := d.db.
		Where("user_id IN ?", authorIDs).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Preload("User").
		Find(&publications).Error
	if err != nil {
		return nil, err
	}
	return publications, nil
}

func (d *Database) CountFeed(authorIDs []uuid.UUID) (int64, error) {
	var total int64
	err := d.db.Model(&models.Publication{}).Where("user_id IN ?", authorIDs).Count(&total).Error
	return total, err
}

func (d *Database) UpdatePublicationFile(id, userID, file string) (int64, error) {
	result := d.db.Model(&models.Publication{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("file", file)
	return result.RowsAffected, result.Error
}
