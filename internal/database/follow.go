package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/socialite/internal/models"
)

func (d *Database) SaveFollow(follow *models.Follow) error {
	return d.db.Create(follow).Error
}

// DeleteFollow удаляет связь user -> followed, возвращает количество удаленных строк
func (d *Database) DeleteFollow(userID, followedID string) (int64, error) {
	result := d.db.
		Where("user_id = ? AND followed_id = ?", userID, followedID).
		Delete(&models.Follow{})
	return result.RowsAffected, result.Error
}

func (d *Database) GetFollow(userID, followedID string) (*models.Follow, error) {
	follow := models.Follow{}
	err := d.db.
		Where("user_id = ? AND followed_id = ?", userID, followedID).
		First(&follow).Error
	if err != nil {
		return nil, err
	}
	return &follow, nil
}

func (d *Database) FollowingIDs(userID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := d.db.Model(&models.Follow{}).
		Distinct("followed_id").
		Where("user_id = ?", userID).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (d *Database) FollowerIDs(userID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := d.db.Model(&models.Follow{}).
		Distinct("user_id").
		Where("followed_id = ?", userID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (d *Database) ListFollowing(userID string, offset, limit int) ([]models.Follow, error) {
	var follows []models.Follow
	err := d.db.
		Where("user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Preload("User").
		Preload("Followed").
		Find(&follows).Error
	if err != nil {
		return nil, err
	}
	return follows, nil
}

func (d *Database) CountFollowing(userID string) (int64, error) {
	var total int64
	err := d.db.Model(&models.Follow{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

func (d *Database) ListFollowers(userID string, offset, limit int) ([]models.Follow, error) {
	var follows []models.Follow
	err := d.db.
		Where("followed_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Preload("User").
		Preload("Followed").
		Find(&follows).Error
	if err != nil {
		return nil, err
	}
	return follows, nil
}

func (d *Database) CountFollowers(userID string) (int64, error) {
	var total int64
	err := d.db.Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&total).Error
	return total, err
}
