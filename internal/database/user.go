package database

import (
	"github.com/thereayou/socialite/internal/models"
)

func (d *Database) SaveUser(user *models.User) error {
	if err := d.db.Create(user).Error; err != nil {
		return err
	}
	return nil
}

func (d *Database) UpdateUser(user *models.User) error {
	return d.db.Save(user).Error
}

func (d *Database) GetUser(id string) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUsersByEmailOrNick ищет пользователей по email или nick без учета регистра
func (d *Database) FindUsersByEmailOrNick(email, nick string) ([]models.User, error) {
	var users []models.User
	err := d.db.
		Where("LOWER(email) = LOWER(?) OR LOWER(nick) = LOWER(?)", email, nick).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (d *Database) ListUsers(offset, limit int) ([]models.User, error) {
	var users []models.User
	err := d.db.
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (d *Database) CountUsers() (int64, error) {
	var total int64
	err := d.db.Model(&models.User{}).Count(&total).Error
	return total, err
}

func (d *Database) UpdateUserImage(id, image string) (int64, error) {
	result := d.db.Model(&models.User{}).Where("id = ?", id).Update("image", image)
	return result.RowsAffected, result.Error
}
