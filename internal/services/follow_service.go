package services

import (
	"log"

	"github.com/google/uuid"
	"github.com/thereayou/socialite/internal/database"
	"github.com/thereayou/socialite/internal/models"
)

type FollowService struct {
	db *database.Database
}

func NewFollowService(db *database.Database) *FollowService {
	return &FollowService{db: db}
}

// FollowIDs содержит идентификаторы подписок и подписчиков пользователя
type FollowIDs struct {
	Following []uuid.UUID `json:"following"`
	Followers []uuid.UUID `json:"followers"`
}

// FollowUserIDs возвращает id пользователей, на которых подписан userID,
// и id тех, кто подписан на него. При ошибке возвращает пустые списки.
func (s *FollowService) FollowUserIDs(userID string) FollowIDs {
	ids := FollowIDs{
		Following: []uuid.UUID{},
		Followers: []uuid.UUID{},
	}

	following, err := s.db.FollowingIDs(userID)
	if err != nil {
		log.Printf("FollowUserIDs: following query failed: %v", err)
		return ids
	}

	followers, err := s.db.FollowerIDs(userID)
	if err != nil {
		log.Printf("FollowUserIDs: followers query failed: %v", err)
		return ids
	}

	if following != nil {
		ids.Following = following
	}
	if followers != nil {
		ids.Followers = followers
	}

	return ids
}

// FollowThisUser возвращает связь viewer -> profile и profile -> viewer,
// nil если связи нет
func (s *FollowService) FollowThisUser(viewerID, profileID string) (*models.Follow, *models.Follow) {
	following, err := s.db.GetFollow(viewerID, profileID)
	if err != nil {
		following = nil
	}

	follower, err := s.db.GetFollow(profileID, viewerID)
	if err != nil {
		follower = nil
	}

	return following, follower
}
