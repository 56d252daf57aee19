package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codyseavey/tcg-vendor/internal/models"
)

var (
	ErrShowAlreadyActive = errors.New("a show session is already active")
	ErrShowNotFound      = errors.New("show session not found")
	ErrShowAlreadyEnded  = errors.New("show session already ended")
)

// ShowService tracks show/event sessions. Settlements made while a session
// is active carry its id and name for later aggregation.
type ShowService struct {
	db *gorm.DB
}

func NewShowService(db *gorm.DB) *ShowService {
	return &ShowService{db: db}
}

// Start opens a new session. The single-active-session invariant is
// enforced here: the existence check and the insert share one transaction.
func (s *ShowService) Start(accountID, name string) (*models.ShowSession, error) {
	session := models.ShowSession{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Name:      name,
		StartTime: time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var active int64
		if err := tx.Model(&models.ShowSession{}).
			Where("account_id = ? AND end_time IS NULL", accountID).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrShowAlreadyActive
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Show service: started session %q for account %s", name, accountID)
	return &session, nil
}

// End closes a session by stamping its end time.
func (s *ShowService) End(accountID, showID string) (*models.ShowSession, error) {
	var session models.ShowSession
	if err := s.db.First(&session, "id = ? AND account_id = ?", showID, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	if session.EndTime != nil {
		return nil, ErrShowAlreadyEnded
	}

	now := time.Now()
	session.EndTime = &now
	if err := s.db.Model(&session).Update("end_time", now).Error; err != nil {
		return nil, err
	}

	log.Printf("Show service: ended session %q for account %s", session.Name, accountID)
	return &session, nil
}

// Active returns the open session for an account, or nil if there is none.
func (s *ShowService) Active(accountID string) (*models.ShowSession, error) {
	var session models.ShowSession
	err := s.db.Where("account_id = ? AND end_time IS NULL", accountID).
		Order("start_time DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// List returns all sessions for an account, newest first.
func (s *ShowService) List(accountID string) ([]models.ShowSession, error) {
	var sessions []models.ShowSession
	err := s.db.Where("account_id = ?", accountID).
		Order("start_time DESC").
		Find(&sessions).Error
	return sessions, err
}
