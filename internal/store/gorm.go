package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ashurbayy/lifechip/internal/models"
)

// GormStore implements Store on a relational database. It is the backend a
// real deployment swaps in for MemStore; auto-increment primary keys keep the
// sequential-from-1 id contract.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates or updates the schema for all entity kinds.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.Account{},
		&models.MedicalProfile{},
		&models.ContactMessage{},
	)
}

func (s *GormStore) CreateAccount(ctx context.Context, account *models.Account) error {
	return s.db.WithContext(ctx).Create(account).Error
}

func (s *GormStore) GetAccountByID(ctx context.Context, id int) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (s *GormStore) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (s *GormStore) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (s *GormStore) CreateMedicalProfile(ctx context.Context, profile *models.MedicalProfile) error {
	return s.db.WithContext(ctx).Create(profile).Error
}

func (s *GormStore) GetMedicalProfileByID(ctx context.Context, id int) (*models.MedicalProfile, error) {
	var profile models.MedicalProfile
	if err := s.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (s *GormStore) GetMedicalProfileByAccountID(ctx context.Context, accountID int) (*models.MedicalProfile, error) {
	var profile models.MedicalProfile
	if err := s.db.WithContext(ctx).Where("account_id = ?", accountID).First(&profile).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (s *GormStore) GetMedicalProfileByChipID(ctx context.Context, chipID string) (*models.MedicalProfile, error) {
	var profile models.MedicalProfile
	if err := s.db.WithContext(ctx).Where("chip_id = ?", chipID).First(&profile).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (s *GormStore) UpdateMedicalProfile(ctx context.Context, id int, patch MedicalProfilePatch) (*models.MedicalProfile, error) {
	var profile models.MedicalProfile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&profile, id).Error; err != nil {
			return translate(err)
		}
		patch.apply(&profile)
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *GormStore) CreateContactMessage(ctx context.Context, message *models.ContactMessage) error {
	return s.db.WithContext(ctx).Create(message).Error
}

func (s *GormStore) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := s.db.WithContext(ctx).Order("id").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
