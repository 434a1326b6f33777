package store

import (
	"context"
	"sync"
	"time"

	"github.com/ashurbayy/lifechip/internal/models"
)

// MemStore keeps all entities in process memory. It is the default backend:
// state does not survive a restart. Lookups by username, email and chip id
// are full scans, which is fine at this store's intended scale.
type MemStore struct {
	mu sync.RWMutex

	accounts map[int]models.Account
	profiles map[int]models.MedicalProfile
	messages map[int]models.ContactMessage

	nextAccountID int
	nextProfileID int
	nextMessageID int
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty store with all id counters at 1.
func NewMemStore() *MemStore {
	return &MemStore{
		accounts:      make(map[int]models.Account),
		profiles:      make(map[int]models.MedicalProfile),
		messages:      make(map[int]models.ContactMessage),
		nextAccountID: 1,
		nextProfileID: 1,
		nextMessageID: 1,
	}
}

func (s *MemStore) CreateAccount(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account.ID = s.nextAccountID
	s.nextAccountID++
	account.CreatedAt = time.Now().UTC()
	s.accounts[account.ID] = *account
	return nil
}

func (s *MemStore) GetAccountByID(_ context.Context, id int) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

func (s *MemStore) GetAccountByUsername(_ context.Context, username string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.accounts {
		if account.Username == username {
			account := account
			return &account, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) GetAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.accounts {
		if account.Email == email {
			account := account
			return &account, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateMedicalProfile(_ context.Context, profile *models.MedicalProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile.ID = s.nextProfileID
	s.nextProfileID++
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	s.profiles[profile.ID] = *profile
	return nil
}

func (s *MemStore) GetMedicalProfileByID(_ context.Context, id int) (*models.MedicalProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &profile, nil
}

func (s *MemStore) GetMedicalProfileByAccountID(_ context.Context, accountID int) (*models.MedicalProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, profile := range s.profiles {
		if profile.AccountID == accountID {
			profile := profile
			return &profile, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) GetMedicalProfileByChipID(_ context.Context, chipID string) (*models.MedicalProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, profile := range s.profiles {
		if profile.ChipID == chipID {
			profile := profile
			return &profile, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) UpdateMedicalProfile(_ context.Context, id int, patch MedicalProfilePatch) (*models.MedicalProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.apply(&profile)
	profile.UpdatedAt = time.Now().UTC()
	s.profiles[id] = profile
	return &profile, nil
}

func (s *MemStore) CreateContactMessage(_ context.Context, message *models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	message.ID = s.nextMessageID
	s.nextMessageID++
	message.CreatedAt = time.Now().UTC()
	s.messages[message.ID] = *message
	return nil
}

func (s *MemStore) ListContactMessages(_ context.Context) ([]models.ContactMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]models.ContactMessage, 0, len(s.messages))
	for id := 1; id < s.nextMessageID; id++ {
		if message, ok := s.messages[id]; ok {
			messages = append(messages, message)
		}
	}
	return messages, nil
}
