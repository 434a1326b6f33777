package service

import (
	"context"
	"errors"
	"sync"

	"github.com/ashurbayy/lifechip/internal/models"
	"github.com/ashurbayy/lifechip/internal/store"
)

var (
	ErrProfileExists   = errors.New("account already has a medical profile")
	ErrChipRegistered  = errors.New("chip id is already registered")
	ErrNotProfileOwner = errors.New("not authorized to update this profile")
)

// CreateProfileInput is the validated payload for profile creation. The
// owning account id comes from the session, never from the payload.
type CreateProfileInput struct {
	ChipID            string
	BloodType         *string
	Allergies         []string
	Medications       []string
	Conditions        []string
	EmergencyContacts []models.EmergencyContact
	Notes             *string
}

// MedicalProfileService enforces the one-profile-per-account and
// one-profile-per-chip invariants on top of the store, which does not check
// them itself.
type MedicalProfileService struct {
	store store.Store

	// mu serializes the check-then-write sections so concurrent creates or
	// chip changes cannot both pass the uniqueness checks.
	mu sync.Mutex
}

func NewMedicalProfileService(st store.Store) *MedicalProfileService {
	return &MedicalProfileService{store: st}
}

// Create registers a profile for accountID. The list fields default to empty
// lists rather than null; contacts and notes stay null until provided.
func (s *MedicalProfileService) Create(ctx context.Context, accountID int, in CreateProfileInput) (*models.MedicalProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetMedicalProfileByAccountID(ctx, accountID); err == nil {
		return nil, ErrProfileExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if _, err := s.store.GetMedicalProfileByChipID(ctx, in.ChipID); err == nil {
		return nil, ErrChipRegistered
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	profile := &models.MedicalProfile{
		AccountID:         accountID,
		ChipID:            in.ChipID,
		BloodType:         in.BloodType,
		Allergies:         orEmpty(in.Allergies),
		Medications:       orEmpty(in.Medications),
		Conditions:        orEmpty(in.Conditions),
		EmergencyContacts: in.EmergencyContacts,
		Notes:             in.Notes,
	}
	if err := s.store.CreateMedicalProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetByAccount returns the profile owned by accountID. The store's
// ErrNotFound passes through when the account has none.
func (s *MedicalProfileService) GetByAccount(ctx context.Context, accountID int) (*models.MedicalProfile, error) {
	return s.store.GetMedicalProfileByAccountID(ctx, accountID)
}

// Update merges patch into profile profileID on behalf of accountID. Only the
// owner may mutate a profile, and a chip id change re-checks global chip
// uniqueness.
func (s *MedicalProfileService) Update(ctx context.Context, profileID, accountID int, patch store.MedicalProfilePatch) (*models.MedicalProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.GetMedicalProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if existing.AccountID != accountID {
		return nil, ErrNotProfileOwner
	}

	if patch.ChipID != nil && *patch.ChipID != existing.ChipID {
		if other, err := s.store.GetMedicalProfileByChipID(ctx, *patch.ChipID); err == nil && other.ID != profileID {
			return nil, ErrChipRegistered
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	return s.store.UpdateMedicalProfile(ctx, profileID, patch)
}

// EmergencyLookup resolves a chip id to the public medical subset.
func (s *MedicalProfileService) EmergencyLookup(ctx context.Context, chipID string) (*models.EmergencyInfo, error) {
	profile, err := s.store.GetMedicalProfileByChipID(ctx, chipID)
	if err != nil {
		return nil, err
	}
	return profile.EmergencyView(), nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
