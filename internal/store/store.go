package store

import (
	"context"
	"errors"

	"github.com/ashurbayy/lifechip/internal/models"
)

// ErrNotFound is returned by every lookup that matches no record.
var ErrNotFound = errors.New("record not found")

// Store is the persistence contract for the three entity kinds. Identifiers
// are assigned sequentially starting at 1 within each kind and never reused.
// The store performs no uniqueness checks beyond its primary keys; the
// service layer owns the email/username/chip invariants.
type Store interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByID(ctx context.Context, id int) (*models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)

	CreateMedicalProfile(ctx context.Context, profile *models.MedicalProfile) error
	GetMedicalProfileByID(ctx context.Context, id int) (*models.MedicalProfile, error)
	GetMedicalProfileByAccountID(ctx context.Context, accountID int) (*models.MedicalProfile, error)
	GetMedicalProfileByChipID(ctx context.Context, chipID string) (*models.MedicalProfile, error)
	UpdateMedicalProfile(ctx context.Context, id int, patch MedicalProfilePatch) (*models.MedicalProfile, error)

	CreateContactMessage(ctx context.Context, message *models.ContactMessage) error
	ListContactMessages(ctx context.Context) ([]models.ContactMessage, error)
}

// MedicalProfilePatch carries the fields an update may change. Nil fields are
// left untouched; the updated timestamp is refreshed on every merge.
type MedicalProfilePatch struct {
	ChipID            *string
	BloodType         *string
	Allergies         []string
	Medications       []string
	Conditions        []string
	EmergencyContacts []models.EmergencyContact
	Notes             *string
}

func (p MedicalProfilePatch) apply(profile *models.MedicalProfile) {
	if p.ChipID != nil {
		profile.ChipID = *p.ChipID
	}
	if p.BloodType != nil {
		profile.BloodType = p.BloodType
	}
	if p.Allergies != nil {
		profile.Allergies = p.Allergies
	}
	if p.Medications != nil {
		profile.Medications = p.Medications
	}
	if p.Conditions != nil {
		profile.Conditions = p.Conditions
	}
	if p.EmergencyContacts != nil {
		profile.EmergencyContacts = p.EmergencyContacts
	}
	if p.Notes != nil {
		profile.Notes = p.Notes
	}
}
