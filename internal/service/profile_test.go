package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashurbayy/lifechip/internal/models"
	"github.com/ashurbayy/lifechip/internal/store"
)

func TestCreateProfileDefaultsLists(t *testing.T) {
	s := NewMedicalProfileService(store.NewMemStore())
	ctx := context.Background()

	profile, err := s.Create(ctx, 1, CreateProfileInput{ChipID: "CHIP-1", Allergies: []string{"peanuts"}})
	require.NoError(t, err)

	assert.Equal(t, 1, profile.ID)
	assert.Equal(t, 1, profile.AccountID)
	assert.Equal(t, []string{"peanuts"}, []string(profile.Allergies))
	// Omitted lists become empty lists, not null.
	assert.NotNil(t, profile.Medications)
	assert.Empty(t, profile.Medications)
	assert.NotNil(t, profile.Conditions)
	assert.Empty(t, profile.Conditions)
	// Contacts and notes stay null until provided.
	assert.Nil(t, profile.EmergencyContacts)
	assert.Nil(t, profile.Notes)
}

func TestCreateProfileOnePerAccount(t *testing.T) {
	s := NewMedicalProfileService(store.NewMemStore())
	ctx := context.Background()

	_, err := s.Create(ctx, 1, CreateProfileInput{ChipID: "CHIP-1"})
	require.NoError(t, err)

	// A fresh chip id does not rescue an account that already has a profile.
	_, err = s.Create(ctx, 1, CreateProfileInput{ChipID: "CHIP-2"})
	assert.ErrorIs(t, err, ErrProfileExists)
}

func TestCreateProfileChipUnique(t *testing.T) {
	s := NewMedicalProfileService(store.NewMemStore())
	ctx := context.Background()

	_, err := s.Create(ctx, 1, CreateProfileInput{ChipID: "CHIP-1"})
	require.NoError(t, err)

	_, err = s.Create(ctx, 2, CreateProfileInput{ChipID: "CHIP-1"})
	assert.ErrorIs(t, err, ErrChipRegistered)
}

func TestUpdateProfileOwnership(t *testing.T) {
	s := NewMedicalProfileService(store.NewMemStore())
	ctx := context.Background()

	profile, err := s.Create(ctx, 1, CreateProfileInput{ChipID: "CHIP-1", Allergies: []string{"peanuts"}})
	require.NoError(t, err)

	notes := "sneaky edit"
	_, err = s.Update(ctx, profile.ID, 2, store.MedicalProfilePatch{Notes: &notes})
	assert.ErrorIs(t, err, ErrNotProfileOwner)

	// The profile is left unmodified by the rejected update.
	unchanged, err := s.GetByAccount(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, unchanged.Notes)
	assert.Equal(t, []string{"peanuts"}, []string(unchanged.Allergies))
}

func TestUpdateProfileMerges(t *testing.T) {
	s := NewMedicalProfileService(store.NewMemStore())
	ctx := context.Background()

	profile, err := s.Create(ctx, 1, CreateProfileInput{ChipID: "CHIP-1", Allergies: []string{"peanuts"}})
	require.NoError(t, err)
	created := profile.UpdatedAt

	time.Sleep(5 * time.Millisecond)

	bloodType := "O+"
	updated, err := s.Update(ctx, profile.ID, 1, store.MedicalProfilePatch{
		BloodType:   &bloodType,
		Medications: []string{"aspirin"},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.BloodType)
	assert.Equal(t, "O+", *updated.BloodType)
	assert.Equal(t, []string{"aspirin"}, []string(updated.Medications))
	assert.Equal(t, []string{"peanuts"}, []string(updated.Allergies))
	assert.True(t, updated.UpdatedAt.After(created))
}

func TestUpdateProfileChipConflict(t *testing.T) {
	s := NewMedicalProfileService(store.NewMemStore())
	ctx := context.Background()

	_, err := s.Create(ctx, 1, CreateProfileInput{ChipID: "CHIP-1"})
	require.NoError(t, err)
	mine, err := s.Create(ctx, 2, CreateProfileInput{ChipID: "CHIP-2"})
	require.NoError(t, err)

	taken := "CHIP-1"
	_, err = s.Update(ctx, mine.ID, 2, store.MedicalProfilePatch{ChipID: &taken})
	assert.ErrorIs(t, err, ErrChipRegistered)

	// Re-stating your own chip id is not a conflict.
	same := "CHIP-2"
	_, err = s.Update(ctx, mine.ID, 2, store.MedicalProfilePatch{ChipID: &same})
	assert.NoError(t, err)
}

func TestUpdateProfileNotFound(t *testing.T) {
	s := NewMedicalProfileService(store.NewMemStore())

	_, err := s.Update(context.Background(), 42, 1, store.MedicalProfilePatch{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEmergencyLookupProjectsSubset(t *testing.T) {
	s := NewMedicalProfileService(store.NewMemStore())
	ctx := context.Background()

	bloodType := "B+"
	notes := "diabetic"
	_, err := s.Create(ctx, 1, CreateProfileInput{
		ChipID:     "CHIP-1",
		BloodType:  &bloodType,
		Conditions: []string{"diabetes"},
		EmergencyContacts: []models.EmergencyContact{
			{Name: "Dana", Relationship: "spouse", Phone: "+100200300"},
		},
		Notes: &notes,
	})
	require.NoError(t, err)

	info, err := s.EmergencyLookup(ctx, "CHIP-1")
	require.NoError(t, err)
	require.NotNil(t, info.BloodType)
	assert.Equal(t, "B+", *info.BloodType)
	assert.Equal(t, []string{"diabetes"}, []string(info.Conditions))
	require.Len(t, info.EmergencyContacts, 1)
	assert.Equal(t, "Dana", info.EmergencyContacts[0].Name)
	require.NotNil(t, info.Notes)
	assert.Equal(t, "diabetic", *info.Notes)

	_, err = s.EmergencyLookup(ctx, "CHIP-404")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
