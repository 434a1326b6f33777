package models

import (
	"time"

	"gorm.io/datatypes"
)

// EmergencyContact is a person to notify when a chip is scanned. Contacts are
// stored inline on the profile; there is no uniqueness constraint.
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// MedicalProfile holds the health data bound to a physical chip. Exactly one
// profile exists per account and per chip id; both invariants are enforced by
// the service layer, not the store.
type MedicalProfile struct {
	ID                int                                   `gorm:"primarykey" json:"id"`
	AccountID         int                                   `gorm:"not null;uniqueIndex" json:"userId"`
	ChipID            string                                `gorm:"size:64;uniqueIndex;not null" json:"chipId"`
	BloodType         *string                               `gorm:"size:8" json:"bloodType"`
	Allergies         datatypes.JSONSlice[string]           `json:"allergies"`
	Medications       datatypes.JSONSlice[string]           `json:"medications"`
	Conditions        datatypes.JSONSlice[string]           `json:"conditions"`
	EmergencyContacts datatypes.JSONSlice[EmergencyContact] `json:"emergencyContacts"`
	Notes             *string                               `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time                             `json:"createdAt"`
	UpdatedAt         time.Time                             `json:"updatedAt"`
}

// EmergencyInfo is the public projection of a profile served at the chip
// lookup endpoint. It must never carry the owner identity, the chip id, or
// the record id.
type EmergencyInfo struct {
	BloodType         *string                               `json:"bloodType"`
	Allergies         datatypes.JSONSlice[string]           `json:"allergies"`
	Medications       datatypes.JSONSlice[string]           `json:"medications"`
	Conditions        datatypes.JSONSlice[string]           `json:"conditions"`
	EmergencyContacts datatypes.JSONSlice[EmergencyContact] `json:"emergencyContacts"`
	Notes             *string                               `json:"notes"`
}

// EmergencyView projects the profile down to the medically relevant subset.
func (p *MedicalProfile) EmergencyView() *EmergencyInfo {
	return &EmergencyInfo{
		BloodType:         p.BloodType,
		Allergies:         p.Allergies,
		Medications:       p.Medications,
		Conditions:        p.Conditions,
		EmergencyContacts: p.EmergencyContacts,
		Notes:             p.Notes,
	}
}
