package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ashurbayy/lifechip/internal/models"
	"github.com/ashurbayy/lifechip/internal/store"
)

func init() {
	// Report validation failures under the json field names clients sent.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// RegisterRequest is the payload for POST /api/auth/register. The password
// confirmation is compared by the handler, matching the original contract
// where a mismatch is its own message rather than a schema failure.
type RegisterRequest struct {
	Username        string  `json:"username" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required"`
	ConfirmPassword string  `json:"confirmPassword" binding:"required"`
	FullName        *string `json:"fullName"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// CreateProfileRequest is the payload for POST /api/medical-profile. The
// owning account comes from the session, never from the body.
type CreateProfileRequest struct {
	ChipID            string                    `json:"chipId" binding:"required"`
	BloodType         *string                   `json:"bloodType"`
	Allergies         []string                  `json:"allergies"`
	Medications       []string                  `json:"medications"`
	Conditions        []string                  `json:"conditions"`
	EmergencyContacts []models.EmergencyContact `json:"emergencyContacts"`
	Notes             *string                   `json:"notes"`
}

// UpdateProfileRequest is the partial payload for PUT /api/medical-profile/:id.
// Absent fields leave the stored value untouched.
type UpdateProfileRequest struct {
	ChipID            *string                   `json:"chipId"`
	BloodType         *string                   `json:"bloodType"`
	Allergies         []string                  `json:"allergies"`
	Medications       []string                  `json:"medications"`
	Conditions        []string                  `json:"conditions"`
	EmergencyContacts []models.EmergencyContact `json:"emergencyContacts"`
	Notes             *string                   `json:"notes"`
}

// Patch converts the request into a store patch.
func (r UpdateProfileRequest) Patch() store.MedicalProfilePatch {
	return store.MedicalProfilePatch{
		ChipID:            r.ChipID,
		BloodType:         r.BloodType,
		Allergies:         r.Allergies,
		Medications:       r.Medications,
		Conditions:        r.Conditions,
		EmergencyContacts: r.EmergencyContacts,
		Notes:             r.Notes,
	}
}

// ContactRequest is the payload for POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// respondBindingError turns a binding failure into a 400 with per-field
// messages where the failure came from validation tags.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "errors": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
