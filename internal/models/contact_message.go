package models

import "time"

// ContactMessage is a submission from the public contact form. Messages are
// write-only from the API's point of view; operators read them through the
// store's listing operation.
type ContactMessage struct {
	ID        int       `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Subject   string    `gorm:"size:200;not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
