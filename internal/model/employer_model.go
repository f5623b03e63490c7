package model

import (
	"github.com/google/uuid"
)

type Employer struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User      `json:"user,omitempty"`
	CompanyName string    `gorm:"not null" json:"company_name"`
	Industry    string    `gorm:"not null" json:"industry"`
	CompanySize string    `json:"company_size,omitempty"`
	Location    string    `gorm:"not null" json:"location"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Website     string    `json:"website,omitempty"`
}
