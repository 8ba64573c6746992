package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"not null" json:"username"`
	Email        string    `gorm:"not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `gorm:"not null" json:"full_name"`
	PhoneNumber  *string   `json:"phone_number"`
	DateOfBirth  *string   `json:"date_of_birth"`
	TimeOfBirth  *string   `json:"time_of_birth"`
	Location     *string   `json:"location"`
	Bio          *string   `json:"bio"`
	Avatar       *string   `json:"avatar"`
	Role         string    `gorm:"not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Education      []Education     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Experience     []Experience    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Skills         []Skill         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Interests      []Interest      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Certifications []Certification `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Links          *Link           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
