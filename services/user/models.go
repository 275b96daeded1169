package user

import (
	"time"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:150;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:254;not null"`
	Password       string    `json:"-" gorm:"size:255;not null"`
	Role           Role      `json:"role" gorm:"size:20;not null;default:'user'"`
	Bio            string    `json:"bio" gorm:"type:text"`
	ProfilePicture string    `json:"profile_picture" gorm:"size:500"`
	Active         bool      `json:"active" gorm:"not null;default:false"`
	Staff          bool      `json:"-" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsCreator() bool {
	return u.Role == RoleCreator || u.Role == RoleAdmin
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Staff
}
