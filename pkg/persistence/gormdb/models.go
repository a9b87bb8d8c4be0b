package gormdb

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Privilege struct {
	ID    string `gorm:"primaryKey;type:varchar(36)"`
	Name  string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Roles []Role `gorm:"many2many:roles_privileges"`
}

func (Privilege) TableName() string { return "privileges" }

func (p *Privilege) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type Role struct {
	ID         string      `gorm:"primaryKey;type:varchar(36)"`
	Name       string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Privileges []Privilege `gorm:"many2many:roles_privileges"`
	Users      []User      `gorm:"many2many:users_roles"`
}

func (Role) TableName() string { return "roles" }

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// User is the users row. Password holds the hash only.
type User struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)"`
	FirstName      string    `gorm:"type:varchar(255);not null"`
	LastName       string    `gorm:"type:varchar(255);not null"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password       string    `gorm:"type:varchar(255);not null"`
	Enabled        bool      `gorm:"not null"`
	Roles          []Role    `gorm:"many2many:users_roles"`
	CreatedAt      time.Time `gorm:"not null"`
	LastModifiedAt time.Time `gorm:"autoUpdateTime;not null"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
