package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table. IDs are time-ordered UUIDv7, generated
// in BeforeCreate so the schema stays portable across drivers.
// The unique indexes are named so the repository can tell which one rejected a
// write: uni_users_external_uid vs uni_users_email lead to different conflicts.
// Email is nullable because find-or-create placeholder rows have no email yet;
// NULLs never collide on the unique index.
type UserModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key"`
	ExternalUID       string     `gorm:"type:varchar(128);not null;uniqueIndex:uni_users_external_uid"`
	Email             *string    `gorm:"type:varchar(255);uniqueIndex:uni_users_email"`
	Name              string     `gorm:"type:varchar(100)"`
	Birthdate         *time.Time `gorm:"type:date"`
	Occupation        *string    `gorm:"type:varchar(255)"`
	ProfilePictureURL *string    `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Tasks []TaskModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUIDv7 primary key when none was supplied.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		m.ID = id
	}

	return nil
}
