package dbmodels

import (
	"time"

	"github.com/pkg/errors"
)

type BaseModel struct {
	ID        string    `gorm:"primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m BaseModel) GetID() string {
	return m.ID
}

type BaseSpaceModel struct {
	BaseModel
	SpaceID string `gorm:"type:varchar(36);index"`
}

func (m BaseSpaceModel) Validate() error {
	if m.SpaceID == "" {
		return errors.New("не указано рабочее пространство")
	}
	return nil
}
