package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing image stored in the bucket under Path
// IsProvisional until a listing references it
type File struct {
	ID            string `json:"id" gorm:"type:uuid;primarykey"`
	Title         string `json:"title"`
	Path          string `json:"path"`
	Mime          string `json:"mime"`
	Size          int64  `json:"size"`
	IsProvisional bool   `json:"is_provisional" gorm:"default:true"`
	CreatedByID   string `json:"created_by_id" gorm:"type:uuid;index"`
	CreatedBy     *User  `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PublicFile struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	DownloadURL string `json:"download_url"`
}

func (base *File) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID != "" {
		return
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}

	base.ID = id.String()
	return
}

func (f File) DownloadURL() string {
	return "/files/" + f.ID + "/download"
}

func (f File) ToPublicFormat() any {
	return PublicFile{
		ID:          f.ID,
		Title:       f.Title,
		DownloadURL: f.DownloadURL(),
	}
}
