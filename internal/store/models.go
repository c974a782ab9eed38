package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without time of day, encoded as YYYY-MM-DD in JSON.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*d = Date{time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)}
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (Date) GormDataType() string {
	return "date"
}

type FilmStock struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Model      string    `gorm:"size:100;not null" json:"model"`
	Format     *string   `gorm:"size:50" json:"format"`
	Quantity   int       `gorm:"not null;default:0" json:"quantity"`
	ExpiryDate *Date     `json:"expiry_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Gallery struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Description   *string   `gorm:"type:text" json:"description"`
	CoverImageURL *string   `gorm:"size:500" json:"cover_image_url"`
	PhotoCount    int       `gorm:"not null;default:0" json:"photo_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Photo struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	GalleryID    uint      `gorm:"not null;index" json:"gallery_id"`
	OriginalURL  string    `gorm:"size:500;not null" json:"original_url"`
	ThumbnailURL *string   `gorm:"size:500" json:"thumbnail_url"`
	StorageKey   *string   `gorm:"size:500" json:"-"`
	FileSize     *int64    `json:"file_size"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

type Trip struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"size:255;not null" json:"name"`
	Destination *string     `gorm:"size:255" json:"destination"`
	StartDate   *Date       `json:"start_date"`
	EndDate     *Date       `json:"end_date"`
	Description *string     `gorm:"type:text" json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Images      []TripImage `gorm:"foreignKey:TripID;constraint:false" json:"images"`
}

type TripImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TripID       uint      `gorm:"not null;index" json:"trip_id"`
	ImageURL     string    `gorm:"size:500;not null" json:"image_url"`
	ThumbnailURL *string   `gorm:"size:500" json:"thumbnail_url"`
	StorageKey   *string   `gorm:"size:500" json:"-"`
	FileSize     *int64    `json:"-"`
	Caption      *string   `gorm:"size:255" json:"caption"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// FilmStockPatch holds the fields of a partial update; nil fields are left untouched.
type FilmStockPatch struct {
	Model      *string `json:"model"`
	Format     *string `json:"format"`
	Quantity   *int    `json:"quantity"`
	ExpiryDate *Date   `json:"expiry_date"`
}

type GalleryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type TripPatch struct {
	Name        *string `json:"name"`
	Destination *string `json:"destination"`
	StartDate   *Date   `json:"start_date"`
	EndDate     *Date   `json:"end_date"`
	Description *string `json:"description"`
}

func (p FilmStockPatch) updates() map[string]interface{} {
	u := map[string]interface{}{}
	if p.Model != nil {
		u["model"] = *p.Model
	}
	if p.Format != nil {
		u["format"] = *p.Format
	}
	if p.Quantity != nil {
		u["quantity"] = *p.Quantity
	}
	if p.ExpiryDate != nil {
		u["expiry_date"] = *p.ExpiryDate
	}
	return u
}

func (p GalleryPatch) updates() map[string]interface{} {
	u := map[string]interface{}{}
	if p.Name != nil {
		u["name"] = *p.Name
	}
	if p.Description != nil {
		u["description"] = *p.Description
	}
	return u
}

func (p TripPatch) updates() map[string]interface{} {
	u := map[string]interface{}{}
	if p.Name != nil {
		u["name"] = *p.Name
	}
	if p.Destination != nil {
		u["destination"] = *p.Destination
	}
	if p.StartDate != nil {
		u["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		u["end_date"] = *p.EndDate
	}
	if p.Description != nil {
		u["description"] = *p.Description
	}
	return u
}
