package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID           uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Email        string    `gorm:"unique;not null;index" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // json:"-" prevents password from being exposed in API
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         string    `gorm:"not null;default:'admin'" json:"role"` // admin | editor
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Page struct {
	ID            uint           `gorm:"primary_key;autoIncrement" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Slug          string         `gorm:"unique;not null;index" json:"slug"`
	Content       string         `gorm:"type:text" json:"content"` // markdown or structured text
	HeroData      datatypes.JSON `json:"heroData,omitempty"`
	CarouselData  datatypes.JSON `json:"carouselData,omitempty"`
	SEOData       datatypes.JSON `json:"seoData,omitempty"`
	Published     bool           `gorm:"default:false;index" json:"published"`
	ContentBlocks []ContentBlock `gorm:"foreignKey:PageID" json:"contentBlocks,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

type CarSeries struct {
	ID             uint           `gorm:"primary_key;autoIncrement" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Slug           string         `gorm:"unique;not null;index" json:"slug"`
	Description    string         `gorm:"type:text" json:"description"`
	Specifications datatypes.JSON `json:"specifications,omitempty"` // engine, power, transmission, acceleration, topSpeed, features
	Price          float64        `json:"price"`
	HeroData       datatypes.JSON `json:"heroData,omitempty"`
	CarouselData   datatypes.JSON `json:"carouselData,omitempty"`
	Published      bool           `gorm:"default:false;index" json:"published"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// NavigationItem is a flat, parent-id addressed tree node. Children are
// resolved by querying ParentID, never by embedding, so the tree stays a
// plain table and cycle checks happen at write time.
type NavigationItem struct {
	ID         uint             `gorm:"primary_key;autoIncrement" json:"id"`
	Label      string           `gorm:"not null" json:"label"`
	URL        string           `json:"url"`
	ParentID   *uint            `gorm:"index" json:"parentId,omitempty"`
	OrderIndex int              `gorm:"default:0;index" json:"orderIndex"`
	IsActive   bool             `gorm:"default:true" json:"isActive"`
	IsExternal bool             `gorm:"default:false" json:"isExternal"`
	Target     string           `json:"target"`
	Children   []NavigationItem `gorm:"-" json:"children,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

type ContentBlock struct {
	ID         uint           `gorm:"primary_key;autoIncrement" json:"id"`
	PageID     uint           `gorm:"not null;index" json:"pageId"`
	Type       string         `gorm:"not null" json:"type"` // hero | carousel | text | image | html
	Data       datatypes.JSON `json:"data,omitempty"`
	OrderIndex int            `gorm:"default:0" json:"orderIndex"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

type Media struct {
	ID           uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Filename     string    `gorm:"not null" json:"filename"`
	OriginalName string    `json:"originalName"`
	URL          string    `gorm:"type:text;not null" json:"url"` // external URL or data-URL
	AltText      string    `json:"altText"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimeType"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
