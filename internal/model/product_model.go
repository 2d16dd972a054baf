package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type Product struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code        int64                       `gorm:"type:bigserial;uniqueIndex;not null"`
	FarmerId    uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Name        string                      `gorm:"type:varchar(255);not null"`
	Category    string                      `gorm:"type:varchar(100);not null;index"`
	Price       float64                     `gorm:"type:numeric(12,2);not null"`
	Quantity    int                         `gorm:"not null;default:0"`
	Unit        string                      `gorm:"type:varchar(30);not null"`
	Location    string                      `gorm:"type:varchar(255);not null"`
	HarvestDate *time.Time                  `gorm:"type:date"`
	Images      datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Description *string                     `gorm:"type:text"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`

	Farmer *Profile `gorm:"foreignKey:FarmerId;references:Id"`
}

func (Product) TableName() string {
	return "products"
}

// ProductEmbedding holds the semantic-search vector for a product, one row
// per product, regenerated whenever the listing text changes.
type ProductEmbedding struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductId uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (ProductEmbedding) TableName() string {
	return "product_embeddings"
}
