package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name            TEXT NOT NULL,
//     brand           TEXT,
//     category        TEXT NOT NULL,
//     subcategory     TEXT,
//     description     TEXT,
//     strain_type     TEXT,
//     genetics        TEXT,
//     image_url       TEXT,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

const (
	StrainSativa   = "sativa"
	StrainIndica   = "indica"
	StrainHybrid   = "hybrid"
	StrainCBD      = "cbd"
	StrainBalanced = "balanced"
)

const (
	CategoryFlower      = "flower"
	CategoryEdible      = "edible"
	CategoryConcentrate = "concentrate"
	CategoryVaporizer   = "vaporizer"
	CategoryTincture    = "tincture"
	CategoryTopical     = "topical"
)

type Product struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:text;not null" json:"name"`
	Brand       string    `gorm:"column:brand;type:text" json:"brand"`
	Category    string    `gorm:"column:category;type:text;not null" json:"category"`
	Subcategory string    `gorm:"column:subcategory;type:text" json:"subcategory,omitempty"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	StrainType  string    `gorm:"column:strain_type;type:text" json:"strain_type"`
	Genetics    string    `gorm:"column:genetics;type:text" json:"genetics,omitempty"`
	ImageURL    string    `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// Variant is a sellable SKU under a product (size/weight tier).
type Variant struct {
	ID                uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID         uint64         `gorm:"column:product_id;not null;index" json:"product_id"`
	Name              string         `gorm:"column:name;type:text" json:"name"`
	Price             float64        `gorm:"column:price;type:numeric" json:"price"`
	OriginalPrice     float64        `gorm:"column:original_price;type:numeric" json:"original_price,omitempty"`
	THCPercent        float64        `gorm:"column:thc_percent;type:numeric" json:"thc_percent"`
	CBDPercent        float64        `gorm:"column:cbd_percent;type:numeric" json:"cbd_percent,omitempty"`
	TotalCannabinoids float64        `gorm:"column:total_cannabinoids;type:numeric" json:"total_cannabinoids,omitempty"`
	TerpeneProfile    TerpeneProfile `gorm:"column:terpene_profile;type:jsonb;serializer:json" json:"terpene_profile"`
	InventoryLevel    int            `gorm:"column:inventory_level;default:0" json:"inventory_level"`
	IsAvailable       bool           `gorm:"column:is_available;default:true" json:"is_available"`
	CreatedAt         time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Variant) TableName() string {
	return "variants"
}

// ProductWithVariant is the denormalized view the recommendation engine
// works on: a product paired with one representative variant, conventionally
// the cheapest. Variant is nil when the product has no sellable SKU.
type ProductWithVariant struct {
	Product Product  `json:"product"`
	Variant *Variant `json:"variant"`
}
