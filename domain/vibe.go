package domain

// CREATE TABLE public.vibe_mappings (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     keyword     TEXT NOT NULL UNIQUE,
//     profile     JSONB NOT NULL,
//     effects     JSONB NOT NULL,
//     created_at  TIMESTAMPTZ DEFAULT NOW(),
//     updated_at  TIMESTAMPTZ DEFAULT NOW()
// );

// VibeMapping is one row of the vibe knowledge base: a lowercase keyword
// ("relaxed", "sleepy", ...) with the terpene profile it targets and the
// effect labels shown to the customer. Admin tooling edits these rows; the
// parser treats the loaded set as immutable per query.
type VibeMapping struct {
	ID      uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Keyword string         `gorm:"column:keyword;type:text;uniqueIndex;not null" json:"keyword"`
	Profile TerpeneProfile `gorm:"column:profile;type:jsonb;serializer:json" json:"profile"`
	Effects []string       `gorm:"column:effects;type:jsonb;serializer:json" json:"effects"`
}

func (VibeMapping) TableName() string {
	return "vibe_mappings"
}
