package auth

import "time"

// APIToken represents api_token table. Only the sha256 of the bearer secret is stored.
type APIToken struct {
	ID         uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name       string     `gorm:"column:name;type:varchar(64);not null" json:"name"`
	TokenHash  string     `gorm:"column:token_hash;type:char(64);not null;uniqueIndex" json:"-"`
	Revoked    bool       `gorm:"column:revoked;not null;default:false" json:"revoked"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	LastUsedAt *time.Time `gorm:"column:last_used_at" json:"last_used_at,omitempty"`
}

func (APIToken) TableName() string {
	return "api_token"
}
