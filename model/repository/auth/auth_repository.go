package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	authEntity "inventory.GO/model/entity/auth"
)

var ErrNotFound = errors.New("api token not found")

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// HashToken is the stored form of a bearer secret.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Create stores a token under the hash of secret.
func (r *AuthRepository) Create(name, secret string) (*authEntity.APIToken, error) {
	t := &authEntity.APIToken{Name: name, TokenHash: HashToken(secret)}
	if err := r.db.Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// FindActiveToken returns a non-revoked token by its bearer secret.
func (r *AuthRepository) FindActiveToken(secret string) (*authEntity.APIToken, error) {
	var t authEntity.APIToken
	err := r.db.Where("token_hash = ? AND revoked = ?", HashToken(secret), false).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Touch records a successful use.
func (r *AuthRepository) Touch(id uint, at time.Time) error {
	return r.db.Model(&authEntity.APIToken{}).Where("id = ?", id).Update("last_used_at", at).Error
}

func (r *AuthRepository) Revoke(id uint) error {
	res := r.db.Model(&authEntity.APIToken{}).Where("id = ? AND revoked = ?", id, false).Update("revoked", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AuthRepository) List() ([]authEntity.APIToken, error) {
	var tokens []authEntity.APIToken
	err := r.db.Order("id ASC").Find(&tokens).Error
	return tokens, err
}
