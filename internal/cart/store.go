package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/zarascrunch/storefront/internal/apperr"
	"github.com/zarascrunch/storefront/internal/models"
)

// StorageKeyPrefix namespaces persisted carts the way the browser build
// keyed its local storage.
const StorageKeyPrefix = "zaras-crunch-cart:"

// Store is the durable boundary for cart state. Every mutation writes the
// full item list back; loading a token that was never written yields an
// empty cart.
type Store interface {
	Load(ctx context.Context, token string) (Cart, error)
	Save(ctx context.Context, token string, c Cart) error
	Delete(ctx context.Context, token string) error
}

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Load(ctx context.Context, token string) (Cart, error) {
	var session models.CartSession
	err := s.DB.WithContext(ctx).Where("token = ?", StorageKeyPrefix+token).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, apperr.Backend(err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(session.Payload), &items); err != nil {
		// A corrupt payload behaves like a missing one.
		return Cart{}, nil
	}
	return Cart{Items: items}, nil
}

func (s *GormStore) Save(ctx context.Context, token string, c Cart) error {
	items := c.Items
	if items == nil {
		items = []Item{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "cart serialization failed", err)
	}

	key := StorageKeyPrefix + token
	var session models.CartSession
	findErr := s.DB.WithContext(ctx).Where("token = ?", key).First(&session).Error
	if findErr == nil {
		session.Payload = string(payload)
		session.UpdatedAt = time.Now()
		if err := s.DB.WithContext(ctx).Save(&session).Error; err != nil {
			return apperr.Backend(err)
		}
		return nil
	}
	if !errors.Is(findErr, gorm.ErrRecordNotFound) {
		return apperr.Backend(findErr)
	}

	session = models.CartSession{Token: key, Payload: string(payload), UpdatedAt: time.Now()}
	if err := s.DB.WithContext(ctx).Create(&session).Error; err != nil {
		return apperr.Backend(err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, token string) error {
	if err := s.DB.WithContext(ctx).Where("token = ?", StorageKeyPrefix+token).Delete(&models.CartSession{}).Error; err != nil {
		return apperr.Backend(err)
	}
	return nil
}
