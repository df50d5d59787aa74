package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"stayhub/internal/domain"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	Name             string    `gorm:"column:name"`
	City             string    `gorm:"column:city;index"`
	TotalRooms       int       `gorm:"column:total_rooms"`
	MaxGuestsPerRoom int       `gorm:"column:max_guests_per_room"`
	OwnerID          int64     `gorm:"column:owner_id;index"`
	PaymentSettings  *string   `gorm:"column:payment_settings;type:text"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) *domain.Property {
	p := &domain.Property{
		ID:               m.ID,
		Name:             m.Name,
		City:             m.City,
		TotalRooms:       m.TotalRooms,
		MaxGuestsPerRoom: m.MaxGuestsPerRoom,
		OwnerID:          m.OwnerID,
		PaymentSettings:  domain.DefaultPaymentSettings(),
	}
	if m.PaymentSettings != nil && *m.PaymentSettings != "" {
		var s domain.PaymentSettings
		if err := json.Unmarshal([]byte(*m.PaymentSettings), &s); err == nil && s.Validate() == nil {
			p.PaymentSettings = s
		}
	}
	return p
}

func toPropertyModel(p *domain.Property) (propertyModel, error) {
	raw, err := json.Marshal(p.PaymentSettings)
	if err != nil {
		return propertyModel{}, err
	}
	s := string(raw)
	return propertyModel{
		ID:               p.ID,
		Name:             p.Name,
		City:             p.City,
		TotalRooms:       p.TotalRooms,
		MaxGuestsPerRoom: p.MaxGuestsPerRoom,
		OwnerID:          p.OwnerID,
		PaymentSettings:  &s,
	}, nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m, err := toPropertyModel(p)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var m propertyModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainProperty(m), nil
}

func (r *PropertyRepository) GetCapacity(ctx context.Context, id int64) (int, error) {
	var m propertyModel
	if err := r.db.WithContext(ctx).Select("id", "total_rooms").First(&m, id).Error; err != nil {
		return 0, err
	}
	return m.TotalRooms, nil
}

// GetPaymentSettings parses the JSON settings column, falling back to
// defaults when the column is empty. Malformed settings are rejected at
// write time; a bad row read back still degrades to defaults.
func (r *PropertyRepository) GetPaymentSettings(ctx context.Context, id int64) (domain.PaymentSettings, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.PaymentSettings{}, err
	}
	return p.PaymentSettings, nil
}

func (r *PropertyRepository) UpdatePaymentSettings(ctx context.Context, id int64, s domain.PaymentSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("id = ?", id).
		Update("payment_settings", string(raw)).Error
}
