package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// CategoryModel represents the categories reference table.
type CategoryModel struct {
	Code string `gorm:"type:varchar(20);primaryKey"`
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{Code: m.Code, Name: m.Name}
}

// TagModel represents the tags table in the database.
type TagModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID       *uuid.UUID `gorm:"type:uuid;index"` // NULL for global tags
	Name         string     `gorm:"type:varchar(50);not null"`
	Icon         string     `gorm:"type:varchar(50);not null;default:'tag'"`
	ParentID     *uuid.UUID `gorm:"type:uuid;index"`
	CategoryCode *string    `gorm:"type:varchar(20)"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryCode;references:Code"`
}

// TableName returns the table name for the TagModel.
func (TagModel) TableName() string {
	return "tags"
}

// ToEntity converts a TagModel to a domain Tag entity.
func (m *TagModel) ToEntity() *entity.Tag {
	return &entity.Tag{
		ID:           m.ID,
		UserID:       m.UserID,
		Name:         m.Name,
		Icon:         m.Icon,
		ParentID:     m.ParentID,
		CategoryCode: m.CategoryCode,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// TagFromEntity creates a TagModel from a domain Tag entity.
func TagFromEntity(t *entity.Tag) *TagModel {
	return &TagModel{
		ID:           t.ID,
		UserID:       t.UserID,
		Name:         t.Name,
		Icon:         t.Icon,
		ParentID:     t.ParentID,
		CategoryCode: t.CategoryCode,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// TagRuleModel represents the tag_rules table in the database.
type TagRuleModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	TagID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Expression string    `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the TagRuleModel.
func (TagRuleModel) TableName() string {
	return "tag_rules"
}

// ToEntity converts a TagRuleModel to a domain TagRule entity.
func (m *TagRuleModel) ToEntity() *entity.TagRule {
	return &entity.TagRule{
		ID:         m.ID,
		UserID:     m.UserID,
		TagID:      m.TagID,
		Expression: m.Expression,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// TagRuleFromEntity creates a TagRuleModel from a domain TagRule entity.
func TagRuleFromEntity(r *entity.TagRule) *TagRuleModel {
	return &TagRuleModel{
		ID:         r.ID,
		UserID:     r.UserID,
		TagID:      r.TagID,
		Expression: r.Expression,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// HolidayModel represents the holidays table in the database.
type HolidayModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the HolidayModel.
func (HolidayModel) TableName() string {
	return "holidays"
}

// ToEntity converts a HolidayModel to a domain Holiday entity.
func (m *HolidayModel) ToEntity() *entity.Holiday {
	return &entity.Holiday{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// HolidayFromEntity creates a HolidayModel from a domain Holiday entity.
func HolidayFromEntity(h *entity.Holiday) *HolidayModel {
	return &HolidayModel{
		ID:        h.ID,
		UserID:    h.UserID,
		Name:      h.Name,
		StartDate: h.StartDate,
		EndDate:   h.EndDate,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

// AllModels lists every model migrated at start-up, in dependency order.
func AllModels() []any {
	return []any{
		&UserModel{},
		&RefreshTokenModel{},
		&CategoryModel{},
		&InstitutionModel{},
		&AccountModel{},
		&RequisitionModel{},
		&TagModel{},
		&TagRuleModel{},
		&HolidayModel{},
		&TransactionModel{},
		&TransferLinkModel{},
	}
}
