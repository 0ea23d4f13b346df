package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultLessonMinutes = 30

type KeyTerm struct {
	Term       string `json:"term" validate:"required"`
	Definition string `json:"definition" validate:"required"`
}

type Activity struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description" validate:"required"`
	Type        string         `json:"type" validate:"required,oneof=quiz discussion assignment exercise"`
	Content     datatypes.JSON `json:"content,omitempty"`
}

type Lesson struct {
	ID               uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string                        `gorm:"column:title;not null" json:"title"`
	Description      string                        `gorm:"column:description;type:text;not null" json:"description"`
	ModuleID         uuid.UUID                     `gorm:"type:uuid;column:module_id;not null;index:idx_lesson_module_order,priority:1" json:"module"`
	Content          string                        `gorm:"column:content;type:text;not null" json:"content"`
	LearningOutcomes datatypes.JSONSlice[string]   `gorm:"column:learning_outcomes;not null" json:"learningOutcomes"`
	KeyTerms         datatypes.JSONSlice[KeyTerm]  `gorm:"column:key_terms;not null" json:"keyTerms"`
	Activities       datatypes.JSONSlice[Activity] `gorm:"column:activities;not null" json:"activities"`
	Order            int                           `gorm:"column:sort_order;not null;index:idx_lesson_module_order,priority:2" json:"order"`
	EstimatedTime    int                           `gorm:"column:estimated_time;not null" json:"estimatedTime"`
	CreatedAt        time.Time                     `gorm:"not null" json:"createdAt"`
	UpdatedAt        time.Time                     `gorm:"not null" json:"updatedAt"`
}

func (Lesson) TableName() string { return "lessons" }

func (l *Lesson) BeforeSave(*gorm.DB) error {
	if l.LearningOutcomes == nil {
		l.LearningOutcomes = datatypes.JSONSlice[string]{}
	}
	if l.KeyTerms == nil {
		l.KeyTerms = datatypes.JSONSlice[KeyTerm]{}
	}
	if l.Activities == nil {
		l.Activities = datatypes.JSONSlice[Activity]{}
	}
	return nil
}
