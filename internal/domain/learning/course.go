package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

type Course struct {
	ID               uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string                         `gorm:"column:title;not null" json:"title"`
	Description      string                         `gorm:"column:description;type:text;not null" json:"description"`
	CreatorID        uuid.UUID                      `gorm:"type:uuid;column:creator_id;not null;index" json:"creator"`
	ModuleIDs        datatypes.JSONSlice[uuid.UUID] `gorm:"column:module_ids;not null" json:"modules"`
	LearningOutcomes datatypes.JSONSlice[string]    `gorm:"column:learning_outcomes;not null" json:"learningOutcomes"`
	Difficulty       string                         `gorm:"column:difficulty;not null;default:'intermediate'" json:"difficulty"`
	EstimatedTime    int                            `gorm:"column:estimated_time;not null;default:0" json:"estimatedTime"`
	CreatedAt        time.Time                      `gorm:"not null;index" json:"createdAt"`
	UpdatedAt        time.Time                      `gorm:"not null" json:"updatedAt"`
}

func (Course) TableName() string { return "courses" }

func (c *Course) BeforeSave(*gorm.DB) error {
	if c.ModuleIDs == nil {
		c.ModuleIDs = datatypes.JSONSlice[uuid.UUID]{}
	}
	if c.LearningOutcomes == nil {
		c.LearningOutcomes = datatypes.JSONSlice[string]{}
	}
	return nil
}

// CourseDetail is a course with its module list resolved to records.
type CourseDetail struct {
	Course
	Modules []*Module `json:"modules"`
}
