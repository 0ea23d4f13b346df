package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Module struct {
	ID              uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string                         `gorm:"column:title;not null" json:"title"`
	Description     string                         `gorm:"column:description;type:text;not null" json:"description"`
	CourseID        uuid.UUID                      `gorm:"type:uuid;column:course_id;not null;index:idx_module_course_order,priority:1" json:"course"`
	LessonIDs       datatypes.JSONSlice[uuid.UUID] `gorm:"column:lesson_ids;not null" json:"lessons"`
	Order           int                            `gorm:"column:sort_order;not null;index:idx_module_course_order,priority:2" json:"order"`
	PrerequisiteIDs datatypes.JSONSlice[uuid.UUID] `gorm:"column:prerequisite_ids;not null" json:"prerequisites"`
	CreatedAt       time.Time                      `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time                      `gorm:"not null" json:"updatedAt"`
}

func (Module) TableName() string { return "modules" }

func (m *Module) BeforeSave(*gorm.DB) error {
	if m.LessonIDs == nil {
		m.LessonIDs = datatypes.JSONSlice[uuid.UUID]{}
	}
	if m.PrerequisiteIDs == nil {
		m.PrerequisiteIDs = datatypes.JSONSlice[uuid.UUID]{}
	}
	return nil
}

// ModuleDetail is a module with lessons and prerequisites resolved to records.
type ModuleDetail struct {
	Module
	Lessons       []*Lesson `json:"lessons"`
	Prerequisites []*Module `json:"prerequisites"`
}

// RemoveID returns ids without any occurrence of id, preserving order.
func RemoveID(ids []uuid.UUID, id uuid.UUID) ([]uuid.UUID, bool) {
	out := make([]uuid.UUID, 0, len(ids))
	removed := false
	for _, x := range ids {
		if x == id {
			removed = true
			continue
		}
		out = append(out, x)
	}
	return out, removed
}
