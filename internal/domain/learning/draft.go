package learning

// Drafts are generated suggestions. They are never persisted directly; an
// author submits them through the normal create operations.

type ModuleDraft struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Order        int      `json:"order" validate:"gte=1"`
	LessonTopics []string `json:"lessonTopics" validate:"required,min=1,dive,required"`
}

type LessonDraft struct {
	Title            string     `json:"title" validate:"required"`
	Description      string     `json:"description" validate:"required"`
	LearningOutcomes []string   `json:"learningOutcomes" validate:"required,dive,required"`
	Content          string     `json:"content" validate:"required"`
	KeyTerms         []KeyTerm  `json:"keyTerms" validate:"required,dive"`
	Activities       []Activity `json:"activities" validate:"required,dive"`
	EstimatedTime    int        `json:"estimatedTime" validate:"gte=0"`
}
