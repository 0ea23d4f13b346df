package prompts

type PromptName string

const (
	PromptModuleStructure PromptName = "module_structure"
	PromptLesson          PromptName = "lesson"
)
