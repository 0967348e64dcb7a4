package dto

// QuestionSummaryDTO is what players see; the expected answer is never exposed.
type QuestionSummaryDTO struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Category string `json:"category"`
}

type QuestionListResponse struct {
	Success   bool                 `json:"success"`
	Questions []QuestionSummaryDTO `json:"questions"`
}

// QuestionSeedDTO is one entry of the YAML seed file.
type QuestionSeedDTO struct {
	Question       string `yaml:"question"`
	Category       string `yaml:"category"`
	ExpectedAnswer string `yaml:"expectedAnswer"`
	CreatedBy      string `yaml:"createdBy"`
}
