package dto

import "time"

// PredictRequest is the body of POST /api/predict. ImageData is base64 PNG
// without the data-URI prefix.
type PredictRequest struct {
	ImageData  string `json:"imageData" binding:"required,pngbase64"`
	QuestionID string `json:"questionId" binding:"required"`
	Username   string `json:"username" binding:"omitempty,max=64"`
}

type PredictResponse struct {
	Success bool   `json:"success"`
	Caption string `json:"caption,omitempty"`
	Correct *bool  `json:"correct,omitempty"`
	Message string `json:"message"`
}

// ResultGradedEvent is published after a result row has been written.
type ResultGradedEvent struct {
	ResultID  string    `json:"resultId"`
	Username  string    `json:"username"`
	Question  string    `json:"question"`
	Caption   string    `json:"caption"`
	Correct   bool      `json:"correct"`
	CreatedAt time.Time `json:"createdAt"`
}
