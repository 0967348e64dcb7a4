package dto

import "time"

type ResultDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Question  string    `json:"question"`
	Caption   string    `json:"caption"`
	Correct   bool      `json:"correct"`
	ImageData string    `json:"imageData"`
	CreatedAt time.Time `json:"createdAt"`
}

type ResultListResponse struct {
	Success bool        `json:"success"`
	Results []ResultDTO `json:"results"`
}
