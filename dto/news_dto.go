package dto

type CreateNewsDTO struct {
	Title   string  `json:"title" binding:"required"`
	Content string  `json:"content" binding:"required"`
	Excerpt *string `json:"excerpt"`
	Image   *string `json:"image"`
	Status  string  `json:"status" binding:"omitempty,news_status"` // defaults to draft
}

type UpdateNewsDTO struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Excerpt *string `json:"excerpt"`
	Image   *string `json:"image"`
	Status  *string `json:"status" binding:"omitempty,news_status"`
}
