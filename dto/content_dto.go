package dto

type CreateSchoolInfoDTO struct {
	Section string  `json:"section" binding:"required"`
	Title   string  `json:"title" binding:"required"`
	Content string  `json:"content" binding:"required"`
	Image   *string `json:"image"`
	Order   int     `json:"order"`
}

type UpdateSchoolInfoDTO struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Image    *string `json:"image"`
	Order    *int    `json:"order"`
	IsActive *bool   `json:"is_active"`
}

type CreateGalleryDTO struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Image       string  `json:"image" binding:"required"`
	Category    string  `json:"category"` // defaults to "general"
}

type UpdateGalleryDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"is_active"`
}

type CreateContactDTO struct {
	Type  string `json:"type" binding:"required"`
	Label string `json:"label" binding:"required"`
	Value string `json:"value" binding:"required"`
	Order int    `json:"order"`
}

type UpdateContactDTO struct {
	Label    *string `json:"label"`
	Value    *string `json:"value"`
	IsActive *bool   `json:"is_active"`
	Order    *int    `json:"order"`
}

// Dates are ISO 8601 strings, with or without a zone.
type CreateScheduleDTO struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Date        string  `json:"date" binding:"required"`
	Time        string  `json:"time" binding:"required"`
	Location    *string `json:"location"`
}

type UpdateScheduleDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	IsActive    *bool   `json:"is_active"`
}

type CreateCommentDTO struct {
	Content     string  `json:"content" binding:"required,max=5000"`
	AuthorName  string  `json:"author_name" binding:"required,max=200"`
	AuthorEmail *string `json:"author_email" binding:"omitempty,email"`
	NewsID      string  `json:"news_id" binding:"required"`
}

type UpdateCommentDTO struct {
	IsApproved *bool `json:"is_approved"`
}

type StatusCheckDTO struct {
	ClientName string `json:"client_name" binding:"required"`
}
