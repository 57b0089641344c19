package dto

type CreatePostRequest struct {
	Title     string  `json:"title" binding:"required,min=1"`
	Content   string  `json:"content" binding:"required"`
	Published bool    `json:"published"`
	TagIDs    []int64 `json:"tag_ids"`
}

type UpdatePostRequest struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	Published *bool    `json:"published"`
	TagIDs    *[]int64 `json:"tag_ids"`
}
