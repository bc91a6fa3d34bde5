// Package domain holds DTOs for the records read surface
package domain

// RawPageInput pages raw comments by offset
type RawPageInput struct {
	Offset int `json:"offset" validate:"omitempty,min=0" example:"0"`
	Limit  int `json:"limit" validate:"omitempty,min=1,max=1000" example:"100"`
}

// RawComment is one ingested comment as served
type RawComment struct {
	ID          int64  `json:"id" example:"42"`
	Region      string `json:"region" example:"riga"`
	ArticleID   int64  `json:"article_id" example:"118234001"`
	Nickname    string `json:"nickname" example:"vectors"`
	IPHash      string `json:"ip_hash" example:"9f2c"`
	CommentedAt string `json:"commented_at" example:"2025-03-01T10:15:00Z"`
	Body        string `json:"body" example:"labs raksts"`
	Lang        string `json:"lang" example:"lv"`
}

// ClassifiedPageInput pages classified comments by id cursor
type ClassifiedPageInput struct {
	Cursor int64 `json:"cursor" validate:"omitempty,min=0" example:"0"`
	Limit  int   `json:"limit" validate:"omitempty,min=1,max=1000" example:"100"`
}

// ClassifiedComment is one scored comment with both scheme verdicts
type ClassifiedComment struct {
	CommentID    int64              `json:"comment_id" example:"42"`
	ArticleID    int64              `json:"article_id" example:"118234001"`
	CommentedAt  string             `json:"commented_at" example:"2025-03-01T10:15:00Z"`
	Lang         string             `json:"lang" example:"lv"`
	Body         string             `json:"body" example:"labs raksts"`
	NormalLabel  string             `json:"normal_label" example:"positive"`
	NormalScore  float64            `json:"normal_score" example:"0.91234"`
	NormalScores map[string]float64 `json:"normal_scores"`
	EkmanLabel   string             `json:"ekman_label" example:"joy"`
	EkmanScore   float64            `json:"ekman_score" example:"0.77781"`
	EkmanScores  map[string]float64 `json:"ekman_scores"`
}

// ClassifiedPage carries one cursor page and the cursor for the next
type ClassifiedPage struct {
	Items      []ClassifiedComment `json:"items"`
	NextCursor int64               `json:"next_cursor" example:"142"`
}
