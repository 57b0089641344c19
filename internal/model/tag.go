package model

import "time"

type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type TagWithCount struct {
	Tag   Tag   `json:"tag"`
	Posts int64 `json:"posts"`
}
