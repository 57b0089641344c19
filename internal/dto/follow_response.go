package dto

type FollowResponse struct {
	Following bool `json:"following"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
