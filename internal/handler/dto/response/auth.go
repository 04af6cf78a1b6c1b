package response

import "studysync-api/internal/usecase/queries"

type LoginResponse struct {
	AccessToken string                       `json:"access_token"`
	User        *queries.AuthorizedUserView  `json:"user"`
}

type RegisterResponse struct {
	User *queries.AuthorizedUserView `json:"user"`
}
