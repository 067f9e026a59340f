package model

import "time"

type User struct {
	ID          string    `json:"id"`
	CognitoSub  string    `json:"cognito_sub"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	TimeZone    string    `json:"time_zone"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
