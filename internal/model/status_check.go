package model

import "time"

// StatusCheck is a single ping recorded by a client.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// StatusCheckCreate is the request body for recording a status check.
type StatusCheckCreate struct {
	ClientName string `json:"client_name" validate:"required"`
}
