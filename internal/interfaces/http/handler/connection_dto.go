package handler

import "github.com/google/uuid"

// ConnectedNGOsResponse lists the donor's NGOs after a connect or disconnect
type ConnectedNGOsResponse struct {
	ConnectedNGOs []uuid.UUID `json:"connected_ngos"`
}

// ConnectionsResponse lists the accounts on the other side of the caller's links
type ConnectionsResponse struct {
	Connections []UserResponse `json:"connections"`
}
