package http

import (
	"time"

	"github.com/dmitrijs2005/habitcheck/internal/server/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type loginResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type userResponse struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type createUserRequest struct {
	AdminUsername string `json:"adminUsername"`
	AdminToken    string `json:"adminToken"`
	NewUsername   string `json:"newUsername"`
}

type createUserResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type submitEntryRequest struct {
	Date       string `json:"date"`
	Username   string `json:"username"`
	Token      string `json:"token"`
	Journal    bool   `json:"journal"`
	Meditation bool   `json:"meditation"`
	Movement   bool   `json:"movement"`
}

type entryResponse struct {
	Date       string    `json:"date"`
	Username   string    `json:"username"`
	Journal    bool      `json:"journal"`
	Meditation bool      `json:"meditation"`
	Movement   bool      `json:"movement"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toEntryResponse(e *models.Entry) entryResponse {
	return entryResponse{
		Date:       e.Date,
		Username:   e.UserName,
		Journal:    e.Journal,
		Meditation: e.Meditation,
		Movement:   e.Movement,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
