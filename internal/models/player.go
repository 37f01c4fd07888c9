package models

// PlayerScore is the login/points projection used by the leaderboard endpoints.
type PlayerScore struct {
	Login  string `json:"login"`
	Points int    `json:"points"`
}

// PlayerCredentials is the login/password projection served by /all/logins.
type PlayerCredentials struct {
	Login    string  `json:"login"`
	Password *string `json:"password"`
}

// PlayerMilitary is the login/military_flag projection served by /logins/military.
type PlayerMilitary struct {
	Login        string `json:"login"`
	MilitaryFlag int    `json:"military_flag"`
}

type IncreasePointsRequest struct {
	Login string `json:"login" binding:"required"`
}

type ChangePasswordRequest struct {
	Login       string `json:"login" binding:"required"`
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type AddPlayerRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AddedPlayer echoes the created row without the password.
type AddedPlayer struct {
	Login        string `json:"login"`
	Points       int    `json:"points"`
	MilitaryFlag int    `json:"military_flag"`
}

type PlayerMessageResponse struct {
	Message string      `json:"message"`
	Player  PlayerScore `json:"player"`
}

type AddPlayerResponse struct {
	Message string      `json:"message"`
	Player  AddedPlayer `json:"player"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
