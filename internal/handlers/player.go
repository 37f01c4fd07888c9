package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"wildlife-points-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code for a unique-constraint
// violation, used to map duplicate logins to 409.
const uniqueViolation = "23505"

type PlayerHandler struct {
	db *sql.DB
}

func NewPlayerHandler(db *sql.DB) *PlayerHandler {
	return &PlayerHandler{db: db}
}

// Top3 returns the three highest-scoring players.
func (h *PlayerHandler) Top3(c *gin.Context) {
	h.listScores(c, `
		SELECT login, points
		FROM players
		ORDER BY points DESC
		LIMIT 3
	`)
}

// AllAlphabetical returns every player ordered by login.
func (h *PlayerHandler) AllAlphabetical(c *gin.Context) {
	h.listScores(c, `
		SELECT login, points
		FROM players
		ORDER BY login ASC
	`)
}

// AllByPoints returns every player ordered by points, highest first.
func (h *PlayerHandler) AllByPoints(c *gin.Context) {
	h.listScores(c, `
		SELECT login, points
		FROM players
		ORDER BY points DESC
	`)
}

func (h *PlayerHandler) listScores(c *gin.Context, query string) {
	rows, err := h.db.Query(query)
	if err != nil {
		slog.Error("failed to query players", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	players := make([]models.PlayerScore, 0)
	for rows.Next() {
		var p models.PlayerScore
		if err := rows.Scan(&p.Login, &p.Points); err != nil {
			slog.Error("failed to scan player", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		players = append(players, p)
	}

	if err = rows.Err(); err != nil {
		slog.Error("failed to read players", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, players)
}

// AllLogins returns every login with its stored password.
// Serving plaintext credentials on an open endpoint is inherited
// behavior; see DESIGN.md for the security finding.
func (h *PlayerHandler) AllLogins(c *gin.Context) {
	rows, err := h.db.Query(`
		SELECT login, password
		FROM players
		ORDER BY login ASC
	`)
	if err != nil {
		slog.Error("failed to query logins", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	logins := make([]models.PlayerCredentials, 0)
	for rows.Next() {
		var p models.PlayerCredentials
		if err := rows.Scan(&p.Login, &p.Password); err != nil {
			slog.Error("failed to scan login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		logins = append(logins, p)
	}

	if err = rows.Err(); err != nil {
		slog.Error("failed to read logins", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, logins)
}

// MilitaryLogins returns every login with its military flag.
func (h *PlayerHandler) MilitaryLogins(c *gin.Context) {
	rows, err := h.db.Query(`
		SELECT login, military_flag
		FROM players
		ORDER BY login ASC
	`)
	if err != nil {
		slog.Error("failed to query military flags", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	logins := make([]models.PlayerMilitary, 0)
	for rows.Next() {
		var p models.PlayerMilitary
		if err := rows.Scan(&p.Login, &p.MilitaryFlag); err != nil {
			slog.Error("failed to scan military flag", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		logins = append(logins, p)
	}

	if err = rows.Err(); err != nil {
		slog.Error("failed to read military flags", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, logins)
}

// IncreasePoints adds one point to the player, creating the row with a
// single point when the login is unknown. The upsert keeps the
// create-or-increment decision inside one statement, so two concurrent
// requests for the same new login cannot race each other.
func (h *PlayerHandler) IncreasePoints(c *gin.Context) {
	var req models.IncreasePointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login is required"})
		return
	}

	var player models.PlayerScore
	err := h.db.QueryRow(`
		INSERT INTO players (login, points)
		VALUES ($1, 1)
		ON CONFLICT (login)
		DO UPDATE SET points = players.points + 1
		RETURNING login, points
	`, req.Login).Scan(&player.Login, &player.Points)

	if err != nil {
		slog.Error("failed to increase points", "login", req.Login, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, models.PlayerMessageResponse{
		Message: fmt.Sprintf("Points for %s increased by 1", player.Login),
		Player:  player,
	})
}

// ChangePassword overwrites the stored password when the supplied old
// password matches. The update is guarded by the old value itself, so a
// mismatch can never mutate the row; the follow-up probe only decides
// between 404 and 401.
func (h *PlayerHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login, oldPassword and newPassword are required"})
		return
	}

	result, err := h.db.Exec(`
		UPDATE players
		SET password = $3
		WHERE login = $1 AND password = $2
	`, req.Login, req.OldPassword, req.NewPassword)
	if err != nil {
		slog.Error("failed to change password", "login", req.Login, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read update result", "login", req.Login, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if affected == 0 {
		var exists int
		err := h.db.QueryRow(`SELECT 1 FROM players WHERE login = $1`, req.Login).Scan(&exists)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			return
		}
		if err != nil {
			slog.Error("failed to check player", "login", req.Login, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid old password"})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Password for %s changed", req.Login),
	})
}

// AddPlayer creates a full player record with zero points.
func (h *PlayerHandler) AddPlayer(c *gin.Context) {
	var req models.AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login and password are required"})
		return
	}

	var player models.AddedPlayer
	err := h.db.QueryRow(`
		INSERT INTO players (login, points, military_flag, password)
		VALUES ($1, 0, 0, $2)
		RETURNING login, points, military_flag
	`, req.Login, req.Password).Scan(&player.Login, &player.Points, &player.MilitaryFlag)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			c.JSON(http.StatusConflict, gin.H{"error": "Player with this login already exists"})
			return
		}
		slog.Error("failed to add player", "login", req.Login, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, models.AddPlayerResponse{
		Message: fmt.Sprintf("Player %s added", player.Login),
		Player:  player,
	})
}
