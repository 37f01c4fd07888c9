package handlers

import (
	"database/sql"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"wildlife-points-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Accepted layouts for the optional upload date field.
var uploadDateLayouts = []string{time.RFC3339, "2006-01-02"}

type PhotoHandler struct {
	db             *sql.DB
	maxUploadBytes int64
}

func NewPhotoHandler(db *sql.DB, maxUploadBytes int64) *PhotoHandler {
	return &PhotoHandler{
		db:             db,
		maxUploadBytes: maxUploadBytes,
	}
}

// dataURI serializes image bytes the way the catalog always has: a jpeg
// data-URI regardless of the actual format. Documented defect, kept.
func dataURI(image []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)
}

// ImagesBySpecies returns the whole catalog ordered by species.
func (h *PhotoHandler) ImagesBySpecies(c *gin.Context) {
	rows, err := h.db.Query(`
		SELECT login, location, species, image
		FROM photos
		ORDER BY species ASC
	`)
	if err != nil {
		slog.Error("failed to query photos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	photos := make([]models.CatalogPhoto, 0)
	for rows.Next() {
		var p models.CatalogPhoto
		var image []byte
		if err := rows.Scan(&p.Login, &p.Location, &p.Species, &image); err != nil {
			slog.Error("failed to scan photo", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		p.Image = dataURI(image)
		photos = append(photos, p)
	}

	if err = rows.Err(); err != nil {
		slog.Error("failed to read photos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, photos)
}

// UploadImage stores a photo from a multipart form. The binary payload
// is buffered in memory, so uploads above the configured ceiling are
// rejected before being read.
func (h *PhotoHandler) UploadImage(c *gin.Context) {
	login := c.PostForm("login")
	location := c.PostForm("location")
	species := c.PostForm("species")

	file, err := c.FormFile("image")
	if login == "" || location == "" || species == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login, location, species and image are required"})
		return
	}

	if file.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image is too large"})
		return
	}

	uploadDate := time.Now()
	if dateStr := c.PostForm("date"); dateStr != "" {
		parsed, err := parseUploadDate(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be RFC 3339 or YYYY-MM-DD"})
			return
		}
		uploadDate = parsed
	}

	src, err := file.Open()
	if err != nil {
		slog.Error("failed to open uploaded image", "login", login, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	defer src.Close()

	image, err := io.ReadAll(src)
	if err != nil {
		slog.Error("failed to read uploaded image", "login", login, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}

	var photo models.UploadedPhoto
	err = h.db.QueryRow(`
		INSERT INTO photos (login, location, species, image, upload_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING login, location, species, upload_date
	`, login, location, species, image, uploadDate).Scan(
		&photo.Login,
		&photo.Location,
		&photo.Species,
		&photo.Date,
	)

	if err != nil {
		slog.Error("failed to insert photo", "login", login, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, models.UploadPhotoResponse{
		Message: fmt.Sprintf("Photo from %s added", photo.Login),
		Image:   photo,
	})
}

func parseUploadDate(dateStr string) (time.Time, error) {
	var lastErr error
	for _, layout := range uploadDateLayouts {
		parsed, err := time.Parse(layout, dateStr)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ImagesByLoginAsc returns a player's photos, oldest first.
func (h *PhotoHandler) ImagesByLoginAsc(c *gin.Context) {
	h.listPlayerPhotos(c, `
		SELECT login, location, species, image, upload_date
		FROM photos
		WHERE login = $1
		ORDER BY upload_date ASC
	`)
}

// ImagesByLoginDesc returns a player's photos, newest first.
func (h *PhotoHandler) ImagesByLoginDesc(c *gin.Context) {
	h.listPlayerPhotos(c, `
		SELECT login, location, species, image, upload_date
		FROM photos
		WHERE login = $1
		ORDER BY upload_date DESC
	`)
}

func (h *PhotoHandler) listPlayerPhotos(c *gin.Context, query string) {
	login := c.Query("login")
	if login == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login query parameter is required"})
		return
	}

	rows, err := h.db.Query(query, login)
	if err != nil {
		slog.Error("failed to query photos", "login", login, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	photos, err := scanPlayerPhotos(rows)
	if err != nil {
		slog.Error("failed to read photos", "login", login, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, photos)
}

// ImagesBySpeciesForLogin returns a player's photos of one species, newest first.
func (h *PhotoHandler) ImagesBySpeciesForLogin(c *gin.Context) {
	login := c.Query("login")
	species := c.Query("species")
	if login == "" || species == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login and species query parameters are required"})
		return
	}

	rows, err := h.db.Query(`
		SELECT login, location, species, image, upload_date
		FROM photos
		WHERE login = $1 AND species = $2
		ORDER BY upload_date DESC
	`, login, species)
	if err != nil {
		slog.Error("failed to query photos", "login", login, "species", species, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	photos, err := scanPlayerPhotos(rows)
	if err != nil {
		slog.Error("failed to read photos", "login", login, "species", species, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, photos)
}

func scanPlayerPhotos(rows *sql.Rows) ([]models.PlayerPhoto, error) {
	photos := make([]models.PlayerPhoto, 0)
	for rows.Next() {
		var p models.PlayerPhoto
		var image []byte
		if err := rows.Scan(&p.Login, &p.Location, &p.Species, &image, &p.Date); err != nil {
			return nil, err
		}
		p.Image = dataURI(image)
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// SpeciesByCount returns a player's photos grouped by species popularity:
// species with the most photos first, ties by species name, photos within
// a species newest first.
func (h *PhotoHandler) SpeciesByCount(c *gin.Context) {
	login := c.Query("login")
	if login == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login query parameter is required"})
		return
	}

	rows, err := h.db.Query(`
		SELECT p.login, p.location, p.species, p.image, p.upload_date, counts.species_count
		FROM photos p
		JOIN (
			SELECT species, COUNT(*) AS species_count
			FROM photos
			WHERE login = $1
			GROUP BY species
		) counts ON p.species = counts.species
		WHERE p.login = $1
		ORDER BY counts.species_count DESC, p.species ASC, p.upload_date DESC
	`, login)
	if err != nil {
		slog.Error("failed to query species counts", "login", login, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	photos := make([]models.SpeciesCountPhoto, 0)
	for rows.Next() {
		var p models.SpeciesCountPhoto
		var image []byte
		if err := rows.Scan(&p.Login, &p.Location, &p.Species, &image, &p.Date, &p.SpeciesCount); err != nil {
			slog.Error("failed to scan photo", "login", login, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		p.Image = dataURI(image)
		photos = append(photos, p)
	}

	if err = rows.Err(); err != nil {
		slog.Error("failed to read species counts", "login", login, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, photos)
}
