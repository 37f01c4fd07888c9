package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches every endpoint to the router.
func RegisterRoutes(r *gin.Engine, db *sql.DB, maxUploadBytes int64) {
	playerHandler := NewPlayerHandler(db)
	photoHandler := NewPhotoHandler(db, maxUploadBytes)

	r.GET("/top3", playerHandler.Top3)
	r.GET("/all/alphabetical", playerHandler.AllAlphabetical)
	r.GET("/all/points", playerHandler.AllByPoints)
	r.GET("/all/logins", playerHandler.AllLogins)
	r.GET("/logins/military", playerHandler.MilitaryLogins)
	r.PUT("/increase-points", playerHandler.IncreasePoints)
	r.PUT("/change-password", playerHandler.ChangePassword)
	r.POST("/add-player", playerHandler.AddPlayer)

	r.GET("/images-by-species", photoHandler.ImagesBySpecies)
	r.POST("/upload-image", photoHandler.UploadImage)
	r.GET("/images/by-login/asc", photoHandler.ImagesByLoginAsc)
	r.GET("/images/by-login/desc", photoHandler.ImagesByLoginDesc)
	r.GET("/images/by-species", photoHandler.ImagesBySpeciesForLogin)
	r.GET("/species/by-count", photoHandler.SpeciesByCount)
}
