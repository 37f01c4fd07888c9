package handlers

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wildlife-points-backend/internal/models"
	"wildlife-points-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataURIPrefix = "data:image/jpeg;base64,"

func decodeDataURI(t *testing.T, uri string) []byte {
	t.Helper()
	require.True(t, strings.HasPrefix(uri, dataURIPrefix), "unexpected data-URI prefix: %q", uri)
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, dataURIPrefix))
	require.NoError(t, err)
	return decoded
}

func TestUploadImage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	r := setupRouter(db)

	image := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02, 0x03}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeUploadRequest(t, "/upload-image", map[string]string{
		"login":    "alice",
		"location": "forest",
		"species":  "fox",
	}, image))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.UploadPhotoResponse
	testutil.DecodeJSON(t, w, &resp)
	assert.Equal(t, "alice", resp.Image.Login)
	assert.Equal(t, "forest", resp.Image.Location)
	assert.Equal(t, "fox", resp.Image.Species)
	assert.False(t, resp.Image.Date.IsZero())
	assert.Contains(t, resp.Message, "alice")

	// stored bytes are the raw upload
	var stored []byte
	err := db.QueryRow(`SELECT image FROM photos WHERE login = 'alice'`).Scan(&stored)
	require.NoError(t, err)
	assert.Equal(t, image, stored)
}

func TestUploadImageMissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	r := setupRouter(db)

	image := []byte{0x01}
	tests := []struct {
		name   string
		fields map[string]string
		image  []byte
	}{
		{"missing login", map[string]string{"location": "forest", "species": "fox"}, image},
		{"missing location", map[string]string{"login": "alice", "species": "fox"}, image},
		{"missing species", map[string]string{"login": "alice", "location": "forest"}, image},
		{"missing image", map[string]string{"login": "alice", "location": "forest", "species": "fox"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, testutil.MakeUploadRequest(t, "/upload-image", tt.fields, tt.image))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUploadImageWithDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	r := setupRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeUploadRequest(t, "/upload-image", map[string]string{
		"login":    "alice",
		"location": "forest",
		"species":  "fox",
		"date":     "2024-06-15",
	}, []byte{0x01}))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.UploadPhotoResponse
	testutil.DecodeJSON(t, w, &resp)
	want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, resp.Image.Date.Equal(want), "got %v, want %v", resp.Image.Date, want)
}

func TestUploadImageInvalidDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	r := setupRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeUploadRequest(t, "/upload-image", map[string]string{
		"login":    "alice",
		"location": "forest",
		"species":  "fox",
		"date":     "yesterday",
	}, []byte{0x01}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// nothing was stored
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM photos`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUploadImageTooLarge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, db, 16) // tiny ceiling for the test

	w := httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeUploadRequest(t, "/upload-image", map[string]string{
		"login":    "alice",
		"location": "forest",
		"species":  "fox",
	}, make([]byte, 64)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestImagesBySpecies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	r := setupRouter(db)

	now := time.Now()
	testutil.AddTestPhoto(t, db, "alice", "forest", "wolf", []byte{0x01}, now)
	testutil.AddTestPhoto(t, db, "bob", "river", "beaver", []byte{0x02}, now)
	testutil.AddTestPhoto(t, db, "alice", "meadow", "fox", []byte{0x03}, now)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/images-by-species", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var photos []models.CatalogPhoto
	testutil.DecodeJSON(t, w, &photos)
	require.Len(t, photos, 3)
	assert.Equal(t, "beaver", photos[0].Species)
	assert.Equal(t, "fox", photos[1].Species)
	assert.Equal(t, "wolf", photos[2].Species)

	assert.Equal(t, []byte{0x02}, decodeDataURI(t, photos[0].Image))
}

func TestImagesByLoginAscDesc(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	r := setupRouter(db)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	testutil.AddTestPhoto(t, db, "alice", "forest", "fox", []byte{0x01}, base)
	testutil.AddTestPhoto(t, db, "alice", "river", "beaver", []byte{0x02}, base.Add(time.Hour))
	testutil.AddTestPhoto(t, db, "alice", "meadow", "wolf", []byte{0x03}, base.Add(2*time.Hour))
	testutil.AddTestPhoto(t, db, "bob", "hill", "hawk", []byte{0x04}, base)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/images/by-login/asc?login=alice", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var asc []models.PlayerPhoto
	testutil.DecodeJSON(t, w, &asc)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/images/by-login/desc?login=alice", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var desc []models.PlayerPhoto
	testutil.DecodeJSON(t, w, &desc)

	require.Len(t, asc, 3)
	require.Len(t, desc, 3)

	// desc is asc reversed
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}

	assert.Equal(t, "fox", asc[0].Species)
	assert.Equal(t, "wolf", asc[2].Species)

	// round-trip: the payload decodes back to the stored bytes
	assert.Equal(t, []byte{0x01}, decodeDataURI(t, asc[0].Image))
}

func TestImagesByLoginMissingLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	r := setupRouter(db)

	for _, path := range []string{"/images/by-login/asc", "/images/by-login/desc", "/species/by-count"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestImagesBySpeciesForLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	r := setupRouter(db)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	testutil.AddTestPhoto(t, db, "alice", "forest", "fox", []byte{0x01}, base)
	testutil.AddTestPhoto(t, db, "alice", "meadow", "fox", []byte{0x02}, base.Add(time.Hour))
	testutil.AddTestPhoto(t, db, "alice", "river", "beaver", []byte{0x03}, base)
	testutil.AddTestPhoto(t, db, "bob", "hill", "fox", []byte{0x04}, base)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/images/by-species?login=alice&species=fox", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var photos []models.PlayerPhoto
	testutil.DecodeJSON(t, w, &photos)
	require.Len(t, photos, 2)
	// newest first
	assert.Equal(t, "meadow", photos[0].Location)
	assert.Equal(t, "forest", photos[1].Location)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/images/by-species?login=alice", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSpeciesByCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	r := setupRouter(db)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	// three foxes, one beaver, one hawk for alice; hawk for bob must not leak in
	testutil.AddTestPhoto(t, db, "alice", "forest", "fox", []byte{0x01}, base)
	testutil.AddTestPhoto(t, db, "alice", "meadow", "fox", []byte{0x02}, base.Add(time.Hour))
	testutil.AddTestPhoto(t, db, "alice", "hill", "fox", []byte{0x03}, base.Add(2*time.Hour))
	testutil.AddTestPhoto(t, db, "alice", "river", "beaver", []byte{0x04}, base)
	testutil.AddTestPhoto(t, db, "alice", "cliff", "hawk", []byte{0x05}, base)
	testutil.AddTestPhoto(t, db, "bob", "cliff", "hawk", []byte{0x06}, base)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/species/by-count?login=alice", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var photos []models.SpeciesCountPhoto
	testutil.DecodeJSON(t, w, &photos)
	require.Len(t, photos, 5)

	// fox group first (count 3), photos newest first within the group
	assert.Equal(t, "fox", photos[0].Species)
	assert.Equal(t, 3, photos[0].SpeciesCount)
	assert.Equal(t, "hill", photos[0].Location)
	assert.Equal(t, "fox", photos[1].Species)
	assert.Equal(t, "meadow", photos[1].Location)
	assert.Equal(t, "fox", photos[2].Species)
	assert.Equal(t, "forest", photos[2].Location)

	// tied groups ordered by species name
	assert.Equal(t, "beaver", photos[3].Species)
	assert.Equal(t, 1, photos[3].SpeciesCount)
	assert.Equal(t, "hawk", photos[4].Species)
	assert.Equal(t, 1, photos[4].SpeciesCount)

	for _, p := range photos {
		assert.Equal(t, "alice", p.Login)
	}
}
