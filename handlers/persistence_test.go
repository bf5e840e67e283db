package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"p9e.in/obstacle/config"
	"p9e.in/obstacle/models"
)

func TestSaveExistingAfterConcurrentDelete(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ObstacleReport{}))
	config.DB = db

	lat, lng := 58.0, 7.0
	o := models.ObstacleReport{
		Name: "Quay crane", HeightMeters: 120, Description: "test",
		Latitude: &lat, Longitude: &lng,
		Status: models.StatusPending, SubmittedDate: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&o).Error)

	var loaded models.ObstacleReport
	require.NoError(t, db.First(&loaded, o.ID).Error)

	// The row disappears between load and write, as a concurrent delete would
	// do. gorm's Save would silently re-insert it here.
	require.NoError(t, db.Delete(&models.ObstacleReport{}, o.ID).Error)

	loaded.Name = "Renamed crane"
	found, err := saveExisting(o.ID, &loaded)
	require.NoError(t, err)
	assert.False(t, found, "write against a deleted row must report not-found")

	var count int64
	db.Model(&models.ObstacleReport{}).Where("id = ?", o.ID).Count(&count)
	assert.Zero(t, count, "a deleted row must not be resurrected")

	// The review stamps go through the same path.
	loaded.Approve("reviewer", time.Now().UTC())
	found, err = saveExisting(o.ID, &loaded)
	require.NoError(t, err)
	assert.False(t, found)
	db.Model(&models.ObstacleReport{}).Where("id = ?", o.ID).Count(&count)
	assert.Zero(t, count)
}
