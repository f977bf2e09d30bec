package geo

import (
	"bytes"
	"fmt"

	"github.com/rwcarlsen/goexif/exif"
	"go.uber.org/zap"

	"github.com/nammacity/city-buddy-api/directory"
	"github.com/nammacity/city-buddy-api/models"
)

// Resolver maps an image (EXIF GPS) or a free-text hint to a location and
// its governing area. It is local-only: no network call is ever made.
type Resolver struct {
	dir *directory.AuthorityDirectory
}

// NewResolver builds a resolver over the authority directory
func NewResolver(dir *directory.AuthorityDirectory) *Resolver {
	return &Resolver{dir: dir}
}

// ExtractGPS pulls decimal-degree coordinates out of the image's EXIF
// data. DMS conversion and hemisphere signs are handled by the exif
// library's LatLong helper.
func ExtractGPS(image []byte) (float64, float64, error) {
	x, err := exif.Decode(bytes.NewReader(image))
	if err != nil {
		return 0, 0, fmt.Errorf("no exif data: %w", err)
	}
	lat, lon, err := x.LatLong()
	if err != nil {
		return 0, 0, fmt.Errorf("no gps tags: %w", err)
	}
	return lat, lon, nil
}

// Resolve tries image GPS first, then the text hint, and returns nil when
// neither yields a location. The caller substitutes the fallback
// authority so correspondence never lacks a recipient.
func (r *Resolver) Resolve(image []byte, textHint string) *models.Location {
	if len(image) > 0 {
		lat, lon, err := ExtractGPS(image)
		if err == nil {
			loc := &models.Location{Latitude: lat, Longitude: lon}
			if a := r.dir.Nearest(lat, lon); a != nil {
				loc.AreaName = a.Area
			}
			zap.S().Debugw("location resolved from image gps",
				"lat", lat, "lon", lon, "area", loc.AreaName)
			return loc
		}
		zap.S().Debugw("no usable gps in image", "error", err)
	}

	if a := r.dir.MatchInText(textHint); a != nil {
		return &models.Location{AreaName: a.Area}
	}
	return nil
}
