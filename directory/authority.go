package directory

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nammacity/city-buddy-api/models"
)

// FallbackAuthority is the documented central contact used whenever area
// resolution fails, so correspondence never lacks a recipient.
var FallbackAuthority = models.Authority{
	Area:        "Bengaluru Central",
	Name:        "BBMP Control Room",
	Designation: "Control Room",
	Phone:       "080-22660000",
	Email:       "info@bbmp.gov.in",
}

// nearestMaxDistanceKm bounds centroid matching; coordinates farther than
// this from every known centroid resolve to no area.
const nearestMaxDistanceKm = 10.0

// AuthorityRecord is one directory row. Centroid coordinates are optional.
type AuthorityRecord struct {
	models.Authority
	Department  string
	Latitude    float64
	Longitude   float64
	HasCentroid bool
}

// AuthorityDirectory is the read-only area -> contact lookup table.
// Loaded once at process start; lookups take no locks because the records
// are never mutated afterwards.
type AuthorityDirectory struct {
	records  []AuthorityRecord
	fallback models.Authority
}

// NewAuthorityDirectory builds a directory from records, preserving
// insertion order for deterministic tie-breaks
func NewAuthorityDirectory(records []AuthorityRecord) *AuthorityDirectory {
	return &AuthorityDirectory{records: records, fallback: FallbackAuthority}
}

// SetFallbackContact overrides the compiled-in fallback email and phone,
// typically from FALLBACK_EMAIL and FALLBACK_PHONE. Empty values keep the
// defaults.
func (d *AuthorityDirectory) SetFallbackContact(email, phone string) {
	if email != "" {
		d.fallback.Email = email
	}
	if phone != "" {
		d.fallback.Phone = phone
	}
}

// Fallback returns the contact used whenever area resolution fails
func (d *AuthorityDirectory) Fallback() models.Authority { return d.fallback }

// LoadAuthorities reads the authority directory CSV. Expected header:
// area,name,designation,phone,email,department,lat,lon (lat/lon optional).
func LoadAuthorities(path string) (*AuthorityDirectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open authorities csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse authorities csv: %w", err)
	}
	if len(rows) == 0 {
		return NewAuthorityDirectory(nil), nil
	}

	cols := headerIndex(rows[0])
	var records []AuthorityRecord
	for _, row := range rows[1:] {
		rec := AuthorityRecord{
			Authority: models.Authority{
				Area:        field(row, cols, "area"),
				Name:        field(row, cols, "name"),
				Designation: field(row, cols, "designation"),
				Phone:       field(row, cols, "phone"),
				Email:       field(row, cols, "email"),
			},
			Department: field(row, cols, "department"),
		}
		if rec.Area == "" {
			continue
		}
		lat, latErr := strconv.ParseFloat(field(row, cols, "lat"), 64)
		lon, lonErr := strconv.ParseFloat(field(row, cols, "lon"), 64)
		if latErr == nil && lonErr == nil {
			rec.Latitude, rec.Longitude, rec.HasCentroid = lat, lon, true
		}
		records = append(records, rec)
	}
	zap.S().Infow("authority directory loaded", "path", path, "records", len(records))
	return NewAuthorityDirectory(records), nil
}

// Len returns the number of records
func (d *AuthorityDirectory) Len() int { return len(d.records) }

// FindByArea returns the contact whose area contains the given name,
// case-insensitive and whitespace-normalized. First match in insertion
// order wins.
func (d *AuthorityDirectory) FindByArea(area string) *models.Authority {
	q := normalize(area)
	if q == "" {
		return nil
	}
	for i := range d.records {
		if strings.Contains(normalize(d.records[i].Area), q) {
			a := d.records[i].Authority
			return &a
		}
	}
	return nil
}

// MatchInText scans free text for any known area name and returns the
// first directory record whose area appears in it
func (d *AuthorityDirectory) MatchInText(text string) *models.Authority {
	t := normalize(text)
	if t == "" {
		return nil
	}
	for i := range d.records {
		if a := normalize(d.records[i].Area); a != "" && strings.Contains(t, a) {
			rec := d.records[i].Authority
			return &rec
		}
	}
	return nil
}

// Nearest returns the record whose centroid is closest to the given
// coordinates, or nil when no centroid falls within the matching radius.
// Equal distances resolve to the earlier record.
func (d *AuthorityDirectory) Nearest(lat, lon float64) *models.Authority {
	best := -1
	bestDist := nearestMaxDistanceKm
	for i := range d.records {
		if !d.records[i].HasCentroid {
			continue
		}
		dist := haversineKm(lat, lon, d.records[i].Latitude, d.records[i].Longitude)
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return nil
	}
	a := d.records[best].Authority
	return &a
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ReplaceAll(normalize(h), " ", "_")] = i
	}
	return cols
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
