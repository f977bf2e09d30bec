package directory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nammacity/city-buddy-api/directory"
	"github.com/nammacity/city-buddy-api/models"
)

func testRecords() []directory.AuthorityRecord {
	return []directory.AuthorityRecord{
		{
			Authority: models.Authority{
				Area:        "Indiranagar",
				Name:        "Suresh Kumar",
				Designation: "Executive Engineer",
				Phone:       "080-25293245",
				Email:       "ee.indiranagar@bbmp.gov.in",
			},
			Department:  "Solid Waste Management",
			Latitude:    12.9719,
			Longitude:   77.6412,
			HasCentroid: true,
		},
		{
			Authority: models.Authority{
				Area:        "Koramangala",
				Name:        "Lakshmi Narayan",
				Designation: "Assistant Executive Engineer",
				Email:       "aee.koramangala@bbmp.gov.in",
			},
			Department:  "Road Infrastructure",
			Latitude:    12.9352,
			Longitude:   77.6245,
			HasCentroid: true,
		},
		{
			Authority: models.Authority{
				Area:  "HSR Layout",
				Name:  "Venkatesh Murthy",
				Email: "aee.hsr@bbmp.gov.in",
			},
		},
	}
}

func TestAuthorityDirectory_Fallback(t *testing.T) {
	dir := directory.NewAuthorityDirectory(nil)
	assert.Equal(t, directory.FallbackAuthority, dir.Fallback())

	dir.SetFallbackContact("helpline@bbmp.gov.in", "080-12345678")
	assert.Equal(t, "helpline@bbmp.gov.in", dir.Fallback().Email)
	assert.Equal(t, "080-12345678", dir.Fallback().Phone)
	assert.Equal(t, "BBMP Control Room", dir.Fallback().Name)

	// empty values keep the configured contact
	dir.SetFallbackContact("", "")
	assert.Equal(t, "helpline@bbmp.gov.in", dir.Fallback().Email)
}

func TestAuthorityDirectory_FindByArea(t *testing.T) {
	dir := directory.NewAuthorityDirectory(testRecords())

	a := dir.FindByArea("indiranagar")
	assert.NotNil(t, a)
	assert.Equal(t, "Executive Engineer", a.Designation)

	// partial area names still resolve
	a = dir.FindByArea("hsr")
	assert.NotNil(t, a)
	assert.Equal(t, "Venkatesh Murthy", a.Name)

	assert.Nil(t, dir.FindByArea("jayanagar"))
	assert.Nil(t, dir.FindByArea(""))
	assert.Nil(t, dir.FindByArea("   "))
}

func TestAuthorityDirectory_MatchInText(t *testing.T) {
	dir := directory.NewAuthorityDirectory(testRecords())

	a := dir.MatchInText("There is a huge pothole near Koramangala 5th block")
	assert.NotNil(t, a)
	assert.Equal(t, "Koramangala", a.Area)

	assert.Nil(t, dir.MatchInText("garbage pile on the main road"))
	assert.Nil(t, dir.MatchInText(""))
}

func TestAuthorityDirectory_Nearest(t *testing.T) {
	dir := directory.NewAuthorityDirectory(testRecords())

	// a point in Indiranagar resolves to its ward engineer
	a := dir.Nearest(12.9719, 77.6413)
	assert.NotNil(t, a)
	assert.Equal(t, "Indiranagar", a.Area)
	assert.Equal(t, "Executive Engineer", a.Designation)

	a = dir.Nearest(12.9360, 77.6250)
	assert.NotNil(t, a)
	assert.Equal(t, "Koramangala", a.Area)

	// far outside the matching radius
	assert.Nil(t, dir.Nearest(19.0760, 72.8777))

	// records without centroids never match
	empty := directory.NewAuthorityDirectory([]directory.AuthorityRecord{
		{Authority: models.Authority{Area: "HSR Layout"}},
	})
	assert.Nil(t, empty.Nearest(12.9121, 77.6446))
}

func TestLoadAuthorities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authorities.csv")
	csvData := "area,name,designation,phone,email,department,lat,lon\n" +
		"Indiranagar,Suresh Kumar,Executive Engineer,080-25293245,ee.indiranagar@bbmp.gov.in,Solid Waste Management,12.9719,77.6412\n" +
		"HSR Layout,Venkatesh Murthy,Assistant Executive Engineer,080-25725512,aee.hsr@bbmp.gov.in,Road Infrastructure,,\n" +
		",missing area row,,,,,,\n"
	assert.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	dir, err := directory.LoadAuthorities(path)
	assert.NoError(t, err)
	assert.Equal(t, 2, dir.Len())

	a := dir.FindByArea("Indiranagar")
	assert.NotNil(t, a)
	assert.Equal(t, "ee.indiranagar@bbmp.gov.in", a.Email)

	// the row without coordinates loads but never matches by proximity
	assert.NotNil(t, dir.FindByArea("HSR Layout"))
	assert.NotNil(t, dir.Nearest(12.9719, 77.6412))
	assert.Equal(t, "Indiranagar", dir.Nearest(12.9121, 77.6446).Area)
}

func TestLoadAuthorities_MissingFile(t *testing.T) {
	_, err := directory.LoadAuthorities(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
