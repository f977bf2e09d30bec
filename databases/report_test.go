package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/nammacity/city-buddy-api/config"
	"github.com/nammacity/city-buddy-api/databases"
	"github.com/nammacity/city-buddy-api/databases/mocks"
	"github.com/nammacity/city-buddy-api/models"
)

func TestNewReportDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	reportDB := databases.NewReportDatabase(db)

	assert.NotEmpty(t, reportDB)
}

func TestReportDatabase_FindOne(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Report)
		(*arg).ID = "1700000000-deadbeef"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "citizen_reports").Return(collectionHelper)

	reportDba := databases.NewReportDatabase(dbHelper)

	report, err := reportDba.FindOne(context.Background(), bson.M{"error": true})

	assert.Empty(t, report)
	assert.EqualError(t, err, "mocked-error")

	report, err = reportDba.FindOne(context.Background(), bson.M{"error": false})

	assert.NoError(t, err)
	assert.Equal(t, "1700000000-deadbeef", report.ID)
}

func TestReportDatabase_InsertOne(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", mock.Anything, mock.Anything).
		Return(nil, errors.New("mocked-error")).Once()

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", mock.Anything, mock.Anything).
		Return("1700000000-deadbeef", nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "citizen_reports").Return(collectionHelper)

	reportDba := databases.NewReportDatabase(dbHelper)

	err := reportDba.InsertOne(context.Background(), models.Report{ID: "1700000000-deadbeef"})
	assert.EqualError(t, err, "mocked-error")

	err = reportDba.InsertOne(context.Background(), models.Report{ID: "1700000000-deadbeef"})
	assert.NoError(t, err)
}

func TestReportDatabase_UpdateOne(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", mock.Anything, bson.M{"_id": "missing"}, mock.Anything).
		Return(int64(0), nil)

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", mock.Anything, bson.M{"_id": "1700000000-deadbeef"}, mock.Anything).
		Return(int64(1), nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "citizen_reports").Return(collectionHelper)

	reportDba := databases.NewReportDatabase(dbHelper)

	matched, err := reportDba.UpdateOne(context.Background(), bson.M{"_id": "missing"}, bson.M{"$set": bson.M{"status": "resolved"}})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), matched)

	matched, err = reportDba.UpdateOne(context.Background(), bson.M{"_id": "1700000000-deadbeef"}, bson.M{"$set": bson.M{"status": "resolved"}})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), matched)
}
