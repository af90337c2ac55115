package model

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestGormReportStore_SaveListGet(t *testing.T) {
	db := setupTestDB(t, "report_store", &Report{})
	store := NewGormReportStore(db)
	ctx := context.Background()

	r := &Report{PatientName: "Jane  Doe", Age: "30", BloodGroup: "o+", FileName: "blood.pdf", Content: []byte("%PDF-1.4")}
	require.NoError(t, store.Save(ctx, r))
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, int64(8), r.Size)
	assert.Equal(t, "O+", r.BloodGroup)

	list, err := store.List(ctx, IdentityTuple{PatientName: "Jane Doe", Age: "30", BloodGroup: "O+"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Content)
	assert.Equal(t, "blood.pdf", list[0].FileName)

	got, err := store.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), got.Content)

	_, err = store.Get(ctx, "missing")
	assert.True(t, IsErrorType(err, ErrorTypeNotFound))
}

func TestGormReportStore_Validation(t *testing.T) {
	db := setupTestDB(t, "report_validation", &Report{})
	store := NewGormReportStore(db)
	ctx := context.Background()

	err := store.Save(ctx, &Report{PatientName: "Jane", FileName: "x.pdf", Content: []byte("x")})
	assert.True(t, IsErrorType(err, ErrorTypeValidation))

	err = store.Save(ctx, &Report{PatientName: "Jane", Age: "30", BloodGroup: "A+", FileName: "x.pdf"})
	assert.True(t, IsErrorType(err, ErrorTypeValidation))

	_, err = store.List(ctx, IdentityTuple{PatientName: "Jane"})
	assert.True(t, IsErrorType(err, ErrorTypeValidation))
}

func mockReportDoc(id, fileName string, uploadedAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "patient_name", Value: "Jane Doe"},
		{Key: "age", Value: "30"},
		{Key: "blood_group", Value: "O+"},
		{Key: "file_name", Value: fileName},
		{Key: "content_type", Value: "application/pdf"},
		{Key: "size", Value: int64(8)},
		{Key: "uploaded_by", Value: "house@example.com"},
		{Key: "uploaded_at", Value: uploadedAt},
	}
}

func TestMongoReportStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	ns := "reports_test.reports"

	mt.Run("save inserts a prepared report", func(mt *mtest.T) {
		store := NewMongoReportStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		r := &Report{PatientName: " Jane  Doe ", Age: "30", BloodGroup: "o+", FileName: "blood.pdf", Content: []byte("%PDF-1.4")}
		require.NoError(mt, store.Save(ctx, r))
		assert.NotEmpty(mt, r.ID)
		assert.Equal(mt, "Jane Doe", r.PatientName)
		assert.Equal(mt, "O+", r.BloodGroup)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
		assert.Equal(mt, "reports", started.Command.Lookup("insert").StringValue())
	})

	mt.Run("save rejects an incomplete upload without a round trip", func(mt *mtest.T) {
		store := NewMongoReportStore(mt.DB)
		err := store.Save(ctx, &Report{PatientName: "Jane", FileName: "x.pdf", Content: []byte("x")})
		assert.True(mt, IsErrorType(err, ErrorTypeValidation))
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("save maps write errors to storage errors", func(mt *mtest.T) {
		store := NewMongoReportStore(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		err := store.Save(ctx, &Report{PatientName: "Jane Doe", Age: "30", BloodGroup: "O+", FileName: "x.pdf", Content: []byte("x")})
		assert.True(mt, IsErrorType(err, ErrorTypeStorage))
	})

	mt.Run("list filters by identity, newest first, without content", func(mt *mtest.T) {
		store := NewMongoReportStore(mt.DB)
		now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			mockReportDoc("r2", "xray.png", now),
			mockReportDoc("r1", "blood.pdf", now.Add(-time.Hour)),
		))

		list, err := store.List(ctx, IdentityTuple{PatientName: "Jane  Doe", Age: "30", BloodGroup: "o+"})
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		assert.Equal(mt, "r2", list[0].ID)
		assert.Equal(mt, "xray.png", list[0].FileName)
		assert.Equal(mt, "house@example.com", list[0].UploadedBy)
		assert.Empty(mt, list[0].Content)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		filter := started.Command.Lookup("filter").Document()
		assert.Equal(mt, "Jane Doe", filter.Lookup("patient_name").StringValue())
		assert.Equal(mt, "O+", filter.Lookup("blood_group").StringValue())
		sort := started.Command.Lookup("sort").Document()
		assert.Equal(mt, int64(-1), sort.Lookup("uploaded_at").AsInt64())
		projection := started.Command.Lookup("projection").Document()
		assert.Equal(mt, int64(0), projection.Lookup("content").AsInt64())
	})

	mt.Run("list requires the full identity", func(mt *mtest.T) {
		store := NewMongoReportStore(mt.DB)
		_, err := store.List(ctx, IdentityTuple{PatientName: "Jane Doe"})
		assert.True(mt, IsErrorType(err, ErrorTypeValidation))
	})

	mt.Run("list maps command errors to storage errors", func(mt *mtest.T) {
		store := NewMongoReportStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad filter", Name: "BadValue"}))

		_, err := store.List(ctx, IdentityTuple{PatientName: "Jane Doe", Age: "30", BloodGroup: "O+"})
		assert.True(mt, IsErrorType(err, ErrorTypeStorage))
	})

	mt.Run("get returns the stored document", func(mt *mtest.T) {
		store := NewMongoReportStore(mt.DB)
		doc := append(mockReportDoc("r1", "blood.pdf", time.Now().UTC()), bson.E{Key: "content", Value: []byte("%PDF-1.4")})
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, doc))

		got, err := store.Get(ctx, "r1")
		require.NoError(mt, err)
		assert.Equal(mt, "r1", got.ID)
		assert.Equal(mt, []byte("%PDF-1.4"), got.Content)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "r1", started.Command.Lookup("filter").Document().Lookup("_id").StringValue())
	})

	mt.Run("get maps no documents to not found", func(mt *mtest.T) {
		store := NewMongoReportStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := store.Get(ctx, "missing")
		assert.True(mt, IsErrorType(err, ErrorTypeNotFound))
	})
}
