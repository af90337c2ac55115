package model

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// Report is an uploaded document loosely attached to a patient identity tuple.
// @Description Uploaded patient report
type Report struct {
	ID          string    `json:"id" bson:"_id" gorm:"primaryKey;size:36" example:"6f1c2a3e-8b7d-4e2f-9a51-0c3d4e5f6a7b"`
	PatientName string    `json:"patientName" bson:"patient_name" gorm:"column:patient_name;size:191;not null;index:idx_report_identity"`
	Age         string    `json:"age" bson:"age" gorm:"column:age;size:16;index:idx_report_identity"`
	BloodGroup  string    `json:"bloodGroup" bson:"blood_group" gorm:"column:blood_group;size:8;index:idx_report_identity"`
	FileName    string    `json:"fileName" bson:"file_name" gorm:"column:file_name;size:255"`
	ContentType string    `json:"contentType" bson:"content_type" gorm:"column:content_type;size:127"`
	Size        int64     `json:"size" bson:"size" gorm:"column:size"`
	UploadedBy  string    `json:"uploadedBy" bson:"uploaded_by" gorm:"column:uploaded_by;size:191"`
	Content     []byte    `json:"-" bson:"content" gorm:"column:content"`
	UploadedAt  time.Time `json:"uploadedAt" bson:"uploaded_at" gorm:"column:uploaded_at;index"`
}

// ReportStore persists reports. Listing never returns file contents.
type ReportStore interface {
	Save(ctx context.Context, r *Report) error
	List(ctx context.Context, identity IdentityTuple) ([]Report, error)
	Get(ctx context.Context, id string) (*Report, error)
}

// PrepareReport validates an upload and fills id and timestamp.
func PrepareReport(r *Report) error {
	identity := IdentityTuple{PatientName: r.PatientName, Age: r.Age, BloodGroup: r.BloodGroup}.Normalize()
	if identity.PatientName == "" || identity.Age == "" || identity.BloodGroup == "" {
		return NewValidationError("patientName, age and bloodGroup are required")
	}
	r.FileName = strings.TrimSpace(r.FileName)
	if r.FileName == "" {
		return NewValidationError("fileName is required")
	}
	if len(r.Content) == 0 {
		return NewValidationError("file is required")
	}
	r.PatientName, r.Age, r.BloodGroup = identity.PatientName, identity.Age, identity.BloodGroup
	r.ID = uuid.NewString()
	r.Size = int64(len(r.Content))
	if r.UploadedAt.IsZero() {
		r.UploadedAt = time.Now()
	}
	return nil
}

func requireFullIdentity(identity IdentityTuple) (IdentityTuple, error) {
	identity = identity.Normalize()
	if identity.PatientName == "" || identity.Age == "" || identity.BloodGroup == "" {
		return identity, NewValidationError("patientName, age and bloodGroup are required")
	}
	return identity, nil
}

// GormReportStore keeps reports in the relational database.
type GormReportStore struct {
	db *gorm.DB
}

func NewGormReportStore(db *gorm.DB) *GormReportStore {
	return &GormReportStore{db: db}
}

func (s *GormReportStore) Save(ctx context.Context, r *Report) error {
	if err := PrepareReport(r); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return NewStorageError("failed to save report", err)
	}
	return nil
}

func (s *GormReportStore) List(ctx context.Context, identity IdentityTuple) ([]Report, error) {
	identity, err := requireFullIdentity(identity)
	if err != nil {
		return nil, err
	}
	reports := []Report{}
	err = s.db.WithContext(ctx).
		Omit("content").
		Where("patient_name = ? AND age = ? AND blood_group = ?", identity.PatientName, identity.Age, identity.BloodGroup).
		Order("uploaded_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, NewStorageError("failed to list reports", err)
	}
	return reports, nil
}

func (s *GormReportStore) Get(ctx context.Context, id string) (*Report, error) {
	var r Report
	if err := s.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&r).Error; err != nil {
		return nil, NewStorageError("failed to load report", err)
	}
	if r.ID == "" {
		return nil, NewNotFoundError("report not found")
	}
	return &r, nil
}

// MongoReportStore keeps reports in a MongoDB collection.
type MongoReportStore struct {
	coll *mongo.Collection
}

func NewMongoReportStore(db *mongo.Database) *MongoReportStore {
	return &MongoReportStore{coll: db.Collection("reports")}
}

func (s *MongoReportStore) Save(ctx context.Context, r *Report) error {
	if err := PrepareReport(r); err != nil {
		return err
	}
	if _, err := s.coll.InsertOne(ctx, r); err != nil {
		return NewStorageError("failed to save report", err)
	}
	return nil
}

func (s *MongoReportStore) List(ctx context.Context, identity IdentityTuple) ([]Report, error) {
	identity, err := requireFullIdentity(identity)
	if err != nil {
		return nil, err
	}
	filter := bson.M{
		"patient_name": identity.PatientName,
		"age":          identity.Age,
		"blood_group":  identity.BloodGroup,
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "uploaded_at", Value: -1}}).
		SetProjection(bson.M{"content": 0})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, NewStorageError("failed to list reports", err)
	}
	defer cursor.Close(ctx)

	reports := []Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, NewStorageError("failed to decode reports", err)
	}
	return reports, nil
}

func (s *MongoReportStore) Get(ctx context.Context, id string) (*Report, error) {
	var r Report
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, NewNotFoundError("report not found")
	}
	if err != nil {
		return nil, NewStorageError("failed to load report", err)
	}
	return &r, nil
}
