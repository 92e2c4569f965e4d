package mongorepos

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"checkpoint/core"
	"checkpoint/core/roster"
)

type rosterRepository struct {
	students *mongo.Collection
	scanLogs *mongo.Collection
}

var _ roster.Repository = (*rosterRepository)(nil) // interface compliance check

func NewRosterRepository(client *mongo.Client, conf *core.Config) *rosterRepository {
	db := client.Database(conf.Database.Name)
	return &rosterRepository{
		students: db.Collection(conf.Database.StudentsCollection),
		scanLogs: db.Collection(conf.Database.ScanLogsCollection),
	}
}

type studentDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	StudentID   string             `bson:"student_id"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email,omitempty"`
	Age         int                `bson:"age,omitempty"`
	Competition bool               `bson:"competition,omitempty"`
	Registered  bool               `bson:"registration_status"`
	CreatedAt   time.Time          `bson:"created_at,omitempty"`
}

func (d studentDoc) toStudent() roster.Student {
	return roster.Student{
		ID:          d.ID.Hex(),
		StudentID:   d.StudentID,
		Name:        d.Name,
		Email:       d.Email,
		Age:         d.Age,
		Competition: d.Competition,
		Registered:  d.Registered,
		CreatedAt:   d.CreatedAt,
	}
}

type scanLogDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	StudentID   string             `bson:"student_id"`
	StudentName *string            `bson:"student_name"`
	Status      string             `bson:"status"`
	Timestamp   time.Time          `bson:"timestamp"`
	ScanType    string             `bson:"scan_type"`
}

func (d scanLogDoc) toScanLog() roster.ScanLog {
	return roster.ScanLog{
		ID:          d.ID.Hex(),
		StudentID:   d.StudentID,
		StudentName: null.StringFromPtr(d.StudentName),
		Status:      d.Status,
		Timestamp:   d.Timestamp,
		ScanType:    d.ScanType,
	}
}

func (repo *rosterRepository) CreateStudent(ctx context.Context, stu roster.Student) (roster.Student, error) {
	if _, err := repo.GetStudent(ctx, stu.StudentID); err == nil {
		return roster.Student{}, roster.ErrStudentIDExists
	} else if err != roster.ErrNotFound {
		return roster.Student{}, err
	}

	doc := studentDoc{
		StudentID:   stu.StudentID,
		Name:        stu.Name,
		Email:       stu.Email,
		Age:         stu.Age,
		Competition: stu.Competition,
		Registered:  stu.Registered,
		CreatedAt:   stu.CreatedAt,
	}
	res, err := repo.students.InsertOne(ctx, doc)
	if err != nil {
		return roster.Student{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stu.ID = oid.Hex()
	}
	return stu, nil
}

func (repo *rosterRepository) GetStudent(ctx context.Context, studentID string) (roster.Student, error) {
	var doc studentDoc
	err := repo.students.FindOne(ctx, bson.M{"student_id": studentID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return roster.Student{}, roster.ErrNotFound
	}
	if err != nil {
		return roster.Student{}, err
	}
	return doc.toStudent(), nil
}

func (repo *rosterRepository) QueryAllStudents(ctx context.Context) ([]roster.Student, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := repo.students.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []studentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	students := make([]roster.Student, 0, len(docs))
	for _, doc := range docs {
		students = append(students, doc.toStudent())
	}
	return students, nil
}

func (repo *rosterRepository) UpsertStudent(ctx context.Context, fields roster.StudentFields) (bool, error) {
	set := bson.M{"student_id": fields.StudentID}
	if fields.Name.Valid {
		set["name"] = fields.Name.String
	}
	if fields.Email.Valid {
		set["email"] = fields.Email.String
	}
	if fields.Age.Valid {
		set["age"] = fields.Age.Int
	}
	if fields.Competition.Valid {
		set["competition"] = fields.Competition.Bool
	}
	if fields.Registered.Valid {
		set["registration_status"] = fields.Registered.Bool
	}

	res, err := repo.students.UpdateOne(
		ctx,
		bson.M{"student_id": fields.StudentID},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0 || res.UpsertedID != nil, nil
}

func (repo *rosterRepository) MarkRegistered(ctx context.Context, studentID string) error {
	res, err := repo.students.UpdateOne(
		ctx,
		bson.M{"student_id": studentID},
		bson.M{"$set": bson.M{"registration_status": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return roster.ErrNotFound
	}
	return nil
}

func (repo *rosterRepository) CreateScanLog(ctx context.Context, entry roster.ScanLog) (roster.ScanLog, error) {
	doc := scanLogDoc{
		StudentID:   entry.StudentID,
		StudentName: entry.StudentName.Ptr(),
		Status:      entry.Status,
		Timestamp:   entry.Timestamp,
		ScanType:    entry.ScanType,
	}
	res, err := repo.scanLogs.InsertOne(ctx, doc)
	if err != nil {
		return roster.ScanLog{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return entry, nil
}

func (repo *rosterRepository) QueryScanLogs(ctx context.Context, limit int) ([]roster.ScanLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := repo.scanLogs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []scanLogDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	entries := make([]roster.ScanLog, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, doc.toScanLog())
	}
	return entries, nil
}
