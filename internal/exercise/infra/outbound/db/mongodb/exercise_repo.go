package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/davicafu/gymlab/internal/exercise/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedMongo "github.com/davicafu/gymlab/internal/shared/infra/platform/db/mongodb"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

// ExerciseRepoMongoDB guarda el catálogo en MongoDB. Los cambios y su evento
// de outbox se escriben en la misma transacción (requiere replica set).
type ExerciseRepoMongoDB struct {
	client *mongo.Client
	db     *mongo.Database
	coll   *mongo.Collection
}

func NewExerciseRepoMongoDB(client *mongo.Client, db *mongo.Database) *ExerciseRepoMongoDB {
	return &ExerciseRepoMongoDB{client: client, db: db, coll: db.Collection("exercises")}
}

// --- Structs de BSON para el mapeo ---
// Los nombres de campo coinciden con las columnas SQL para reutilizar los criterios.

type mongoExercise struct {
	ID           int64      `bson:"_id"`
	Name         string     `bson:"name"`
	MuscleGroup  string     `bson:"muscle_group"`
	Equipment    string     `bson:"equipment"`
	Difficulty   int        `bson:"difficulty"`
	VideoURL     string     `bson:"video_url"`
	Instructions string     `bson:"instructions"`
	CreatedBy    int64      `bson:"created_by"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
	DeletedAt    *time.Time `bson:"deleted_at"`
}

func (r *ExerciseRepoMongoDB) inTx(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

func (r *ExerciseRepoMongoDB) Create(ctx context.Context, e *domain.Exercise, evt sharedDomain.OutboxEvent) error {
	id, err := sharedMongo.NextID(ctx, r.db, "exercises")
	if err != nil {
		return err
	}
	e.ID = id
	evt.AggregateID = e.PartitionKey()

	return r.inTx(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sessCtx, toMongoExercise(e)); err != nil {
			return err
		}
		return sharedMongo.InsertOutbox(sessCtx, r.db, evt)
	})
}

func (r *ExerciseRepoMongoDB) Update(ctx context.Context, e *domain.Exercise, evt sharedDomain.OutboxEvent) error {
	return r.inTx(ctx, func(sessCtx mongo.SessionContext) error {
		res, err := r.coll.UpdateOne(sessCtx,
			bson.M{"_id": e.ID, "deleted_at": nil},
			bson.M{"$set": bson.M{
				"name":         e.Name,
				"muscle_group": e.MuscleGroup,
				"equipment":    e.Equipment,
				"difficulty":   e.Difficulty,
				"video_url":    e.VideoURL,
				"instructions": e.Instructions,
				"updated_at":   e.UpdatedAt,
			}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return domain.ErrExerciseNotFound
		}
		return sharedMongo.InsertOutbox(sessCtx, r.db, evt)
	})
}

func (r *ExerciseRepoMongoDB) DeleteByID(ctx context.Context, id int64, at time.Time, evt sharedDomain.OutboxEvent) error {
	return r.inTx(ctx, func(sessCtx mongo.SessionContext) error {
		res, err := r.coll.UpdateOne(sessCtx,
			bson.M{"_id": id, "deleted_at": nil},
			bson.M{"$set": bson.M{"deleted_at": at.UTC()}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return domain.ErrExerciseNotFound
		}
		return sharedMongo.InsertOutbox(sessCtx, r.db, evt)
	})
}

// --- Lectura ---

func (r *ExerciseRepoMongoDB) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	var me mongoExercise
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "deleted_at": nil}).Decode(&me)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrExerciseNotFound
		}
		return nil, err
	}
	e := fromMongoExercise(&me)
	return &e, nil
}

func (r *ExerciseRepoMongoDB) List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[domain.Exercise], error) {
	filter := sharedMongo.Filter(criteria)
	page := sharedQuery.Page[domain.Exercise]{Items: []domain.Exercise{}}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return page, err
	}
	page.TotalRecords = int(total)

	cursor, err := r.coll.Find(ctx, filter, sharedMongo.FindOptions(sort, pagination))
	if err != nil {
		return page, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var me mongoExercise
		if err := cursor.Decode(&me); err != nil {
			return page, err
		}
		page.Items = append(page.Items, fromMongoExercise(&me))
	}
	return page, cursor.Err()
}

// --- Helpers de Mapeo ---

func toMongoExercise(e *domain.Exercise) *mongoExercise {
	return &mongoExercise{
		ID: e.ID, Name: e.Name, MuscleGroup: e.MuscleGroup, Equipment: e.Equipment, Difficulty: e.Difficulty,
		VideoURL: e.VideoURL, Instructions: e.Instructions, CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt, DeletedAt: e.DeletedAt,
	}
}

func fromMongoExercise(me *mongoExercise) domain.Exercise {
	return domain.Exercise{
		ID: me.ID, Name: me.Name, MuscleGroup: me.MuscleGroup, Equipment: me.Equipment, Difficulty: me.Difficulty,
		VideoURL: me.VideoURL, Instructions: me.Instructions, CreatedBy: me.CreatedBy,
		CreatedAt: me.CreatedAt, UpdatedAt: me.UpdatedAt, DeletedAt: me.DeletedAt,
	}
}

var _ domain.ExerciseRepository = (*ExerciseRepoMongoDB)(nil)
