package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

// Connect abre el cliente y comprueba que el primario responde.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("could not connect to mongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}
	return client, nil
}

// NextID reserva el siguiente id entero de la secuencia name (colección counters).
func NextID(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := db.Collection("counters").FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to reserve id for %s: %w", name, err)
	}
	return doc.Seq, nil
}

// Filter traduce los criterios neutrales a un filtro BSON. Los nombres de campo
// de los documentos coinciden con los de las columnas SQL.
func Filter(criteria sharedDomain.Criteria) bson.D {
	if criteria == nil {
		return bson.D{}
	}
	filter := bson.D{}
	for _, c := range criteria.ToConditions() {
		filter = append(filter, condition(c))
	}
	return filter
}

func condition(c sharedDomain.Criterion) bson.E {
	if len(c.Any) > 0 {
		or := bson.A{}
		for _, sub := range c.Any {
			or = append(or, bson.D{condition(sub)})
		}
		return bson.E{Key: "$or", Value: or}
	}

	switch c.Op {
	case sharedDomain.OpIsNull:
		return bson.E{Key: c.Field, Value: nil}
	case sharedDomain.OpNotNull:
		return bson.E{Key: c.Field, Value: bson.M{"$ne": nil}}
	case sharedDomain.OpLike, sharedDomain.OpILike:
		pattern := regexp.QuoteMeta(strings.Trim(fmt.Sprint(c.Value), "%"))
		return bson.E{Key: c.Field, Value: bson.M{"$regex": pattern, "$options": "i"}}
	}

	var mongoOp string
	switch c.Op {
	case sharedDomain.OpNe:
		mongoOp = "$ne"
	case sharedDomain.OpGt:
		mongoOp = "$gt"
	case sharedDomain.OpGte:
		mongoOp = "$gte"
	case sharedDomain.OpLt:
		mongoOp = "$lt"
	case sharedDomain.OpLte:
		mongoOp = "$lte"
	default:
		mongoOp = "$eq"
	}
	return bson.E{Key: c.Field, Value: bson.M{mongoOp: c.Value}}
}

// FindOptions aplica orden y paginación. Sin orden explícito se ordena por _id.
func FindOptions(sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) *options.FindOptions {
	opts := options.Find()
	if pagination.Limit > 0 {
		opts.SetSkip(int64(pagination.Offset))
		opts.SetLimit(int64(pagination.Limit))
	}

	field := sort.Field
	if field == "" || field == "id" {
		field = "_id"
	}
	dir := 1
	if sort.Desc {
		dir = -1
	}
	return opts.SetSort(bson.D{{Key: field, Value: dir}})
}
