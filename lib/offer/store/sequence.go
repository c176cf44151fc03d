package offerstore

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	dbmodels "ofertas-backend/models/db"
)

// nextNroID entrega el siguiente NroId desde un contador en el servidor.
// El contador se sube al máximo NroId existente ($max) y luego se incrementa con $inc.
// Dos altas concurrentes no reciben el mismo valor; los ids eliminados no se reutilizan.
func (i impl) nextNroID(ctx context.Context, coll *mongo.Collection) (int64, error) {
	maxID, err := i.maxNroID(ctx, coll)
	if err != nil {
		return 0, err
	}
	counters, err := i.conn.Collection(ctx, i.counterCollection)
	if err != nil {
		return 0, errors.Wrap(err, "no se pudo obtener la colección de contadores")
	}
	filter := bson.M{"_id": i.collection}
	_, err = counters.UpdateOne(ctx, filter,
		bson.M{"$max": bson.M{"seq": maxID}},
		options.Update().SetUpsert(true))
	if err != nil {
		return 0, errors.Wrap(err, "error sincronizando el contador de NroId")
	}
	counter := dbmodels.SequenceCounter{}
	err = counters.FindOneAndUpdate(ctx, filter,
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)).
		Decode(&counter)
	if err != nil {
		return 0, errors.Wrap(err, "error incrementando el contador de NroId")
	}
	return counter.LastValue, nil
}

// maxNroID último NroId de la colección, 0 si está vacía.
func (i impl) maxNroID(ctx context.Context, coll *mongo.Collection) (int64, error) {
	rec := dbmodels.Offer{}
	err := coll.FindOne(ctx, bson.M{}, options.FindOne().
		SetSort(bson.D{{Key: dbmodels.FieldNroID, Value: -1}}).
		SetProjection(bson.M{dbmodels.FieldNroID: 1})).
		Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "error obteniendo el último NroId")
	}
	return rec.NroID, nil
}
