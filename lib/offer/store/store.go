package offerstore

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	offerapimodels "ofertas-backend/models/api/offer"
	dbmodels "ofertas-backend/models/db"
)

var (
	ErrNotFound  = errors.New("oferta no encontrada")
	ErrInvalidID = errors.New("identificador de oferta inválido")
)

const maxCreateAttempts = 3

// CollectionGetter entrega colecciones; lo implementa db.Manager.
type CollectionGetter interface {
	Collection(ctx context.Context, name string) (*mongo.Collection, error)
}

type UpdateResult struct {
	Matched  int64
	Modified int64
}

type Provider interface {
	Create(ctx context.Context, rec dbmodels.Offer) (nroID int64, err error)
	List(ctx context.Context) (list []dbmodels.Offer, err error)
	GetByNroID(ctx context.Context, nroID int64) (rec *dbmodels.Offer, err error)
	Update(ctx context.Context, nroID int64, fields map[string]any) (UpdateResult, error)
	Delete(ctx context.Context, nroID int64) error
	Search(ctx context.Context, term string) (list []dbmodels.Offer, err error)
	SearchAdvanced(ctx context.Context, filter offerapimodels.AdvancedFilter) (list []dbmodels.Offer, err error)
	EnsureIndexes(ctx context.Context) error
}

func NewInstance(conn CollectionGetter, collection, counterCollection string) Provider {
	return &impl{
		conn:              conn,
		collection:        collection,
		counterCollection: counterCollection,
	}
}

type impl struct {
	conn              CollectionGetter
	collection        string
	counterCollection string
}

// ParseNroID convierte el id recibido en la ruta; solo acepta enteros positivos.
func ParseNroID(value string) (int64, error) {
	nroID, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || nroID <= 0 {
		return 0, ErrInvalidID
	}
	return nroID, nil
}

func (i impl) Create(ctx context.Context, rec dbmodels.Offer) (int64, error) {
	coll, err := i.offers(ctx)
	if err != nil {
		return 0, err
	}
	for attempt := 1; ; attempt++ {
		nroID, err := i.nextNroID(ctx, coll)
		if err != nil {
			return 0, err
		}
		rec.ID = primitive.NilObjectID
		rec.NroID = nroID
		rec.CreatedAt = time.Now().UTC()
		rec.UpdatedAt = nil
		if rec.Requirements.Skills == nil {
			rec.Requirements.Skills = []string{}
		}
		_, err = coll.InsertOne(ctx, rec)
		if err == nil {
			return nroID, nil
		}
		if mongo.IsDuplicateKeyError(err) && attempt < maxCreateAttempts {
			log.WithField("nro_id", nroID).
				WithField("attempt", attempt).
				Warn("NroId ya existe, se pide uno nuevo")
			continue
		}
		return 0, errors.Wrap(err, "error insertando la oferta")
	}
}

func (i impl) List(ctx context.Context) ([]dbmodels.Offer, error) {
	return i.find(ctx, bson.M{})
}

func (i impl) GetByNroID(ctx context.Context, nroID int64) (*dbmodels.Offer, error) {
	coll, err := i.offers(ctx)
	if err != nil {
		return nil, err
	}
	rec := dbmodels.Offer{}
	err = coll.FindOne(ctx, bson.M{dbmodels.FieldNroID: nroID}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "error leyendo la oferta %d", nroID)
	}
	return &rec, nil
}

func (i impl) Update(ctx context.Context, nroID int64, fields map[string]any) (UpdateResult, error) {
	coll, err := i.offers(ctx)
	if err != nil {
		return UpdateResult{}, err
	}
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set[dbmodels.FieldUpdatedAt] = time.Now().UTC()
	res, err := coll.UpdateOne(ctx, bson.M{dbmodels.FieldNroID: nroID}, bson.M{"$set": set})
	if err != nil {
		return UpdateResult{}, errors.Wrapf(err, "error actualizando la oferta %d", nroID)
	}
	if res.MatchedCount == 0 {
		return UpdateResult{}, ErrNotFound
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (i impl) Delete(ctx context.Context, nroID int64) error {
	coll, err := i.offers(ctx)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.M{dbmodels.FieldNroID: nroID})
	if err != nil {
		return errors.Wrapf(err, "error eliminando la oferta %d", nroID)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (i impl) Search(ctx context.Context, term string) ([]dbmodels.Offer, error) {
	return i.find(ctx, buildSearchQuery(term))
}

func (i impl) SearchAdvanced(ctx context.Context, filter offerapimodels.AdvancedFilter) ([]dbmodels.Offer, error) {
	return i.find(ctx, buildAdvancedQuery(filter))
}

func (i impl) EnsureIndexes(ctx context.Context) error {
	coll, err := i.offers(ctx)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: dbmodels.FieldNroID, Value: 1}},
		Options: options.Index().SetUnique(true).SetName("nro_id_unique"),
	})
	if err != nil {
		return errors.Wrap(err, "error creando el índice único de NroId")
	}
	return nil
}

func (i impl) find(ctx context.Context, query bson.M) ([]dbmodels.Offer, error) {
	coll, err := i.offers(ctx)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: dbmodels.FieldNroID, Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "error consultando ofertas")
	}
	list := []dbmodels.Offer{}
	if err = cursor.All(ctx, &list); err != nil {
		return nil, errors.Wrap(err, "error leyendo ofertas")
	}
	return list, nil
}

func (i impl) offers(ctx context.Context) (*mongo.Collection, error) {
	coll, err := i.conn.Collection(ctx, i.collection)
	if err != nil {
		return nil, errors.Wrap(err, "no se pudo obtener la colección de ofertas")
	}
	return coll, nil
}

func buildSearchQuery(term string) bson.M {
	pattern := containsRegex(term)
	return bson.M{
		"$or": bson.A{
			bson.M{dbmodels.FieldPosition: pattern},
			bson.M{dbmodels.FieldCompanyName: pattern},
		},
	}
}

func buildAdvancedQuery(filter offerapimodels.AdvancedFilter) bson.M {
	query := bson.M{}
	if filter.Education != "" {
		query[dbmodels.FieldEducation] = containsRegex(filter.Education)
	}
	if len(filter.Skills) != 0 {
		patterns := bson.A{}
		for _, skill := range filter.Skills {
			patterns = append(patterns, containsRegex(skill))
		}
		query[dbmodels.FieldSkills] = bson.M{"$in": patterns}
	}
	if r := rangeQuery(filter.ExpMin, filter.ExpMax); r != nil {
		query[dbmodels.FieldExperience] = r
	}
	if r := rangeQuery(filter.PayMin, filter.PayMax); r != nil {
		query[dbmodels.FieldMonthlyPay] = r
	}
	return query
}

func rangeQuery(min, max *int) bson.M {
	if min == nil && max == nil {
		return nil
	}
	r := bson.M{}
	if min != nil {
		r["$gte"] = *min
	}
	if max != nil {
		r["$lte"] = *max
	}
	return r
}

// containsRegex subcadena sin distinguir mayúsculas; el texto se escapa.
func containsRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}
