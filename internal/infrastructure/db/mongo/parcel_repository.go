package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/parcel-service/internal/core/domain"
	"github.com/99minutos/parcel-service/internal/core/ports"
)

const collectionParcels = "parcels"

// parcelDocument is the stored shape of a parcel. The id is a Mongo ObjectID
// exposed to callers as its hex string.
type parcelDocument struct {
	ID                    primitive.ObjectID  `bson:"_id,omitempty"`
	TrackingNumber        string              `bson:"tracking_number"`
	Sender                domain.Contact      `bson:"sender"`
	Recipient             domain.Contact      `bson:"recipient"`
	WeightKg              float64             `bson:"weight_kg"`
	Dimensions            domain.Dimensions   `bson:"dimensions"`
	Description           string              `bson:"description,omitempty"`
	ParcelType            domain.ParcelType   `bson:"parcel_type"`
	DeliveryType          domain.DeliveryType `bson:"delivery_type"`
	Status                domain.ParcelStatus `bson:"status"`
	ShippingCost          float64             `bson:"shipping_cost"`
	EstimatedDeliveryDate time.Time           `bson:"estimated_delivery_date"`
	ActualDeliveryDate    *time.Time          `bson:"actual_delivery_date,omitempty"`
	CreatedAt             time.Time           `bson:"created_at"`
	UpdatedAt             time.Time           `bson:"updated_at"`
}

// toDocument rounds every time up to the millisecond, the precision of a BSON
// datetime, so Save returns exactly what a later read decodes and no stamp
// moves earlier than the moment it was taken.
func toDocument(p *domain.Parcel, id primitive.ObjectID) parcelDocument {
	return parcelDocument{
		ID:                    id,
		TrackingNumber:        p.TrackingNumber,
		Sender:                p.Sender,
		Recipient:             p.Recipient,
		WeightKg:              p.WeightKg,
		Dimensions:            p.Dimensions,
		Description:           p.Description,
		ParcelType:            p.ParcelType,
		DeliveryType:          p.DeliveryType,
		Status:                p.Status,
		ShippingCost:          p.ShippingCost,
		EstimatedDeliveryDate: ceilMillis(p.EstimatedDeliveryDate),
		ActualDeliveryDate:    ceilMillisPtr(p.ActualDeliveryDate),
		CreatedAt:             ceilMillis(p.CreatedAt),
		UpdatedAt:             ceilMillis(p.UpdatedAt),
	}
}

func ceilMillis(t time.Time) time.Time {
	t = t.UTC()
	if r := t.Truncate(time.Millisecond); !r.Equal(t) {
		return r.Add(time.Millisecond)
	}
	return t
}

func ceilMillisPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := ceilMillis(*t)
	return &c
}

func (d parcelDocument) toDomain() *domain.Parcel {
	return &domain.Parcel{
		ID:                    d.ID.Hex(),
		TrackingNumber:        d.TrackingNumber,
		Sender:                d.Sender,
		Recipient:             d.Recipient,
		WeightKg:              d.WeightKg,
		Dimensions:            d.Dimensions,
		Description:           d.Description,
		ParcelType:            d.ParcelType,
		DeliveryType:          d.DeliveryType,
		Status:                d.Status,
		ShippingCost:          d.ShippingCost,
		EstimatedDeliveryDate: d.EstimatedDeliveryDate.UTC(),
		ActualDeliveryDate:    utcPtr(d.ActualDeliveryDate),
		CreatedAt:             d.CreatedAt.UTC(),
		UpdatedAt:             d.UpdatedAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// fieldPaths maps listable fields to document paths.
var fieldPaths = map[ports.ParcelField]string{
	ports.FieldSenderEmail:    "sender.email",
	ports.FieldRecipientEmail: "recipient.email",
	ports.FieldStatus:         "status",
}

type ParcelRepository struct {
	col *mongo.Collection
}

func NewParcelRepository(db *mongo.Database) *ParcelRepository {
	return &ParcelRepository{col: db.Collection(collectionParcels)}
}

// Save inserts a new document when p has no id and replaces the stored one otherwise.
func (r *ParcelRepository) Save(ctx context.Context, p *domain.Parcel) (*domain.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if p.ID == "" {
		doc := toDocument(p, primitive.NewObjectID())
		if _, err := r.col.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrDuplicateParcel
			}
			return nil, domain.NewStoreError("insert parcel", err)
		}
		return doc.toDomain(), nil
	}

	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, domain.ErrParcelNotFound
	}
	doc := toDocument(p, oid)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateParcel
		}
		return nil, domain.NewStoreError("replace parcel", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrParcelNotFound
	}
	return doc.toDomain(), nil
}

func (r *ParcelRepository) FindByID(ctx context.Context, id string) (*domain.Parcel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrParcelNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ParcelRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Parcel, error) {
	return r.findOne(ctx, bson.M{"tracking_number": trackingNumber})
}

func (r *ParcelRepository) FindAllByField(ctx context.Context, field ports.ParcelField, value string) ([]*domain.Parcel, error) {
	filter, err := fieldFilter(field, value)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, filter)
}

// FindBySenderOrRecipient uses a single $or filter so a parcel matching on
// both sides is returned once.
func (r *ParcelRepository) FindBySenderOrRecipient(ctx context.Context, email string) ([]*domain.Parcel, error) {
	return r.find(ctx, userFilter(email))
}

func fieldFilter(field ports.ParcelField, value string) (bson.M, error) {
	path, ok := fieldPaths[field]
	if !ok {
		return nil, domain.NewStoreError("find parcels", errors.New("unsupported field "+string(field)))
	}
	return bson.M{path: value}, nil
}

func userFilter(email string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{fieldPaths[ports.FieldSenderEmail]: email},
		bson.M{fieldPaths[ports.FieldRecipientEmail]: email},
	}}
}

func (r *ParcelRepository) FindAll(ctx context.Context) ([]*domain.Parcel, error) {
	return r.find(ctx, bson.M{})
}

func (r *ParcelRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrParcelNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return domain.NewStoreError("delete parcel", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrParcelNotFound
	}
	return nil
}

func (r *ParcelRepository) findOne(ctx context.Context, filter bson.M) (*domain.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc parcelDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrParcelNotFound
		}
		return nil, domain.NewStoreError("find parcel", err)
	}
	return doc.toDomain(), nil
}

func (r *ParcelRepository) find(ctx context.Context, filter bson.M) ([]*domain.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, domain.NewStoreError("find parcels", err)
	}
	defer cursor.Close(ctx)

	var docs []parcelDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.NewStoreError("decode parcels", err)
	}

	parcels := make([]*domain.Parcel, 0, len(docs))
	for _, d := range docs {
		parcels = append(parcels, d.toDomain())
	}
	return parcels, nil
}

// EnsureIndexes creates necessary indexes on the parcels collection.
func (r *ParcelRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tracking_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sender.email", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "recipient.email", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
