package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/99minutos/parcel-service/internal/core/domain"
	"github.com/99minutos/parcel-service/internal/core/ports"
)

const parcelColumns = `
	id, tracking_number,
	sender_name, sender_email, sender_phone, sender_address,
	recipient_name, recipient_email, recipient_phone, recipient_address,
	weight_kg, length_cm, width_cm, height_cm,
	description, parcel_type, delivery_type, status, shipping_cost,
	estimated_delivery_date, actual_delivery_date, created_at, updated_at`

// fieldColumns maps listable fields to column names.
var fieldColumns = map[ports.ParcelField]string{
	ports.FieldSenderEmail:    "sender_email",
	ports.FieldRecipientEmail: "recipient_email",
	ports.FieldStatus:         "status",
}

// ParcelRepository is a database/sql implementation of ports.ParcelRepository.
// Timestamps are stored as Unix nanoseconds in UTC.
type ParcelRepository struct {
	db     *sql.DB
	driver string
}

func NewParcelRepository(db *sql.DB, driver string) *ParcelRepository {
	return &ParcelRepository{db: db, driver: driver}
}

func (r *ParcelRepository) Save(ctx context.Context, p *domain.Parcel) (*domain.Parcel, error) {
	saved := p.Clone()
	if saved.ID == "" {
		saved.ID = uuid.NewString()
		if err := r.insert(ctx, saved); err != nil {
			return nil, err
		}
		return saved, nil
	}
	if err := r.update(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *ParcelRepository) insert(ctx context.Context, p *domain.Parcel) error {
	query := `INSERT INTO parcels (` + parcelColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	args := append([]any{p.ID}, rowValues(p)...)
	if _, err := r.db.ExecContext(ctx, rebind(r.driver, query), args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateParcel
		}
		return domain.NewStoreError("insert parcel", err)
	}
	return nil
}

func (r *ParcelRepository) update(ctx context.Context, p *domain.Parcel) error {
	query := `UPDATE parcels SET
		tracking_number = ?,
		sender_name = ?, sender_email = ?, sender_phone = ?, sender_address = ?,
		recipient_name = ?, recipient_email = ?, recipient_phone = ?, recipient_address = ?,
		weight_kg = ?, length_cm = ?, width_cm = ?, height_cm = ?,
		description = ?, parcel_type = ?, delivery_type = ?, status = ?, shipping_cost = ?,
		estimated_delivery_date = ?, actual_delivery_date = ?, created_at = ?, updated_at = ?
	WHERE id = ?`

	args := append(rowValues(p), p.ID)
	res, err := r.db.ExecContext(ctx, rebind(r.driver, query), args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateParcel
		}
		return domain.NewStoreError("update parcel", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewStoreError("update parcel", err)
	}
	if n == 0 {
		return domain.ErrParcelNotFound
	}
	return nil
}

func (r *ParcelRepository) FindByID(ctx context.Context, id string) (*domain.Parcel, error) {
	return r.findOne(ctx, "id", id)
}

func (r *ParcelRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Parcel, error) {
	return r.findOne(ctx, "tracking_number", trackingNumber)
}

func (r *ParcelRepository) FindAllByField(ctx context.Context, field ports.ParcelField, value string) ([]*domain.Parcel, error) {
	column, ok := fieldColumns[field]
	if !ok {
		return nil, domain.NewStoreError("find parcels", fmt.Errorf("unsupported field %q", field))
	}
	return r.find(ctx, "WHERE "+column+" = ?", value)
}

// FindBySenderOrRecipient uses a single OR predicate so a parcel matching on
// both sides is returned once.
func (r *ParcelRepository) FindBySenderOrRecipient(ctx context.Context, email string) ([]*domain.Parcel, error) {
	return r.find(ctx, "WHERE sender_email = ? OR recipient_email = ?", email, email)
}

func (r *ParcelRepository) FindAll(ctx context.Context) ([]*domain.Parcel, error) {
	return r.find(ctx, "")
}

func (r *ParcelRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, rebind(r.driver, `DELETE FROM parcels WHERE id = ?`), id)
	if err != nil {
		return domain.NewStoreError("delete parcel", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewStoreError("delete parcel", err)
	}
	if n == 0 {
		return domain.ErrParcelNotFound
	}
	return nil
}

func (r *ParcelRepository) findOne(ctx context.Context, column, value string) (*domain.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels WHERE ` + column + ` = ?`
	row := r.db.QueryRowContext(ctx, rebind(r.driver, query), value)

	p, err := scanParcel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrParcelNotFound
		}
		return nil, domain.NewStoreError("find parcel", err)
	}
	return p, nil
}

func (r *ParcelRepository) find(ctx context.Context, where string, args ...any) ([]*domain.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels ` + where + ` ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, rebind(r.driver, query), args...)
	if err != nil {
		return nil, domain.NewStoreError("find parcels", err)
	}
	defer rows.Close()

	parcels := make([]*domain.Parcel, 0, 16)
	for rows.Next() {
		p, err := scanParcel(rows)
		if err != nil {
			return nil, domain.NewStoreError("scan parcel", err)
		}
		parcels = append(parcels, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("iterate parcels", err)
	}
	return parcels, nil
}

// rowValues returns every column value after id, in parcelColumns order.
func rowValues(p *domain.Parcel) []any {
	var actual sql.NullInt64
	if p.ActualDeliveryDate != nil {
		actual = sql.NullInt64{Int64: p.ActualDeliveryDate.UnixNano(), Valid: true}
	}
	return []any{
		p.TrackingNumber,
		p.Sender.Name, p.Sender.Email, p.Sender.Phone, p.Sender.Address,
		p.Recipient.Name, p.Recipient.Email, p.Recipient.Phone, p.Recipient.Address,
		p.WeightKg, p.Dimensions.LengthCm, p.Dimensions.WidthCm, p.Dimensions.HeightCm,
		p.Description, string(p.ParcelType), string(p.DeliveryType), string(p.Status), p.ShippingCost,
		p.EstimatedDeliveryDate.UnixNano(), actual, p.CreatedAt.UnixNano(), p.UpdatedAt.UnixNano(),
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanParcel(s scanner) (*domain.Parcel, error) {
	var (
		p                                domain.Parcel
		parcelType, deliveryType, status string
		estimated, created, updated      int64
		actual                           sql.NullInt64
	)
	err := s.Scan(
		&p.ID, &p.TrackingNumber,
		&p.Sender.Name, &p.Sender.Email, &p.Sender.Phone, &p.Sender.Address,
		&p.Recipient.Name, &p.Recipient.Email, &p.Recipient.Phone, &p.Recipient.Address,
		&p.WeightKg, &p.Dimensions.LengthCm, &p.Dimensions.WidthCm, &p.Dimensions.HeightCm,
		&p.Description, &parcelType, &deliveryType, &status, &p.ShippingCost,
		&estimated, &actual, &created, &updated,
	)
	if err != nil {
		return nil, err
	}

	p.ParcelType = domain.ParcelType(parcelType)
	p.DeliveryType = domain.DeliveryType(deliveryType)
	p.Status = domain.ParcelStatus(status)
	p.EstimatedDeliveryDate = fromNanos(estimated)
	p.CreatedAt = fromNanos(created)
	p.UpdatedAt = fromNanos(updated)
	if actual.Valid {
		t := fromNanos(actual.Int64)
		p.ActualDeliveryDate = &t
	}
	return &p, nil
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

// isUniqueViolation recognises unique-constraint failures from both drivers.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
