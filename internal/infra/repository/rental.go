package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"lendhub/internal/domain/rental"
	"lendhub/internal/infra"
	"lendhub/internal/infra/db"
	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/shared"
)

const rentalColumns = `
	id, article_id, renter_id, owner_id,
	starts_at, ends_at, price_unit, unit_price_cents, units,
	subtotal_cents, deposit_cents,
	status, delivered, returned, expired_payment, deposit_released,
	paid_at, delivered_at, returned_at, deposit_released_at,
	handover_code, return_code, delivery_checklist, return_checklist,
	coordination, created_at, updated_at`

type RentalRepository struct {
	db db.DBTX
}

func NewRentalRepository(dbtx db.DBTX) *RentalRepository {
	return &RentalRepository{db: dbtx}
}

func (r *RentalRepository) Create(ctx context.Context, rent *rental.Rental) error {
	coord, err := marshalCoordination(rent.Coordination)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO rentals (
			id, article_id, renter_id, owner_id,
			starts_at, ends_at, price_unit, unit_price_cents, units,
			subtotal_cents, deposit_cents,
			status, delivered, returned, expired_payment, deposit_released,
			paid_at, delivered_at, returned_at, deposit_released_at,
			handover_code, return_code, delivery_checklist, return_checklist,
			coordination, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9,
			$10, $11,
			$12, $13, $14, $15, $16,
			$17, $18, $19, $20,
			$21, $22, $23, $24,
			$25, $26, $27
		)`,
		rent.ID, rent.ArticleID, rent.RenterID, rent.OwnerID,
		rent.Interval.Start(), rent.Interval.End(), string(rent.PriceUnit), rent.UnitPrice.Cents(), rent.Units,
		rent.Subtotal.Cents(), rent.Deposit.Cents(),
		string(rent.Status), rent.Delivered, rent.Returned, rent.ExpiredPayment, rent.DepositReleased,
		rent.PaidAt, rent.DeliveredAt, rent.ReturnedAt, rent.DepositReleasedAt,
		rent.HandoverCode, rent.ReturnCode, rent.DeliveryChecklist, rent.ReturnChecklist,
		coord, rent.CreatedAt, rent.UpdatedAt,
	)
	if err != nil {
		return infra.ClassifyErr("failed to create rental", err)
	}
	return nil
}

func (r *RentalRepository) Update(ctx context.Context, rent *rental.Rental) error {
	coord, err := marshalCoordination(rent.Coordination)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE rentals SET
			status = $2, delivered = $3, returned = $4,
			expired_payment = $5, deposit_released = $6,
			paid_at = $7, delivered_at = $8, returned_at = $9, deposit_released_at = $10,
			handover_code = $11, return_code = $12,
			delivery_checklist = $13, return_checklist = $14,
			coordination = $15, updated_at = $16
		WHERE id = $1`,
		rent.ID,
		string(rent.Status), rent.Delivered, rent.Returned,
		rent.ExpiredPayment, rent.DepositReleased,
		rent.PaidAt, rent.DeliveredAt, rent.ReturnedAt, rent.DepositReleasedAt,
		rent.HandoverCode, rent.ReturnCode,
		rent.DeliveryChecklist, rent.ReturnChecklist,
		coord, rent.UpdatedAt,
	)
	if err != nil {
		return infra.ClassifyErr("failed to update rental", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "rental not found on update", nil)
	}
	return nil
}

func (r *RentalRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Rental, error) {
	row := r.db.QueryRow(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id)
	rent, err := scanRental(row)
	if err != nil {
		return nil, infra.ClassifyErr("failed to find rental by id", err)
	}
	return rent, nil
}

func (r *RentalRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*rental.Rental, error) {
	row := r.db.QueryRow(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1 FOR UPDATE`, id)
	rent, err := scanRental(row)
	if err != nil {
		return nil, infra.ClassifyErr("failed to lock rental by id", err)
	}
	return rent, nil
}

// LockConflicting serializes concurrent bookings on the same article: the
// half-open overlap predicate mirrors Interval.Overlaps and the FOR UPDATE
// makes the second transaction wait for the first to commit.
func (r *RentalRepository) LockConflicting(ctx context.Context, articleID uuid.UUID, iv rental.Interval) ([]*rental.Rental, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+rentalColumns+`
		FROM rentals
		WHERE article_id = $1
		  AND status = ANY($2)
		  AND starts_at < $4
		  AND ends_at > $3
		ORDER BY created_at
		FOR UPDATE`,
		articleID, statusStrings(rental.ActiveStatuses), iv.Start(), iv.End(),
	)
	if err != nil {
		return nil, infra.ClassifyErr("failed to lock conflicting rentals", err)
	}
	defer rows.Close()
	return scanRentals(rows)
}

func (r *RentalRepository) ListInbox(ctx context.Context, f shared.InboxFilter) ([]*rental.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE ` + inboxWhere(f.Role, f.Bucket) + `
		ORDER BY updated_at DESC, id
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, f.UserID, f.Limit, f.Offset)
	if err != nil {
		return nil, infra.ClassifyErr("failed to list rental inbox", err)
	}
	defer rows.Close()
	return scanRentals(rows)
}

func (r *RentalRepository) CountInbox(ctx context.Context, f shared.InboxFilter) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM rentals WHERE `+inboxWhere(f.Role, f.Bucket),
		f.UserID,
	).Scan(&total)
	if err != nil {
		return 0, infra.ClassifyErr("failed to count rental inbox", err)
	}
	return total, nil
}

func (r *RentalRepository) ListActiveByArticle(ctx context.Context, articleID uuid.UUID) ([]*rental.Rental, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+rentalColumns+`
		FROM rentals
		WHERE article_id = $1 AND status = ANY($2)
		ORDER BY starts_at`,
		articleID, statusStrings(rental.ActiveStatuses),
	)
	if err != nil {
		return nil, infra.ClassifyErr("failed to list active rentals by article", err)
	}
	defer rows.Close()
	return scanRentals(rows)
}

func inboxWhere(role shared.InboxRole, bucket shared.InboxBucket) string {
	var where string
	switch role {
	case shared.InboxAsOwner:
		where = `owner_id = $1`
	default:
		where = `renter_id = $1`
	}

	// Closed means cancelled (expiry included) or completed; everything
	// else still needs action from one of the parties.
	switch bucket {
	case shared.BucketOpen:
		where += ` AND status NOT IN ('cancelled', 'completed')`
	case shared.BucketClosed:
		where += ` AND status IN ('cancelled', 'completed')`
	}
	return where
}

func statusStrings(statuses []rental.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// coordinationRecord is the jsonb shape of the embedded coordination.
type coordinationRecord struct {
	Mode            string     `json:"mode"`
	Address         string     `json:"address,omitempty"`
	PointID         *uuid.UUID `json:"point_id,omitempty"`
	PointName       string     `json:"point_name,omitempty"`
	DeliveryWindows []string   `json:"delivery_windows"`
	ReturnWindows   []string   `json:"return_windows"`
	ChosenDelivery  string     `json:"chosen_delivery,omitempty"`
	ChosenReturn    string     `json:"chosen_return,omitempty"`
	Confirmed       bool       `json:"confirmed"`
	ProposedAt      *time.Time `json:"proposed_at"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
}

func marshalCoordination(c rental.Coordination) ([]byte, error) {
	if !c.Proposed() {
		return nil, nil
	}
	rec := coordinationRecord{
		Mode:            string(c.Mode),
		Address:         c.Address,
		DeliveryWindows: c.DeliveryWindows,
		ReturnWindows:   c.ReturnWindows,
		ChosenDelivery:  c.ChosenDelivery,
		ChosenReturn:    c.ChosenReturn,
		Confirmed:       c.Confirmed,
		ProposedAt:      c.ProposedAt,
		AcceptedAt:      c.AcceptedAt,
		ConfirmedAt:     c.ConfirmedAt,
	}
	if c.DeliveryPoint != nil {
		id := c.DeliveryPoint.ID
		rec.PointID = &id
		rec.PointName = c.DeliveryPoint.Name
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, errs.Wrap(err, "failed to marshal coordination")
	}
	return b, nil
}

func unmarshalCoordination(raw []byte) (rental.Coordination, error) {
	if len(raw) == 0 {
		return rental.Coordination{}, nil
	}
	var rec coordinationRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rental.Coordination{}, errs.Wrap(err, "failed to unmarshal coordination")
	}
	c := rental.Coordination{
		Mode:            rental.DeliveryMode(rec.Mode),
		Address:         rec.Address,
		DeliveryWindows: rec.DeliveryWindows,
		ReturnWindows:   rec.ReturnWindows,
		ChosenDelivery:  rec.ChosenDelivery,
		ChosenReturn:    rec.ChosenReturn,
		Confirmed:       rec.Confirmed,
		ProposedAt:      rec.ProposedAt,
		AcceptedAt:      rec.AcceptedAt,
		ConfirmedAt:     rec.ConfirmedAt,
	}
	if rec.PointID != nil {
		c.DeliveryPoint = &rental.DeliveryPoint{ID: *rec.PointID, Name: rec.PointName, Address: rec.Address}
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRental(row rowScanner) (*rental.Rental, error) {
	var (
		rent                rental.Rental
		startsAt, endsAt    time.Time
		priceUnit, status   string
		unitCents, subtotal int64
		deposit             int64
		coordRaw            []byte
	)

	err := row.Scan(
		&rent.ID, &rent.ArticleID, &rent.RenterID, &rent.OwnerID,
		&startsAt, &endsAt, &priceUnit, &unitCents, &rent.Units,
		&subtotal, &deposit,
		&status, &rent.Delivered, &rent.Returned, &rent.ExpiredPayment, &rent.DepositReleased,
		&rent.PaidAt, &rent.DeliveredAt, &rent.ReturnedAt, &rent.DepositReleasedAt,
		&rent.HandoverCode, &rent.ReturnCode, &rent.DeliveryChecklist, &rent.ReturnChecklist,
		&coordRaw, &rent.CreatedAt, &rent.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	iv, err := rental.NewInterval(startsAt, endsAt)
	if err != nil {
		return nil, errs.Wrap(err, "stored rental interval is invalid")
	}
	coord, err := unmarshalCoordination(coordRaw)
	if err != nil {
		return nil, err
	}

	rent.Interval = iv
	rent.PriceUnit = articlePriceUnit(priceUnit)
	rent.UnitPrice = rental.NewMoney(unitCents)
	rent.Subtotal = rental.NewMoney(subtotal)
	rent.Deposit = rental.NewMoney(deposit)
	rent.Status = rental.Status(status)
	rent.Coordination = coord
	return &rent, nil
}

func scanRentals(rows interface {
	Next() bool
	Err() error
	Scan(dest ...any) error
}) ([]*rental.Rental, error) {
	var out []*rental.Rental
	for rows.Next() {
		rent, err := scanRental(rows)
		if err != nil {
			return nil, infra.ClassifyErr("failed to scan rental row", err)
		}
		out = append(out, rent)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyErr("failed to iterate rental rows", err)
	}
	return out, nil
}
