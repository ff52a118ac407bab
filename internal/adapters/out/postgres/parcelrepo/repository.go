package parcelrepo

import (
	"context"
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel and its initial history entries.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.appendLogs(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing parcel. The write is conditioned on the status
// the aggregate was loaded with: if a concurrent transition changed it in
// the meantime, zero rows match and the update fails with a version
// conflict instead of silently overwriting. New history entries are
// inserted in the same transaction.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ParcelDTO{}).
		Where("id = ? AND current_status = ?", dto.ID, aggregate.StatusAtLoad().String()).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("parcel.currentStatus",
			fmt.Errorf("parcel %s changed concurrently or no longer exists", aggregate.TrackingID()))
	}

	if err := r.appendLogs(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel by ID with its full history.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetByTrackingID retrieves a parcel by tracking ID with its full history.
func (r *GormParcelRepository) GetByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (*parcel.Parcel, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_id = ?", trackingID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", trackingID.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// ExistsByTrackingID reports whether the tracking ID is already taken.
func (r *GormParcelRepository) ExistsByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (bool, error) {
	if err := trackingID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&ParcelDTO{}).
		Where("tracking_id = ?", trackingID.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Delete hard-deletes a parcel and its history rows.
func (r *GormParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&StatusLogDTO{}, "parcel_id = ?", id.Bytes()).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ParcelDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", id.String())
	}

	return nil
}

// appendLogs inserts the history entries appended since the aggregate was
// loaded. Entries already in storage are never touched.
func (r *GormParcelRepository) appendLogs(ctx context.Context, aggregate *parcel.Parcel) error {
	pending := aggregate.UncommittedEntries()
	if len(pending) == 0 {
		return nil
	}

	rows := make([]StatusLogDTO, 0, len(pending))
	for _, entry := range pending {
		rows = append(rows, logFromDomain(aggregate.ID(), entry))
	}

	return r.db.WithContext(ctx).Create(&rows).Error
}

// load fetches the history rows for dto and assembles the aggregate.
func (r *GormParcelRepository) load(ctx context.Context, dto ParcelDTO) (*parcel.Parcel, error) {
	var logs []StatusLogDTO
	err := r.db.WithContext(ctx).
		Where("parcel_id = ?", dto.ID).
		Order("timestamp ASC, id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, logs)
}
