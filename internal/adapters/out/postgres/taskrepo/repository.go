package taskrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository implements ports.TaskRepository using GORM.
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository binds the repository to db, usually a transaction.
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// AddPutaway inserts a pending task.
func (r *GormTaskRepository) AddPutaway(ctx context.Context, task *warehouse.PutawayTask) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := putawayFromDomain(task)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetPutaway returns errs.ObjectNotFoundError for an unknown id.
func (r *GormTaskRepository) GetPutaway(ctx context.Context, id kernel.UUID) (*warehouse.PutawayTask, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PutawayTaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("putawayTaskId", id.String())
		}
		return nil, err
	}

	return putawayToDomain(dto)
}

// DeletePutaway returns errs.ObjectNotFoundError when no row was deleted.
func (r *GormTaskRepository) DeletePutaway(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PutawayTaskDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("putawayTaskId", id.String())
	}
	return nil
}

// ListPutaways returns pending tasks, oldest first.
func (r *GormTaskRepository) ListPutaways(ctx context.Context) ([]*warehouse.PutawayTask, error) {
	var dtos []PutawayTaskDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", int(warehouse.PutawayPending)).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	tasks := make([]*warehouse.PutawayTask, 0, len(dtos))
	for _, dto := range dtos {
		t, err := putawayToDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// MarkPicked is idempotent: a second mark of the same line is ignored.
func (r *GormTaskRepository) MarkPicked(ctx context.Context, ref warehouse.LineRef) error {
	dto := PickDTO{OrderID: ref.OrderID.Bytes(), LineIndex: ref.LineIndex, PickedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
}

// PickState reads the pick marks of orderIDs, or every mark when none are given.
func (r *GormTaskRepository) PickState(ctx context.Context, orderIDs ...kernel.UUID) (warehouse.PickState, error) {
	query := r.db.WithContext(ctx).Model(&PickDTO{})
	if len(orderIDs) > 0 {
		ids := make([]uuid.UUID, 0, len(orderIDs))
		for _, id := range orderIDs {
			ids = append(ids, id.Bytes())
		}
		query = query.Where("order_id IN ?", ids)
	}

	var dtos []PickDTO
	if err := query.Find(&dtos).Error; err != nil {
		return warehouse.PickState{}, err
	}

	refs := make([]warehouse.LineRef, 0, len(dtos))
	for _, dto := range dtos {
		ref, err := pickToDomain(dto)
		if err != nil {
			return warehouse.PickState{}, err
		}
		refs = append(refs, ref)
	}
	return warehouse.NewPickState(refs...), nil
}

// ClearPicks deletes the pick marks of one order.
func (r *GormTaskRepository) ClearPicks(ctx context.Context, orderID kernel.UUID) error {
	return r.db.WithContext(ctx).Delete(&PickDTO{}, "order_id = ?", orderID.Bytes()).Error
}

// GetPackingSession returns errs.ErrObjectNotFound when packing has not started.
func (r *GormTaskRepository) GetPackingSession(ctx context.Context, orderID kernel.UUID) (*warehouse.PackingSession, error) {
	var dto PackingSessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("packingSession", orderID.String())
		}
		return nil, err
	}
	return warehouse.RestorePackingSession(orderID, dto.VerifiedSKUs), nil
}

// SavePackingSession upserts the verified SKU set of an order.
func (r *GormTaskRepository) SavePackingSession(ctx context.Context, session *warehouse.PackingSession) error {
	if err := session.Validate(); err != nil {
		return err
	}

	verified := session.VerifiedSKUs()
	if verified == nil {
		verified = []string{}
	}
	dto := PackingSessionDTO{
		OrderID:      session.OrderID().Bytes(),
		VerifiedSKUs: verified,
		UpdatedAt:    time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"verified_skus", "updated_at"}),
		}).
		Create(&dto).Error
}

// DeletePackingSession deletes the session of one order; a missing one is fine.
func (r *GormTaskRepository) DeletePackingSession(ctx context.Context, orderID kernel.UUID) error {
	return r.db.WithContext(ctx).Delete(&PackingSessionDTO{}, "order_id = ?", orderID.Bytes()).Error
}
