package eventrequest

import (
	"context"
	"errors"
	"time"

	model "runoot/models/eventrequest"
	"runoot/models/user"

	"gorm.io/gorm"
)

// Repository is the persistence surface of the event-request workflow.
// Every write is scoped by the owning team leader where ownership applies;
// that equality filter is the authorization boundary.
type Repository interface {
	GetProfile(ctx context.Context, profileID uint) (*user.Profile, error)

	GetRequest(ctx context.Context, requestID uint) (*model.EventRequest, error)
	GetOwnedRequest(ctx context.Context, requestID, teamLeaderID uint) (*model.EventRequest, error)
	ListOwnedRequests(ctx context.Context, teamLeaderID uint) ([]model.EventRequest, error)

	// CreateRequest inserts the request and its first update row atomically
	CreateRequest(ctx context.Context, req *model.EventRequest, upd *model.RequestUpdate) error
	// SaveRequest persists a mutated request, appending an update row when
	// upd is non-nil, in one transaction
	SaveRequest(ctx context.Context, req *model.EventRequest, upd *model.RequestUpdate) error
	// TouchSeen refreshes one actor's last-seen watermark
	TouchSeen(ctx context.Context, requestID uint, actor model.ActorRole, at time.Time) error

	AppendUpdate(ctx context.Context, upd *model.RequestUpdate) error
	ListUpdates(ctx context.Context, requestIDs []uint) ([]model.RequestUpdate, error)

	GetQuote(ctx context.Context, quoteID, requestID uint) (*model.Quote, error)
	ListQuotes(ctx context.Context, requestIDs []uint) ([]model.Quote, error)
	CreateQuote(ctx context.Context, q *model.Quote) error
	// SelectQuote clears is_selected across the request's quotes, sets it on
	// the chosen one, persists the approved request and appends the
	// quote_selected update row, all inside one transaction
	SelectQuote(ctx context.Context, req *model.EventRequest, quoteID uint, upd *model.RequestUpdate) error
}

// GormRepository is the Postgres-backed Repository
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) GetProfile(ctx context.Context, profileID uint) (*user.Profile, error) {
	var profile user.Profile
	err := r.db.WithContext(ctx).First(&profile, profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormRepository) GetRequest(ctx context.Context, requestID uint) (*model.EventRequest, error) {
	var req model.EventRequest
	err := r.db.WithContext(ctx).First(&req, requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *GormRepository) GetOwnedRequest(ctx context.Context, requestID, teamLeaderID uint) (*model.EventRequest, error) {
	var req model.EventRequest
	err := r.db.WithContext(ctx).
		Where("id = ? AND team_leader_id = ?", requestID, teamLeaderID).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *GormRepository) ListOwnedRequests(ctx context.Context, teamLeaderID uint) ([]model.EventRequest, error) {
	var requests []model.EventRequest
	err := r.db.WithContext(ctx).
		Where("team_leader_id = ?", teamLeaderID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *GormRepository) CreateRequest(ctx context.Context, req *model.EventRequest, upd *model.RequestUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		upd.EventRequestID = req.ID
		return tx.Create(upd).Error
	})
}

func (r *GormRepository) SaveRequest(ctx context.Context, req *model.EventRequest, upd *model.RequestUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(req).Error; err != nil {
			return err
		}
		if upd == nil {
			return nil
		}
		upd.EventRequestID = req.ID
		return tx.Create(upd).Error
	})
}

func (r *GormRepository) TouchSeen(ctx context.Context, requestID uint, actor model.ActorRole, at time.Time) error {
	column := "tl_last_seen_update_at"
	if actor == model.ActorSuperAdmin {
		column = "admin_last_seen_update_at"
	}
	return r.db.WithContext(ctx).
		Model(&model.EventRequest{}).
		Where("id = ?", requestID).
		Update(column, at).Error
}

func (r *GormRepository) AppendUpdate(ctx context.Context, upd *model.RequestUpdate) error {
	return r.db.WithContext(ctx).Create(upd).Error
}

func (r *GormRepository) ListUpdates(ctx context.Context, requestIDs []uint) ([]model.RequestUpdate, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var updates []model.RequestUpdate
	err := r.db.WithContext(ctx).
		Where("event_request_id IN ?", requestIDs).
		Order("created_at DESC").
		Find(&updates).Error
	return updates, err
}

func (r *GormRepository) GetQuote(ctx context.Context, quoteID, requestID uint) (*model.Quote, error) {
	var quote model.Quote
	err := r.db.WithContext(ctx).
		Where("id = ? AND event_request_id = ?", quoteID, requestID).
		First(&quote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *GormRepository) ListQuotes(ctx context.Context, requestIDs []uint) ([]model.Quote, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var quotes []model.Quote
	err := r.db.WithContext(ctx).
		Where("event_request_id IN ?", requestIDs).
		Order("total_price ASC").
		Find(&quotes).Error
	return quotes, err
}

func (r *GormRepository) CreateQuote(ctx context.Context, q *model.Quote) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *GormRepository) SelectQuote(ctx context.Context, req *model.EventRequest, quoteID uint, upd *model.RequestUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Clear-then-set keeps selection exclusive; the surrounding
		// transaction keeps a concurrent selection from tearing it.
		err := tx.Model(&model.Quote{}).
			Where("event_request_id = ?", req.ID).
			Update("is_selected", false).Error
		if err != nil {
			return err
		}
		err = tx.Model(&model.Quote{}).
			Where("id = ? AND event_request_id = ?", quoteID, req.ID).
			Update("is_selected", true).Error
		if err != nil {
			return err
		}
		if err := tx.Save(req).Error; err != nil {
			return err
		}
		upd.EventRequestID = req.ID
		return tx.Create(upd).Error
	})
}
