package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/warp-contracts/batch-registry/src/batch"
	"github.com/warp-contracts/batch-registry/src/utils/logger"
	"github.com/warp-contracts/batch-registry/src/utils/model"

	"github.com/jackc/pgtype"
	"github.com/lib/pq"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Registry kept in a Postgres table
type Postgres struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewPostgres(db *gorm.DB) (self *Postgres) {
	self = new(Postgres)
	self.db = db
	self.log = logger.NewSublogger("ledger-postgres")
	return
}

func toRow(record *batch.Record) (row *model.Batch, err error) {
	properties, err := json.Marshal(record.Properties)
	if err != nil {
		return
	}

	row = &model.Batch{
		Name:        record.Name,
		Description: record.Description,
		Status:      string(record.Status()),
		Properties:  pgtype.JSONB{Bytes: properties, Status: pgtype.Present},
		Version:     int64(record.Version),
	}
	return
}

func fromRow(row *model.Batch) (record *batch.Record, err error) {
	record = &batch.Record{
		TokenId:     strconv.FormatInt(row.TokenId, 10),
		Name:        row.Name,
		Description: row.Description,
		Version:     uint64(row.Version),
	}
	if row.Properties.Status != pgtype.Present {
		return
	}
	err = json.Unmarshal(row.Properties.Bytes, &record.Properties)
	return
}

func fromRows(rows []*model.Batch) (out []*batch.Record, err error) {
	out = make([]*batch.Record, 0, len(rows))
	for _, row := range rows {
		var record *batch.Record
		record, err = fromRow(row)
		if err != nil {
			return
		}
		out = append(out, record)
	}
	return
}

func parseTokenId(tokenId string) (int64, error) {
	id, err := strconv.ParseInt(tokenId, 10, 64)
	if err != nil || id < 0 {
		return 0, batch.ErrRecordNotFound
	}
	return id, nil
}

func (self *Postgres) Create(ctx context.Context, record *batch.Record) (out *batch.Receipt, err error) {
	row, err := toRow(record)
	if err != nil {
		return
	}
	reference := xid.New().String()
	row.Version = 1
	row.Receipt = pgtype.Varchar{String: reference, Status: pgtype.Present}

	err = self.db.WithContext(ctx).Create(row).Error
	if err != nil {
		return
	}

	return &batch.Receipt{
		TokenId:   strconv.FormatInt(row.TokenId, 10),
		Reference: reference,
		Version:   uint64(row.Version),
	}, nil
}

func (self *Postgres) Get(ctx context.Context, tokenId string) (out *batch.Record, err error) {
	id, err := parseTokenId(tokenId)
	if err != nil {
		return
	}

	var row model.Batch
	err = self.db.WithContext(ctx).
		Where("token_id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = batch.ErrRecordNotFound
		}
		return
	}

	return fromRow(&row)
}

// Updates only if nobody updated the record since it was read
func (self *Postgres) Update(ctx context.Context, record *batch.Record) (out *batch.Receipt, err error) {
	id, err := parseTokenId(record.TokenId)
	if err != nil {
		return
	}

	row, err := toRow(record)
	if err != nil {
		return
	}
	reference := xid.New().String()

	err = self.db.WithContext(ctx).
		Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&model.Batch{}).
				Where("token_id = ?", id).
				Where("version = ?", row.Version).
				Updates(map[string]interface{}{
					"name":        row.Name,
					"description": row.Description,
					"status":      row.Status,
					"properties":  row.Properties,
					"receipt":     pgtype.Varchar{String: reference, Status: pgtype.Present},
					"version":     gorm.Expr("version + 1"),
					"updated_at":  time.Now(),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				return nil
			}

			// Nothing updated, find out why
			var count int64
			err := tx.Model(&model.Batch{}).Where("token_id = ?", id).Count(&count).Error
			if err != nil {
				return err
			}
			if count == 0 {
				return batch.ErrRecordNotFound
			}
			return batch.ErrVersionConflict
		})
	if err != nil {
		if errors.Is(err, batch.ErrVersionConflict) {
			self.log.WithField("token_id", record.TokenId).WithField("version", record.Version).Warn("Stale update rejected")
		}
		return
	}

	return &batch.Receipt{
		TokenId:   record.TokenId,
		Reference: reference,
		Version:   record.Version + 1,
	}, nil
}

func (self *Postgres) List(ctx context.Context) (out []*batch.Record, err error) {
	var rows []*model.Batch
	err = self.db.WithContext(ctx).
		Order("token_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return
	}
	return fromRows(rows)
}

// Filters on the database side, using the status column
func (self *Postgres) ListByStatus(ctx context.Context, statuses ...batch.Status) (out []*batch.Record, err error) {
	values := make([]string, len(statuses))
	for i, status := range statuses {
		values[i] = string(status)
	}

	var rows []*model.Batch
	err = self.db.WithContext(ctx).
		Where("status = ANY(?)", pq.Array(values)).
		Order("token_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return
	}
	return fromRows(rows)
}
