// Package mongo provides the MongoDB implementation of the ledger
// record store.
package mongo

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contable-ledger/internal/domain/journal"
)

const (
	// RecordCollectionName is the name of the ledger collection in MongoDB
	RecordCollectionName = "ledger_records"
)

// recordDocument is the stored shape of one ledger record. Amounts are
// kept as doubles, matching the coercion rules of the tabular backends.
type recordDocument struct {
	EntryID      string    `bson:"entry_id,omitempty"`
	Date         time.Time `bson:"fecha"`
	Document     string    `bson:"documento"`
	Counterparty string    `bson:"tercero"`
	Account      string    `bson:"cuenta"`
	Description  string    `bson:"descripcion"`
	Debit        float64   `bson:"debito"`
	Credit       float64   `bson:"credito"`
	CostCenter   string    `bson:"centro_costo"`
	BusinessUnit string    `bson:"unidad_negocio"`
	SubmittedBy  string    `bson:"usuario_registro"`
	AppendedAt   time.Time `bson:"appended_at"`
}

// RecordStore implements journal.RecordStore for MongoDB.
type RecordStore struct {
	db     *mongo.Database
	logger *slog.Logger
}

var _ journal.RecordStore = (*RecordStore)(nil)

// NewRecordStore creates a MongoDB-backed record store.
func NewRecordStore(logger *slog.Logger, db *mongo.Database) *RecordStore {
	return &RecordStore{
		db:     db,
		logger: logger,
	}
}

// Append inserts all records of one entry with one ordered InsertMany
// call. An ordered insert stops at the first failure, and the whole
// append is reported as failed; nothing is retried automatically.
func (s *RecordStore) Append(ctx context.Context, records []*journal.LedgerRecord) error {
	if len(records) == 0 {
		return nil
	}

	appendedAt := time.Now().UTC()
	docs := make([]interface{}, 0, len(records))
	for _, rec := range records {
		doc := recordDocument{
			Date:         rec.Date,
			Document:     rec.Document,
			Counterparty: rec.Counterparty,
			Account:      rec.Account,
			Description:  rec.Description,
			Debit:        rec.Debit.InexactFloat64(),
			Credit:       rec.Credit.InexactFloat64(),
			CostCenter:   rec.CostCenter,
			BusinessUnit: rec.BusinessUnit,
			SubmittedBy:  rec.SubmittedBy,
			AppendedAt:   appendedAt,
		}
		if rec.EntryID != uuid.Nil {
			doc.EntryID = rec.EntryID.String()
		}
		docs = append(docs, doc)
	}

	collection := s.db.Collection(RecordCollectionName)
	if _, err := collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		s.logger.Error("Failed to append ledger records",
			"collection", RecordCollectionName,
			"count", len(docs),
			"error", err)
		return err
	}

	return nil
}

// LoadAll reads the whole collection in append order. Read failures
// degrade to an empty result rather than surfacing an error.
func (s *RecordStore) LoadAll(ctx context.Context) ([]*journal.LedgerRecord, error) {
	collection := s.db.Collection(RecordCollectionName)

	opts := options.Find().SetSort(bson.D{{Key: "appended_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		s.logger.Warn("Ledger collection unreadable, returning empty ledger", "error", err)
		return []*journal.LedgerRecord{}, nil
	}
	defer cursor.Close(ctx)

	var docs []recordDocument
	if err := cursor.All(ctx, &docs); err != nil {
		s.logger.Warn("Failed to decode ledger records, returning empty ledger", "error", err)
		return []*journal.LedgerRecord{}, nil
	}

	records := make([]*journal.LedgerRecord, 0, len(docs))
	for _, doc := range docs {
		rec := &journal.LedgerRecord{
			Date:         doc.Date,
			Document:     doc.Document,
			Counterparty: doc.Counterparty,
			Account:      doc.Account,
			Description:  doc.Description,
			Debit:        decimal.NewFromFloat(doc.Debit),
			Credit:       decimal.NewFromFloat(doc.Credit),
			CostCenter:   doc.CostCenter,
			BusinessUnit: doc.BusinessUnit,
			SubmittedBy:  doc.SubmittedBy,
		}
		if id, err := uuid.Parse(doc.EntryID); err == nil {
			rec.EntryID = id
		}
		records = append(records, rec)
	}

	return records, nil
}
