package store

import (
	"casetrace-backend/internal/address"
	"casetrace-backend/internal/components/assert"
	"casetrace-backend/internal/components/chrono"
	"casetrace-backend/internal/components/db"
	"casetrace-backend/internal/components/telemetry"
	"casetrace-backend/internal/scrapers/judiciary"
	"casetrace-backend/internal/skiptrace"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

const report_db_query = "db.query"

// Store persists scraped cases and skip trace results.
type Store struct {
	qry    *db.Queries
	makeTx db.MakeTx
	time   chrono.TimeAPI
	tel    telemetry.API
}

func NewStore(database *sql.DB, time chrono.TimeAPI, tel telemetry.API) Store {
	assert.NotNil(database)
	assert.NotNil(time)
	assert.NotNil(tel)

	return Store{
		qry:    db.New(database),
		makeTx: db.NewMakeTx(database),
		time:   time,
		tel:    telemetry.NewScopedAPI("store", tel),
	}
}

func nullable(s string, valid bool) sql.NullString {
	return sql.NullString{String: s, Valid: valid}
}

// SaveCases upserts cases by docket number.
func (s Store) SaveCases(ctx context.Context, cases []judiciary.Case) error {
	tx, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		s.tel.ReportBroken(report_db_query, fmt.Errorf("make tx: %w", err))
		return err
	}
	defer discard()

	now := s.time.Now().Unix()
	for _, c := range cases {
		var addr address.Address
		parsed := c.PropertyAddress != nil
		if parsed {
			addr = *c.PropertyAddress
		}
		err = tx.UpsertCase(ctx, db.UpsertCaseParams{
			DocketNumber:    c.Docket,
			CaseName:        c.Name,
			DocketUrl:       c.DocketUrl(),
			Town:            c.Town,
			RawAddress:      c.RawAddress,
			Defendant:       c.Defendant,
			PropertyAddress: c.PropertyAddressText,
			Street:          nullable(addr.Street, parsed),
			City:            nullable(addr.City, parsed),
			State:           nullable(addr.State, parsed),
			Zip:             nullable(addr.Zip, parsed),
			ScrapedAt:       now,
		})
		if err != nil {
			s.tel.ReportBroken(report_db_query, err, "UpsertCase", c.Docket)
			return err
		}
	}
	return commit()
}

// CasesByTown returns the stored cases of a town, the town is matched
// case-insensitively.
func (s Store) CasesByTown(ctx context.Context, town string) ([]judiciary.Case, error) {
	rows, err := s.qry.GetCasesByTown(ctx, town)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "GetCasesByTown", town)
		return nil, err
	}

	out := make([]judiciary.Case, len(rows))
	for i, row := range rows {
		out[i] = judiciary.Case{
			Name:                row.CaseName,
			Docket:              row.DocketNumber,
			RawAddress:          row.RawAddress,
			Town:                row.Town,
			Defendant:           row.Defendant,
			PropertyAddressText: row.PropertyAddress,
		}
		if row.Street.Valid {
			out[i].PropertyAddress = &address.Address{
				Street: row.Street.String,
				City:   row.City.String,
				State:  row.State.String,
				Zip:    row.Zip.String,
			}
		}
	}
	return out, nil
}

type TownCount struct {
	Town  string
	Cases int64
}

func (s Store) TownCounts(ctx context.Context) ([]TownCount, error) {
	rows, err := s.qry.GetTownCaseCounts(ctx)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "GetTownCaseCounts")
		return nil, err
	}
	out := make([]TownCount, len(rows))
	for i, row := range rows {
		out[i] = TownCount{Town: row.Town, Cases: row.Cases}
	}
	return out, nil
}

// ClearTown deletes the stored cases of a town and returns how many were deleted.
func (s Store) ClearTown(ctx context.Context, town string) (int64, error) {
	n, err := s.qry.DeleteCasesByTown(ctx, town)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "DeleteCasesByTown", town)
		return 0, err
	}
	return n, nil
}

func addressKey(addr address.Address) string {
	return strings.ToLower(addr.String())
}

// DocketIndex maps addresses to the docket of the case they came from.
type DocketIndex map[string]string

func NewDocketIndex(cases []judiciary.Case) DocketIndex {
	index := DocketIndex{}
	for _, c := range cases {
		if c.PropertyAddress != nil {
			index[addressKey(*c.PropertyAddress)] = c.Docket
		}
	}
	return index
}

func (i DocketIndex) lookup(addr address.Address) sql.NullString {
	docket, ok := i[addressKey(addr)]
	return nullable(docket, ok)
}

// SaveBatch stores the records and failures of a skip trace batch, source is
// the lookup environment that produced them. dockets may be nil.
func (s Store) SaveBatch(ctx context.Context, source string, result skiptrace.BatchResult, dockets DocketIndex) error {
	tx, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		s.tel.ReportBroken(report_db_query, fmt.Errorf("make tx: %w", err))
		return err
	}
	defer discard()

	now := s.time.Now().Unix()
	for _, entry := range result.Records {
		serialized, err := json.Marshal(entry.Record)
		if err != nil {
			return err
		}
		_, err = tx.CreateSkipTrace(ctx, db.CreateSkipTraceParams{
			DocketNumber: dockets.lookup(entry.Address),
			Street:       entry.Address.Street,
			City:         entry.Address.City,
			State:        entry.Address.State,
			Zip:          entry.Address.Zip,
			Source:       source,
			Record:       string(serialized),
			Phone1:       entry.Record[skiptrace.COL_PHONE1],
			Phone2:       entry.Record[skiptrace.COL_PHONE2],
			Phone3:       entry.Record[skiptrace.COL_PHONE3],
			Email:        entry.Record[skiptrace.COL_EMAIL],
			CreatedAt:    now,
		})
		if err != nil {
			s.tel.ReportBroken(report_db_query, err, "CreateSkipTrace", entry.Address.String())
			return err
		}
	}

	for _, failure := range result.Failures {
		err = tx.CreateTraceFailure(ctx, db.CreateTraceFailureParams{
			Street:    failure.Address.Street,
			City:      failure.Address.City,
			State:     failure.Address.State,
			Zip:       failure.Address.Zip,
			Kind:      string(failure.Kind),
			Message:   failure.Err.Error(),
			CreatedAt: now,
		})
		if err != nil {
			s.tel.ReportBroken(report_db_query, err, "CreateTraceFailure", failure.Address.String())
			return err
		}
	}

	return commit()
}
