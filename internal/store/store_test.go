package store

import (
	"casetrace-backend/internal/address"
	"casetrace-backend/internal/components/db"
	"casetrace-backend/internal/components/telemetry"
	"casetrace-backend/internal/scrapers/judiciary"
	"casetrace-backend/internal/skiptrace"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

func setup(t testing.TB) (Store, *db.Queries) {
	database, err := db.Open(context.Background(), db.Config{File: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		database.Close()
	})
	now := fixedTime{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewStore(database, now, &telemetry.Recorder{}), db.New(database)
}

var elm = address.Address{Street: "12 Elm St", City: "Middletown", State: "CT", Zip: "06457"}

func TestSaveCases(t *testing.T) {
	store, _ := setup(t)
	ctx := context.Background()

	cases := []judiciary.Case{
		{
			Name:                "US Bank v. Smith",
			Docket:              "MMX-CV24-1",
			RawAddress:          "12 Elm St",
			Town:                "Middletown",
			Defendant:           "SMITH, JOHN",
			PropertyAddressText: "12 Elm St, Middletown, CT 06457",
			PropertyAddress:     &elm,
		},
		{
			Name:                "Chase v. Doe",
			Docket:              "MMX-CV24-2",
			RawAddress:          "See Clerk's Note",
			Town:                "Middletown",
			Defendant:           "Doe",
			PropertyAddressText: "See Clerk's Note",
		},
		{Name: "A v. B", Docket: "HHD-CV24-3", Town: "Hartford", Defendant: "B"},
	}
	require.NoError(t, store.SaveCases(ctx, cases))

	// saving again updates instead of duplicating
	cases[1].Defendant = "DOE, JANE"
	require.NoError(t, store.SaveCases(ctx, cases[1:2]))

	stored, err := store.CasesByTown(ctx, "middletown")
	require.NoError(t, err)
	require.Equal(t, []judiciary.Case{
		cases[0],
		{
			Name:                "Chase v. Doe",
			Docket:              "MMX-CV24-2",
			RawAddress:          "See Clerk's Note",
			Town:                "Middletown",
			Defendant:           "DOE, JANE",
			PropertyAddressText: "See Clerk's Note",
		},
	}, stored)

	counts, err := store.TownCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, []TownCount{{Town: "Hartford", Cases: 1}, {Town: "Middletown", Cases: 2}}, counts)

	deleted, err := store.ClearTown(ctx, "MIDDLETOWN")
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)
	stored, err = store.CasesByTown(ctx, "Middletown")
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestSaveBatch(t *testing.T) {
	store, qry := setup(t)
	ctx := context.Background()

	other := address.Address{Street: "1 Oak Ave", City: "Hartford", State: "CT", Zip: "06103"}
	record := skiptrace.Record{
		skiptrace.COL_FIRST_NAME: "John",
		skiptrace.COL_PHONE1:     "8605551234",
		skiptrace.COL_PHONE2:     "",
		skiptrace.COL_PHONE3:     "",
		skiptrace.COL_EMAIL:      "john@example.com",
	}
	result := skiptrace.BatchResult{
		Records: []skiptrace.Entry{{Address: elm, Record: record}},
		Failures: []skiptrace.Failure{
			{Address: other, Kind: skiptrace.KIND_NO_MATCH, Err: skiptrace.ErrNoMatch},
		},
	}
	dockets := NewDocketIndex([]judiciary.Case{{Docket: "MMX-CV24-1", PropertyAddress: &elm}})
	require.NoError(t, store.SaveBatch(ctx, "sandbox", result, dockets))

	traces, err := qry.GetSkipTraces(ctx)
	require.NoError(t, err)
	require.Len(t, traces, 1)
	require.Equal(t, "MMX-CV24-1", traces[0].DocketNumber.String)
	require.Equal(t, "8605551234", traces[0].Phone1)
	require.Equal(t, "john@example.com", traces[0].Email)
	require.Equal(t, int64(1717243200), traces[0].CreatedAt)

	var decoded skiptrace.Record
	require.NoError(t, json.Unmarshal([]byte(traces[0].Record), &decoded))
	require.Equal(t, record, decoded)

	failures, err := qry.GetTraceFailures(ctx)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	require.Equal(t, "no_match", failures[0].Kind)
	require.Equal(t, "1 Oak Ave", failures[0].Street)

	// an unknown source violates the schema and rolls the whole batch back
	err = store.SaveBatch(ctx, "staging", skiptrace.BatchResult{
		Records:  result.Records,
		Failures: []skiptrace.Failure{{Address: other, Kind: skiptrace.KIND_UNEXPECTED, Err: errors.New("x")}},
	}, nil)
	require.Error(t, err)
	traces, err = qry.GetSkipTraces(ctx)
	require.NoError(t, err)
	require.Len(t, traces, 1)
}
