package db

import (
	"context"
	"database/sql"
)

const createSkipTrace = `-- name: CreateSkipTrace :one
insert into skip_traces (
    docket_number, street, city, state, zip, source, record,
    phone1, phone2, phone3, email, created_at
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
returning id
`

type CreateSkipTraceParams struct {
	DocketNumber sql.NullString
	Street       string
	City         string
	State        string
	Zip          string
	Source       string
	Record       string
	Phone1       string
	Phone2       string
	Phone3       string
	Email        string
	CreatedAt    int64
}

func (q *Queries) CreateSkipTrace(ctx context.Context, arg CreateSkipTraceParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createSkipTrace,
		arg.DocketNumber,
		arg.Street,
		arg.City,
		arg.State,
		arg.Zip,
		arg.Source,
		arg.Record,
		arg.Phone1,
		arg.Phone2,
		arg.Phone3,
		arg.Email,
		arg.CreatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createTraceFailure = `-- name: CreateTraceFailure :exec
insert into trace_failures (
    street, city, state, zip, kind, message, created_at
) values (?, ?, ?, ?, ?, ?, ?)
`

type CreateTraceFailureParams struct {
	Street    string
	City      string
	State     string
	Zip       string
	Kind      string
	Message   string
	CreatedAt int64
}

func (q *Queries) CreateTraceFailure(ctx context.Context, arg CreateTraceFailureParams) error {
	_, err := q.db.ExecContext(ctx, createTraceFailure,
		arg.Street,
		arg.City,
		arg.State,
		arg.Zip,
		arg.Kind,
		arg.Message,
		arg.CreatedAt,
	)
	return err
}

const deleteCasesByTown = `-- name: DeleteCasesByTown :execrows
delete from cases where town = ? collate nocase
`

func (q *Queries) DeleteCasesByTown(ctx context.Context, town string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteCasesByTown, town)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getCasesByTown = `-- name: GetCasesByTown :many
select docket_number, case_name, docket_url, town, raw_address, defendant, property_address, street, city, state, zip, scraped_at from cases
where town = ? collate nocase
order by docket_number
`

func (q *Queries) GetCasesByTown(ctx context.Context, town string) ([]Case, error) {
	rows, err := q.db.QueryContext(ctx, getCasesByTown, town)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Case
	for rows.Next() {
		var i Case
		if err := rows.Scan(
			&i.DocketNumber,
			&i.CaseName,
			&i.DocketUrl,
			&i.Town,
			&i.RawAddress,
			&i.Defendant,
			&i.PropertyAddress,
			&i.Street,
			&i.City,
			&i.State,
			&i.Zip,
			&i.ScrapedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getSkipTraces = `-- name: GetSkipTraces :many
select id, docket_number, street, city, state, zip, source, record, phone1, phone2, phone3, email, created_at from skip_traces
order by id
`

func (q *Queries) GetSkipTraces(ctx context.Context) ([]SkipTrace, error) {
	rows, err := q.db.QueryContext(ctx, getSkipTraces)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SkipTrace
	for rows.Next() {
		var i SkipTrace
		if err := rows.Scan(
			&i.ID,
			&i.DocketNumber,
			&i.Street,
			&i.City,
			&i.State,
			&i.Zip,
			&i.Source,
			&i.Record,
			&i.Phone1,
			&i.Phone2,
			&i.Phone3,
			&i.Email,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getTownCaseCounts = `-- name: GetTownCaseCounts :many
select town, count(*) as cases from cases
group by town
order by town
`

type GetTownCaseCountsRow struct {
	Town  string
	Cases int64
}

func (q *Queries) GetTownCaseCounts(ctx context.Context) ([]GetTownCaseCountsRow, error) {
	rows, err := q.db.QueryContext(ctx, getTownCaseCounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetTownCaseCountsRow
	for rows.Next() {
		var i GetTownCaseCountsRow
		if err := rows.Scan(&i.Town, &i.Cases); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getTraceFailures = `-- name: GetTraceFailures :many
select id, street, city, state, zip, kind, message, created_at from trace_failures
order by id
`

func (q *Queries) GetTraceFailures(ctx context.Context) ([]TraceFailure, error) {
	rows, err := q.db.QueryContext(ctx, getTraceFailures)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TraceFailure
	for rows.Next() {
		var i TraceFailure
		if err := rows.Scan(
			&i.ID,
			&i.Street,
			&i.City,
			&i.State,
			&i.Zip,
			&i.Kind,
			&i.Message,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertCase = `-- name: UpsertCase :exec
insert into cases (
    docket_number, case_name, docket_url, town, raw_address, defendant,
    property_address, street, city, state, zip, scraped_at
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
on conflict (docket_number) do update set
    case_name = excluded.case_name,
    docket_url = excluded.docket_url,
    town = excluded.town,
    raw_address = excluded.raw_address,
    defendant = excluded.defendant,
    property_address = excluded.property_address,
    street = excluded.street,
    city = excluded.city,
    state = excluded.state,
    zip = excluded.zip,
    scraped_at = excluded.scraped_at
`

type UpsertCaseParams struct {
	DocketNumber    string
	CaseName        string
	DocketUrl       string
	Town            string
	RawAddress      string
	Defendant       string
	PropertyAddress string
	Street          sql.NullString
	City            sql.NullString
	State           sql.NullString
	Zip             sql.NullString
	ScrapedAt       int64
}

func (q *Queries) UpsertCase(ctx context.Context, arg UpsertCaseParams) error {
	_, err := q.db.ExecContext(ctx, upsertCase,
		arg.DocketNumber,
		arg.CaseName,
		arg.DocketUrl,
		arg.Town,
		arg.RawAddress,
		arg.Defendant,
		arg.PropertyAddress,
		arg.Street,
		arg.City,
		arg.State,
		arg.Zip,
		arg.ScrapedAt,
	)
	return err
}
