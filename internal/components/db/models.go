package db

import (
	"database/sql"
)

type Case struct {
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

type SkipTrace struct {
	ID           int64
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

type TraceFailure struct {
	ID        int64
	Street    string
	City      string
	State     string
	Zip       string
	Kind      string
	Message   string
	CreatedAt int64
}
