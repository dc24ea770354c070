package db

import (
	"time"
)

type Contract struct {
	TeamID         string
	ID             string
	Name           string
	Position       string
	Age            int64
	CapHit         int64
	Aav            int64
	ContractLength int64
	ContractYear   int64
	ExpiryStatus   string
	Clause         string
	IsSigned       bool
	OnRoster       bool
	SortOrder      int64
	Headshot       string
	Number         int64
}

type Team struct {
	ID        string
	Name      string
	City      string
	LogoCode  string
	LogoUrl   string
	LtirUsed  int64
	FetchedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
