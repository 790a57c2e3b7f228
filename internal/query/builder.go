// Package query turns the optional filter and sort parameters of a task list
// request into a typed Query. Building never fails: unknown values fall back
// to defaults so a bad link still renders a list.
package query

import (
	"strings"

	"taskboard.com/taskboard/pkg/constants"
)

type SortField string

const (
	SortCreatedAt SortField = "createdAt"
	SortDueDate   SortField = "dueDate"
	SortPriority  SortField = "priority"
	SortTitle     SortField = "title"
	SortUpdatedAt SortField = "updatedAt"
)

var sortFields = map[SortField]struct{}{
	SortCreatedAt: {},
	SortDueDate:   {},
	SortPriority:  {},
	SortTitle:     {},
	SortUpdatedAt: {},
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Params are the raw request values. Empty means "not supplied".
type Params struct {
	ProjectID string `query:"project"`
	Status    string `query:"status"`
	TagID     string `query:"tag"`
	Search    string `query:"search"`
	SortBy    string `query:"sortBy"`
	SortDir   string `query:"sortDir"`
}

// Filter holds the clauses that apply. All non-nil clauses are ANDed.
type Filter struct {
	ProjectID *string
	Status    *constants.TaskStatus
	TagID     *string
	Search    *string
}

type Order struct {
	Field     SortField
	Direction Direction
}

type Query struct {
	Filter Filter
	Order  []Order
}

// tieBreak is appended after the primary key so equal keys list newest first.
var tieBreak = Order{Field: SortCreatedAt, Direction: Desc}

func Build(p Params) Query {
	var q Query

	if p.ProjectID != "" {
		id := p.ProjectID
		q.Filter.ProjectID = &id
	}
	if status, ok := constants.ParseStatus(p.Status); ok {
		q.Filter.Status = &status
	}
	if p.TagID != "" {
		id := p.TagID
		q.Filter.TagID = &id
	}
	if strings.TrimSpace(p.Search) != "" {
		search := p.Search
		q.Filter.Search = &search
	}

	q.Order = []Order{{Field: sortField(p.SortBy), Direction: direction(p.SortDir)}, tieBreak}
	return q
}

func sortField(s string) SortField {
	if _, ok := sortFields[SortField(s)]; ok {
		return SortField(s)
	}
	return SortCreatedAt
}

func direction(s string) Direction {
	if Direction(s) == Asc {
		return Asc
	}
	return Desc
}
