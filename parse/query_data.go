package parse

import (
	"github.com/ledgerdb/ledgerdb/query"
	"github.com/ledgerdb/ledgerdb/query/functions"
)

type QueryData struct {
	fields     []string
	tables     []string
	predicate  *query.Predicate
	groupBy    []string
	having     *query.Predicate
	orderBy    []OrderByItem
	aggregates []functions.AggregationFunction
}

func NewQueryData(fields, tables []string, predicate *query.Predicate) *QueryData {
	return &QueryData{
		fields:    fields,
		tables:    tables,
		predicate: predicate,
	}
}

func (qd *QueryData) Fields() []string {
	return qd.fields
}

func (qd *QueryData) Tables() []string {
	return qd.tables
}

func (qd *QueryData) Pred() *query.Predicate {
	return qd.predicate
}

// GroupBy returns the fields to group by, or nil if the query has no GROUP BY clause.
func (qd *QueryData) GroupBy() []string {
	return qd.groupBy
}

// Having returns the predicate applied after grouping, or nil if the query has no HAVING clause.
func (qd *QueryData) Having() *query.Predicate {
	return qd.having
}

// OrderBy returns the fields (and directions) to sort by, or nil if the query has no ORDER BY clause.
func (qd *QueryData) OrderBy() []OrderByItem {
	return qd.orderBy
}

// Aggregates returns the aggregation functions requested by the select list.
func (qd *QueryData) Aggregates() []functions.AggregationFunction {
	return qd.aggregates
}

func (qd *QueryData) String() string {
	if len(qd.fields) == 0 || len(qd.tables) == 0 {
		return ""
	}
	result := "select "
	for _, fieldName := range qd.fields {
		result += fieldName + ", "
	}
	// remove final comma/space
	if len(qd.fields) > 0 {
		result = result[:len(result)-2]
	}
	result += " from "
	for _, tableName := range qd.tables {
		result += tableName + ", "
	}
	if len(qd.tables) > 0 {
		result = result[:len(result)-2]
	}
	predicateString := qd.predicate.String()
	if predicateString != "" {
		result += " where " + predicateString
	}
	return result
}
