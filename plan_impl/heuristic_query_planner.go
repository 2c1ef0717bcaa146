package plan_impl

import (
	"github.com/ledgerdb/ledgerdb/metadata"
	"github.com/ledgerdb/ledgerdb/parse"
	"github.com/ledgerdb/ledgerdb/plan"
	"github.com/ledgerdb/ledgerdb/tx"
)

var _ QueryPlanner = &HeuristicQueryPlanner{}

// HeuristicQueryPlanner is a query planner that uses heuristics to
// determine an efficient order in which to join the tables mentioned in
// the query. At each step, it chooses the table plan with the smallest
// estimated output among the ones not yet joined in, preferring an
// index-based select or join over a plain one whenever the table's
// indexes and the query's predicate allow it.
type HeuristicQueryPlanner struct {
	metadataManager *metadata.Manager
}

// NewHeuristicQueryPlanner creates a new HeuristicQueryPlanner.
func NewHeuristicQueryPlanner(metadataManager *metadata.Manager) *HeuristicQueryPlanner {
	return &HeuristicQueryPlanner{metadataManager: metadataManager}
}

// CreatePlan creates a query plan as follows: it first creates a table
// planner for each mentioned table, then repeatedly joins in the table
// planner with the lowest estimated output, before applying grouping,
// projection, and ordering exactly as BasicQueryPlanner does.
func (qp *HeuristicQueryPlanner) CreatePlan(queryData *parse.QueryData, transaction *tx.Transaction) (plan.Plan, error) {
	// 1. Create a TablePlanner object for each mentioned table
	tablePlanners := make([]*TablePlanner, 0, len(queryData.Tables()))
	for _, tableName := range queryData.Tables() {
		tp, err := NewTablePlanner(tableName, queryData.Pred(), transaction, qp.metadataManager)
		if err != nil {
			return nil, err
		}
		tablePlanners = append(tablePlanners, tp)
	}

	// 2. Choose the lowest-cost plan as the starting point
	currentPlan, tablePlanners := getLowestSelectPlan(tablePlanners)

	// 3. Repeatedly add the lowest-cost join to the current plan
	for len(tablePlanners) > 0 {
		var nextPlan plan.Plan
		nextPlan, tablePlanners = getLowestJoinPlan(tablePlanners, currentPlan)
		if nextPlan != nil {
			currentPlan = nextPlan
		} else {
			// no applicable join; use a product instead
			var err error
			currentPlan, tablePlanners, err = getLowestProductPlan(tablePlanners, currentPlan)
			if err != nil {
				return nil, err
			}
		}
	}

	projectionFields := queryData.Fields()
	// 4. Add grouping if specified
	if len(queryData.GroupBy()) > 0 {
		currentPlan = NewGroupByPlan(transaction, currentPlan, queryData.GroupBy(), queryData.Aggregates())

		if queryData.Having() != nil {
			currentPlan = NewSelectPlan(currentPlan, queryData.Having())
		}

		for _, aggFunc := range queryData.Aggregates() {
			projectionFields = append(projectionFields, aggFunc.FieldName())
		}
	}

	// 5. Project on the field names
	currentPlan, err := NewProjectPlan(currentPlan, projectionFields)
	if err != nil {
		return nil, err
	}

	// 6. Add ordering if specified
	if len(queryData.OrderBy()) > 0 {
		sortFields := make([]string, len(queryData.OrderBy()))
		for i, item := range queryData.OrderBy() {
			sortFields[i] = item.Field()
		}
		currentPlan = NewSortPlan(transaction, currentPlan, sortFields)
	}

	return currentPlan, nil
}

// getLowestSelectPlan picks the table planner whose select plan has the
// smallest estimated output, removes it from the slice, and returns its
// plan alongside the remaining table planners.
func getLowestSelectPlan(tablePlanners []*TablePlanner) (plan.Plan, []*TablePlanner) {
	bestIdx := 0
	var bestPlan plan.Plan
	for i, tp := range tablePlanners {
		p := tp.MakeSelectPlan()
		if bestPlan == nil || p.RecordsOutput() < bestPlan.RecordsOutput() {
			bestPlan = p
			bestIdx = i
		}
	}
	return bestPlan, removeAt(tablePlanners, bestIdx)
}

// getLowestJoinPlan picks the table planner whose join with currentPlan
// has the smallest estimated output. It returns (nil, tablePlanners)
// unchanged if no remaining table planner can be joined with currentPlan.
func getLowestJoinPlan(tablePlanners []*TablePlanner, currentPlan plan.Plan) (plan.Plan, []*TablePlanner) {
	bestIdx := -1
	var bestPlan plan.Plan
	for i, tp := range tablePlanners {
		p := tp.MakeJoinPlan(currentPlan)
		if p != nil && (bestPlan == nil || p.RecordsOutput() < bestPlan.RecordsOutput()) {
			bestPlan = p
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return nil, tablePlanners
	}
	return bestPlan, removeAt(tablePlanners, bestIdx)
}

// getLowestProductPlan picks the table planner whose product with
// currentPlan has the smallest estimated output; used only when no
// table planner can be joined with an index or predicate.
func getLowestProductPlan(tablePlanners []*TablePlanner, currentPlan plan.Plan) (plan.Plan, []*TablePlanner, error) {
	bestIdx := 0
	var bestPlan plan.Plan
	for i, tp := range tablePlanners {
		p, err := tp.MakeProductPlan(currentPlan)
		if err != nil {
			return nil, nil, err
		}
		if bestPlan == nil || p.RecordsOutput() < bestPlan.RecordsOutput() {
			bestPlan = p
			bestIdx = i
		}
	}
	return bestPlan, removeAt(tablePlanners, bestIdx), nil
}

func removeAt(tablePlanners []*TablePlanner, idx int) []*TablePlanner {
	result := make([]*TablePlanner, 0, len(tablePlanners)-1)
	result = append(result, tablePlanners[:idx]...)
	result = append(result, tablePlanners[idx+1:]...)
	return result
}
