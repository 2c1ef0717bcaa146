package plan_impl

import (
	"github.com/ledgerdb/ledgerdb/metadata"
	"github.com/ledgerdb/ledgerdb/plan"
	"github.com/ledgerdb/ledgerdb/query"
	"github.com/ledgerdb/ledgerdb/record"
	"github.com/ledgerdb/ledgerdb/tx"
)

// TablePlanner computes the cheapest plan available for a single table,
// given what has already been planned for the other tables in the query.
// It is used by HeuristicQueryPlanner to pick, at each step, the next
// table to bring into the join.
type TablePlanner struct {
	tablePlan   *TablePlan
	predicate   *query.Predicate
	schema      *record.Schema
	indexes     map[string]*metadata.IndexInfo
	transaction *tx.Transaction
}

// NewTablePlanner creates a table planner for the specified table, with
// the specified predicate in effect over the whole query.
func NewTablePlanner(tableName string, predicate *query.Predicate, transaction *tx.Transaction, metadataManager *metadata.Manager) (*TablePlanner, error) {
	tablePlan, err := NewTablePlan(transaction, tableName, metadataManager)
	if err != nil {
		return nil, err
	}
	indexes, err := metadataManager.GetIndexInfo(tableName, transaction)
	if err != nil {
		return nil, err
	}
	return &TablePlanner{
		tablePlan:   tablePlan,
		predicate:   predicate,
		schema:      tablePlan.Schema(),
		indexes:     indexes,
		transaction: transaction,
	}, nil
}

// MakeSelectPlan constructs a select plan for this table, using an index
// if the predicate equates one of the table's indexed fields with a
// constant.
func (tp *TablePlanner) MakeSelectPlan() plan.Plan {
	p := tp.makeIndexSelect()
	if p == nil {
		p = tp.tablePlan
	}
	return tp.addSelectPredicate(p)
}

// MakeJoinPlan constructs a join plan between this table and the
// specified plan of already-joined tables, if the predicate has a usable
// join term; returns nil if the two cannot be joined.
func (tp *TablePlanner) MakeJoinPlan(current plan.Plan) plan.Plan {
	currentSchema := current.Schema()
	joinPred := tp.predicate.JoinSubPredicate(tp.schema, currentSchema)
	if joinPred == nil {
		return nil
	}
	p := tp.makeIndexJoin(current, currentSchema)
	if p == nil {
		p = tp.makeProductJoin(current, currentSchema)
	}
	return p
}

// MakeProductPlan constructs a product plan between this table and the
// specified plan of already-joined tables, used when no joinable
// predicate exists between them.
func (tp *TablePlanner) MakeProductPlan(current plan.Plan) (plan.Plan, error) {
	p := tp.addSelectPredicate(tp.tablePlan)
	return NewProductPlan(current, p)
}

func (tp *TablePlanner) makeIndexSelect() plan.Plan {
	for fieldName, indexInfo := range tp.indexes {
		value := tp.predicate.EquatesWithConstant(fieldName)
		if value != nil {
			return NewIndexSelectPlan(tp.tablePlan, indexInfo, value)
		}
	}
	return nil
}

func (tp *TablePlanner) makeIndexJoin(current plan.Plan, currentSchema *record.Schema) plan.Plan {
	for fieldName, indexInfo := range tp.indexes {
		outerField := tp.predicate.EquatesWithField(fieldName)
		if outerField == "" || !currentSchema.HasField(outerField) {
			continue
		}
		indexJoin := NewIndexJoinPlan(current, tp.tablePlan, *indexInfo, fieldName)
		selected := tp.addSelectPredicate(indexJoin)
		return tp.addJoinPredicate(selected, currentSchema)
	}
	return nil
}

func (tp *TablePlanner) makeProductJoin(current plan.Plan, currentSchema *record.Schema) plan.Plan {
	p, err := tp.MakeProductPlan(current)
	if err != nil {
		return nil
	}
	return tp.addJoinPredicate(p, currentSchema)
}

func (tp *TablePlanner) addSelectPredicate(p plan.Plan) plan.Plan {
	selectPred := tp.predicate.SelectSubPredicate(tp.schema)
	if selectPred != nil {
		return NewSelectPlan(p, selectPred)
	}
	return p
}

func (tp *TablePlanner) addJoinPredicate(p plan.Plan, currentSchema *record.Schema) plan.Plan {
	joinPred := tp.predicate.JoinSubPredicate(tp.schema, currentSchema)
	if joinPred != nil {
		return NewSelectPlan(p, joinPred)
	}
	return p
}
