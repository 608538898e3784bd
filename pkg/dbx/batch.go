package dbx

// =====================================
// Batch Interface
// =====================================

// Batch defines the interface for an ordered list of SQL statements executed through one handle
// and one transaction.
//
// Example Usage:
//
//	batch := dbx.NewStatementBatch()
//	batch.Queue("CREATE TABLE users (name VARCHAR, email VARCHAR)")
//	batch.Queue("INSERT INTO users VALUES (?, ?)", "John Doe", "john@example.com")
//
//	rows, err := mgr.ExecuteBatch(ctx, batch)
type Batch interface {
	GetBatch() any
	Len() int
	Queue(query string, arguments ...any)
}

// QueuedStatement is one entry of a StatementBatch.
type QueuedStatement struct {
	Query     string
	Arguments []any
}

// StatementBatch - in-order Batch implementation.
type StatementBatch struct {
	statements []QueuedStatement
}

// NewStatementBatch creates a batch already holding the given statements, without arguments.
func NewStatementBatch(statements ...string) *StatementBatch {
	b := &StatementBatch{statements: make([]QueuedStatement, 0, len(statements))}
	for _, s := range statements {
		b.Queue(s)
	}

	return b
}

// GetBatch returns the queued statements as []QueuedStatement.
func (b *StatementBatch) GetBatch() any {
	return b.statements
}

func (b *StatementBatch) Len() int {
	return len(b.statements)
}

func (b *StatementBatch) Queue(query string, arguments ...any) {
	b.statements = append(b.statements, QueuedStatement{Query: query, Arguments: arguments})
}
