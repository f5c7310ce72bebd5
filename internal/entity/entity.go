package entity

// Field is one persistable column of an entity: the column name and its
// current value, in table order.
type Field struct {
	Name  string
	Value any
}

// Entity is the contract every persistable record type implements. An entity
// is an identity plus an ordered field projection; the field-name set must
// match the columns used by the insert/update statements for its table.
type Entity interface {
	// TableName returns the table backing this entity type.
	TableName() string
	// ID returns the primary key, 0 when the record has not been saved yet.
	ID() int64
	SetID(id int64)
	// Fields returns the persistable columns excluding the primary key.
	Fields() []Field
	// Pointers returns scan destinations: the id pointer first, then one
	// pointer per Fields entry in the same order.
	Pointers() []any
}

// Validatable is implemented by entity types that carry their own validation
// rules. Validation failures are ordinary results, never panics.
type Validatable interface {
	Validate() []Error
}

// Preparer lets an entity fill in defaults before it is inserted.
type Preparer interface {
	Prepare()
}
