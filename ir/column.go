package ir

// ColumnSnapshot is the known state of a column before it is altered
type ColumnSnapshot struct {
	Name          string       `json:"name"`
	Type          Type         `json:"-"`
	Nullable      *bool        `json:"nullable,omitempty"`
	ServerDefault DefaultValue `json:"-"`
	Autoincrement bool         `json:"autoincrement,omitempty"`
	// OnUpdate is the ON UPDATE expression of a TIMESTAMP or DATETIME column,
	// e.g. CURRENT_TIMESTAMP. CHANGE drops it unless it is restated.
	OnUpdate string `json:"on_update,omitempty"`
}

type defaultChangeKind int

const (
	defaultKeep defaultChangeKind = iota
	defaultSet
	defaultDrop
)

// DefaultChange says what happens to a column's server default.
// The zero value keeps whatever default the column already has.
type DefaultChange struct {
	kind  defaultChangeKind
	value DefaultValue
}

// KeepDefault leaves the existing server default in place
func KeepDefault() DefaultChange {
	return DefaultChange{}
}

// SetDefault replaces the server default with value. A nil value is the
// same as DropDefault.
func SetDefault(value DefaultValue) DefaultChange {
	if value == nil {
		return DropDefault()
	}
	return DefaultChange{kind: defaultSet, value: value}
}

// DropDefault removes the server default
func DropDefault() DefaultChange {
	return DefaultChange{kind: defaultDrop}
}

// IsKeep reports whether the change leaves the existing default alone
func (d DefaultChange) IsKeep() bool { return d.kind == defaultKeep }

// IsSet reports whether the change sets a new default
func (d DefaultChange) IsSet() bool { return d.kind == defaultSet }

// IsDrop reports whether the change removes the default
func (d DefaultChange) IsDrop() bool { return d.kind == defaultDrop }

// Value returns the new default for a set change, nil otherwise
func (d DefaultChange) Value() DefaultValue { return d.value }

// Resolve applies the change to an existing default and returns the default
// the column ends up with: a new value wins over a removal, a removal wins
// over the existing value.
func (d DefaultChange) Resolve(existing DefaultValue) DefaultValue {
	switch d.kind {
	case defaultSet:
		return d.value
	case defaultDrop:
		return nil
	default:
		return existing
	}
}

// ColumnChange holds the requested deltas for a column. Unset fields keep
// the value from the snapshot.
type ColumnChange struct {
	NewName       string
	Type          Type
	Nullable      *bool
	ServerDefault DefaultChange
	Autoincrement *bool
}

// IsEmpty reports whether no attribute is being changed
func (c ColumnChange) IsEmpty() bool {
	return c.NewName == "" && !c.AltersDefinition()
}

// AltersDefinition reports whether anything besides the name is being changed
func (c ColumnChange) AltersDefinition() bool {
	return c.Type != nil ||
		c.Nullable != nil ||
		!c.ServerDefault.IsKeep() ||
		c.Autoincrement != nil
}

// AlterColumnRequest asks for one column of one table to be altered
type AlterColumnRequest struct {
	Schema   string
	Table    string
	Existing ColumnSnapshot
	Change   ColumnChange
}

// Bool returns a pointer to b, for the optional fields of ColumnSnapshot and ColumnChange
func Bool(b bool) *bool {
	return &b
}
