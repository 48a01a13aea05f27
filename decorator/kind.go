// Package decorator classifies ORM decorators on class properties and
// parses their call arguments.
package decorator

// Kind is one of the ORM decorators the linter understands.
type Kind int

const (
	KindUnknown Kind = iota
	Column
	PrimaryColumn
	PrimaryGeneratedColumn
	CreateDateColumn
	UpdateDateColumn
	DeleteDateColumn
	VersionColumn
	OneToOne
	OneToMany
	ManyToOne
	ManyToMany
)

// String returns the decorator name as exported by the ORM.
func (k Kind) String() string {
	switch k {
	case Column:
		return "Column"
	case PrimaryColumn:
		return "PrimaryColumn"
	case PrimaryGeneratedColumn:
		return "PrimaryGeneratedColumn"
	case CreateDateColumn:
		return "CreateDateColumn"
	case UpdateDateColumn:
		return "UpdateDateColumn"
	case DeleteDateColumn:
		return "DeleteDateColumn"
	case VersionColumn:
		return "VersionColumn"
	case OneToOne:
		return "OneToOne"
	case OneToMany:
		return "OneToMany"
	case ManyToOne:
		return "ManyToOne"
	case ManyToMany:
		return "ManyToMany"
	default:
		return "Unknown"
	}
}

// ParseKind returns the Kind exported under name.
func ParseKind(name string) (Kind, bool) {
	k, ok := byName[name]
	return k, ok
}

var byName = map[string]Kind{}

func init() {
	for k := Column; k <= ManyToMany; k++ {
		byName[k.String()] = k
	}
}

// IsColumn reports whether k declares a column.
func (k Kind) IsColumn() bool {
	switch k {
	case Column, PrimaryColumn, PrimaryGeneratedColumn, CreateDateColumn,
		UpdateDateColumn, DeleteDateColumn, VersionColumn:
		return true
	}
	return false
}

// IsRelation reports whether k declares a relation.
func (k Kind) IsRelation() bool {
	switch k {
	case OneToOne, OneToMany, ManyToOne, ManyToMany:
		return true
	}
	return false
}

// IsToMany reports whether the relation holds several entities.
func (k Kind) IsToMany() bool { return k == OneToMany || k == ManyToMany }

// ColumnKinds are the column decorators in declaration order.
var ColumnKinds = []Kind{
	Column, PrimaryColumn, PrimaryGeneratedColumn, CreateDateColumn,
	UpdateDateColumn, DeleteDateColumn, VersionColumn,
}

// RelationKinds are the relation decorators in declaration order.
var RelationKinds = []Kind{OneToOne, OneToMany, ManyToOne, ManyToMany}

// NullabilityKinds accept a nullable option.
var NullabilityKinds = append(append([]Kind{}, ColumnKinds...), OneToOne, ManyToOne)
