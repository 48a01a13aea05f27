package persist

import "github.com/broady/typeormlint/canon"

// Column type names by category, drawn from the ORM's dialect
// vocabularies. Lookups are case-sensitive.
var (
	booleanLike = set("boolean", "bool")

	numberLike = set(
		"fixed", "int", "int2", "int4", "int8", "integer", "mediumint", "number",
		"numeric", "smalldecimal", "smallint", "tinyint", "dec", "double precision",
		"double", "float", "real",
	)

	// weirdNumberLike are serialized as text by the postgres and mysql
	// drivers and as numbers by sqlite.
	weirdNumberLike = set("bigint", "dec", "decimal")

	stringLike = set(
		"character varying", "varying character", "char varying", "nvarchar",
		"national varchar", "character", "native character", "varchar", "char",
		"nchar", "national char", "varchar2", "nvarchar2", "alphanum", "shorttext",
		"string", "text", "uuid",
	)

	dateLike = set(
		"date", "datetime", "datetime2", "datetimeoffset", "interval day to second",
		"interval year to month", "interval", "seconddate", "smalldatetime",
		"time with time zone", "time without time zone", "time",
		"timestamp with local time zone", "timestamp with time zone",
		"timestamp without time zone", "timestamp", "timestamptz", "timetz", "year",
	)
)

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// Driver identifiers accepted by the driver option.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// IsWeirdNumeric reports whether name is stored with a driver-dependent
// representation.
func IsWeirdNumeric(name string) bool { return weirdNumberLike[name] }

// Lookup maps a column type name to its category for driver.
// Weird numeric names are checked first, so "dec" follows the driver
// rule even though it is also listed as a plain number.
func Lookup(name, driver string) canon.Category {
	switch {
	case weirdNumberLike[name]:
		if driver == DriverSQLite {
			return canon.Number
		}
		return canon.String
	case booleanLike[name]:
		return canon.Boolean
	case numberLike[name]:
		return canon.Number
	case stringLike[name]:
		return canon.String
	case dateLike[name]:
		return canon.Temporal
	default:
		return canon.Unknown
	}
}
