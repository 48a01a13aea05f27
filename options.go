package typeormlint

import (
	"net/url"
	"slices"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/broady/typeormlint/nullability"
	"github.com/broady/typeormlint/persist"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(false)
	schemaDecoder.SetAliasTag("option")
}

// Option keys as written in configuration.
const (
	OptionDriver           = "driver"
	OptionSpecifyRelation  = "specifyRelation"
	OptionSpecifyNullable  = "specifyNullable"
	OptionSpecifyUndefined = "specifyUndefined"
)

// Options configures a rule. Each rule accepts a subset of the keys,
// listed in its Meta.
type Options struct {
	// Driver selects driver-dependent column types. Empty means postgres.
	Driver string `option:"driver" json:"driver,omitempty" yaml:"driver,omitempty" validate:"omitempty,oneof=postgres mysql sqlite"`
	// SpecifyRelation "always" requires the Relation<...> wrapper.
	SpecifyRelation string `option:"specifyRelation" json:"specifyRelation,omitempty" yaml:"specifyRelation,omitempty" validate:"omitempty,oneof=always"`
	// SpecifyNullable selects when nullable must be written out.
	SpecifyNullable string `option:"specifyNullable" json:"specifyNullable,omitempty" yaml:"specifyNullable,omitempty" validate:"omitempty,oneof=always non-default only-nullable"`
	// SpecifyUndefined "always" keeps undefined in suggestions and
	// requires it on non-eager relations.
	SpecifyUndefined string `option:"specifyUndefined" json:"specifyUndefined,omitempty" yaml:"specifyUndefined,omitempty" validate:"omitempty,oneof=always"`
}

// ParseOptions decodes an inline option string such as
// "driver=sqlite&specifyUndefined=always".
func ParseOptions(query string) (Options, error) {
	values, err := url.ParseQuery(query)
	if err != nil {
		return Options{}, Errorf(CodeInvalidOption, "invalid option string %q: %v", query, err)
	}
	return DecodeOptions(values)
}

// DecodeOptions decodes options from key/value pairs. Unknown keys and
// invalid values are CodeInvalidOption errors.
func DecodeOptions(values map[string][]string) (Options, error) {
	var opts Options
	if err := schemaDecoder.Decode(&opts, values); err != nil {
		return Options{}, Errorf(CodeInvalidOption, "failed to decode options: %v", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate checks option values.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		if valErrs, ok := err.(validator.ValidationErrors); ok {
			return validationError(valErrs)
		}
		return err
	}
	return nil
}

// Keys returns the keys that are set, sorted.
func (o Options) Keys() []string {
	var keys []string
	if o.Driver != "" {
		keys = append(keys, OptionDriver)
	}
	if o.SpecifyRelation != "" {
		keys = append(keys, OptionSpecifyRelation)
	}
	if o.SpecifyNullable != "" {
		keys = append(keys, OptionSpecifyNullable)
	}
	if o.SpecifyUndefined != "" {
		keys = append(keys, OptionSpecifyUndefined)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns o with the keys set in other overriding.
func (o Options) Merge(other Options) Options {
	if other.Driver != "" {
		o.Driver = other.Driver
	}
	if other.SpecifyRelation != "" {
		o.SpecifyRelation = other.SpecifyRelation
	}
	if other.SpecifyNullable != "" {
		o.SpecifyNullable = other.SpecifyNullable
	}
	if other.SpecifyUndefined != "" {
		o.SpecifyUndefined = other.SpecifyUndefined
	}
	return o
}

// CheckFor validates o and rejects keys meta does not accept.
func (o Options) CheckFor(meta Meta) error {
	if err := o.Validate(); err != nil {
		if e := AsError(err); e != nil {
			return e.WithDetail("rule", meta.Name)
		}
		return err
	}
	for _, k := range o.Keys() {
		if !slices.Contains(meta.Options, k) {
			return Errorf(CodeInvalidOption, "rule %s does not accept option %q", meta.Name, k).
				WithDetail("rule", meta.Name).
				WithDetail("option", k)
		}
	}
	return nil
}

// DriverName returns the effective driver.
func (o Options) DriverName() string {
	if o.Driver == "" {
		return persist.DriverPostgres
	}
	return o.Driver
}

// NullabilityPolicy returns SpecifyNullable as a policy.
func (o Options) NullabilityPolicy() nullability.Policy {
	return nullability.Policy(o.SpecifyNullable)
}

// UndefinedAlways reports whether specifyUndefined is "always".
func (o Options) UndefinedAlways() bool { return o.SpecifyUndefined == "always" }

// RelationAlways reports whether specifyRelation is "always".
func (o Options) RelationAlways() bool { return o.SpecifyRelation == "always" }
