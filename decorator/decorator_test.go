package decorator

import (
	"errors"
	"testing"

	"github.com/broady/typeormlint/tsast"
)

var z tsast.Span

func boolPtr(b bool) *bool { return &b }

func obj(props ...*tsast.Prop) *tsast.ObjectLit { return tsast.NewObjectLit(z, props...) }

func prop(key string, value tsast.Expr) *tsast.Prop { return &tsast.Prop{Key: key, Value: value} }

func TestKind_Roundtrip(t *testing.T) {
	for k := Column; k <= ManyToMany; k++ {
		t.Run(k.String(), func(t *testing.T) {
			got, ok := ParseKind(k.String())
			if !ok || got != k {
				t.Errorf("ParseKind(%q) = %v, %v; want %v", k.String(), got, ok, k)
			}
			if k.IsColumn() == k.IsRelation() {
				t.Errorf("%v must be exactly one of column or relation", k)
			}
		})
	}
	if _, ok := ParseKind("Entity"); ok {
		t.Error("ParseKind(Entity) should not match")
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []tsast.Expr
		wantType    string
		wantNull    *bool
		wantArray   *bool
		transformer bool
	}{
		{
			name: "empty",
		},
		{
			name:     "positional",
			args:     []tsast.Expr{tsast.NewStringLit(z, "varchar")},
			wantType: "varchar",
		},
		{
			name:     "object",
			args:     []tsast.Expr{obj(prop("type", tsast.NewStringLit(z, "int")), prop("nullable", tsast.NewBoolLit(z, true)))},
			wantType: "int",
			wantNull: boolPtr(true),
		},
		{
			name: "positional wins over object type",
			args: []tsast.Expr{
				tsast.NewStringLit(z, "text"),
				obj(prop("type", tsast.NewStringLit(z, "int")), prop("nullable", tsast.NewBoolLit(z, false))),
			},
			wantType: "text",
			wantNull: boolPtr(false),
		},
		{
			name:      "non-literal values ignored",
			args:      []tsast.Expr{obj(prop("nullable", tsast.NewIdent(z, "flag")), prop("array", tsast.NewBoolLit(z, true)))},
			wantArray: boolPtr(true),
		},
		{
			name:        "transformer presence",
			args:        []tsast.Expr{obj(prop("type", tsast.NewStringLit(z, "int")), prop("transformer", tsast.NewOtherExpr(z, "new_expression", "new T()")))},
			wantType:    "int",
			transformer: true,
		},
		{
			name: "transformer undefined",
			args: []tsast.Expr{obj(prop("transformer", tsast.NewIdent(z, "undefined")))},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseArgs(tt.args)
			if got.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", got.Type, tt.wantType)
			}
			if !equalPtr(got.Nullable, tt.wantNull) {
				t.Errorf("Nullable = %v, want %v", deref(got.Nullable), deref(tt.wantNull))
			}
			if !equalPtr(got.Array, tt.wantArray) {
				t.Errorf("Array = %v, want %v", deref(got.Array), deref(tt.wantArray))
			}
			if got.Transformer != tt.transformer {
				t.Errorf("Transformer = %v, want %v", got.Transformer, tt.transformer)
			}
		})
	}
}

func equalPtr(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func deref(b *bool) any {
	if b == nil {
		return "<unset>"
	}
	return *b
}

func call(name string, args ...tsast.Expr) *tsast.Decorator {
	return &tsast.Decorator{Name: name, Call: true, Args: args}
}

func TestFind(t *testing.T) {
	decs := []*tsast.Decorator{
		{Name: "Column"},
		call("JoinColumn"),
		call("ManyToOne", tsast.NewArrowFunc(z, nil, tsast.NewIdent(z, "User"))),
		call("Column", tsast.NewStringLit(z, "int")),
	}

	b, ok := Find(decs, nil, ColumnKinds...)
	if !ok || b.Kind != Column || b.Args.Type != "int" {
		t.Errorf("Find(columns) = %+v, %v; want the call-form Column", b, ok)
	}

	b, ok = Find(decs, nil, append(RelationKinds, ColumnKinds...)...)
	if !ok || b.Kind != ManyToOne {
		t.Errorf("Find(all) = %v, want first match in source order (ManyToOne)", b.Kind)
	}

	if _, ok := Find(decs[:2], nil, RelationKinds...); ok {
		t.Error("Find() matched without a relation decorator")
	}
}

func TestRelationTarget(t *testing.T) {
	tests := []struct {
		name    string
		args    []tsast.Expr
		want    string
		wantErr bool
	}{
		{"arrow to identifier", []tsast.Expr{tsast.NewArrowFunc(z, nil, tsast.NewIdent(z, "Other"))}, "Other", false},
		{"no arguments", nil, "", true},
		{"string target", []tsast.Expr{tsast.NewStringLit(z, "Other")}, "", true},
		{"block body", []tsast.Expr{tsast.NewArrowFunc(z, nil, nil)}, "", true},
		{"member body", []tsast.Expr{tsast.NewArrowFunc(z, nil, tsast.NewOtherExpr(z, "member_expression", "m.Other"))}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RelationTarget(Binding{Kind: OneToOne, Decorator: call("OneToOne", tt.args...)})
			if tt.wantErr {
				if !errors.Is(err, ErrMissingRelationType) {
					t.Fatalf("err = %v, want ErrMissingRelationType", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("RelationTarget() = %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}

func TestAliases(t *testing.T) {
	imports := []*tsast.Import{
		{Module: "typeorm", Specifiers: []*tsast.ImportSpecifier{
			{Imported: "Column", Local: "Col"},
			{Imported: "Relation", Local: "Reference"},
		}},
		{Module: "typeorm", Specifiers: []*tsast.ImportSpecifier{{Imported: "*", Local: "orm"}}},
		{Module: "./local", Specifiers: []*tsast.ImportSpecifier{{Imported: "OneToOne", Local: "OneToOne"}}},
	}
	a := CollectAliases(imports)

	tests := []struct {
		name   string
		want   Kind
		wantOK bool
	}{
		{"Col", Column, true},
		{"Column", Column, true},
		{"orm.ManyToOne", ManyToOne, true},
		{"ManyToMany", ManyToMany, true},
		{"OneToOne", KindUnknown, false},
		{"Entity", KindUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := a.Kind(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Kind(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if got := a.Wrapper("Reference"); got != WrapperRelation {
		t.Errorf("Wrapper(Reference) = %v, want WrapperRelation", got)
	}
	if got := a.Wrapper("orm.Relation"); got != WrapperRelation {
		t.Errorf("Wrapper(orm.Relation) = %v, want WrapperRelation", got)
	}
	if got := a.Wrapper("Promise"); got != WrapperLazy {
		t.Errorf("Wrapper(Promise) = %v, want WrapperLazy", got)
	}
	if got := a.Wrapper("Array"); got != WrapperNone {
		t.Errorf("Wrapper(Array) = %v, want WrapperNone", got)
	}
	if got := a.RelationName(); got != "Reference" {
		t.Errorf("RelationName() = %q, want Reference", got)
	}
}

func TestAliases_Nil(t *testing.T) {
	var a *Aliases
	if k, ok := a.Kind("VersionColumn"); !ok || k != VersionColumn {
		t.Errorf("nil Aliases Kind() = %v, %v", k, ok)
	}
	if got := a.RelationName(); got != "Relation" {
		t.Errorf("nil Aliases RelationName() = %q", got)
	}
}
