package typeormlint

import (
	"testing"

	"github.com/broady/typeormlint/nullability"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		want     Options
		wantCode ErrorCode
	}{
		{"empty", "", Options{}, ""},
		{"driver", "driver=sqlite", Options{Driver: "sqlite"}, ""},
		{"several", "specifyRelation=always&specifyUndefined=always", Options{SpecifyRelation: "always", SpecifyUndefined: "always"}, ""},
		{"nullable synonym", "specifyNullable=only-nullable", Options{SpecifyNullable: "only-nullable"}, ""},
		{"bad value", "driver=oracle", Options{}, CodeInvalidOption},
		{"unknown key", "color=blue", Options{}, CodeInvalidOption},
		{"malformed", "driver=%zz", Options{}, CodeInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOptions(tt.query)
			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("expected %s error", tt.wantCode)
				}
				if code := AsError(err).Code; code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, code)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseOptions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOptionsKeysAndMerge(t *testing.T) {
	base := Options{Driver: "mysql", SpecifyNullable: "always"}
	if got := base.Keys(); len(got) != 2 || got[0] != OptionDriver || got[1] != OptionSpecifyNullable {
		t.Errorf("Keys() = %v", got)
	}
	merged := base.Merge(Options{Driver: "sqlite", SpecifyUndefined: "always"})
	want := Options{Driver: "sqlite", SpecifyNullable: "always", SpecifyUndefined: "always"}
	if merged != want {
		t.Errorf("Merge() = %+v, want %+v", merged, want)
	}
}

func TestOptionsHelpers(t *testing.T) {
	var zero Options
	if zero.DriverName() != "postgres" {
		t.Errorf("default driver = %q", zero.DriverName())
	}
	if zero.UndefinedAlways() || zero.RelationAlways() {
		t.Error("zero options should not enable anything")
	}
	if zero.NullabilityPolicy() != nullability.Disabled {
		t.Errorf("zero policy = %q", zero.NullabilityPolicy())
	}
	o := Options{SpecifyNullable: "non-default", SpecifyUndefined: "always", SpecifyRelation: "always"}
	if o.NullabilityPolicy() != nullability.NonDefault || !o.UndefinedAlways() || !o.RelationAlways() {
		t.Errorf("unexpected helpers for %+v", o)
	}
}
