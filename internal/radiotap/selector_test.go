package radiotap

import (
	"errors"
	"testing"
)

func TestSelectorIncludeExclude(t *testing.T) {
	s := EmptySelector()
	if s.selected(FieldRate) || s.vendorSelected() {
		t.Fatal("empty selector keeps something")
	}
	if err := s.Include(FieldRate, FieldChannel); err != nil {
		t.Fatalf("Include: %v", err)
	}
	if !s.selected(FieldRate) || !s.selected(FieldChannel) {
		t.Fatal("included fields not selected")
	}
	if s.selected(FieldTSFT) {
		t.Fatal("unrelated field selected")
	}
	if err := s.Exclude(FieldRate); err != nil {
		t.Fatalf("Exclude: %v", err)
	}
	if s.selected(FieldRate) {
		t.Fatal("excluded field still selected")
	}
}

func TestSelectorRejectsUnknownKind(t *testing.T) {
	s := EmptySelector()
	if err := s.Include(FieldKind(200)); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("Include error = %v, want %v", err, ErrUnknownField)
	}
	if err := s.Exclude(FieldKind(numFieldKinds)); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("Exclude error = %v, want %v", err, ErrUnknownField)
	}
	if err := s.IncludeNamespace(Namespace(9)); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("IncludeNamespace error = %v, want %v", err, ErrUnknownField)
	}
}

func TestSelectorNamespaces(t *testing.T) {
	s := NewSelector()
	if err := s.ExcludeNamespace(NamespaceRadiotap); err != nil {
		t.Fatalf("ExcludeNamespace: %v", err)
	}
	for _, k := range AllFieldKinds() {
		if s.selected(k) {
			t.Fatalf("field %v selected after namespace exclude", k)
		}
	}
	if !s.vendorSelected() {
		t.Fatal("vendor selection lost by standard-namespace exclude")
	}
	if err := s.ExcludeNamespace(NamespaceVendor); err != nil {
		t.Fatalf("ExcludeNamespace vendor: %v", err)
	}
	if s.vendorSelected() {
		t.Fatal("vendor still selected")
	}
	if err := s.IncludeNamespace(NamespaceRadiotap); err != nil {
		t.Fatalf("IncludeNamespace: %v", err)
	}
	if !s.selected(FieldVHT) {
		t.Fatal("namespace include did not restore fields")
	}
}

func TestNilSelectorKeepsEverything(t *testing.T) {
	var s *Selector
	for _, k := range AllFieldKinds() {
		if !s.selected(k) {
			t.Fatalf("nil selector drops %v", k)
		}
	}
	if !s.vendorSelected() {
		t.Fatal("nil selector drops vendor payloads")
	}
}

func TestNewSelectorFromNames(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []FieldKind
		without []FieldKind
		vendor  bool
	}{
		{
			name:    "explicit include",
			include: []string{"rate", "antenna-signal"},
			want:    []FieldKind{FieldRate, FieldAntennaSignal},
			without: []FieldKind{FieldTSFT, FieldVHT},
		},
		{
			name:    "empty include starts from everything",
			exclude: []string{"tsft"},
			want:    []FieldKind{FieldRate, FieldVHT},
			without: []FieldKind{FieldTSFT},
			vendor:  true,
		},
		{
			name:    "vendor toggle",
			include: []string{"vendor", "channel"},
			want:    []FieldKind{FieldChannel},
			without: []FieldKind{FieldRate},
			vendor:  true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSelectorFromNames(tc.include, tc.exclude)
			if err != nil {
				t.Fatalf("NewSelectorFromNames: %v", err)
			}
			for _, k := range tc.want {
				if !s.selected(k) {
					t.Errorf("field %v not selected", k)
				}
			}
			for _, k := range tc.without {
				if s.selected(k) {
					t.Errorf("field %v selected", k)
				}
			}
			if s.vendorSelected() != tc.vendor {
				t.Errorf("vendor = %v, want %v", s.vendorSelected(), tc.vendor)
			}
		})
	}

	if _, err := NewSelectorFromNames([]string{"bogus"}, nil); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("bogus include error = %v, want %v", err, ErrUnknownField)
	}
	if _, err := NewSelectorFromNames(nil, []string{"bogus"}); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("bogus exclude error = %v, want %v", err, ErrUnknownField)
	}
}
