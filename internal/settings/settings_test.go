package settings

import (
	"errors"
	"path/filepath"
	"testing"

	"foodies/internal/db"
	"foodies/internal/model"

	"github.com/google/go-cmp/cmp"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "foodies.db"))
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return New(database, nil)
}

func TestGet_Defaults(t *testing.T) {
	s := newTestStore(t)
	want := model.Settings{Currency: "VND", Locale: "vi-VN", PriceFractionDigits: 0, DefaultPageSize: 10}
	if diff := cmp.Diff(want, s.Get()); diff != "" {
		t.Errorf("Get() (-want +got):\n%s", diff)
	}
}

func TestGet_CorruptOrPartial(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want model.Settings
	}{
		{
			name: "corrupt",
			raw:  "not json",
			want: model.DefaultSettings(),
		},
		{
			name: "partial keys merge over defaults",
			raw:  `{"currency":"USD"}`,
			want: model.Settings{Currency: "USD", Locale: "vi-VN", PriceFractionDigits: 0, DefaultPageSize: 10},
		},
		{
			name: "wrong type",
			raw:  `{"defaultPageSize":"ten"}`,
			want: model.DefaultSettings(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			if err := db.PutDocument(s.db, model.SettingsKey, tt.raw); err != nil {
				t.Fatalf("PutDocument: %v", err)
			}
			if diff := cmp.Diff(tt.want, s.Get()); diff != "" {
				t.Errorf("Get() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSave_MergesAndPersists(t *testing.T) {
	s := newTestStore(t)
	digits := 2
	got, err := s.Save(model.SettingsPatch{Currency: model.StringPtr("usd"), Locale: model.StringPtr("en-US"), PriceFractionDigits: &digits})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := model.Settings{Currency: "USD", Locale: "en-US", PriceFractionDigits: 2, DefaultPageSize: 10}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Save (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, s.Get()); diff != "" {
		t.Errorf("Get after Save (-want +got):\n%s", diff)
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	zero, tooMany := 0, 9
	tests := []struct {
		name  string
		patch model.SettingsPatch
	}{
		{"currency", model.SettingsPatch{Currency: model.StringPtr("DOLLARS")}},
		{"locale", model.SettingsPatch{Locale: model.StringPtr("not a locale!")}},
		{"page size", model.SettingsPatch{DefaultPageSize: &zero}},
		{"fraction digits", model.SettingsPatch{PriceFractionDigits: &tooMany}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			if _, err := s.Save(tt.patch); !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("Save error = %v, want ErrInvalidSettings", err)
			}
			if _, found, _ := db.GetDocument(s.db, model.SettingsKey); found {
				t.Error("invalid settings were written")
			}
		})
	}
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Save(model.SettingsPatch{Currency: model.StringPtr("EUR")}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Reset()
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if diff := cmp.Diff(model.DefaultSettings(), got); diff != "" {
		t.Errorf("Reset (-want +got):\n%s", diff)
	}
	if s.Get().Currency != "VND" {
		t.Errorf("currency after reset = %q", s.Get().Currency)
	}
}
