package convert

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOrderFiles(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		want    []LayoutFile
		wantErr error
	}{
		{
			name:  "numeric order",
			files: []string{"doc_f10.xml", "doc_f9.xml", "doc_f1.xml"},
			want: []LayoutFile{
				{Name: "doc_f1.xml", Folio: 1},
				{Name: "doc_f9.xml", Folio: 9},
				{Name: "doc_f10.xml", Folio: 10},
			},
		},
		{
			name:  "other files ignored",
			files: []string{"f2.xml", "f1.xml", "notes.txt", "f3.jpg"},
			want: []LayoutFile{
				{Name: "f1.xml", Folio: 1},
				{Name: "f2.xml", Folio: 2},
			},
		},
		{
			name:  "prefix up to last f",
			files: []string{"ff_f12.xml", "ff_f3.xml"},
			want: []LayoutFile{
				{Name: "ff_f3.xml", Folio: 3},
				{Name: "ff_f12.xml", Folio: 12},
			},
		},
		{
			name:    "no folio number",
			files:   []string{"doc_f1.xml", "cover.xml"},
			wantErr: ErrMalformedFileName,
		},
		{
			name:    "no layout files",
			files:   []string{"readme.md"},
			wantErr: ErrEmptyDirectory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tt.files {
				if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
					t.Fatalf("failed to write %s: %v", name, err)
				}
			}

			got, err := OrderFiles(dir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderFiles_MissingDirectory(t *testing.T) {
	if _, err := OrderFiles(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestOrderFiles_SkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "old.xml"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "doc_f1.xml"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := OrderFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Folio != 1 {
		t.Errorf("got %v, want only folio 1", got)
	}
}
