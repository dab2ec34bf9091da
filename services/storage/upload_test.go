package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestUploadValidate(t *testing.T) {
	cases := []struct {
		name string
		up   Upload
		max  int64
		want error
	}{
		{"png", Upload{Filename: "a.png", Size: 10}, 100, nil},
		{"upper case jpeg", Upload{Filename: "A.JPEG", Size: 10}, 100, nil},
		{"exactly at limit", Upload{Filename: "a.jpg", Size: 100}, 100, nil},
		{"no limit", Upload{Filename: "a.jpg", Size: 1 << 30}, 0, nil},
		{"too large", Upload{Filename: "a.jpg", Size: 101}, 100, ErrFileTooLarge},
		{"gif", Upload{Filename: "a.gif", Size: 10}, 100, ErrUnsupportedImage},
		{"no extension", Upload{Filename: "png", Size: 10}, 100, ErrUnsupportedImage},
	}
	for _, tc := range cases {
		if err := tc.up.Validate(tc.max); !errors.Is(err, tc.want) {
			t.Fatalf("%s: Validate = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestDisabledImageStore(t *testing.T) {
	var store ImageStore = DisabledImageStore{}
	if _, err := store.Upload(context.Background(), strings.NewReader("x"), "f", "n"); !errors.Is(err, ErrStorageDisabled) {
		t.Fatalf("expected ErrStorageDisabled, got %v", err)
	}
	if err := store.Delete(context.Background(), "id"); !errors.Is(err, ErrStorageDisabled) {
		t.Fatalf("expected ErrStorageDisabled, got %v", err)
	}
}
