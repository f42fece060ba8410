package quran

import (
	"errors"
	"math"
	"testing"

	"github.com/noor-app/backend/internal/models"
)

func TestAyahCountsTotal(t *testing.T) {
	total := 0
	for surah := 1; surah <= SurahCount; surah++ {
		count := AyahCount(surah)
		if count < 3 || count > 286 {
			t.Errorf("surah %d has implausible ayah count %d", surah, count)
		}
		total += count
	}
	if total != models.TotalVerses {
		t.Errorf("ayah counts sum to %d, want %d", total, models.TotalVerses)
	}
}

func TestAyahCountKnownSurahs(t *testing.T) {
	tests := []struct {
		surah int
		want  int
	}{
		{1, 7},     // Al-Fatihah
		{2, 286},   // Al-Baqarah
		{36, 83},   // Ya-Sin
		{108, 3},   // Al-Kawthar, the shortest
		{114, 6},   // An-Nas
		{0, 0},     // out of range
		{115, 0},   // out of range
	}
	for _, tt := range tests {
		if got := AyahCount(tt.surah); got != tt.want {
			t.Errorf("AyahCount(%d) = %d, want %d", tt.surah, got, tt.want)
		}
	}
}

func TestValidateRef(t *testing.T) {
	tests := []struct {
		name         string
		surah, verse int
		wantErr      bool
	}{
		{"first ayah", 1, 1, false},
		{"last ayah of longest surah", 2, 286, false},
		{"last ayah of the text", 114, 6, false},
		{"verse past end of surah", 1, 8, true},
		{"verse zero", 1, 0, true},
		{"surah zero", 0, 1, true},
		{"surah too large", 115, 1, true},
		{"negative verse", 2, -5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRef(tt.surah, tt.verse)
			if tt.wantErr && !errors.Is(err, ErrInvalid) {
				t.Errorf("ValidateRef(%d, %d) = %v, want ErrInvalid", tt.surah, tt.verse, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateRef(%d, %d) unexpectedly failed: %v", tt.surah, tt.verse, err)
			}
		})
	}
}

func TestValidateElapsed(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		want    int64
		wantErr bool
	}{
		{"zero", 0, 0, false},
		{"normal", 42.7, 42, false},
		{"negative", -1, 0, true},
		{"nan", math.NaN(), 0, true},
		{"positive infinity", math.Inf(1), 0, true},
		{"negative infinity", math.Inf(-1), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateElapsed(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("validateElapsed(%v) = %v, want ErrInvalid", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("validateElapsed(%v) unexpectedly failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("validateElapsed(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
