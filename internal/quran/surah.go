package quran

import (
	"errors"
	"fmt"
)

// ErrInvalid marks a rejected verse reference or elapsed-time value.
// Handlers map it to a 400.
var ErrInvalid = errors.New("invalid input")

// SurahCount is the number of surahs in the Quran.
const SurahCount = 114

// ayahCounts holds the number of ayahs per surah (Kufan count), indexed by
// surah number minus one. The counts sum to 6236.
var ayahCounts = [SurahCount]int{
	7, 286, 200, 176, 120, 165, 206, 75, 129, 109,
	123, 111, 43, 52, 99, 128, 111, 110, 98, 135,
	112, 78, 118, 64, 77, 227, 93, 88, 69, 60,
	34, 30, 73, 54, 45, 83, 182, 88, 75, 85,
	54, 53, 89, 59, 37, 35, 38, 29, 18, 45,
	60, 49, 62, 55, 78, 96, 29, 22, 24, 13,
	14, 11, 11, 18, 12, 12, 30, 52, 52, 44,
	28, 28, 20, 56, 40, 31, 50, 40, 46, 42,
	29, 19, 36, 25, 22, 17, 19, 26, 30, 20,
	15, 21, 11, 8, 8, 19, 5, 8, 8, 11,
	11, 8, 3, 9, 5, 4, 7, 3, 6, 3,
	5, 4, 5, 6,
}

// AyahCount returns the number of ayahs in the given surah, or 0 for an
// out-of-range surah number.
func AyahCount(surah int) int {
	if surah < 1 || surah > SurahCount {
		return 0
	}
	return ayahCounts[surah-1]
}

// ValidateRef checks that surah and verse identify a real ayah.
func ValidateRef(surah, verse int) error {
	if surah < 1 || surah > SurahCount {
		return fmt.Errorf("%w: surah %d out of range [1, %d]", ErrInvalid, surah, SurahCount)
	}
	if max := ayahCounts[surah-1]; verse < 1 || verse > max {
		return fmt.Errorf("%w: verse %d out of range [1, %d] for surah %d", ErrInvalid, verse, max, surah)
	}
	return nil
}
