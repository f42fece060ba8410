package stats

import "testing"

func TestAchievementCatalogueShape(t *testing.T) {
	if len(achievementCatalogue) != 8 {
		t.Fatalf("catalogue has %d entries, want 8", len(achievementCatalogue))
	}

	seen := map[string]bool{}
	for _, def := range achievementCatalogue {
		if def.ID == "" || def.Title == "" || def.Description == "" {
			t.Errorf("entry %q has empty fields", def.ID)
		}
		if def.Threshold < 1 {
			t.Errorf("entry %q has threshold %d", def.ID, def.Threshold)
		}
		if def.Counter == nil {
			t.Errorf("entry %q has no counter source", def.ID)
		}
		if seen[def.ID] {
			t.Errorf("duplicate entry %q", def.ID)
		}
		seen[def.ID] = true
	}
}

func TestEvaluateAchievementsTotal(t *testing.T) {
	// Every entry must produce a status even at zero.
	got := EvaluateAchievements(Counters{})
	if len(got) != len(achievementCatalogue) {
		t.Fatalf("got %d statuses, want %d", len(got), len(achievementCatalogue))
	}
	for _, a := range got {
		if a.Unlocked || a.Progress != 0 {
			t.Errorf("%s: unlocked=%v progress=%d at zero", a.ID, a.Unlocked, a.Progress)
		}
		if a.Threshold < 1 {
			t.Errorf("%s: threshold %d", a.ID, a.Threshold)
		}
	}
}

func TestEvaluateAchievementsUnlockAtThreshold(t *testing.T) {
	counters := Counters{
		VersesRead:      100,
		VersesMemorized: 100,
		Favorites:       25,
		SurahsTouched:   10,
		StreakDays:      7,
		StudyMinutes:    600,
	}
	for _, a := range EvaluateAchievements(counters) {
		if !a.Unlocked {
			t.Errorf("%s locked with counters at every threshold", a.ID)
		}
		if a.Progress != a.Threshold {
			t.Errorf("%s: progress %d at unlock, want %d", a.ID, a.Progress, a.Threshold)
		}
	}
}

func TestEvaluateAchievementsMonotone(t *testing.T) {
	// Growing a counter can only lock->unlock, never the reverse, and
	// progress never decreases.
	prevUnlocked := map[string]bool{}
	prevProgress := map[string]int{}
	for reads := 0; reads <= 120; reads += 10 {
		got := EvaluateAchievements(Counters{VersesRead: reads})
		for _, a := range got {
			if prevUnlocked[a.ID] && !a.Unlocked {
				t.Errorf("%s re-locked at reads=%d", a.ID, reads)
			}
			if a.Progress < prevProgress[a.ID] {
				t.Errorf("%s progress decreased at reads=%d", a.ID, reads)
			}
			prevUnlocked[a.ID] = a.Unlocked
			prevProgress[a.ID] = a.Progress
		}
	}
}

func TestEvaluateAchievementsProgressCapped(t *testing.T) {
	got := EvaluateAchievements(Counters{VersesRead: 1_000_000})
	for _, a := range got {
		if a.Progress > a.Threshold {
			t.Errorf("%s: progress %d exceeds threshold %d", a.ID, a.Progress, a.Threshold)
		}
	}
}
