package sitetrans

// DiffResult describes how the translatable text of a document changed
// between two versions. Texts are deduplicated; slices keep first-appearance
// order so output is stable for the same inputs.
type DiffResult struct {
	// Added contains texts that are new (not in the previous version).
	Added []string

	// Removed contains texts that were dropped (not in the new version).
	Removed []string

	// Unchanged contains texts that exist in both versions.
	Unchanged []string
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int
	Removed   int
	Unchanged int
}

// Stats returns summary statistics for the diff.
func (d *DiffResult) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Unchanged: len(d.Unchanged),
	}
}

// HasChanges returns true if there are any differences.
func (d *DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

// NeedsTranslation returns the texts a fresh translation pass would have to
// send (assuming the old version's texts are already cached).
func (d *DiffResult) NeedsTranslation() []string {
	return d.Added
}

// DiffUnits compares the units of two document versions by text identity.
// Useful before a re-run: only added texts cause new service requests, since
// unchanged texts resolve from the persisted cache.
func DiffUnits(oldUnits, newUnits []Unit) *DiffResult {
	result := &DiffResult{}

	oldTexts := uniqueTexts(oldUnits)
	newTexts := uniqueTexts(newUnits)

	oldSet := make(map[string]bool, len(oldTexts))
	for _, text := range oldTexts {
		oldSet[text] = true
	}
	newSet := make(map[string]bool, len(newTexts))
	for _, text := range newTexts {
		newSet[text] = true
	}

	for _, text := range oldTexts {
		if newSet[text] {
			result.Unchanged = append(result.Unchanged, text)
		} else {
			result.Removed = append(result.Removed, text)
		}
	}

	for _, text := range newTexts {
		if !oldSet[text] {
			result.Added = append(result.Added, text)
		}
	}

	return result
}

func uniqueTexts(units []Unit) []string {
	seen := make(map[string]bool, len(units))
	texts := make([]string, 0, len(units))
	for _, unit := range units {
		if seen[unit.Text] {
			continue
		}
		seen[unit.Text] = true
		texts = append(texts, unit.Text)
	}
	return texts
}
