package view

import (
	"cmp"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
)

// Sort returns a copy of tasks ordered by option. The sort is stable, so
// ties keep their input order. Unknown options sort by creation.
func Sort(tasks []domain.Task, option domain.SortOption, now time.Time) []domain.Task {
	out := domain.CloneTasks(tasks)
	if out == nil {
		out = []domain.Task{}
	}
	switch option {
	case domain.SortPriority:
		slices.SortStableFunc(out, func(a, b domain.Task) int {
			return cmp.Compare(b.Priority.Rank(), a.Priority.Rank())
		})
	case domain.SortTitle:
		// Collators keep internal buffers, so each call gets its own.
		c := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(out, func(a, b domain.Task) int {
			return c.CompareString(a.Title, b.Title)
		})
	case domain.SortDueDate:
		keys := make(map[string]dueKey, len(out))
		for _, t := range out {
			keys[t.ID] = resolveDue(t.DueDate, now)
		}
		slices.SortStableFunc(out, func(a, b domain.Task) int {
			return keys[a.ID].compare(keys[b.ID])
		})
	default:
		slices.SortStableFunc(out, func(a, b domain.Task) int {
			return cmp.Compare(a.ID, b.ID)
		})
	}
	return out
}

// dueKey orders unresolvable dates after every real date.
type dueKey struct {
	at time.Time
	ok bool
}

func resolveDue(dueDate string, now time.Time) dueKey {
	at, ok := domain.ResolveDueDate(dueDate, now)
	return dueKey{at: at, ok: ok}
}

func (k dueKey) compare(o dueKey) int {
	switch {
	case !k.ok && !o.ok:
		return 0
	case !k.ok:
		return 1
	case !o.ok:
		return -1
	}
	return k.at.Compare(o.at)
}
