// Package aggregate derives the dashboard views from a ledger snapshot.
//
// Every view is a pure function recomputed from scratch on each call. The
// dataset is one forum thread, so there is no cache to invalidate and no
// incremental state to drift; correctness is defined against these
// from-scratch computations.
package aggregate

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/filadelfiminer-alt/nominanti/internal/domain/category"
	"github.com/filadelfiminer-alt/nominanti/internal/domain/model"
)

// DefaultRecentLimit caps the live feed when the caller does not ask for a
// specific length.
const DefaultRecentLimit = 20

// Snapshot is the ledger state a view computation runs against. Reads taken
// mid-ingestion see a partially-filled snapshot; views stay internally
// consistent because they all derive from this one copy.
type Snapshot struct {
	Votes          []model.Vote
	LastUpdated    time.Time
	ProcessedPosts int
	TotalPages     int
}

// nomineeTally accumulates per-nominee counts inside one category bucket.
type nomineeTally struct {
	count  int
	voters []string
}

// CategoryStats groups votes by normalized category and tallies nominees.
// Votes whose category cannot be normalized to a registry entry are dropped
// from this view (they still count toward the dashboard vote total). The
// result always contains every registry category, in registry order.
func CategoryStats(snap Snapshot) []model.CategoryStats {
	// category -> nominee (lowercased) -> tally; insertion order of
	// nominees is tracked so voter lists keep first-seen order.
	buckets := make(map[category.Category]map[string]*nomineeTally, category.Count())
	nomineeOrder := make(map[category.Category][]string)
	for _, c := range category.All() {
		buckets[c] = make(map[string]*nomineeTally)
	}

	for _, vote := range snap.Votes {
		cat, ok := category.Normalize(vote.Category)
		if !ok {
			continue
		}
		nominee := strings.ToLower(vote.Nominee)
		tally, ok := buckets[cat][nominee]
		if !ok {
			tally = &nomineeTally{}
			buckets[cat][nominee] = tally
			nomineeOrder[cat] = append(nomineeOrder[cat], nominee)
		}
		tally.count++
		if !contains(tally.voters, vote.VoterUsername) {
			tally.voters = append(tally.voters, vote.VoterUsername)
		}
	}

	out := make([]model.CategoryStats, 0, category.Count())
	for _, cat := range category.All() {
		stats := model.CategoryStats{Category: string(cat)}
		for _, nominee := range nomineeOrder[cat] {
			tally := buckets[cat][nominee]
			stats.Nominees = append(stats.Nominees, model.NomineeStats{
				Nominee:   FormatUsername(nominee),
				Category:  string(cat),
				VoteCount: tally.count,
				Voters:    tally.voters,
			})
			stats.TotalVotes += tally.count
		}
		sort.SliceStable(stats.Nominees, func(i, j int) bool {
			if stats.Nominees[i].VoteCount != stats.Nominees[j].VoteCount {
				return stats.Nominees[i].VoteCount > stats.Nominees[j].VoteCount
			}
			return stats.Nominees[i].Nominee < stats.Nominees[j].Nominee
		})
		out = append(out, stats)
	}
	return out
}

// Leaderboard ranks nominees across all categories by total vote count.
// Per-nominee category breakdowns are sorted by count descending, ties by
// registry order; entries are sorted by total descending, ties by name.
func Leaderboard(snap Snapshot) []model.LeaderboardEntry {
	type userTally struct {
		total      int
		categories map[category.Category]int
	}
	users := make(map[string]*userTally)
	var order []string

	for _, vote := range snap.Votes {
		cat, ok := category.Normalize(vote.Category)
		if !ok {
			continue
		}
		nominee := strings.ToLower(vote.Nominee)
		tally, ok := users[nominee]
		if !ok {
			tally = &userTally{categories: make(map[category.Category]int)}
			users[nominee] = tally
			order = append(order, nominee)
		}
		tally.total++
		tally.categories[cat]++
	}

	out := make([]model.LeaderboardEntry, 0, len(order))
	for _, nominee := range order {
		tally := users[nominee]
		entry := model.LeaderboardEntry{
			Username:   FormatUsername(nominee),
			TotalVotes: tally.total,
		}
		for cat, votes := range tally.categories {
			entry.Categories = append(entry.Categories, model.CategoryVotes{
				Name:  string(cat),
				Votes: votes,
			})
		}
		sort.Slice(entry.Categories, func(i, j int) bool {
			if entry.Categories[i].Votes != entry.Categories[j].Votes {
				return entry.Categories[i].Votes > entry.Categories[j].Votes
			}
			return category.Index(category.Category(entry.Categories[i].Name)) <
				category.Index(category.Category(entry.Categories[j].Name))
		})
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalVotes != out[j].TotalVotes {
			return out[i].TotalVotes > out[j].TotalVotes
		}
		return out[i].Username < out[j].Username
	})
	return out
}

// Dashboard computes the scalar summary for the stats cards.
func Dashboard(snap Snapshot) model.DashboardStats {
	leaderboard := Leaderboard(snap)

	withVotes := 0
	for _, cs := range CategoryStats(snap) {
		if cs.TotalVotes > 0 {
			withVotes++
		}
	}

	var top *string
	if len(leaderboard) > 0 {
		top = &leaderboard[0].Username
	}

	return model.DashboardStats{
		TotalVotes:        len(snap.Votes),
		TotalNominees:     len(leaderboard),
		TotalCategories:   withVotes,
		MostNominatedUser: top,
		LastUpdated:       snap.LastUpdated.UTC().Format(time.RFC3339),
		ProcessedPosts:    snap.ProcessedPosts,
		TotalPages:        snap.TotalPages,
	}
}

// RecentVotes projects the newest votes for the live feed, newest first.
// Equal timestamps keep insertion order. A limit < 1 falls back to
// DefaultRecentLimit. Categories that cannot be normalized fall back to the
// raw string rather than being dropped.
func RecentVotes(snap Snapshot, limit int) []model.RecentVote {
	if limit < 1 {
		limit = DefaultRecentLimit
	}

	votes := make([]model.Vote, len(snap.Votes))
	copy(votes, snap.Votes)
	sort.SliceStable(votes, func(i, j int) bool {
		return votes[i].Timestamp.After(votes[j].Timestamp)
	})
	if len(votes) > limit {
		votes = votes[:limit]
	}

	out := make([]model.RecentVote, 0, len(votes))
	for _, vote := range votes {
		displayCat := vote.Category
		if cat, ok := category.Normalize(vote.Category); ok {
			displayCat = string(cat)
		}
		out = append(out, model.RecentVote{
			Voter:     vote.VoterUsername,
			Nominee:   FormatUsername(vote.Nominee),
			Category:  displayCat,
			Timestamp: vote.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	return out
}

// FormatUsername upper-cases the first letter of each space-separated word
// and leaves the remainder untouched. Splitting is on spaces only:
// underscores and digits inside a handle must not start a new word, so this
// is not Unicode title-casing.
func FormatUsername(username string) string {
	words := strings.Split(username, " ")
	for i, word := range words {
		runes := []rune(word)
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
			words[i] = string(runes)
		}
	}
	return strings.Join(words, " ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
