// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"
)

// Vote is one (voter, category, nominee) assertion extracted from a single
// forum post. Category keeps the registry casing produced by the parser;
// Nominee is stored lowercased.
type Vote struct {
	ID            string    `json:"id"`
	Category      string    `json:"category"`
	Nominee       string    `json:"nominee"`
	VoterID       int64     `json:"voterId"`
	VoterUsername string    `json:"voterUsername"`
	PostID        int64     `json:"postId"`
	Timestamp     time.Time `json:"timestamp"`
}

// Key returns the ledger dedup key. It deliberately uses the raw category
// string as parsed, not the normalized registry entry: two spellings of the
// same category from one voter form two keys even though aggregation later
// merges them into one bucket. Do not change the key shape without changing
// the aggregation contract with it.
func (v Vote) Key() string {
	return fmt.Sprintf("%d-%s-%s", v.VoterID, v.Category, v.Nominee)
}

// NomineeStats is the per-nominee tally inside one category view.
type NomineeStats struct {
	Nominee   string   `json:"nominee"`
	Category  string   `json:"category"`
	VoteCount int      `json:"voteCount"`
	Voters    []string `json:"voters"`
}

// CategoryStats is the derived per-category view: nominees sorted by vote
// count descending plus the category total.
type CategoryStats struct {
	Category   string         `json:"category"`
	Nominees   []NomineeStats `json:"nominees"`
	TotalVotes int            `json:"totalVotes"`
}

// CategoryVotes is one row of a leaderboard entry's per-category breakdown.
type CategoryVotes struct {
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

// LeaderboardEntry ranks one nominee across all categories.
type LeaderboardEntry struct {
	Username   string          `json:"username"`
	TotalVotes int             `json:"totalVotes"`
	Categories []CategoryVotes `json:"categories"`
}

// DashboardStats is the derived scalar summary for the dashboard header.
type DashboardStats struct {
	TotalVotes        int     `json:"totalVotes"`
	TotalNominees     int     `json:"totalNominees"`
	TotalCategories   int     `json:"totalCategories"`
	MostNominatedUser *string `json:"mostNominatedUser"`
	LastUpdated       string  `json:"lastUpdated"`
	ProcessedPosts    int     `json:"processedPosts"`
	TotalPages        int     `json:"totalPages"`
}

// RecentVote is one row of the live activity feed.
type RecentVote struct {
	Voter     string `json:"voter"`
	Nominee   string `json:"nominee"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
}

// Post is one raw forum post as returned by the data source.
type Post struct {
	PostID         int64  `json:"post_id"`
	PosterUserID   int64  `json:"poster_user_id"`
	PosterUsername string `json:"poster_username"`
	Body           string `json:"post_body"`
	BodyPlainText  string `json:"post_body_plain_text"`
	CreateDate     int64  `json:"post_create_date"`
}

// Text returns the post body preferred for parsing: the plain-text
// rendering when present, the formatted body otherwise.
func (p Post) Text() string {
	if p.BodyPlainText != "" {
		return p.BodyPlainText
	}
	return p.Body
}
