package domain

import "sort"

// Book is a single catalog entry. Reviews are keyed by username, so a user
// holds at most one review per book.
type Book struct {
	ISBN    string            `json:"isbn"`
	Author  string            `json:"author"`
	Title   string            `json:"title"`
	Reviews map[string]string `json:"reviews"`
}

// Review is the list form of one entry in Book.Reviews
type Review struct {
	Username string `json:"username"`
	Review   string `json:"review"`
}

// Clone returns a copy of the book that shares no state with the original.
func (b Book) Clone() Book {
	reviews := make(map[string]string, len(b.Reviews))
	for username, text := range b.Reviews {
		reviews[username] = text
	}
	b.Reviews = reviews
	return b
}

// ReviewList flattens the reviews, ordered by username.
func (b Book) ReviewList() []Review {
	reviews := make([]Review, 0, len(b.Reviews))
	for username, text := range b.Reviews {
		reviews = append(reviews, Review{Username: username, Review: text})
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].Username < reviews[j].Username
	})
	return reviews
}
