package model

import "strings"

// ReviewState represents the state of a submitted review.
type ReviewState string

const (
	ReviewStateApproved         ReviewState = "approved"
	ReviewStateChangesRequested ReviewState = "changes_requested"
	ReviewStateCommented        ReviewState = "commented"
	ReviewStatePending          ReviewState = "pending"
	ReviewStateDismissed        ReviewState = "dismissed"
)

// Review represents a review submitted on a pull request.
type Review struct {
	ReviewerLogin string
	State         ReviewState
}

// IsApproval reports whether the review state equals "approved",
// case-insensitive (the GitHub API returns "APPROVED" in upper case).
func (r Review) IsApproval() bool {
	return strings.EqualFold(string(r.State), string(ReviewStateApproved))
}

// NonOwnerApprovers returns logins of reviewers who approved the PR and are
// not code owners, preserving submission order.
func NonOwnerApprovers(reviews []Review, codeOwners map[string]bool) []string {
	var approvers []string
	for _, review := range reviews {
		if review.IsApproval() && !codeOwners[review.ReviewerLogin] {
			approvers = append(approvers, review.ReviewerLogin)
		}
	}
	return approvers
}

// OwnerReviewRequested reports whether any requested reviewer is a code owner.
func OwnerReviewRequested(requested []string, codeOwners map[string]bool) bool {
	for _, login := range requested {
		if codeOwners[login] {
			return true
		}
	}
	return false
}
