package payload

import "github.com/google/go-github/v43/github"

// PullRequestEvent is sent for activity on pull requests.
type PullRequestEvent struct {
	github.PullRequestEvent
}

func (*PullRequestEvent) EventType() string { return TypePullRequest }

func (e *PullRequestEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.id("number", int64(e.GetNumber()))
	r.present("pull_request", e.PullRequest != nil)
	r.repository("repository", e.Repo)
	return r.err(TypePullRequest)
}

// PullRequestReviewEvent is sent for activity on pull request reviews.
type PullRequestReviewEvent struct {
	github.PullRequestReviewEvent
}

func (*PullRequestReviewEvent) EventType() string { return TypePullRequestReview }

func (e *PullRequestReviewEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("pull_request", e.PullRequest != nil, func() {
		r.id("pull_request.number", int64(e.PullRequest.GetNumber()))
	})
	r.nested("review", e.Review != nil, func() {
		r.str("review.state", e.Review.GetState())
	})
	return r.err(TypePullRequestReview)
}

// PullRequestReviewCommentEvent is sent for comments on the diff of a pull
// request.
type PullRequestReviewCommentEvent struct {
	github.PullRequestReviewCommentEvent
}

func (*PullRequestReviewCommentEvent) EventType() string { return TypePullRequestReviewComment }

func (e *PullRequestReviewCommentEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("pull_request", e.PullRequest != nil, func() {
		r.id("pull_request.number", int64(e.PullRequest.GetNumber()))
	})
	r.nested("comment", e.Comment != nil, func() {
		r.id("comment.id", e.Comment.GetID())
	})
	return r.err(TypePullRequestReviewComment)
}

// IssuesEvent is sent for activity on issues.
type IssuesEvent struct {
	github.IssuesEvent
}

func (*IssuesEvent) EventType() string { return TypeIssues }

func (e *IssuesEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("issue", e.Issue != nil, func() {
		r.id("issue.number", int64(e.Issue.GetNumber()))
	})
	r.repository("repository", e.Repo)
	return r.err(TypeIssues)
}

// IssueCommentEvent is sent for comments on issues and pull requests.
type IssueCommentEvent struct {
	github.IssueCommentEvent
}

func (*IssueCommentEvent) EventType() string { return TypeIssueComment }

func (e *IssueCommentEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("issue", e.Issue != nil, func() {
		r.id("issue.number", int64(e.Issue.GetNumber()))
	})
	r.nested("comment", e.Comment != nil, func() {
		r.id("comment.id", e.Comment.GetID())
	})
	return r.err(TypeIssueComment)
}

// CommitCommentEvent is sent for comments on commits.
type CommitCommentEvent struct {
	github.CommitCommentEvent
}

func (*CommitCommentEvent) EventType() string { return TypeCommitComment }

func (e *CommitCommentEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("comment", e.Comment != nil, func() {
		r.id("comment.id", e.Comment.GetID())
		r.str("comment.commit_id", e.Comment.GetCommitID())
	})
	return r.err(TypeCommitComment)
}
