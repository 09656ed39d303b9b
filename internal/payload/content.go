package payload

import "github.com/google/go-github/v43/github"

// ReleaseEvent is sent for release activity.
type ReleaseEvent struct {
	github.ReleaseEvent
}

func (*ReleaseEvent) EventType() string { return TypeRelease }

func (e *ReleaseEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("release", e.Release != nil, func() {
		r.str("release.tag_name", e.Release.GetTagName())
	})
	return r.err(TypeRelease)
}

// DiscussionEvent is sent for discussion activity.
type DiscussionEvent struct {
	github.DiscussionEvent
}

func (*DiscussionEvent) EventType() string { return TypeDiscussion }

func (e *DiscussionEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("discussion", e.Discussion != nil, func() {
		r.id("discussion.number", int64(e.Discussion.GetNumber()))
		r.str("discussion.title", e.Discussion.GetTitle())
	})
	return r.err(TypeDiscussion)
}

// DiscussionCommentEvent is sent for comments on discussions.
// go-github does not provide a type for the event.
type DiscussionCommentEvent struct {
	Action       *string              `json:"action,omitempty"`
	Comment      *DiscussionComment   `json:"comment,omitempty"`
	Discussion   *github.Discussion   `json:"discussion,omitempty"`
	Repo         *github.Repository   `json:"repository,omitempty"`
	Org          *github.Organization `json:"organization,omitempty"`
	Sender       *github.User         `json:"sender,omitempty"`
	Installation *github.Installation `json:"installation,omitempty"`
}

// DiscussionComment is a comment on a GitHub discussion.
type DiscussionComment struct {
	ID                *int64            `json:"id,omitempty"`
	NodeID            *string           `json:"node_id,omitempty"`
	HTMLURL           *string           `json:"html_url,omitempty"`
	ParentID          *int64            `json:"parent_id,omitempty"`
	Body              *string           `json:"body,omitempty"`
	User              *github.User      `json:"user,omitempty"`
	AuthorAssociation *string           `json:"author_association,omitempty"`
	CreatedAt         *github.Timestamp `json:"created_at,omitempty"`
	UpdatedAt         *github.Timestamp `json:"updated_at,omitempty"`
}

func (*DiscussionCommentEvent) EventType() string { return TypeDiscussionComment }

func (e *DiscussionCommentEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("discussion", e.Discussion != nil, func() {
		r.id("discussion.number", int64(e.Discussion.GetNumber()))
	})
	r.nested("comment", e.Comment != nil, func() {
		r.id("comment.id", e.Comment.GetID())
	})
	return r.err(TypeDiscussionComment)
}

// GetAction returns the Action field if it's non-nil, zero value otherwise.
func (e *DiscussionCommentEvent) GetAction() string {
	if e == nil || e.Action == nil {
		return ""
	}

	return *e.Action
}

// GetComment returns the Comment field.
func (e *DiscussionCommentEvent) GetComment() *DiscussionComment {
	if e == nil {
		return nil
	}

	return e.Comment
}

// GetDiscussion returns the Discussion field.
func (e *DiscussionCommentEvent) GetDiscussion() *github.Discussion {
	if e == nil {
		return nil
	}

	return e.Discussion
}

// GetRepo returns the Repo field.
func (e *DiscussionCommentEvent) GetRepo() *github.Repository {
	if e == nil {
		return nil
	}

	return e.Repo
}

// GetOrg returns the Org field.
func (e *DiscussionCommentEvent) GetOrg() *github.Organization {
	if e == nil {
		return nil
	}

	return e.Org
}

// GetSender returns the Sender field.
func (e *DiscussionCommentEvent) GetSender() *github.User {
	if e == nil {
		return nil
	}

	return e.Sender
}

// GetID returns the ID field if it's non-nil, zero value otherwise.
func (c *DiscussionComment) GetID() int64 {
	if c == nil || c.ID == nil {
		return 0
	}

	return *c.ID
}

// GetUser returns the User field.
func (c *DiscussionComment) GetUser() *github.User {
	if c == nil {
		return nil
	}

	return c.User
}

// PackageEvent is sent when a GitHub Packages package is published or
// updated.
type PackageEvent struct {
	github.PackageEvent
}

func (*PackageEvent) EventType() string { return TypePackage }

func (e *PackageEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("package", e.Package != nil, func() {
		r.str("package.name", e.Package.GetName())
		r.str("package.package_type", e.Package.GetPackageType())
	})
	return r.err(TypePackage)
}

// GollumEvent is sent when wiki pages are created or updated.
// It has no action field, every page carries its own action.
type GollumEvent struct {
	github.GollumEvent
}

func (*GollumEvent) EventType() string { return TypeGollum }

func (e *GollumEvent) Validate() error {
	var r required
	r.present("pages", e.Pages != nil)
	r.repository("repository", e.Repo)
	return r.err(TypeGollum)
}
