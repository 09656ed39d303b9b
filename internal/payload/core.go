package payload

import "github.com/google/go-github/v43/github"

// PingEvent is sent when a webhook is created.
type PingEvent struct {
	github.PingEvent
}

func (*PingEvent) EventType() string { return TypePing }

func (e *PingEvent) Validate() error {
	var r required
	r.str("zen", e.GetZen())
	r.id("hook_id", e.GetHookID())
	return r.err(TypePing)
}

// RepositoryEvent is sent when a repository is created, deleted, archived,
// renamed or its visibility changed.
type RepositoryEvent struct {
	github.RepositoryEvent
}

func (*RepositoryEvent) EventType() string { return TypeRepository }

func (e *RepositoryEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.repository("repository", e.Repo)
	return r.err(TypeRepository)
}

// PushEvent is sent when commits or tags are pushed.
// It has no action field.
type PushEvent struct {
	github.PushEvent
}

func (*PushEvent) EventType() string { return TypePush }

func (e *PushEvent) Validate() error {
	var r required
	r.str("ref", e.GetRef())
	r.present("commits", e.Commits != nil)
	r.nested("repository", e.Repo != nil, func() {
		r.str("repository.full_name", e.Repo.GetFullName())
	})
	return r.err(TypePush)
}

// CreateEvent is sent when a branch or tag is created.
type CreateEvent struct {
	github.CreateEvent
}

func (*CreateEvent) EventType() string { return TypeCreate }

func (e *CreateEvent) Validate() error {
	var r required
	r.str("ref", e.GetRef())
	r.str("ref_type", e.GetRefType())
	r.repository("repository", e.Repo)
	return r.err(TypeCreate)
}

// DeleteEvent is sent when a branch or tag is deleted.
type DeleteEvent struct {
	github.DeleteEvent
}

func (*DeleteEvent) EventType() string { return TypeDelete }

func (e *DeleteEvent) Validate() error {
	var r required
	r.str("ref", e.GetRef())
	r.str("ref_type", e.GetRefType())
	r.repository("repository", e.Repo)
	return r.err(TypeDelete)
}
