package payload

import "github.com/google/go-github/v43/github"

// StarEvent is sent when a repository is starred or unstarred.
type StarEvent struct {
	github.StarEvent
}

func (*StarEvent) EventType() string { return TypeStar }

func (e *StarEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.repository("repository", e.Repo)
	return r.err(TypeStar)
}

// WatchEvent is sent when someone stars a repository, GitHub reports it
// with the action "started".
type WatchEvent struct {
	github.WatchEvent
}

func (*WatchEvent) EventType() string { return TypeWatch }

func (e *WatchEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.repository("repository", e.Repo)
	return r.err(TypeWatch)
}

// ForkEvent is sent when a repository is forked.
// It has no action field.
type ForkEvent struct {
	github.ForkEvent
}

func (*ForkEvent) EventType() string { return TypeFork }

func (e *ForkEvent) Validate() error {
	var r required
	r.repository("forkee", e.Forkee)
	r.repository("repository", e.Repo)
	return r.err(TypeFork)
}
