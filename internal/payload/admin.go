package payload

import "github.com/google/go-github/v43/github"

// OrganizationEvent is sent for membership and settings changes of an
// organization.
type OrganizationEvent struct {
	github.OrganizationEvent
}

func (*OrganizationEvent) EventType() string { return TypeOrganization }

func (e *OrganizationEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.str("organization.login", e.GetOrganization().GetLogin())
	return r.err(TypeOrganization)
}

// TeamEvent is sent for team activity of an organization.
type TeamEvent struct {
	github.TeamEvent
}

func (*TeamEvent) EventType() string { return TypeTeam }

func (e *TeamEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("team", e.Team != nil, func() {
		r.str("team.name", e.Team.GetName())
	})
	return r.err(TypeTeam)
}

// MemberEvent is sent when collaborators of a repository change.
type MemberEvent struct {
	github.MemberEvent
}

func (*MemberEvent) EventType() string { return TypeMember }

func (e *MemberEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("member", e.Member != nil, func() {
		r.str("member.login", e.Member.GetLogin())
	})
	r.repository("repository", e.Repo)
	return r.err(TypeMember)
}

// DeploymentEvent is sent when a deployment is created.
type DeploymentEvent struct {
	github.DeploymentEvent
	// Action is sent by GitHub but missing in github.DeploymentEvent.
	Action *string `json:"action,omitempty"`
}

func (*DeploymentEvent) EventType() string { return TypeDeployment }

// GetAction returns the Action field if it's non-nil, zero value otherwise.
func (e *DeploymentEvent) GetAction() string {
	if e == nil || e.Action == nil {
		return ""
	}

	return *e.Action
}

func (e *DeploymentEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("deployment", e.Deployment != nil, func() {
		r.id("deployment.id", e.Deployment.GetID())
		r.str("deployment.environment", e.Deployment.GetEnvironment())
	})
	return r.err(TypeDeployment)
}

// DeploymentStatusEvent is sent when the status of a deployment changes.
type DeploymentStatusEvent struct {
	github.DeploymentStatusEvent
	// Action is sent by GitHub but missing in github.DeploymentStatusEvent.
	Action *string `json:"action,omitempty"`
}

func (*DeploymentStatusEvent) EventType() string { return TypeDeploymentStatus }

// GetAction returns the Action field if it's non-nil, zero value otherwise.
func (e *DeploymentStatusEvent) GetAction() string {
	if e == nil || e.Action == nil {
		return ""
	}

	return *e.Action
}

func (e *DeploymentStatusEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("deployment", e.Deployment != nil, func() {
		r.id("deployment.id", e.Deployment.GetID())
	})
	r.nested("deployment_status", e.DeploymentStatus != nil, func() {
		r.str("deployment_status.state", e.DeploymentStatus.GetState())
	})
	return r.err(TypeDeploymentStatus)
}

// Environment returns the environment of the deployment status, if it is not
// set the environment of the deployment is returned.
func (e *DeploymentStatusEvent) Environment() string {
	if env := e.GetDeploymentStatus().GetEnvironment(); env != "" {
		return env
	}

	return e.GetDeployment().GetEnvironment()
}
