package payload

import "github.com/google/go-github/v43/github"

// WorkflowRunEvent is sent when a GitHub Actions workflow run is requested,
// in progress or completed.
type WorkflowRunEvent struct {
	github.WorkflowRunEvent
}

func (*WorkflowRunEvent) EventType() string { return TypeWorkflowRun }

func (e *WorkflowRunEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("workflow_run", e.WorkflowRun != nil, func() {
		r.str("workflow_run.name", e.WorkflowRun.GetName())
		r.str("workflow_run.status", e.WorkflowRun.GetStatus())
	})
	return r.err(TypeWorkflowRun)
}

// WorkflowJobEvent is sent for job activity of a GitHub Actions workflow.
type WorkflowJobEvent struct {
	github.WorkflowJobEvent
}

func (*WorkflowJobEvent) EventType() string { return TypeWorkflowJob }

func (e *WorkflowJobEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("workflow_job", e.WorkflowJob != nil, func() {
		r.str("workflow_job.name", e.WorkflowJob.GetName())
		r.str("workflow_job.status", e.WorkflowJob.GetStatus())
	})
	return r.err(TypeWorkflowJob)
}

// CheckSuiteEvent is sent for check suite activity.
type CheckSuiteEvent struct {
	github.CheckSuiteEvent
}

func (*CheckSuiteEvent) EventType() string { return TypeCheckSuite }

func (e *CheckSuiteEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("check_suite", e.CheckSuite != nil, func() {
		r.str("check_suite.head_sha", e.CheckSuite.GetHeadSHA())
		r.str("check_suite.status", e.CheckSuite.GetStatus())
	})
	return r.err(TypeCheckSuite)
}

// CheckRunEvent is sent for check run activity.
type CheckRunEvent struct {
	github.CheckRunEvent
}

func (*CheckRunEvent) EventType() string { return TypeCheckRun }

func (e *CheckRunEvent) Validate() error {
	var r required
	r.str("action", e.GetAction())
	r.nested("check_run", e.CheckRun != nil, func() {
		r.str("check_run.name", e.CheckRun.GetName())
		r.str("check_run.status", e.CheckRun.GetStatus())
	})
	return r.err(TypeCheckRun)
}

// StatusEvent is sent when the status of a commit changes.
// It has no action field.
type StatusEvent struct {
	github.StatusEvent
}

func (*StatusEvent) EventType() string { return TypeStatus }

func (e *StatusEvent) Validate() error {
	var r required
	r.str("sha", e.GetSHA())
	r.str("state", e.GetState())
	r.str("context", e.GetContext())
	return r.err(TypeStatus)
}
