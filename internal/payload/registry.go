package payload

// Supported X-GitHub-Event header values.
const (
	TypePing                     = "ping"
	TypeRepository               = "repository"
	TypePush                     = "push"
	TypePullRequest              = "pull_request"
	TypeIssues                   = "issues"
	TypeOrganization             = "organization"
	TypeTeam                     = "team"
	TypeWorkflowRun              = "workflow_run"
	TypeWorkflowJob              = "workflow_job"
	TypeCheckSuite               = "check_suite"
	TypeCheckRun                 = "check_run"
	TypeRelease                  = "release"
	TypeStar                     = "star"
	TypeWatch                    = "watch"
	TypeFork                     = "fork"
	TypeMember                   = "member"
	TypeDeployment               = "deployment"
	TypeDeploymentStatus         = "deployment_status"
	TypePullRequestReview        = "pull_request_review"
	TypePullRequestReviewComment = "pull_request_review_comment"
	TypeIssueComment             = "issue_comment"
	TypeCommitComment            = "commit_comment"
	TypeCreate                   = "create"
	TypeDelete                   = "delete"
	TypeStatus                   = "status"
	TypeDiscussion               = "discussion"
	TypeDiscussionComment        = "discussion_comment"
	TypePackage                  = "package"
	TypeGollum                   = "gollum"
	TypeAuditLogStreaming        = "audit_log_streaming"
)

// Variant describes a payload variant.
type Variant struct {
	// Type is the X-GitHub-Event header value.
	Type string
	// DisplayName is the human readable name of the variant.
	DisplayName string
	// New returns an empty payload of the variant to decode into.
	New func() Payload
}

// variants is ordered, the order is the one of SupportedEvents().
var variants = []Variant{
	{TypePing, "ping", func() Payload { return &PingEvent{} }},
	{TypeRepository, "repository", func() Payload { return &RepositoryEvent{} }},
	{TypePush, "push", func() Payload { return &PushEvent{} }},
	{TypePullRequest, "pull request", func() Payload { return &PullRequestEvent{} }},
	{TypeIssues, "issues", func() Payload { return &IssuesEvent{} }},
	{TypeOrganization, "organization", func() Payload { return &OrganizationEvent{} }},
	{TypeTeam, "team", func() Payload { return &TeamEvent{} }},
	{TypeWorkflowRun, "workflow run", func() Payload { return &WorkflowRunEvent{} }},
	{TypeWorkflowJob, "workflow job", func() Payload { return &WorkflowJobEvent{} }},
	{TypeCheckSuite, "check suite", func() Payload { return &CheckSuiteEvent{} }},
	{TypeCheckRun, "check run", func() Payload { return &CheckRunEvent{} }},
	{TypeRelease, "release", func() Payload { return &ReleaseEvent{} }},
	{TypeStar, "star", func() Payload { return &StarEvent{} }},
	{TypeWatch, "watch", func() Payload { return &WatchEvent{} }},
	{TypeFork, "fork", func() Payload { return &ForkEvent{} }},
	{TypeMember, "member", func() Payload { return &MemberEvent{} }},
	{TypeDeployment, "deployment", func() Payload { return &DeploymentEvent{} }},
	{TypeDeploymentStatus, "deployment status", func() Payload { return &DeploymentStatusEvent{} }},
	{TypePullRequestReview, "pull request review", func() Payload { return &PullRequestReviewEvent{} }},
	{TypePullRequestReviewComment, "pull request review comment", func() Payload { return &PullRequestReviewCommentEvent{} }},
	{TypeIssueComment, "issue comment", func() Payload { return &IssueCommentEvent{} }},
	{TypeCommitComment, "commit comment", func() Payload { return &CommitCommentEvent{} }},
	{TypeCreate, "create", func() Payload { return &CreateEvent{} }},
	{TypeDelete, "delete", func() Payload { return &DeleteEvent{} }},
	{TypeStatus, "status", func() Payload { return &StatusEvent{} }},
	{TypeDiscussion, "discussion", func() Payload { return &DiscussionEvent{} }},
	{TypeDiscussionComment, "discussion comment", func() Payload { return &DiscussionCommentEvent{} }},
	{TypePackage, "package", func() Payload { return &PackageEvent{} }},
	{TypeGollum, "gollum", func() Payload { return &GollumEvent{} }},
	{TypeAuditLogStreaming, "audit log", func() Payload { return &AuditLogStreamingEvent{} }},
}

var variantsByType = func() map[string]*Variant {
	result := make(map[string]*Variant, len(variants))
	for i := range variants {
		result[variants[i].Type] = &variants[i]
	}

	return result
}()

// Lookup returns the Variant for an X-GitHub-Event header value.
// If the event type is not supported, nil is returned.
func Lookup(eventType string) *Variant {
	return variantsByType[eventType]
}

// SupportedEvents returns the supported event types in a fixed order.
func SupportedEvents() []string {
	result := make([]string, 0, len(variants))
	for _, v := range variants {
		result = append(result, v.Type)
	}

	return result
}
