package dispatch

import (
	"fmt"

	"github.com/simplesurance/ghreceiver/internal/payload"
)

// ackFunc returns the body of the success response for a validated payload.
type ackFunc func(payload.Payload) any

func ackOf[T payload.Payload](fn func(T) any) ackFunc {
	return func(p payload.Payload) any {
		return fn(p.(T))
	}
}

func actionMsg(subject, action string) string {
	return fmt.Sprintf("%s %s event processed", subject, action)
}

type pingAck struct {
	Message string `json:"message"`
	Zen     string `json:"zen"`
	HookID  int64  `json:"hook_id"`
}

type repositoryAck struct {
	Message    string `json:"message"`
	Repository string `json:"repository"`
	Action     string `json:"action"`
}

type pushAck struct {
	Message    string `json:"message"`
	Repository string `json:"repository"`
	Ref        string `json:"ref"`
	Commits    int    `json:"commits"`
}

type pullRequestAck struct {
	Message    string `json:"message"`
	Repository string `json:"repository"`
	PRNumber   int    `json:"pr_number"`
	Action     string `json:"action"`
}

type issuesAck struct {
	Message     string `json:"message"`
	Repository  string `json:"repository"`
	IssueNumber int    `json:"issue_number"`
	Action      string `json:"action"`
}

type organizationAck struct {
	Message      string `json:"message"`
	Organization string `json:"organization"`
	Action       string `json:"action"`
}

type teamAck struct {
	Message string `json:"message"`
	Team    string `json:"team"`
	Action  string `json:"action"`
}

type workflowRunAck struct {
	Message    string  `json:"message"`
	Workflow   string  `json:"workflow"`
	Status     string  `json:"status"`
	Conclusion *string `json:"conclusion"`
	Action     string  `json:"action"`
}

type workflowJobAck struct {
	Message    string  `json:"message"`
	Job        string  `json:"job"`
	Status     string  `json:"status"`
	Conclusion *string `json:"conclusion"`
	Action     string  `json:"action"`
}

type checkSuiteAck struct {
	Message    string  `json:"message"`
	HeadSHA    string  `json:"head_sha"`
	Status     string  `json:"status"`
	Conclusion *string `json:"conclusion"`
	Action     string  `json:"action"`
}

type checkRunAck struct {
	Message    string  `json:"message"`
	CheckRun   string  `json:"check_run"`
	Status     string  `json:"status"`
	Conclusion *string `json:"conclusion"`
	Action     string  `json:"action"`
}

type releaseAck struct {
	Message string  `json:"message"`
	TagName string  `json:"tag_name"`
	Name    *string `json:"name"`
	Action  string  `json:"action"`
}

type starAck struct {
	Message         string `json:"message"`
	Repository      string `json:"repository"`
	StargazersCount int    `json:"stargazers_count"`
	Action          string `json:"action"`
}

type watchAck struct {
	Message       string `json:"message"`
	Repository    string `json:"repository"`
	WatchersCount int    `json:"watchers_count"`
	Action        string `json:"action"`
}

type forkAck struct {
	Message            string `json:"message"`
	ForkedRepository   string `json:"forked_repository"`
	OriginalRepository string `json:"original_repository"`
	ForksCount         int    `json:"forks_count"`
}

type memberAck struct {
	Message    string `json:"message"`
	Member     string `json:"member"`
	Repository string `json:"repository"`
	Action     string `json:"action"`
}

type deploymentAck struct {
	Message      string `json:"message"`
	DeploymentID int64  `json:"deployment_id"`
	Environment  string `json:"environment"`
	Action       string `json:"action"`
}

type deploymentStatusAck struct {
	Message      string `json:"message"`
	DeploymentID int64  `json:"deployment_id"`
	State        string `json:"state"`
	Environment  string `json:"environment"`
	Action       string `json:"action"`
}

type pullRequestReviewAck struct {
	Message     string `json:"message"`
	PRNumber    int    `json:"pr_number"`
	ReviewState string `json:"review_state"`
	Action      string `json:"action"`
}

type pullRequestReviewCommentAck struct {
	Message   string `json:"message"`
	PRNumber  int    `json:"pr_number"`
	CommentID int64  `json:"comment_id"`
	Action    string `json:"action"`
}

type issueCommentAck struct {
	Message     string `json:"message"`
	IssueNumber int    `json:"issue_number"`
	CommentID   int64  `json:"comment_id"`
	Action      string `json:"action"`
}

type commitCommentAck struct {
	Message   string `json:"message"`
	CommitID  string `json:"commit_id"`
	CommentID int64  `json:"comment_id"`
	Action    string `json:"action"`
}

type refAck struct {
	Message    string `json:"message"`
	Ref        string `json:"ref"`
	RefType    string `json:"ref_type"`
	Repository string `json:"repository"`
}

type statusAck struct {
	Message string `json:"message"`
	State   string `json:"state"`
	Context string `json:"context"`
	SHA     string `json:"sha"`
}

type discussionAck struct {
	Message          string `json:"message"`
	DiscussionNumber int    `json:"discussion_number"`
	Title            string `json:"title"`
	Action           string `json:"action"`
}

type discussionCommentAck struct {
	Message          string `json:"message"`
	DiscussionNumber int    `json:"discussion_number"`
	CommentID        int64  `json:"comment_id"`
	Action           string `json:"action"`
}

type packageAck struct {
	Message     string `json:"message"`
	PackageName string `json:"package_name"`
	PackageType string `json:"package_type"`
	Action      string `json:"action"`
}

type gollumAck struct {
	Message    string `json:"message"`
	PagesCount int    `json:"pages_count"`
	Repository string `json:"repository"`
}

type auditLogAck struct {
	Message         string `json:"message"`
	ProcessedEvents int    `json:"processed_events"`
}

// acks contains an ackFunc for every supported event type.
// The fields that are accessed have been checked by Validate before.
var acks = map[string]ackFunc{
	payload.TypePing: ackOf(func(ev *payload.PingEvent) any {
		return &pingAck{
			Message: "Ping received successfully",
			Zen:     ev.GetZen(),
			HookID:  ev.GetHookID(),
		}
	}),

	payload.TypeRepository: ackOf(func(ev *payload.RepositoryEvent) any {
		return &repositoryAck{
			Message:    actionMsg("Repository", ev.GetAction()),
			Repository: ev.GetRepo().GetFullName(),
			Action:     ev.GetAction(),
		}
	}),

	payload.TypePush: ackOf(func(ev *payload.PushEvent) any {
		return &pushAck{
			Message:    "Push event processed",
			Repository: ev.GetRepo().GetFullName(),
			Ref:        ev.GetRef(),
			Commits:    len(ev.Commits),
		}
	}),

	payload.TypePullRequest: ackOf(func(ev *payload.PullRequestEvent) any {
		return &pullRequestAck{
			Message:    actionMsg("Pull request", ev.GetAction()),
			Repository: ev.GetRepo().GetFullName(),
			PRNumber:   ev.GetNumber(),
			Action:     ev.GetAction(),
		}
	}),

	payload.TypeIssues: ackOf(func(ev *payload.IssuesEvent) any {
		return &issuesAck{
			Message:     actionMsg("Issue", ev.GetAction()),
			Repository:  ev.GetRepo().GetFullName(),
			IssueNumber: ev.GetIssue().GetNumber(),
			Action:      ev.GetAction(),
		}
	}),

	payload.TypeOrganization: ackOf(func(ev *payload.OrganizationEvent) any {
		return &organizationAck{
			Message:      actionMsg("Organization", ev.GetAction()),
			Organization: ev.GetOrganization().GetLogin(),
			Action:       ev.GetAction(),
		}
	}),

	payload.TypeTeam: ackOf(func(ev *payload.TeamEvent) any {
		return &teamAck{
			Message: actionMsg("Team", ev.GetAction()),
			Team:    ev.GetTeam().GetName(),
			Action:  ev.GetAction(),
		}
	}),

	payload.TypeWorkflowRun: ackOf(func(ev *payload.WorkflowRunEvent) any {
		run := ev.GetWorkflowRun()
		return &workflowRunAck{
			Message:    actionMsg("Workflow run", ev.GetAction()),
			Workflow:   run.GetName(),
			Status:     run.GetStatus(),
			Conclusion: run.Conclusion,
			Action:     ev.GetAction(),
		}
	}),

	payload.TypeWorkflowJob: ackOf(func(ev *payload.WorkflowJobEvent) any {
		job := ev.GetWorkflowJob()
		return &workflowJobAck{
			Message:    actionMsg("Workflow job", ev.GetAction()),
			Job:        job.GetName(),
			Status:     job.GetStatus(),
			Conclusion: job.Conclusion,
			Action:     ev.GetAction(),
		}
	}),

	payload.TypeCheckSuite: ackOf(func(ev *payload.CheckSuiteEvent) any {
		cs := ev.GetCheckSuite()
		return &checkSuiteAck{
			Message:    actionMsg("Check suite", ev.GetAction()),
			HeadSHA:    cs.GetHeadSHA(),
			Status:     cs.GetStatus(),
			Conclusion: cs.Conclusion,
			Action:     ev.GetAction(),
		}
	}),

	payload.TypeCheckRun: ackOf(func(ev *payload.CheckRunEvent) any {
		cr := ev.GetCheckRun()
		return &checkRunAck{
			Message:    actionMsg("Check run", ev.GetAction()),
			CheckRun:   cr.GetName(),
			Status:     cr.GetStatus(),
			Conclusion: cr.Conclusion,
			Action:     ev.GetAction(),
		}
	}),

	payload.TypeRelease: ackOf(func(ev *payload.ReleaseEvent) any {
		return &releaseAck{
			Message: actionMsg("Release", ev.GetAction()),
			TagName: ev.GetRelease().GetTagName(),
			Name:    ev.GetRelease().Name,
			Action:  ev.GetAction(),
		}
	}),

	payload.TypeStar: ackOf(func(ev *payload.StarEvent) any {
		return &starAck{
			Message:         actionMsg("Star", ev.GetAction()),
			Repository:      ev.GetRepo().GetFullName(),
			StargazersCount: ev.GetRepo().GetStargazersCount(),
			Action:          ev.GetAction(),
		}
	}),

	payload.TypeWatch: ackOf(func(ev *payload.WatchEvent) any {
		return &watchAck{
			Message:       actionMsg("Watch", ev.GetAction()),
			Repository:    ev.GetRepo().GetFullName(),
			WatchersCount: ev.GetRepo().GetWatchersCount(),
			Action:        ev.GetAction(),
		}
	}),

	payload.TypeFork: ackOf(func(ev *payload.ForkEvent) any {
		return &forkAck{
			Message:            "Fork event processed",
			ForkedRepository:   ev.GetForkee().GetFullName(),
			OriginalRepository: ev.GetRepo().GetFullName(),
			ForksCount:         ev.GetRepo().GetForksCount(),
		}
	}),

	payload.TypeMember: ackOf(func(ev *payload.MemberEvent) any {
		return &memberAck{
			Message:    actionMsg("Member", ev.GetAction()),
			Member:     ev.GetMember().GetLogin(),
			Repository: ev.GetRepo().GetFullName(),
			Action:     ev.GetAction(),
		}
	}),

	payload.TypeDeployment: ackOf(func(ev *payload.DeploymentEvent) any {
		return &deploymentAck{
			Message:      actionMsg("Deployment", ev.GetAction()),
			DeploymentID: ev.GetDeployment().GetID(),
			Environment:  ev.GetDeployment().GetEnvironment(),
			Action:       ev.GetAction(),
		}
	}),

	payload.TypeDeploymentStatus: ackOf(func(ev *payload.DeploymentStatusEvent) any {
		return &deploymentStatusAck{
			Message:      actionMsg("Deployment status", ev.GetAction()),
			DeploymentID: ev.GetDeployment().GetID(),
			State:        ev.GetDeploymentStatus().GetState(),
			Environment:  ev.Environment(),
			Action:       ev.GetAction(),
		}
	}),

	payload.TypePullRequestReview: ackOf(func(ev *payload.PullRequestReviewEvent) any {
		return &pullRequestReviewAck{
			Message:     actionMsg("PR Review", ev.GetAction()),
			PRNumber:    ev.GetPullRequest().GetNumber(),
			ReviewState: ev.GetReview().GetState(),
			Action:      ev.GetAction(),
		}
	}),

	payload.TypePullRequestReviewComment: ackOf(func(ev *payload.PullRequestReviewCommentEvent) any {
		return &pullRequestReviewCommentAck{
			Message:   actionMsg("PR Review Comment", ev.GetAction()),
			PRNumber:  ev.GetPullRequest().GetNumber(),
			CommentID: ev.GetComment().GetID(),
			Action:    ev.GetAction(),
		}
	}),

	payload.TypeIssueComment: ackOf(func(ev *payload.IssueCommentEvent) any {
		return &issueCommentAck{
			Message:     actionMsg("Issue comment", ev.GetAction()),
			IssueNumber: ev.GetIssue().GetNumber(),
			CommentID:   ev.GetComment().GetID(),
			Action:      ev.GetAction(),
		}
	}),

	payload.TypeCommitComment: ackOf(func(ev *payload.CommitCommentEvent) any {
		return &commitCommentAck{
			Message:   actionMsg("Commit comment", ev.GetAction()),
			CommitID:  ev.GetComment().GetCommitID(),
			CommentID: ev.GetComment().GetID(),
			Action:    ev.GetAction(),
		}
	}),

	payload.TypeCreate: ackOf(func(ev *payload.CreateEvent) any {
		return &refAck{
			Message:    actionMsg("Create", ev.GetRefType()),
			Ref:        ev.GetRef(),
			RefType:    ev.GetRefType(),
			Repository: ev.GetRepo().GetFullName(),
		}
	}),

	payload.TypeDelete: ackOf(func(ev *payload.DeleteEvent) any {
		return &refAck{
			Message:    actionMsg("Delete", ev.GetRefType()),
			Ref:        ev.GetRef(),
			RefType:    ev.GetRefType(),
			Repository: ev.GetRepo().GetFullName(),
		}
	}),

	payload.TypeStatus: ackOf(func(ev *payload.StatusEvent) any {
		return &statusAck{
			Message: "Status event processed",
			State:   ev.GetState(),
			Context: ev.GetContext(),
			SHA:     ev.GetSHA(),
		}
	}),

	payload.TypeDiscussion: ackOf(func(ev *payload.DiscussionEvent) any {
		return &discussionAck{
			Message:          actionMsg("Discussion", ev.GetAction()),
			DiscussionNumber: ev.GetDiscussion().GetNumber(),
			Title:            ev.GetDiscussion().GetTitle(),
			Action:           ev.GetAction(),
		}
	}),

	payload.TypeDiscussionComment: ackOf(func(ev *payload.DiscussionCommentEvent) any {
		return &discussionCommentAck{
			Message:          actionMsg("Discussion comment", ev.GetAction()),
			DiscussionNumber: ev.GetDiscussion().GetNumber(),
			CommentID:        ev.GetComment().GetID(),
			Action:           ev.GetAction(),
		}
	}),

	payload.TypePackage: ackOf(func(ev *payload.PackageEvent) any {
		return &packageAck{
			Message:     actionMsg("Package", ev.GetAction()),
			PackageName: ev.GetPackage().GetName(),
			PackageType: ev.GetPackage().GetPackageType(),
			Action:      ev.GetAction(),
		}
	}),

	payload.TypeGollum: ackOf(func(ev *payload.GollumEvent) any {
		return &gollumAck{
			Message:    "Gollum event processed",
			PagesCount: len(ev.Pages),
			Repository: ev.GetRepo().GetFullName(),
		}
	}),

	payload.TypeAuditLogStreaming: ackOf(func(ev *payload.AuditLogStreamingEvent) any {
		return &auditLogAck{
			Message:         "Audit log events processed successfully",
			ProcessedEvents: len(ev.Entries),
		}
	}),
}
