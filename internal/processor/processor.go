// Package processor provides a dispatch.Sink that records webhook events as
// structured log messages.
package processor

import (
	"context"
	"fmt"

	"github.com/google/go-github/v43/github"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/simplesurance/ghreceiver/internal/logfields"
	"github.com/simplesurance/ghreceiver/internal/payload"
)

const loggerName = "event-processor"

// Logger logs a message for every processed payload.
type Logger struct {
	logger *zap.Logger
}

func New() *Logger {
	return &Logger{
		logger: zap.L().Named(loggerName),
	}
}

// record is the log message describing a processed payload.
type record struct {
	level  zapcore.Level
	msg    string
	fields []zap.Field
}

func (r *record) add(fields ...zap.Field) {
	r.fields = append(r.fields, fields...)
}

// warnIf raises the level of the record to warn if cond is true.
func (r *record) warnIf(cond bool) {
	if cond && r.level < zapcore.WarnLevel {
		r.level = zapcore.WarnLevel
	}
}

// Process logs a message describing ev.
// ev must have passed its Validate() method.
func (l *Logger) Process(ctx context.Context, ev payload.Payload) error {
	rec, err := describe(ev)
	if err != nil {
		return err
	}

	logger := l.logger.With(logfields.FromContext(ctx)...)

	rec.add(
		logfields.EventType(ev.EventType()),
		logfields.Event(eventName(ev)),
	)

	if ce := logger.Check(rec.level, rec.msg); ce != nil {
		ce.Write(rec.fields...)
	}

	return nil
}

func eventName(ev payload.Payload) string {
	if _, ok := ev.(*payload.AuditLogEntry); ok {
		return "github_audit_log_entry_processed"
	}

	return "github_" + ev.EventType() + "_event_processed"
}

type senderGetter interface {
	GetSender() *github.User
}

// orgGetter and organizationGetter cover both names go-github uses for the
// organization of an event.
type orgGetter interface {
	GetOrg() *github.Organization
}

type organizationGetter interface {
	GetOrganization() *github.Organization
}

func envelopeFields(ev any) []zap.Field {
	var fields []zap.Field

	if sg, ok := ev.(senderGetter); ok {
		if sender := sg.GetSender().GetLogin(); sender != "" {
			fields = append(fields, logfields.Sender(sender))
		}
	}

	var org *github.Organization
	switch og := ev.(type) {
	case orgGetter:
		org = og.GetOrg()
	case organizationGetter:
		org = og.GetOrganization()
	}

	if login := org.GetLogin(); login != "" {
		fields = append(fields, logfields.Organization(login))
	}

	return fields
}

func repoFields(repo *github.Repository) []zap.Field {
	if repo == nil {
		return nil
	}

	fields := []zap.Field{logfields.Repository(repo.GetFullName())}
	if visibility := repo.GetVisibility(); visibility != "" {
		fields = append(fields, zap.String("github.repository_visibility", visibility))
	}

	return fields
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}

	return sha
}

func strOrNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}

	return *s
}

func isFailedConclusion(conclusion *string) bool {
	if conclusion == nil {
		return false
	}

	switch *conclusion {
	case "failure", "timed_out", "startup_failure":
		return true
	default:
		return false
	}
}

func describe(ev payload.Payload) (*record, error) {
	rec := record{level: zapcore.InfoLevel}

	switch ev := ev.(type) {
	case *payload.PingEvent:
		rec.msg = "webhook ping received"
		rec.add(zap.String("github.zen", ev.GetZen()), zap.Int64("github.hook_id", ev.GetHookID()))
		if ev.Hook != nil {
			rec.add(zap.Strings("github.hook_events", ev.Hook.Events))
		}

	case *payload.RepositoryEvent:
		rec.msg = fmt.Sprintf("repository %s", ev.GetAction())
		rec.add(logfields.Action(ev.GetAction()))
		rec.add(repoFields(ev.Repo)...)
		rec.warnIf(ev.GetAction() == "deleted" || ev.GetAction() == "publicized")

	case *payload.PushEvent:
		rec.msg = fmt.Sprintf("%d commit(s) pushed", len(ev.Commits))
		rec.add(
			logfields.Ref(ev.GetRef()),
			logfields.Commit(ev.GetAfter()),
			zap.Int("git.commit_count", len(ev.Commits)),
			zap.Bool("git.forced", ev.GetForced()),
		)
		if pusher := ev.GetPusher().GetName(); pusher != "" {
			rec.add(zap.String("git.pusher", pusher))
		}
		if repo := ev.GetRepo(); repo != nil {
			rec.add(logfields.Repository(repo.GetFullName()))
		}
		rec.warnIf(ev.GetForced())

	case *payload.PullRequestEvent:
		rec.msg = fmt.Sprintf("pull request #%d %s", ev.GetNumber(), ev.GetAction())
		rec.add(logfields.Action(ev.GetAction()), logfields.PullRequest(ev.GetNumber()))
		if pr := ev.PullRequest; pr != nil {
			rec.add(
				zap.String("github.pull_request_title", pr.GetTitle()),
				zap.Bool("github.pull_request_merged", pr.GetMerged()),
			)
			if pr.Head != nil {
				rec.add(zap.String("git.head_ref", pr.Head.GetRef()), logfields.Commit(pr.Head.GetSHA()))
			}
			if pr.Base != nil {
				rec.add(zap.String("git.base_ref", pr.Base.GetRef()))
			}
		}
		if label := ev.GetLabel().GetName(); label != "" {
			rec.add(zap.String("github.label", label))
		}
		rec.add(repoFields(ev.Repo)...)

	case *payload.IssuesEvent:
		issue := ev.GetIssue()
		rec.msg = fmt.Sprintf("issue #%d %s", issue.GetNumber(), ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			logfields.Issue(issue.GetNumber()),
			zap.String("github.issue_title", issue.GetTitle()),
		)
		if label := ev.GetLabel().GetName(); label != "" {
			rec.add(zap.String("github.label", label))
		}
		rec.add(repoFields(ev.Repo)...)

	case *payload.OrganizationEvent:
		rec.msg = fmt.Sprintf("organization %s", ev.GetAction())
		rec.add(logfields.Action(ev.GetAction()))
		if m := ev.Membership; m != nil {
			rec.add(
				zap.String("github.membership_role", m.GetRole()),
				zap.String("github.membership_state", m.GetState()),
			)
			if member := m.GetUser().GetLogin(); member != "" {
				rec.add(zap.String("github.member", member))
			}
		}
		rec.warnIf(ev.GetAction() == "deleted" || ev.GetAction() == "renamed")

	case *payload.TeamEvent:
		rec.msg = fmt.Sprintf("team %s", ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			zap.String("github.team", ev.GetTeam().GetName()),
			zap.String("github.team_privacy", ev.GetTeam().GetPrivacy()),
		)
		rec.add(repoFields(ev.Repo)...)

	case *payload.WorkflowRunEvent:
		run := ev.GetWorkflowRun()
		rec.msg = fmt.Sprintf("workflow run %q %s", run.GetName(), ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			zap.String("github.workflow", run.GetName()),
			zap.Int("github.workflow_run_number", run.GetRunNumber()),
			zap.String("github.workflow_status", run.GetStatus()),
			zap.String("github.workflow_conclusion", strOrNA(run.Conclusion)),
			zap.String("git.head_ref", run.GetHeadBranch()),
			logfields.Commit(shortSHA(run.GetHeadSHA())),
		)
		rec.add(repoFields(ev.Repo)...)
		rec.warnIf(isFailedConclusion(run.Conclusion))

	case *payload.WorkflowJobEvent:
		job := ev.GetWorkflowJob()
		rec.msg = fmt.Sprintf("workflow job %q %s", job.GetName(), ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			zap.String("github.workflow_job", job.GetName()),
			zap.Int64("github.workflow_run_id", job.GetRunID()),
			zap.String("github.workflow_status", job.GetStatus()),
			zap.String("github.workflow_conclusion", strOrNA(job.Conclusion)),
			zap.String("github.runner", strOrNA(job.RunnerName)),
			zap.Int("github.workflow_job_steps", len(job.Steps)),
		)
		rec.add(repoFields(ev.Repo)...)
		rec.warnIf(isFailedConclusion(job.Conclusion))

	case *payload.CheckSuiteEvent:
		cs := ev.GetCheckSuite()
		rec.msg = fmt.Sprintf("check suite %s", ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			zap.Int64("github.check_suite_id", cs.GetID()),
			logfields.Commit(shortSHA(cs.GetHeadSHA())),
			zap.String("github.check_status", cs.GetStatus()),
			zap.String("github.check_conclusion", strOrNA(cs.Conclusion)),
		)
		if app := cs.GetApp().GetName(); app != "" {
			rec.add(zap.String("github.app", app))
		}
		rec.add(repoFields(ev.Repo)...)
		rec.warnIf(isFailedConclusion(cs.Conclusion))

	case *payload.CheckRunEvent:
		cr := ev.GetCheckRun()
		rec.msg = fmt.Sprintf("check run %q %s", cr.GetName(), ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			zap.String("github.check_run", cr.GetName()),
			logfields.Commit(shortSHA(cr.GetHeadSHA())),
			zap.String("github.check_status", cr.GetStatus()),
			zap.String("github.check_conclusion", strOrNA(cr.Conclusion)),
		)
		if cr.Output != nil {
			rec.add(zap.String("github.check_output_title", strOrNA(cr.Output.Title)))
		}
		rec.add(repoFields(ev.Repo)...)
		rec.warnIf(isFailedConclusion(cr.Conclusion))

	case *payload.ReleaseEvent:
		rel := ev.GetRelease()
		rec.msg = fmt.Sprintf("release %s %s", rel.GetTagName(), ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			zap.String("github.release_tag", rel.GetTagName()),
			zap.String("github.release_name", strOrNA(rel.Name)),
			zap.Bool("github.release_draft", rel.GetDraft()),
			zap.Bool("github.release_prerelease", rel.GetPrerelease()),
		)
		rec.add(repoFields(ev.Repo)...)

	case *payload.StarEvent:
		rec.msg = fmt.Sprintf("star %s", ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			zap.Int("github.stargazers_count", ev.GetRepo().GetStargazersCount()),
		)
		rec.add(repoFields(ev.Repo)...)

	case *payload.WatchEvent:
		rec.msg = fmt.Sprintf("watch %s", ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			zap.Int("github.watchers_count", ev.GetRepo().GetWatchersCount()),
		)
		rec.add(repoFields(ev.Repo)...)

	case *payload.ForkEvent:
		rec.msg = fmt.Sprintf("repository forked to %s", ev.GetForkee().GetFullName())
		rec.add(
			zap.String("github.fork", ev.GetForkee().GetFullName()),
			zap.Int("github.forks_count", ev.GetRepo().GetForksCount()),
		)
		rec.add(repoFields(ev.Repo)...)

	case *payload.MemberEvent:
		member := ev.GetMember()
		rec.msg = fmt.Sprintf("collaborator %s %s", member.GetLogin(), ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			zap.String("github.member", member.GetLogin()),
			zap.Bool("github.member_site_admin", member.GetSiteAdmin()),
		)
		rec.add(repoFields(ev.Repo)...)

	case *payload.DeploymentEvent:
		d := ev.GetDeployment()
		rec.msg = fmt.Sprintf("deployment to %s %s", d.GetEnvironment(), ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			zap.Int64("github.deployment_id", d.GetID()),
			zap.String("github.environment", d.GetEnvironment()),
			logfields.Ref(d.GetRef()),
			logfields.Commit(shortSHA(d.GetSHA())),
		)
		rec.add(repoFields(ev.Repo)...)

	case *payload.DeploymentStatusEvent:
		state := ev.GetDeploymentStatus().GetState()
		rec.msg = fmt.Sprintf("deployment status changed to %s", state)
		rec.add(
			logfields.Action(ev.GetAction()),
			zap.Int64("github.deployment_id", ev.GetDeployment().GetID()),
			zap.String("github.deployment_state", state),
			zap.String("github.environment", ev.Environment()),
		)
		rec.add(repoFields(ev.Repo)...)
		rec.warnIf(state == "failure" || state == "error")

	case *payload.PullRequestReviewEvent:
		prNumber := ev.GetPullRequest().GetNumber()
		rec.msg = fmt.Sprintf("review of pull request #%d %s", prNumber, ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			logfields.PullRequest(prNumber),
			zap.String("github.review_state", ev.GetReview().GetState()),
		)
		if reviewer := ev.GetReview().GetUser().GetLogin(); reviewer != "" {
			rec.add(zap.String("github.reviewer", reviewer))
		}
		rec.add(repoFields(ev.Repo)...)

	case *payload.PullRequestReviewCommentEvent:
		prNumber := ev.GetPullRequest().GetNumber()
		rec.msg = fmt.Sprintf("review comment on pull request #%d %s", prNumber, ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			logfields.PullRequest(prNumber),
			zap.Int64("github.comment_id", ev.GetComment().GetID()),
			zap.String("github.comment_path", ev.GetComment().GetPath()),
		)
		rec.add(repoFields(ev.Repo)...)

	case *payload.IssueCommentEvent:
		issueNumber := ev.GetIssue().GetNumber()
		rec.msg = fmt.Sprintf("comment on issue #%d %s", issueNumber, ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			logfields.Issue(issueNumber),
			zap.Int64("github.comment_id", ev.GetComment().GetID()),
		)
		rec.add(repoFields(ev.Repo)...)

	case *payload.CommitCommentEvent:
		commitID := ev.GetComment().GetCommitID()
		rec.msg = fmt.Sprintf("comment on commit %s %s", shortSHA(commitID), ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			logfields.Commit(commitID),
			zap.Int64("github.comment_id", ev.GetComment().GetID()),
		)
		rec.add(repoFields(ev.Repo)...)

	case *payload.CreateEvent:
		rec.msg = fmt.Sprintf("%s %s created", ev.GetRefType(), ev.GetRef())
		rec.add(logfields.Ref(ev.GetRef()), zap.String("git.ref_type", ev.GetRefType()))
		rec.add(repoFields(ev.Repo)...)

	case *payload.DeleteEvent:
		rec.msg = fmt.Sprintf("%s %s deleted", ev.GetRefType(), ev.GetRef())
		rec.add(logfields.Ref(ev.GetRef()), zap.String("git.ref_type", ev.GetRefType()))
		rec.add(repoFields(ev.Repo)...)

	case *payload.StatusEvent:
		rec.msg = fmt.Sprintf("commit status %q changed to %s", ev.GetContext(), ev.GetState())
		rec.add(
			logfields.Commit(ev.GetSHA()),
			zap.String("github.status_context", ev.GetContext()),
			zap.String("github.status_state", ev.GetState()),
			zap.String("github.status_description", strOrNA(ev.Description)),
		)
		rec.add(repoFields(ev.Repo)...)
		rec.warnIf(ev.GetState() == "failure" || ev.GetState() == "error")

	case *payload.DiscussionEvent:
		discussion := ev.GetDiscussion()
		rec.msg = fmt.Sprintf("discussion #%d %s", discussion.GetNumber(), ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			zap.Int("github.discussion", discussion.GetNumber()),
			zap.String("github.discussion_title", discussion.GetTitle()),
		)
		if category := discussion.GetDiscussionCategory().GetName(); category != "" {
			rec.add(zap.String("github.discussion_category", category))
		}
		rec.add(repoFields(ev.Repo)...)

	case *payload.DiscussionCommentEvent:
		discussionNumber := ev.GetDiscussion().GetNumber()
		rec.msg = fmt.Sprintf("comment on discussion #%d %s", discussionNumber, ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			zap.Int("github.discussion", discussionNumber),
			zap.Int64("github.comment_id", ev.GetComment().GetID()),
		)
		if author := ev.GetComment().GetUser().GetLogin(); author != "" {
			rec.add(zap.String("github.comment_author", author))
		}
		rec.add(repoFields(ev.Repo)...)

	case *payload.PackageEvent:
		pkg := ev.GetPackage()
		rec.msg = fmt.Sprintf("package %s %s", pkg.GetName(), ev.GetAction())
		rec.add(
			logfields.Action(ev.GetAction()),
			zap.String("github.package", pkg.GetName()),
			zap.String("github.package_type", pkg.GetPackageType()),
		)
		if version := pkg.GetPackageVersion().GetVersion(); version != "" {
			rec.add(zap.String("github.package_version", version))
		}
		rec.add(repoFields(ev.Repo)...)

	case *payload.GollumEvent:
		rec.msg = fmt.Sprintf("%d wiki page(s) changed", len(ev.Pages))
		pages := make([]string, 0, len(ev.Pages))
		for _, p := range ev.Pages {
			pages = append(pages, p.GetAction()+":"+p.GetPageName())
		}
		rec.add(zap.Strings("github.wiki_pages", pages))
		rec.add(repoFields(ev.Repo)...)

	case *payload.AuditLogEntry:
		rec.msg = fmt.Sprintf("audit log entry %s", ev.Action)
		rec.add(
			logfields.Action(ev.Action),
			zap.String("audit_log.actor", ev.Actor.Login),
			zap.Stringer("audit_log.created_at", ev.CreatedAt),
			zap.String("audit_log.resource", ev.Resource),
			zap.String("audit_log.resource_type", ev.ResourceType),
		)
		if login := ev.Organization.GetLogin(); login != "" {
			rec.add(logfields.Organization(login))
		}
		if len(ev.Data) > 0 {
			rec.add(zap.ByteString("audit_log.data", ev.Data))
		}

		return &rec, nil

	default:
		return nil, fmt.Errorf("unsupported payload type: %T", ev)
	}

	rec.add(envelopeFields(ev)...)

	return &rec, nil
}
