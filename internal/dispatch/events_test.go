package dispatch

type eventTestcase struct {
	payload      string
	expectedBody string
}

// minimalEvents contains for every supported event type a payload that
// contains only the required fields and the expected acknowledgement.
var minimalEvents = map[string]eventTestcase{
	"ping": {
		payload:      `{"zen":"Keep it logically awesome.","hook_id":123456}`,
		expectedBody: `{"message":"Ping received successfully","zen":"Keep it logically awesome.","hook_id":123456}`,
	},
	"repository": {
		payload:      `{"action":"created","repository":{"id":1,"name":"test-repo","full_name":"my-org/test-repo"}}`,
		expectedBody: `{"message":"Repository created event processed","repository":"my-org/test-repo","action":"created"}`,
	},
	"push": {
		payload:      `{"ref":"refs/heads/main","commits":[{"id":"abc123","message":"fix bug"}],"repository":{"full_name":"my-org/test-repo"}}`,
		expectedBody: `{"message":"Push event processed","repository":"my-org/test-repo","ref":"refs/heads/main","commits":1}`,
	},
	"pull_request": {
		payload:      `{"action":"opened","number":42,"pull_request":{"number":42,"title":"Add feature"},"repository":{"full_name":"my-org/test-repo"}}`,
		expectedBody: `{"message":"Pull request opened event processed","repository":"my-org/test-repo","pr_number":42,"action":"opened"}`,
	},
	"issues": {
		payload:      `{"action":"closed","issue":{"number":7},"repository":{"full_name":"my-org/test-repo"}}`,
		expectedBody: `{"message":"Issue closed event processed","repository":"my-org/test-repo","issue_number":7,"action":"closed"}`,
	},
	"organization": {
		payload:      `{"action":"member_added","organization":{"login":"my-org","id":3}}`,
		expectedBody: `{"message":"Organization member_added event processed","organization":"my-org","action":"member_added"}`,
	},
	"team": {
		payload:      `{"action":"created","team":{"id":1,"name":"backend"}}`,
		expectedBody: `{"message":"Team created event processed","team":"backend","action":"created"}`,
	},
	"workflow_run": {
		payload:      `{"action":"requested","workflow_run":{"id":1,"name":"CI","status":"queued","conclusion":null}}`,
		expectedBody: `{"message":"Workflow run requested event processed","workflow":"CI","status":"queued","conclusion":null,"action":"requested"}`,
	},
	"workflow_job": {
		payload:      `{"action":"completed","workflow_job":{"id":1,"name":"build","status":"completed","conclusion":"success"}}`,
		expectedBody: `{"message":"Workflow job completed event processed","job":"build","status":"completed","conclusion":"success","action":"completed"}`,
	},
	"check_suite": {
		payload:      `{"action":"completed","check_suite":{"id":1,"head_sha":"d6fde92930d4715a2b49857d24b940956b26d2d3","status":"completed","conclusion":"failure"}}`,
		expectedBody: `{"message":"Check suite completed event processed","head_sha":"d6fde92930d4715a2b49857d24b940956b26d2d3","status":"completed","conclusion":"failure","action":"completed"}`,
	},
	"check_run": {
		payload:      `{"action":"created","check_run":{"id":1,"name":"lint","status":"in_progress"}}`,
		expectedBody: `{"message":"Check run created event processed","check_run":"lint","status":"in_progress","conclusion":null,"action":"created"}`,
	},
	"release": {
		payload:      `{"action":"published","release":{"id":1,"tag_name":"v1.0.0","name":"First release"}}`,
		expectedBody: `{"message":"Release published event processed","tag_name":"v1.0.0","name":"First release","action":"published"}`,
	},
	"star": {
		payload:      `{"action":"created","repository":{"full_name":"my-org/test-repo","stargazers_count":10}}`,
		expectedBody: `{"message":"Star created event processed","repository":"my-org/test-repo","stargazers_count":10,"action":"created"}`,
	},
	"watch": {
		payload:      `{"action":"started","repository":{"full_name":"my-org/test-repo","watchers_count":4}}`,
		expectedBody: `{"message":"Watch started event processed","repository":"my-org/test-repo","watchers_count":4,"action":"started"}`,
	},
	"fork": {
		payload:      `{"forkee":{"full_name":"someone/test-repo"},"repository":{"full_name":"my-org/test-repo","forks_count":2}}`,
		expectedBody: `{"message":"Fork event processed","forked_repository":"someone/test-repo","original_repository":"my-org/test-repo","forks_count":2}`,
	},
	"member": {
		payload:      `{"action":"added","member":{"login":"octocat","id":1},"repository":{"full_name":"my-org/test-repo"}}`,
		expectedBody: `{"message":"Member added event processed","member":"octocat","repository":"my-org/test-repo","action":"added"}`,
	},
	"deployment": {
		payload:      `{"action":"created","deployment":{"id":99,"environment":"production"}}`,
		expectedBody: `{"message":"Deployment created event processed","deployment_id":99,"environment":"production","action":"created"}`,
	},
	"deployment_status": {
		payload:      `{"action":"created","deployment":{"id":99,"environment":"production"},"deployment_status":{"id":5,"state":"success"}}`,
		expectedBody: `{"message":"Deployment status created event processed","deployment_id":99,"state":"success","environment":"production","action":"created"}`,
	},
	"pull_request_review": {
		payload:      `{"action":"submitted","review":{"id":1,"state":"approved"},"pull_request":{"number":42}}`,
		expectedBody: `{"message":"PR Review submitted event processed","pr_number":42,"review_state":"approved","action":"submitted"}`,
	},
	"pull_request_review_comment": {
		payload:      `{"action":"created","comment":{"id":555,"body":"nit"},"pull_request":{"number":42}}`,
		expectedBody: `{"message":"PR Review Comment created event processed","pr_number":42,"comment_id":555,"action":"created"}`,
	},
	"issue_comment": {
		payload:      `{"action":"created","issue":{"number":7},"comment":{"id":556,"body":"+1"}}`,
		expectedBody: `{"message":"Issue comment created event processed","issue_number":7,"comment_id":556,"action":"created"}`,
	},
	"commit_comment": {
		payload:      `{"action":"created","comment":{"id":557,"commit_id":"6dcb09b5b57875f334f61aebed695e2e4193db5e","body":"why?"}}`,
		expectedBody: `{"message":"Commit comment created event processed","commit_id":"6dcb09b5b57875f334f61aebed695e2e4193db5e","comment_id":557,"action":"created"}`,
	},
	"create": {
		payload:      `{"ref":"feature-x","ref_type":"branch","repository":{"full_name":"my-org/test-repo"}}`,
		expectedBody: `{"message":"Create branch event processed","ref":"feature-x","ref_type":"branch","repository":"my-org/test-repo"}`,
	},
	"delete": {
		payload:      `{"ref":"v0.1.0","ref_type":"tag","repository":{"full_name":"my-org/test-repo"}}`,
		expectedBody: `{"message":"Delete tag event processed","ref":"v0.1.0","ref_type":"tag","repository":"my-org/test-repo"}`,
	},
	"status": {
		payload:      `{"sha":"6dcb09b5b57875f334f61aebed695e2e4193db5e","state":"success","context":"ci/build"}`,
		expectedBody: `{"message":"Status event processed","state":"success","context":"ci/build","sha":"6dcb09b5b57875f334f61aebed695e2e4193db5e"}`,
	},
	"discussion": {
		payload:      `{"action":"created","discussion":{"id":1,"number":12,"title":"Roadmap"}}`,
		expectedBody: `{"message":"Discussion created event processed","discussion_number":12,"title":"Roadmap","action":"created"}`,
	},
	"discussion_comment": {
		payload:      `{"action":"created","discussion":{"number":12,"title":"Roadmap"},"comment":{"id":558,"body":"sounds good"}}`,
		expectedBody: `{"message":"Discussion comment created event processed","discussion_number":12,"comment_id":558,"action":"created"}`,
	},
	"package": {
		payload:      `{"action":"published","package":{"id":1,"name":"ghreceiver","package_type":"container"}}`,
		expectedBody: `{"message":"Package published event processed","package_name":"ghreceiver","package_type":"container","action":"published"}`,
	},
	"gollum": {
		payload:      `{"pages":[{"page_name":"Home","title":"Home","action":"edited"},{"page_name":"Setup","title":"Setup","action":"created"}],"repository":{"full_name":"my-org/test-repo"}}`,
		expectedBody: `{"message":"Gollum event processed","pages_count":2,"repository":"my-org/test-repo"}`,
	},
	"audit_log_streaming": {
		payload: `{
			"action": "audit_log_streaming",
			"audit_log_events": [
				{"action":"repo.create","actor":{"login":"octocat"},"created_at":"2023-01-01T00:00:00Z","resource":"my-org/test-repo","resource_type":"repository"}
			],
			"organization": {"login":"my-org","id":3},
			"sender": {"login":"octocat","id":1}
		}`,
		expectedBody: `{"message":"Audit log events processed successfully","processed_events":1}`,
	},
}
