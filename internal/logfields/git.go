package logfields

import "go.uber.org/zap"

func Repository(val string) zap.Field {
	return zap.String("git.repository", val)
}

func Ref(val string) zap.Field {
	return zap.String("git.ref", val)
}

func Commit(val string) zap.Field {
	return zap.String("git.commit", val)
}

func Organization(val string) zap.Field {
	return zap.String("github.organization", val)
}

func Sender(val string) zap.Field {
	return zap.String("github.sender", val)
}

func Action(val string) zap.Field {
	return zap.String("github.action", val)
}

func PullRequest(val int) zap.Field {
	return zap.Int("github.pull_request", val)
}

func Issue(val int) zap.Field {
	return zap.Int("github.issue", val)
}
