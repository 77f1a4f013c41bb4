package assistantsvc

import (
	"context"

	"github.com/edutrack/backend/core"
)

// DummyService returns a canned reply; for tests and keyless dev setups.
type DummyService struct {
	Reply string
	Err   error
}

var _ core.AssistantService = (*DummyService)(nil)

func (svc DummyService) Chat(_ context.Context, _, _, _ string) (string, error) {
	if svc.Err != nil {
		return "", svc.Err
	}
	if svc.Reply != "" {
		return svc.Reply, nil
	}
	return "I'm here to help with your studies.", nil
}
