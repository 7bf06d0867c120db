package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	calls int
	err   error
}

func (f *fakeCompleter) CompleteEnded(context.Context) (int, error) {
	f.calls++
	return 2, f.err
}

func TestTrainingStatusJobRun(t *testing.T) {
	fake := &fakeCompleter{}
	NewTrainingStatusJob(fake, nil, 0).Run()
	require.Equal(t, 1, fake.calls)

	fake.err = errors.New("storage down")
	NewTrainingStatusJob(fake, nil, 0).Run()
	require.Equal(t, 2, fake.calls)
}

func TestSchedulerAdd(t *testing.T) {
	s := NewScheduler(nil)
	job := NewTrainingStatusJob(&fakeCompleter{}, nil, 0)

	require.NoError(t, s.Add("disabled", "", job))
	require.Equal(t, 0, s.Len())

	require.NoError(t, s.Add("training_status", "@every 1m", job))
	require.Equal(t, 1, s.Len())

	require.Error(t, s.Add("broken", "not a spec", job))

	s.Start()
	s.Stop(context.Background())
}

func TestStartNotificationWorkerNil(t *testing.T) {
	require.NotPanics(t, func() { StartNotificationWorker(nil) })
}
