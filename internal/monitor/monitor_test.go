package monitor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type flakyDB struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (f *flakyDB) Ping(context.Context) error {
	f.calls.Add(1)
	if f.fail.Load() {
		return errors.New("dial tcp: connection refused")
	}
	return nil
}

func TestCheckLogsTransitions(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	db := &flakyDB{}
	m := New(db, zap.New(core))

	m.Check()
	m.Check()
	db.fail.Store(true)
	m.Check()
	db.fail.Store(false)
	m.Check()

	assert.Equal(t, int32(4), db.calls.Load())
	assert.Equal(t, 2, logs.FilterMessage("database reachable").Len())
	assert.Equal(t, 1, logs.FilterMessage("database unreachable").Len())
}

func TestStartRejectsBadSchedule(t *testing.T) {
	m := New(&flakyDB{}, nil)
	require.Error(t, m.Start("every now and then"))
}

func TestStartRunsOnSchedule(t *testing.T) {
	db := &flakyDB{}
	m := New(db, nil)
	require.NoError(t, m.Start("@every 1s"))
	defer m.Stop()

	require.Eventually(t, func() bool { return db.calls.Load() > 0 }, 5*time.Second, 50*time.Millisecond)
}
