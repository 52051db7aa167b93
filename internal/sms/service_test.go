package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeProvider struct {
	sent []string
	err  error
}

func (p *fakeProvider) Send(_ context.Context, to, msg string) (string, error) {
	p.sent = append(p.sent, to+"|"+msg)
	if p.err != nil {
		return "", p.err
	}
	return fmt.Sprintf("SM%d", len(p.sent)), nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func newTestService(t *testing.T, p Provider) *Service {
	t.Helper()
	svc := NewService(newTestDB(t), p, nil)
	require.NoError(t, svc.Migrate(context.Background()))
	return svc
}

func TestNotifyOrderLogsSent(t *testing.T) {
	p := &fakeProvider{}
	svc := newTestService(t, p)
	var observed []string
	svc.OnResult(func(status string) { observed = append(observed, status) })

	entry, err := svc.NotifyOrder(context.Background(), sampleOrder(), KindCompleted, "")
	require.NoError(t, err)

	assert.Equal(t, StatusSent, entry.Status)
	require.NotNil(t, entry.ProviderMessageID)
	assert.Equal(t, "SM1", *entry.ProviderMessageID)
	require.NotNil(t, entry.OrderCode)
	assert.Equal(t, "ORD-003", *entry.OrderCode)
	assert.Equal(t, []string{StatusSent}, observed)
	require.Len(t, p.sent, 1)
	assert.True(t, strings.HasPrefix(p.sent[0], "+254712345678|Hi Jane"))

	logs, err := svc.History(context.Background(), "+254712345678", 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "completed", logs[0].MessageType)
}

func TestSendFailureIsLogged(t *testing.T) {
	p := &fakeProvider{err: &ProviderError{Msg: "unreachable"}}
	svc := newTestService(t, p)

	entry, err := svc.Send(context.Background(), "+254712345678", "hello")
	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, StatusFailed, entry.Status)
	require.NotNil(t, entry.ErrorMessage)

	logs, err := svc.History(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, StatusFailed, logs[0].Status)
}

func TestSendRejectsPhoneWithoutPlus(t *testing.T) {
	p := &fakeProvider{}
	svc := newTestService(t, p)

	_, err := svc.Send(context.Background(), "0712345678", "hello")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	_, err = svc.Send(context.Background(), "+254712345678", "  ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, p.sent)
}

func TestHistoryFiltersByPhoneNewestFirst(t *testing.T) {
	svc := newTestService(t, &fakeProvider{})
	ctx := context.Background()

	_, err := svc.Send(ctx, "+254700000001", "one")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "+254700000002", "two")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "+254700000001", "three")
	require.NoError(t, err)

	logs, err := svc.History(ctx, "+254700000001", 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "three", logs[0].Body)
	assert.Equal(t, "one", logs[1].Body)
}
