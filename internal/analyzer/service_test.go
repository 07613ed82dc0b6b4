package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritasmainapp/VERITAS-AI/internal/history"
	"github.com/veritasmainapp/VERITAS-AI/internal/llm"
)

type fakeFetcher struct {
	text  string
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeFetcher) Source() string { return "fake" }

func (f *fakeFetcher) Configured() bool { return true }

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func verdictJSON(name string, score int) string {
	return fmt.Sprintf(`{
        "product_name": %q,
        "score": %d,
        "verdict_badge": "HARD PASS",
        "verdict_summary": "Generic dropshipped item.",
        "marketing_claim": "Premium quality.",
        "reality_check": "Wholesale catalog stock.",
        "reddit_consensus": "Buyers regret it."
    }`, name, score)
}

func newTestService(t *testing.T, fetcher *fakeFetcher, stub *llm.Stub) (*Service, history.Store) {
	t.Helper()
	store := history.NewFileStore(filepath.Join(t.TempDir(), "scan_history.json"), testLogger())
	return NewService(fetcher, stub, store, nil, testLogger()), store
}

func TestService_AnalyzeStoresNewestFirst(t *testing.T) {
	fetcher := &fakeFetcher{text: "LED Galaxy Projector, 4.9 stars, 50k sold this week"}
	stub := llm.NewStub()
	svc, store := newTestService(t, fetcher, stub)
	ctx := context.Background()

	stub.Reply = verdictJSON("LED Galaxy Projector", 25)
	first, cached, err := svc.Analyze(ctx, "https://shop.test/galaxy")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "LED Galaxy Projector", first.ProductName)
	assert.Equal(t, 25, first.Score)
	assert.Equal(t, "https://shop.test/galaxy", first.URL)
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.Timestamp)

	stub.Reply = verdictJSON("Posture Corrector", 40)
	second, _, err := svc.Analyze(ctx, "https://shop.test/posture")
	require.NoError(t, err)

	entries, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
	assert.Equal(t, "Posture Corrector", entries[0].FullData.ProductName)
}

func TestService_AnalyzeCapsPromptText(t *testing.T) {
	long := strings.Repeat("a", 10500) + "ENDMARKER"
	fetcher := &fakeFetcher{text: long}
	stub := llm.NewStub()
	svc, _ := newTestService(t, fetcher, stub)

	_, _, err := svc.Analyze(context.Background(), "https://shop.test/long")

	require.NoError(t, err)
	assert.Contains(t, stub.LastPrompt, strings.Repeat("a", 100))
	assert.NotContains(t, stub.LastPrompt, "ENDMARKER")
}

func TestService_FetchFailureSkipsModelAndStore(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	stub := llm.NewStub()
	svc, store := newTestService(t, fetcher, stub)
	ctx := context.Background()

	_, _, err := svc.Analyze(ctx, "https://shop.test/down")

	require.Error(t, err)
	var external *ExternalCallError
	require.ErrorAs(t, err, &external)
	assert.Equal(t, "fake", external.Service)
	assert.Equal(t, 0, stub.Calls)

	entries, loadErr := store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Empty(t, entries)
}

func TestService_GenerateFailureStoresNothing(t *testing.T) {
	fetcher := &fakeFetcher{text: "some page"}
	stub := llm.NewStub()
	stub.Err = errors.New("model overloaded")
	svc, store := newTestService(t, fetcher, stub)
	ctx := context.Background()

	_, _, err := svc.Analyze(ctx, "https://shop.test/widget")

	var external *ExternalCallError
	require.ErrorAs(t, err, &external)
	assert.Equal(t, "stub", external.Service)

	entries, loadErr := store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Empty(t, entries)
}

func TestService_MalformedReplyStoresNothing(t *testing.T) {
	fetcher := &fakeFetcher{text: "some page"}
	stub := llm.NewStub()
	stub.Reply = "I'm sorry, I can't evaluate this product for you."
	svc, store := newTestService(t, fetcher, stub)
	ctx := context.Background()

	_, _, err := svc.Analyze(ctx, "https://shop.test/widget")

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)

	entries, loadErr := store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Empty(t, entries)
}

func TestService_StoreFailureSurfaces(t *testing.T) {
	fetcher := &fakeFetcher{text: "some page"}
	stub := llm.NewStub()
	store := history.NewFileStore(filepath.Join(t.TempDir(), "missing", "scan_history.json"), testLogger())
	svc := NewService(fetcher, stub, store, nil, testLogger())

	_, _, err := svc.Analyze(context.Background(), "https://shop.test/widget")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record analysis")
	assert.Equal(t, 1, stub.Calls)
}

func TestService_HistoryAndEntry(t *testing.T) {
	fetcher := &fakeFetcher{text: "some page"}
	stub := llm.NewStub()
	svc, _ := newTestService(t, fetcher, stub)
	ctx := context.Background()

	stored, _, err := svc.Analyze(ctx, "https://shop.test/widget")
	require.NoError(t, err)

	entries, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, stored.ID, entries[0].ID)

	found, err := svc.Entry(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, *stored, *found)

	_, err = svc.Entry(ctx, "nope")
	assert.ErrorIs(t, err, history.ErrNotFound)
}

func TestBuildPrompt_CarriesLinkAndText(t *testing.T) {
	prompt := BuildPrompt("https://shop.test/widget", "Amazing widget, only $9.99")

	assert.Contains(t, prompt, "Analyze this product link: https://shop.test/widget")
	assert.Contains(t, prompt, "Page Text: Amazing widget, only $9.99")
	assert.Contains(t, prompt, "Return a purely JSON response")
}
