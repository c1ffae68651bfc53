package provider

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T, configs map[string]Config, def string, fake ChatCompleter) *Router {
	t.Helper()
	client := NewClientWithCompleter(func(Config) ChatCompleter { return fake })
	return NewRouter(NewRegistry(configs, def), client, zerolog.Nop())
}

func enabled(model string) Config {
	return Config{APIKey: "sk-test", Enabled: true, Model: model}
}

func TestRouter_CurrentLazyInit(t *testing.T) {
	router := testRouter(t, map[string]Config{"openai": enabled("gpt-4o")}, "openai", nil)
	assert.Equal(t, "openai", router.Current())
}

func TestRouter_CurrentLazyInit_Concurrent(t *testing.T) {
	router := testRouter(t, map[string]Config{"openai": enabled("gpt-4o")}, "openai", nil)

	const n = 32
	results := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = router.Current()
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		assert.Equal(t, "openai", results[i], "all concurrent callers must observe one agreed value")
	}
}

func TestRouter_SwitchTo(t *testing.T) {
	router := testRouter(t, map[string]Config{
		"openai":   enabled("gpt-4o"),
		"deepseek": enabled("deepseek-chat"),
	}, "openai", nil)

	require.NoError(t, router.SwitchTo("deepseek"))
	assert.Equal(t, "deepseek", router.Current())
}

func TestRouter_SwitchTo_UnavailableLeavesCurrent(t *testing.T) {
	router := testRouter(t, map[string]Config{
		"openai":   enabled("gpt-4o"),
		"deepseek": {APIKey: "sk-test", Enabled: false},
	}, "openai", nil)
	require.Equal(t, "openai", router.Current())

	err := router.SwitchTo("deepseek")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "openai", router.Current())

	err = router.SwitchTo("no-such-provider")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "openai", router.Current())
}

func TestRouter_Send_UsesCurrentWhenCodeOmitted(t *testing.T) {
	fake := &fakeCompleter{resp: textResponse("pong")}
	router := testRouter(t, map[string]Config{"openai": enabled("gpt-4o")}, "openai", fake)

	got, err := router.Send(context.Background(), []Message{{Role: "user", Content: "ping"}}, "")
	require.NoError(t, err)
	assert.Equal(t, "pong", got)
	assert.Equal(t, "gpt-4o", fake.lastReq.Model)
}

func TestRouter_Send_Unavailable(t *testing.T) {
	router := testRouter(t, map[string]Config{
		"openai": {Enabled: true}, // no API key
	}, "openai", nil)

	_, err := router.Send(context.Background(), []Message{{Role: "user", Content: "hi"}}, "openai")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRouter_Send_WrapsBackendFault(t *testing.T) {
	cause := errors.New("boom")
	router := testRouter(t, map[string]Config{"openai": enabled("gpt-4o")}, "openai",
		&fakeCompleter{err: cause})

	_, err := router.Send(context.Background(), []Message{{Role: "user", Content: "hi"}}, "openai")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCallFailed, "backend faults must reach callers wrapped, never raw")
}

func TestRouter_ListAvailable_DeclarationOrder(t *testing.T) {
	router := testRouter(t, map[string]Config{
		"mistral":  enabled("mistral-large"),
		"openai":   enabled("gpt-4o"),
		"deepseek": {APIKey: "sk-test", Enabled: false},
	}, "openai", nil)

	assert.Equal(t, []string{"openai", "mistral"}, router.ListAvailable())
}

func TestRouter_Status(t *testing.T) {
	router := testRouter(t, map[string]Config{
		"openai": {APIKey: "sk-test", Enabled: true, Model: "gpt-4o", Temperature: 0.5, MaxTokens: 512},
	}, "openai", nil)

	st, ok := router.Status("openai")
	require.True(t, ok)
	assert.Equal(t, "OpenAI", st.DisplayName)
	assert.Equal(t, "gpt-4o", st.Model)
	assert.True(t, st.HasAPIKey)
	assert.True(t, st.Available)
	assert.True(t, st.Current)

	_, ok = router.Status("no-such-provider")
	assert.False(t, ok)
}

func TestRouter_Probe(t *testing.T) {
	router := testRouter(t, map[string]Config{"openai": enabled("gpt-4o")}, "openai",
		&fakeCompleter{resp: textResponse("ok")})
	assert.True(t, router.Probe(context.Background(), "openai"))
}

func TestRouter_Probe_SwallowsErrors(t *testing.T) {
	router := testRouter(t, map[string]Config{"openai": enabled("gpt-4o")}, "openai",
		&fakeCompleter{err: errors.New("down")})
	assert.False(t, router.Probe(context.Background(), "openai"))

	// Unknown provider also collapses to false.
	assert.False(t, router.Probe(context.Background(), "no-such-provider"))
}
