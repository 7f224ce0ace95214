package mock

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/poiesic/docsift/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSummarizer_Default(t *testing.T) {
	m := NewMockSummarizer()

	s, err := m.Summarize(context.Background(), "First point. Second point.", "Notes")
	require.NoError(t, err)

	assert.Equal(t, "Notes", s.Title)
	assert.Equal(t, []string{"First point.", "Second point."}, s.KeyPoints)
	assert.Equal(t, 1, m.CallCount())
	assert.Equal(t, []string{"First point. Second point."}, m.Contents())
}

func TestMockSummarizer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockSummarizer().Summarize(ctx, "text", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockSummarizer_CustomFunc(t *testing.T) {
	boom := errors.New("model offline")
	m := NewMockSummarizer().WithSummarizeFunc(func(ctx context.Context, content, titleHint string) (*ai.GeneratedSummary, error) {
		return nil, boom
	})

	_, err := m.Summarize(context.Background(), "text", "")
	assert.ErrorIs(t, err, boom)

	m.Reset()
	assert.Equal(t, 0, m.CallCount())
	_, err = m.Summarize(context.Background(), "text", "")
	assert.NoError(t, err)
}

func TestMockSummarizer_Concurrent(t *testing.T) {
	m := NewMockSummarizer()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Summarize(context.Background(), "text.", "")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, m.CallCount())
}

func TestMockProvider(t *testing.T) {
	p := NewMockProvider()
	mp, ok := p.(*MockProvider)
	require.True(t, ok)

	assert.Same(t, mp.GetMockSummarizer(), p.Summarizer())
	require.NoError(t, p.Close())
	assert.True(t, mp.Closed())
}
