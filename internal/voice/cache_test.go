package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *AudioCache {
	t.Helper()
	c, err := NewAudioCache(AudioCacheConfig{MaxEntries: 64}, nil)
	if err != nil {
		t.Fatalf("NewAudioCache: %v", err)
	}
	return c
}

func TestCacheKeyDeterministic(t *testing.T) {
	a := CacheKey("कृपया योजना आहे", Marathi, 1.0)
	b := CacheKey("कृपया योजना आहे", Marathi, 1.0)
	if a != b {
		t.Errorf("same triple produced different keys: %s vs %s", a, b)
	}
}

func TestCacheKeyDistinct(t *testing.T) {
	type triple struct {
		text  string
		lang  Language
		speed float64
	}
	triples := []triple{
		{"hello world", English, 1.0},
		{"hello world", English, 0.5},
		{"hello world", Hindi, 1.0},
		{"hello worlds", English, 1.0},
		{"कृपया योजना आहे", Marathi, 1.0},
		{"कृपया योजना आहे", Hindi, 1.0},
	}
	// Speed variations shouldn't collide either.
	for i := 1; i <= 20; i++ {
		triples = append(triples, triple{"sampled text", English, float64(i) * 0.1})
	}

	seen := make(map[string]triple, len(triples))
	for _, tr := range triples {
		key := CacheKey(tr.text, tr.lang, tr.speed)
		if prev, dup := seen[key]; dup {
			t.Fatalf("key collision between %+v and %+v", prev, tr)
		}
		seen[key] = tr
	}
}

func TestPutKeepsFirstEntry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := CacheKey("some answer text", English, 1.0)

	first := []byte("first-audio")
	c.Put(ctx, key, first)
	c.Put(ctx, key, []byte("second-audio"))

	got, ok := c.Get(ctx, key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !bytes.Equal(got, first) {
		t.Errorf("entry was overwritten: got %q, want %q", got, first)
	}
}

func TestGetOrSynthesizeDeduplicates(t *testing.T) {
	c := newTestCache(t)
	key := CacheKey("shared utterance", Hindi, 1.0)
	audio := []byte("mp3-bytes")

	var calls atomic.Int32
	fn := func(ctx context.Context) ([]byte, error) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond) // hold the flight open for late arrivals
		return audio, nil
	}

	const n = 16
	results := make([][]byte, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, _, err := c.GetOrSynthesize(context.Background(), key, time.Second, fn)
			if err != nil {
				t.Errorf("GetOrSynthesize: %v", err)
				return
			}
			results[i] = got
		}(i)
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("engine called %d times, want 1", got)
	}
	for i, r := range results {
		if !bytes.Equal(r, audio) {
			t.Errorf("caller %d got %q, want %q", i, r, audio)
		}
	}

	// The result must now be served from cache.
	got, hit, err := c.GetOrSynthesize(context.Background(), key, time.Second, fn)
	if err != nil || !hit || !bytes.Equal(got, audio) {
		t.Errorf("second call: got %q hit=%v err=%v, want cached bytes", got, hit, err)
	}
	if calls.Load() != 1 {
		t.Errorf("cache hit still invoked the engine")
	}
}

func TestGetOrSynthesizeSoloFailure(t *testing.T) {
	c := newTestCache(t)
	key := CacheKey("failing utterance", English, 1.0)
	wantErr := errors.New("engine down")

	var calls atomic.Int32
	fn := func(ctx context.Context) ([]byte, error) {
		calls.Add(1)
		return nil, wantErr
	}

	_, _, err := c.GetOrSynthesize(context.Background(), key, time.Second, fn)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	// A lone caller gets no independent retry.
	if got := calls.Load(); got != 1 {
		t.Errorf("engine called %d times, want 1", got)
	}
	if _, ok := c.Get(context.Background(), key); ok {
		t.Error("failed synthesis must not populate the cache")
	}
}

func TestGetOrSynthesizeCallerCancellation(t *testing.T) {
	c := newTestCache(t)
	key := CacheKey("slow utterance", Marathi, 1.0)
	audio := []byte("slow-mp3")

	release := make(chan struct{})
	fn := func(ctx context.Context) ([]byte, error) {
		select {
		case <-release:
			return audio, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, _, err := c.GetOrSynthesize(ctx, key, time.Second, fn)
		errCh <- err
	}()

	// Cancel the caller while synthesis is in flight; the work itself must
	// keep running on its detached context.
	time.Sleep(20 * time.Millisecond)
	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller got %v, want context.Canceled", err)
	}

	close(release)

	// The detached flight should complete and populate the cache.
	deadline := time.After(time.Second)
	for {
		if audio2, ok := c.Get(context.Background(), key); ok {
			if !bytes.Equal(audio2, audio) {
				t.Fatalf("cached %q, want %q", audio2, audio)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("synthesis did not complete after caller cancellation")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestAudioCacheLRUBound(t *testing.T) {
	c, err := NewAudioCache(AudioCacheConfig{MaxEntries: 4}, nil)
	if err != nil {
		t.Fatalf("NewAudioCache: %v", err)
	}
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		c.Put(ctx, CacheKey(fmt.Sprintf("utterance %d", i), English, 1.0), []byte{byte(i)})
	}
	if got := c.Len(); got > 4 {
		t.Errorf("cache grew to %d entries, bound is 4", got)
	}
}
