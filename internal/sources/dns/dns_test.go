package dns

import (
	"context"
	"net"
	"testing"
	"time"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/logx"
	"fraudtect/internal/testutil"
)

func TestResolver_Resolve(t *testing.T) {
	t.Run("resolves", func(t *testing.T) {
		var seen string
		r := NewWithLookup(func(_ context.Context, host string) ([]string, error) {
			seen = host
			return []string{"93.184.216.34"}, nil
		}, time.Second, logx.NewSilent())

		testutil.AssertNoError(t, r.Resolve(context.Background(), "example.com"), "should resolve")
		testutil.AssertEqual(t, seen, "example.com", "host passed through")
	})

	t.Run("no such host", func(t *testing.T) {
		r := NewWithLookup(func(_ context.Context, host string) ([]string, error) {
			return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
		}, time.Second, logx.NewSilent())

		err := r.Resolve(context.Background(), "nope.invalid")

		testutil.AssertTrue(t, errors.Is(err, domain.ErrDNSResolution), "wraps sentinel")
		testutil.AssertEqual(t, err.Error(), "DNS resolution failed: no such host nope.invalid", "message")
	})

	t.Run("empty answer", func(t *testing.T) {
		r := NewWithLookup(func(context.Context, string) ([]string, error) {
			return nil, nil
		}, time.Second, logx.NewSilent())

		err := r.Resolve(context.Background(), "example.com")
		testutil.AssertTrue(t, errors.Is(err, domain.ErrDNSResolution), "wraps sentinel")
	})

	t.Run("empty host skips lookup", func(t *testing.T) {
		called := false
		r := NewWithLookup(func(context.Context, string) ([]string, error) {
			called = true
			return []string{"127.0.0.1"}, nil
		}, time.Second, logx.NewSilent())

		err := r.Resolve(context.Background(), "")
		testutil.AssertTrue(t, errors.Is(err, domain.ErrDNSResolution), "wraps sentinel")
		testutil.AssertFalse(t, called, "lookup not called")
	})

	t.Run("timeout applied", func(t *testing.T) {
		r := NewWithLookup(func(ctx context.Context, _ string) ([]string, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}, 10*time.Millisecond, logx.NewSilent())

		err := r.Resolve(context.Background(), "slow.example")
		testutil.AssertTrue(t, errors.Is(err, domain.ErrDNSResolution), "wraps sentinel")
		testutil.AssertEqual(t, err.Error(), "DNS resolution failed: lookup timed out", "timeout detail")
	})
}

func TestNew_DefaultTimeout(t *testing.T) {
	r := New(0, nil)
	testutil.AssertEqual(t, r.timeout, DefaultTimeout, "default timeout")
}
