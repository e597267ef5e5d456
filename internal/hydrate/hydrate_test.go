package hydrate

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type retryPolicy struct {
	Attempts int      `json:"attempts"`
	Backoff  string   `json:"backoff"`
	Codes    []string `json:"codes,omitempty"`
}

func TestDecoderCases(t *testing.T) {
	cases := []struct {
		name      string
		input     any
		options   []DecoderOption[retryPolicy]
		expect    retryPolicy
		expectErr string
	}{
		{
			name:   "map payload",
			input:  map[string]any{"attempts": 3, "backoff": "1s"},
			expect: retryPolicy{Attempts: 3, Backoff: "1s"},
		},
		{
			name:   "unknown fields ignored by default",
			input:  map[string]any{"attempts": 1, "extra": true},
			expect: retryPolicy{Attempts: 1},
		},
		{
			name:      "unknown fields rejected",
			input:     map[string]any{"attempts": 1, "extra": true},
			options:   []DecoderOption[retryPolicy]{WithDisallowUnknownFields[retryPolicy]()},
			expectErr: "unknown field",
		},
		{
			name:      "nil payload",
			input:     nil,
			expectErr: "payload is nil",
		},
		{
			name:      "wrong shape",
			input:     []any{1, 2},
			expectErr: "decode \"retry.net\"",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			decoder := NewDecoder[retryPolicy](tc.options...)
			result, err := decoder.Decode(Context{Key: "retry", Namespace: "net"}, tc.input)

			if tc.expectErr != "" {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tc.expectErr)
				}
				if !strings.Contains(err.Error(), tc.expectErr) {
					t.Fatalf("expected error containing %q, got %v", tc.expectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}
			if !reflect.DeepEqual(tc.expect, result) {
				t.Fatalf("decoded mismatch:\nwant: %#v\n got: %#v", tc.expect, result)
			}
		})
	}
}

func TestDecoderPostHook(t *testing.T) {
	errTooMany := errors.New("too many attempts")
	decoder := NewDecoder[retryPolicy](
		WithPostHook[retryPolicy](func(_ Context, policy *retryPolicy) error {
			if policy.Backoff == "" {
				policy.Backoff = "100ms"
			}
			return nil
		}),
		WithPostHook[retryPolicy](func(_ Context, policy *retryPolicy) error {
			if policy.Attempts > 10 {
				return errTooMany
			}
			return nil
		}),
	)

	got, err := decoder.Decode(Context{Key: "retry"}, map[string]any{"attempts": 2})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Backoff != "100ms" {
		t.Fatalf("expected post-hook default, got %q", got.Backoff)
	}

	if _, err := decoder.Decode(Context{Key: "retry"}, map[string]any{"attempts": 20}); !errors.Is(err, errTooMany) {
		t.Fatalf("expected post-hook error, got %v", err)
	}
}

func TestDecoderUseNumber(t *testing.T) {
	decoder := NewDecoder[map[string]any](WithUseNumber[map[string]any]())
	got, err := decoder.Decode(Context{Key: "limits"}, map[string]any{"max": 12})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := got["max"].(json.Number); !ok {
		t.Fatalf("expected json.Number, got %T", got["max"])
	}
}
