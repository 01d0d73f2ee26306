package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edan-ais/Hubbalicious-Siren/internal/bridge"
	"github.com/edan-ais/Hubbalicious-Siren/internal/clover"
)

// fakeClover serves a fixed latest-payment response and records the bearer
// tokens it sees.
type fakeClover struct {
	server *httptest.Server
	body   string
	status int
	tokens []string
}

func newFakeClover(body string) *fakeClover {
	f := &fakeClover{body: body, status: http.StatusOK}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.tokens = append(f.tokens, r.Header.Get("Authorization"))
		w.WriteHeader(f.status)
		w.Write([]byte(f.body))
	}))
	return f
}

func (f *fakeClover) client() *clover.Client {
	return clover.NewClient(clover.Config{
		BaseURL:    f.server.URL,
		TokenURL:   f.server.URL,
		HTTPClient: f.server.Client(),
	})
}

func TestPollOnceRequiresCredential(t *testing.T) {
	state := bridge.NewState()
	fake := newFakeClover(`{"elements":[{"id":"PAY_1"}]}`)
	defer fake.server.Close()

	uc := NewPollOnce(state, fake.client())

	_, err := uc.Execute(context.Background())
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if len(fake.tokens) != 0 {
		t.Fatalf("expected no network call without a credential, saw %d", len(fake.tokens))
	}
}

func TestPollOnceDedupsSameLatestPayment(t *testing.T) {
	state := bridge.NewState()
	state.Credentials.Set(bridge.Credential{AccessToken: "tok_1", MerchantID: "M1"})

	fake := newFakeClover(`{"elements":[{"id":"PAY_1","amount":995}]}`)
	defer fake.server.Close()

	uc := NewPollOnce(state, fake.client())

	res, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("first poll failed: %v", err)
	}
	if !res.NewEvent {
		t.Fatalf("expected first poll to enqueue")
	}

	res, err = uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("second poll failed: %v", err)
	}
	if res.NewEvent {
		t.Fatalf("expected second poll with same latest id to be a no-op")
	}

	if state.Queue.Len() != 1 {
		t.Fatalf("expected exactly one enqueued event, got %d", state.Queue.Len())
	}

	ev, ok := state.Queue.PopOldest()
	if !ok {
		t.Fatalf("expected enqueued event")
	}
	if ev.Metadata["amount"] != int64(995) {
		t.Fatalf("expected amount copied into metadata, got %+v", ev.Metadata)
	}
}

func TestPollOnceEmptyFeedIsNoop(t *testing.T) {
	state := bridge.NewState()
	state.Credentials.Set(bridge.Credential{AccessToken: "tok_1", MerchantID: "M1"})

	fake := newFakeClover(`{"elements":[]}`)
	defer fake.server.Close()

	uc := NewPollOnce(state, fake.client())

	res, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if res.NewEvent || state.Queue.Len() != 0 {
		t.Fatalf("expected no-op on empty feed")
	}
}

func TestPollOnceRemoteFailureMutatesNothing(t *testing.T) {
	state := bridge.NewState()
	state.Credentials.Set(bridge.Credential{AccessToken: "tok_1", MerchantID: "M1"})

	fake := newFakeClover(`{"message":"token expired"}`)
	fake.status = http.StatusUnauthorized
	defer fake.server.Close()

	uc := NewPollOnce(state, fake.client())

	_, err := uc.Execute(context.Background())
	var remote *clover.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if state.Queue.Len() != 0 {
		t.Fatalf("failed poll must not enqueue, got %d queued", state.Queue.Len())
	}

	// Cursor untouched: a subsequent healthy poll with the same id enqueues
	fake.status = http.StatusOK
	fake.body = `{"elements":[{"id":"PAY_1"}]}`
	res, err := uc.Execute(context.Background())
	if err != nil || !res.NewEvent {
		t.Fatalf("expected recovery poll to enqueue, got res=%+v err=%v", res, err)
	}
}

func TestReExchangeSwitchesBearerToken(t *testing.T) {
	state := bridge.NewState()

	fake := newFakeClover(`{"elements":[{"id":"PAY_1"}]}`)
	defer fake.server.Close()

	pollUC := NewPollOnce(state, fake.client())

	state.Credentials.Set(bridge.Credential{AccessToken: "tok_old", MerchantID: "M1"})
	if _, err := pollUC.Execute(context.Background()); err != nil {
		t.Fatalf("poll with old token failed: %v", err)
	}

	// Fresh install flow overwrites the credential
	state.Credentials.Set(bridge.Credential{AccessToken: "tok_new", MerchantID: "M1"})
	fake.body = `{"elements":[{"id":"PAY_2"}]}`
	if _, err := pollUC.Execute(context.Background()); err != nil {
		t.Fatalf("poll with new token failed: %v", err)
	}

	if len(fake.tokens) != 2 {
		t.Fatalf("expected two API calls, got %d", len(fake.tokens))
	}
	if fake.tokens[0] != "Bearer tok_old" || fake.tokens[1] != "Bearer tok_new" {
		t.Fatalf("expected token switch old->new, got %v", fake.tokens)
	}
}

func TestExchangeTokenStoresAndOverwritesCredential(t *testing.T) {
	state := bridge.NewState()

	token := "tok_first"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"` + token + `"}`))
	}))
	defer server.Close()

	client := clover.NewClient(clover.Config{TokenURL: server.URL, HTTPClient: server.Client()})
	uc := NewExchangeToken(state.Credentials, client)

	if err := uc.Execute(context.Background(), "", "M1"); !errors.Is(err, ErrMissingCode) {
		t.Fatalf("expected ErrMissingCode for empty code, got %v", err)
	}
	if _, ok := state.Credentials.Get(); ok {
		t.Fatalf("failed exchange must not store a credential")
	}

	if err := uc.Execute(context.Background(), "code_1", "M1"); err != nil {
		t.Fatalf("first exchange failed: %v", err)
	}
	cred, ok := state.Credentials.Get()
	if !ok || cred.AccessToken != "tok_first" {
		t.Fatalf("expected tok_first stored, got %+v (ok=%v)", cred, ok)
	}

	token = "tok_second"
	if err := uc.Execute(context.Background(), "code_2", "M2"); err != nil {
		t.Fatalf("second exchange failed: %v", err)
	}
	cred, _ = state.Credentials.Get()
	if cred.AccessToken != "tok_second" || cred.MerchantID != "M2" {
		t.Fatalf("expected credential overwritten, got %+v", cred)
	}
}
