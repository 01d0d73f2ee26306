package bridge

import "testing"

func TestDedupCursorMarkAndCheck(t *testing.T) {
	c := NewDedupCursor()

	if c.HasSeen("PAY_1") {
		t.Fatalf("fresh cursor should not have seen any id")
	}

	c.MarkSeen("PAY_1")
	if !c.HasSeen("PAY_1") {
		t.Fatalf("expected PAY_1 to be seen after marking")
	}
	if c.HasSeen("PAY_2") {
		t.Fatalf("PAY_2 was never marked")
	}

	// Single slot: a newer id displaces the old one
	c.MarkSeen("PAY_2")
	if !c.HasSeen("PAY_2") {
		t.Fatalf("expected PAY_2 to be seen after marking")
	}
	if c.HasSeen("PAY_1") {
		t.Fatalf("cursor holds one slot; PAY_1 should be displaced")
	}
}

func TestCredentialStoreOverwrite(t *testing.T) {
	s := NewCredentialStore()

	if _, ok := s.Get(); ok {
		t.Fatalf("fresh store should report no credential")
	}

	s.Set(Credential{AccessToken: "tok_1", MerchantID: "M1"})
	cred, ok := s.Get()
	if !ok || cred.AccessToken != "tok_1" || cred.MerchantID != "M1" {
		t.Fatalf("expected first credential, got %+v (ok=%v)", cred, ok)
	}

	s.Set(Credential{AccessToken: "tok_2", MerchantID: "M2"})
	cred, ok = s.Get()
	if !ok || cred.AccessToken != "tok_2" || cred.MerchantID != "M2" {
		t.Fatalf("expected overwritten credential, got %+v (ok=%v)", cred, ok)
	}
}

func TestNewStateWiresAllPieces(t *testing.T) {
	st := NewState()
	if st.Queue == nil || st.Cursor == nil || st.Credentials == nil {
		t.Fatalf("expected all state pieces constructed, got %+v", st)
	}
}
