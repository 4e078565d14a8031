package boardagent

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct {
	devices []string
	err     error
	calls   int
}

func (p *stubProvider) ListDevices(ctx context.Context) ([]string, error) {
	p.calls++
	return p.devices, p.err
}

type stubStore struct {
	selected  string
	loadCalls int
	saveCalls int
	saveErr   error
}

func (s *stubStore) Selected(ctx context.Context) (string, error) {
	s.loadCalls++
	return s.selected, nil
}

func (s *stubStore) SetSelected(ctx context.Context, serial string) error {
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.selected = serial
	return nil
}

func TestCurrentValueReturnsStoredCasing(t *testing.T) {
	provider := &stubProvider{devices: []string{"COM3", "COM5"}}
	store := &stubStore{selected: "com3"}
	sync := NewSynchronizer(provider, store, nil)

	current, err := sync.CurrentValue(context.Background())
	if err != nil {
		t.Fatalf("current value failed: %v", err)
	}
	if current != "com3" {
		t.Fatalf("expected stored casing com3, got %q", current)
	}
}

func TestCurrentValueEmptyListReturnsSentinel(t *testing.T) {
	provider := &stubProvider{}
	store := &stubStore{selected: "COM3"}
	sync := NewSynchronizer(provider, store, nil)

	current, err := sync.CurrentValue(context.Background())
	if err != nil {
		t.Fatalf("current value failed: %v", err)
	}
	if current != NoDevicesFound {
		t.Fatalf("expected sentinel, got %q", current)
	}
	if store.loadCalls != 0 {
		t.Fatalf("store should not be read when list is empty, got %d reads", store.loadCalls)
	}
}

func TestCurrentValueStaleSelection(t *testing.T) {
	provider := &stubProvider{devices: []string{"COM5"}}
	store := &stubStore{selected: "COM3"}
	sync := NewSynchronizer(provider, store, nil)

	current, err := sync.CurrentValue(context.Background())
	if err != nil {
		t.Fatalf("current value failed: %v", err)
	}
	if current != "" {
		t.Fatalf("stale selection should yield empty, got %q", current)
	}
}

func TestListValuesEmptyYieldsSentinelList(t *testing.T) {
	sync := NewSynchronizer(&stubProvider{}, &stubStore{}, nil)

	values, err := sync.ListValues(context.Background())
	if err != nil {
		t.Fatalf("list values failed: %v", err)
	}
	if len(values) != 1 || values[0] != NoDevicesFound {
		t.Fatalf("expected sentinel list, got %v", values)
	}
}

func TestListValuesSkipsBlankSerials(t *testing.T) {
	provider := &stubProvider{devices: []string{"  ", "", "COM3"}}
	sync := NewSynchronizer(provider, &stubStore{}, nil)

	values, err := sync.ListValues(context.Background())
	if err != nil {
		t.Fatalf("list values failed: %v", err)
	}
	if len(values) != 1 || values[0] != "COM3" {
		t.Fatalf("blank serials should be skipped, got %v", values)
	}
}

func TestSetValueRoundTrip(t *testing.T) {
	provider := &stubProvider{devices: []string{"COM3", "COM5"}}
	store := &stubStore{}
	sync := NewSynchronizer(provider, store, nil)

	if current, _ := sync.CurrentValue(context.Background()); current != "" {
		t.Fatalf("expected no selection before set, got %q", current)
	}
	if err := sync.SetValue(context.Background(), "com3"); err != nil {
		t.Fatalf("set value failed: %v", err)
	}
	if store.selected != "com3" {
		t.Fatalf("candidate casing should be stored, got %q", store.selected)
	}
	current, err := sync.CurrentValue(context.Background())
	if err != nil {
		t.Fatalf("current value failed: %v", err)
	}
	if current != "com3" {
		t.Fatalf("round trip mismatch: %q", current)
	}
}

func TestSetValueRejectsUnknownDevice(t *testing.T) {
	provider := &stubProvider{devices: []string{"COM3"}}
	store := &stubStore{selected: "COM3"}
	sync := NewSynchronizer(provider, store, nil)

	err := sync.SetValue(context.Background(), "COM9")
	if !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
	if store.saveCalls != 0 {
		t.Fatalf("rejected selection must not touch the store, got %d saves", store.saveCalls)
	}
	if current, _ := sync.CurrentValue(context.Background()); current != "COM3" {
		t.Fatalf("prior selection should survive rejection, got %q", current)
	}
}

func TestSetValueSentinelIsNoOp(t *testing.T) {
	provider := &stubProvider{}
	store := &stubStore{selected: "COM3"}
	sync := NewSynchronizer(provider, store, nil)

	if err := sync.SetValue(context.Background(), NoDevicesFound); err != nil {
		t.Fatalf("sentinel set should succeed: %v", err)
	}
	if store.saveCalls != 0 {
		t.Fatalf("sentinel set must not persist anything, got %d saves", store.saveCalls)
	}
	if store.selected != "COM3" {
		t.Fatalf("sentinel set must not mutate selection, got %q", store.selected)
	}
}

func TestGuardSuppressesAllOperations(t *testing.T) {
	provider := &stubProvider{devices: []string{"COM3"}}
	store := &stubStore{selected: "COM3"}
	guard := &Guard{}
	guard.SetBusy(true)
	sync := NewSynchronizer(provider, store, guard)

	ctx := context.Background()
	if current, err := sync.CurrentValue(ctx); err != nil || current != "" {
		t.Fatalf("busy current value: %q %v", current, err)
	}
	if values, err := sync.ListValues(ctx); err != nil || values != nil {
		t.Fatalf("busy list values: %v %v", values, err)
	}
	if err := sync.SetValue(ctx, "COM3"); err != nil {
		t.Fatalf("busy set value: %v", err)
	}
	if provider.calls != 0 {
		t.Fatalf("enumerator must not be invoked while busy, got %d calls", provider.calls)
	}
	if store.loadCalls != 0 || store.saveCalls != 0 {
		t.Fatalf("store must not be touched while busy: %d loads %d saves", store.loadCalls, store.saveCalls)
	}

	guard.SetBusy(false)
	if current, err := sync.CurrentValue(ctx); err != nil || current != "COM3" {
		t.Fatalf("operations should resume after guard clears: %q %v", current, err)
	}
}

func TestEnumerationFailurePropagates(t *testing.T) {
	provider := &stubProvider{err: errors.New("udev exploded")}
	sync := NewSynchronizer(provider, &stubStore{}, nil)

	ctx := context.Background()
	if _, err := sync.CurrentValue(ctx); !errors.Is(err, ErrEnumerationUnavailable) {
		t.Fatalf("current value: expected ErrEnumerationUnavailable, got %v", err)
	}
	if _, err := sync.ListValues(ctx); !errors.Is(err, ErrEnumerationUnavailable) {
		t.Fatalf("list values: expected ErrEnumerationUnavailable, got %v", err)
	}
	if err := sync.SetValue(ctx, "COM3"); !errors.Is(err, ErrEnumerationUnavailable) {
		t.Fatalf("set value: expected ErrEnumerationUnavailable, got %v", err)
	}
}

func TestSetValuePropagatesStoreFailure(t *testing.T) {
	provider := &stubProvider{devices: []string{"COM3"}}
	store := &stubStore{saveErr: errors.New("disk full")}
	sync := NewSynchronizer(provider, store, nil)

	if err := sync.SetValue(context.Background(), "COM3"); err == nil {
		t.Fatal("store write failure should propagate")
	}
}
