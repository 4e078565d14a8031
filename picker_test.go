package boardagent

import (
	"context"
	"errors"
	"testing"
)

func TestDispatchQueryCurrent(t *testing.T) {
	sync := NewSynchronizer(&stubProvider{}, &stubStore{}, nil)

	resp, err := Dispatch(context.Background(), sync, PickerRequest{Op: PickerQueryCurrent})
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if resp.Current != NoDevicesFound {
		t.Fatalf("expected sentinel, got %q", resp.Current)
	}
}

func TestDispatchSetCommand(t *testing.T) {
	provider := &stubProvider{devices: []string{"COM3"}}
	store := &stubStore{}
	sync := NewSynchronizer(provider, store, nil)

	_, err := Dispatch(context.Background(), sync, PickerRequest{
		Op:       PickerCommandSet,
		Value:    "com3",
		HasValue: true,
	})
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if store.selected != "com3" {
		t.Fatalf("selection not persisted, got %q", store.selected)
	}
}

func TestDispatchShapeViolations(t *testing.T) {
	sync := NewSynchronizer(&stubProvider{devices: []string{"COM3"}}, &stubStore{}, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		req  PickerRequest
	}{
		{"set without payload", PickerRequest{Op: PickerCommandSet}},
		{"list with payload", PickerRequest{Op: PickerQueryList, Value: "x", HasValue: true}},
		{"current with payload", PickerRequest{Op: PickerQueryCurrent, Value: "x", HasValue: true}},
		{"unknown op", PickerRequest{Op: PickerOp(99)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Dispatch(ctx, sync, tc.req); !errors.Is(err, ErrProtocolViolation) {
				t.Fatalf("expected ErrProtocolViolation, got %v", err)
			}
		})
	}
}

func TestDispatchSurfacesInvalidSelection(t *testing.T) {
	sync := NewSynchronizer(&stubProvider{devices: []string{"COM3"}}, &stubStore{}, nil)

	_, err := Dispatch(context.Background(), sync, PickerRequest{
		Op:       PickerCommandSet,
		Value:    "COM9",
		HasValue: true,
	})
	if !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}
