package boardagent

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// ErrProtocolViolation marks a malformed picker event: a missing payload on a
// set command, or an unexpected payload on a query. It indicates a host/core
// contract mismatch rather than bad user input.
var ErrProtocolViolation = errors.New("picker protocol violation")

// PickerOp enumerates the events a host picker widget can raise.
type PickerOp int

const (
	// PickerQueryCurrent asks for the currently selected device.
	PickerQueryCurrent PickerOp = iota
	// PickerQueryList asks for the full device list.
	PickerQueryList
	// PickerCommandSet proposes a new selection; requires a payload.
	PickerCommandSet
)

// PickerRequest is the host-neutral shape of one picker event. HasValue
// distinguishes "empty payload" from "no payload".
type PickerRequest struct {
	Op       PickerOp
	Value    string
	HasValue bool
}

// PickerResponse carries the answer for query ops. Set commands fill neither
// field.
type PickerResponse struct {
	Current string
	Values  []string
}

// Dispatch validates the event shape and routes it to the synchronizer. The
// host adapter translates its native combo-box event into a PickerRequest and
// calls this for every query/command.
func Dispatch(ctx context.Context, sync *Synchronizer, req PickerRequest) (PickerResponse, error) {
	if sync == nil {
		return PickerResponse{}, pkgerrors.New("picker: synchronizer is nil")
	}
	switch req.Op {
	case PickerQueryCurrent:
		if req.HasValue {
			return PickerResponse{}, pkgerrors.Wrap(ErrProtocolViolation, "current query carries a payload")
		}
		current, err := sync.CurrentValue(ctx)
		if err != nil {
			return PickerResponse{}, err
		}
		return PickerResponse{Current: current}, nil
	case PickerQueryList:
		if req.HasValue {
			return PickerResponse{}, pkgerrors.Wrap(ErrProtocolViolation, "list query carries a payload")
		}
		values, err := sync.ListValues(ctx)
		if err != nil {
			return PickerResponse{}, err
		}
		return PickerResponse{Values: values}, nil
	case PickerCommandSet:
		if !req.HasValue {
			return PickerResponse{}, pkgerrors.Wrap(ErrProtocolViolation, "set command missing payload")
		}
		return PickerResponse{}, sync.SetValue(ctx, req.Value)
	default:
		return PickerResponse{}, pkgerrors.Wrapf(ErrProtocolViolation, "unknown op %d", req.Op)
	}
}
