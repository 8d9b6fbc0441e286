package manager

import "testing"

func TestInitialState(t *testing.T) {
	st := InitialState()
	if st.Status != Idle || st.Message != MsgAwaiting || st.Snapshot != nil {
		t.Errorf("InitialState = %+v", st)
	}
	if st.Busy() {
		t.Error("initial state should not be busy")
	}
}

func TestTransitions(t *testing.T) {
	snap := Snapshot{Name: "Curitiba - PR", TemperatureC: 19, WindKmh: 12, ConditionCode: 3}

	ready := InitialState().loading(MsgDownloading).ready(snap)
	if ready.Status != Ready || ready.Message != "" || ready.Snapshot == nil || *ready.Snapshot != snap {
		t.Fatalf("ready = %+v", ready)
	}

	loading := ready.loading(MsgResolving)
	if loading.Status != Loading || loading.Message != MsgResolving || loading.Snapshot != nil {
		t.Errorf("loading after ready = %+v", loading)
	}
	if !loading.Busy() {
		t.Error("loading state should be busy")
	}
	if ready.Snapshot == nil {
		t.Error("transition mutated its input")
	}

	failed := ready.failed(MsgNotFound)
	if failed.Status != Error || failed.Message != MsgNotFound || failed.Snapshot != nil {
		t.Errorf("failed = %+v", failed)
	}
}

func TestStatusString(t *testing.T) {
	for status, want := range map[Status]string{Idle: "idle", Loading: "loading", Ready: "ready", Error: "error", Status(9): "unknown"} {
		if got := status.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", status, got, want)
		}
	}
}
