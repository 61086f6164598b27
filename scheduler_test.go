package lion

import "testing"

func TestPrepareNewBlockStallsOnOutput(t *testing.T) {
	out := &Location{Buf: make([]byte, minimumOutputLookahead-1)}
	var w signatureWriter
	var b blockState
	code, stop := prepareNewBlock(out, &w, &b, false, func() {})
	if !stop || code != StateStallOnOutput {
		t.Fatalf("expected StateStallOnOutput, got %v stop=%v", code, stop)
	}
}

func TestPrepareNewBlockEfficiencyAndResetCadence(t *testing.T) {
	out := &Location{Buf: make([]byte, 1<<20)}
	var w signatureWriter
	b := blockState{resetCycle: preferredResetCycle - 1}
	resets := 0
	resetDict := func() { resets++ }

	sawEfficiencyCheck := false
	sawNewBlock := false

	for i := 0; i < preferredBlockSignatures*(preferredResetCycle+1)+8; i++ {
		code, stop := prepareNewBlock(out, &w, &b, true, resetDict)
		if stop {
			switch code {
			case StateInfoEfficiencyCheck:
				sawEfficiencyCheck = true
			case StateInfoNewBlock:
				sawNewBlock = true
			default:
				t.Fatalf("unexpected stop code %v", code)
			}
			continue
		}
	}

	if !sawEfficiencyCheck {
		t.Fatalf("never saw an efficiency-check interrupt")
	}
	if !sawNewBlock {
		t.Fatalf("never saw a new-block interrupt")
	}
	if resets == 0 {
		t.Fatalf("parallel-decompressible mode never reset the dictionary")
	}
}

func TestCheckSignatureStateDecodeStallsOnInput(t *testing.T) {
	in := &Location{Buf: make([]byte, minimumOutputLookahead-1)}
	code, stop := checkSignatureStateDecode(in)
	if !stop || code != StateStallOnInput {
		t.Fatalf("expected StateStallOnInput, got %v stop=%v", code, stop)
	}
}
