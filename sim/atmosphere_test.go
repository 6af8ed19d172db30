package sim

import (
	"math"
	"testing"
)

func TestRebalanceSplitsExcess(t *testing.T) {
	a := Atmosphere{O2: 100, CO2: 100}
	a.Rebalance()
	if a.O2 != 50 || a.CO2 != 50 {
		t.Errorf("got o2=%f co2=%f, want 50/50", a.O2, a.CO2)
	}
}

func TestRebalanceProportional(t *testing.T) {
	a := Atmosphere{O2: 90, CO2: 30}
	a.Rebalance()
	if math.Abs(a.O2-75) > 1e-9 || math.Abs(a.CO2-25) > 1e-9 {
		t.Errorf("got o2=%f co2=%f, want 75/25", a.O2, a.CO2)
	}
}

func TestRebalanceLeavesValidSumAlone(t *testing.T) {
	a := Atmosphere{O2: 40, CO2: 30}
	a.Rebalance()
	if a.O2 != 40 || a.CO2 != 30 {
		t.Errorf("got o2=%f co2=%f, want unchanged 40/30", a.O2, a.CO2)
	}
}

func TestConsumePartialOnScarcity(t *testing.T) {
	a := Atmosphere{O2: 0.05}
	if a.ConsumeO2(0.1) {
		t.Error("scarce consume reported success")
	}
	if a.O2 != 0 {
		t.Errorf("o2 = %f, want 0 after partial consume", a.O2)
	}

	a = Atmosphere{CO2: 5}
	if !a.ConsumeCO2(0.1) {
		t.Error("consume with plenty reported failure")
	}
	if math.Abs(a.CO2-4.9) > 1e-9 {
		t.Errorf("co2 = %f, want 4.9", a.CO2)
	}
}

func TestReleaseClampsAtCeiling(t *testing.T) {
	a := Atmosphere{O2: 99.5}
	a.ReleaseO2(10)
	if a.O2 != 100 {
		t.Errorf("o2 = %f, want 100", a.O2)
	}
}
