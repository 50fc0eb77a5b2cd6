package app

import "testing"

func TestOptionDefaults(t *testing.T) {
	o := Options{HUDWidth: -5}.withDefaults()
	if o.Scale != 8 || o.TPS != 10 || o.HUDWidth != 0 || o.Name != "snapshot" {
		t.Fatalf("defaults %+v", o)
	}
	o = Options{Name: "fire", Scale: 3, TPS: 30, HUDWidth: 200}.withDefaults()
	if o.Scale != 3 || o.TPS != 30 || o.HUDWidth != 200 || o.Name != "fire" {
		t.Fatalf("explicit options changed: %+v", o)
	}
}
