// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package driver_test

import (
	"testing"

	"github.com/gviegas/neo3/driver"
	"github.com/gviegas/neo3/driver/record"
)

func TestDrivers(t *testing.T) {
	drivers := driver.Drivers()
	for i := range drivers {
		name := drivers[i].Name()
		for j := range i {
			if name == drivers[j].Name() {
				t.Error("driver.Drivers: Driver.Name is not unique")
			}
		}
	}
	drivers2 := driver.Drivers()
	if len(drivers) != len(drivers2) {
		t.Error("driver.Drivers: length mismatch")
	} else {
		for i := range drivers {
			if drivers[i].Name() != drivers2[i].Name() {
				t.Error("driver.Drivers: Driver.Name mismatch")
			}
		}
	}
}

func TestDriverName(t *testing.T) {
	drv, err := driver.Lookup(record.Name)
	if err != nil {
		t.Fatalf("driver.Lookup:\nhave %v\nwant nil", err)
	}
	name := drv.Name()
	if name == "" {
		t.Error("Driver.Name: name is empty")
	}
	drv.Close()
	if drv.Name() != name {
		t.Error("Driver.Name: unexpected name after call to Close")
	}
	gpu, err := drv.Open()
	if err != nil {
		t.Fatal("Failed to re-Open drv - cannot continue")
	}
	if gpu.Driver() != drv {
		t.Error("GPU.Driver: unexpected driver")
	}
	if gpu2, _ := drv.Open(); gpu2 != gpu {
		t.Error("Driver.Open: second call should return the same GPU")
	}
	if _, err := driver.Lookup("no such driver"); err != driver.ErrNotFound {
		t.Errorf("driver.Lookup:\nhave %v\nwant %v", err, driver.ErrNotFound)
	}
}

func TestRegisterReplace(t *testing.T) {
	n := len(driver.Drivers())
	driver.Register(new(record.Driver))
	if m := len(driver.Drivers()); m != n {
		t.Errorf("driver.Register: replacing should not grow the list\nhave %d\nwant %d", m, n)
	}
}

func TestProgram(t *testing.T) {
	drv, _ := driver.Lookup(record.Name)
	gpu, _ := drv.Open()
	prog, err := gpu.NewProgram("basic", []string{"color", "mvp", "color"})
	if err != nil {
		t.Fatal(err)
	}
	defer prog.Destroy()
	if loc, ok := prog.UniformLocation("mvp"); !ok || loc != 1 {
		t.Fatalf("Program.UniformLocation:\nhave %v, %v\nwant 1, true", loc, ok)
	}
	if _, ok := prog.UniformLocation("missing"); ok {
		t.Fatal("Program.UniformLocation: missing uniform should not resolve")
	}
	loc, _ := prog.UniformLocation("color")
	prog.SetUniform3f(loc, 1, 0.5, 0)
	calls := prog.(*record.Program).Calls()
	if len(calls) != 1 {
		t.Fatalf("Program.Calls:\nhave %d calls\nwant 1", len(calls))
	}
	if s := calls[0].String(); s != "Uniform3f(color)[1 0.5 0]" {
		t.Fatalf("Call.String:\nhave %s\nwant Uniform3f(color)[1 0.5 0]", s)
	}
}
