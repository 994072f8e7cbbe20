// SPDX-License-Identifier: MIT

package design_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/designmat/design"
	"github.com/katalvlaran/designmat/events"
)

func benchEvents(n int) []events.Event {
	evts := make([]events.Event, n)
	for i := range evts {
		typ := "stim"
		if i%3 == 0 {
			typ = "button"
		}
		evts[i] = ev(typ,
			"cond", fmt.Sprintf("c%d", i%4),
			"x", float64(i%17),
			"speed", float64(i%101)+0.5,
		)
	}
	return evts
}

func BenchmarkBuild(b *testing.B) {
	evts := benchEvents(5000)
	opt := design.WithLogger(logger(nil))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := design.Build(evts, "y~1+cat(cond)*x+spl(speed,8)", []string{"stim"}, opt); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildGroups(b *testing.B) {
	evts := benchEvents(5000)
	opt := design.WithLogger(logger(nil))
	formulas := []string{"y~1+cat(cond)*x", "y~1+spl(speed,6)"}
	types := [][]string{{"stim"}, {"button"}}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := design.BuildGroups(evts, formulas, types, opt); err != nil {
			b.Fatal(err)
		}
	}
}
