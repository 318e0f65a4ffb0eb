package main

import (
	"flag"
	"io"
	"testing"

	"github.com/ngmaloney/beach-terminal/internal/models"
)

func TestPlanFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantSet  bool
		want     models.Activity
		wantFail bool
	}{
		{"absent", nil, false, models.Swimming, false},
		{"bare", []string{"--plan"}, true, models.Swimming, false},
		{"alias", []string{"--plan=sail"}, true, models.Sailing, false},
		{"long name", []string{"--plan=sunbathing"}, true, models.Sunbathing, false},
		{"quiet alias", []string{"--plan=quiet"}, true, models.Peace, false},
		{"unknown", []string{"--plan=surf"}, false, models.Swimming, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var plan planFlag
			fs := flag.NewFlagSet("beach-terminal", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			fs.Var(&plan, "plan", "")

			err := fs.Parse(tt.args)
			if (err != nil) != tt.wantFail {
				t.Fatalf("Parse() error = %v, wantFail %v", err, tt.wantFail)
			}
			if tt.wantFail {
				return
			}
			if plan.set != tt.wantSet || plan.activity != tt.want {
				t.Errorf("plan = %+v, want set=%v activity=%v", plan, tt.wantSet, tt.want)
			}
		})
	}
}
