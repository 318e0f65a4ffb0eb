package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ngmaloney/beach-terminal/internal/beaches"
	"github.com/ngmaloney/beach-terminal/internal/conditions"
	"github.com/ngmaloney/beach-terminal/internal/models"
)

type recordingRefresher struct {
	mu    sync.Mutex
	calls []conditions.Source
	err   error
}

func (r *recordingRefresher) Refresh(ctx context.Context, list []models.Beach, src conditions.Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, src)
	return r.err
}

func TestScheduler_StartRegistersJobs(t *testing.T) {
	r := &recordingRefresher{}
	s := New(r, beaches.All(), Intervals{Weather: 5 * time.Minute, WaterQuality: 30 * time.Minute}, time.UTC, nil)

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop()

	if s.Jobs() != 2 {
		t.Errorf("Jobs() = %d, want 2", s.Jobs())
	}

	// Jobs wait for their first interval
	time.Sleep(50 * time.Millisecond)
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) != 0 {
		t.Errorf("jobs ran immediately: %v", r.calls)
	}
}

func TestScheduler_NoBeaches(t *testing.T) {
	s := New(&recordingRefresher{}, nil, Intervals{}, nil, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop()

	if s.Jobs() != 0 {
		t.Errorf("Jobs() = %d, want 0", s.Jobs())
	}
}

func TestScheduler_Run(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		src     conditions.Source
		wantErr bool
	}{
		{"weather ok", nil, conditions.SourceWeather, false},
		{"water fails", errors.New("503"), conditions.SourceWaterQuality, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recordingRefresher{err: tt.err}
			s := New(r, beaches.All(), Intervals{}, time.UTC, nil)

			var gotSrc conditions.Source
			var gotErr error
			s.OnRefresh = func(src conditions.Source, err error) {
				gotSrc, gotErr = src, err
			}

			err := s.Run(tt.src)
			if (err != nil) != tt.wantErr {
				t.Errorf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if gotSrc != tt.src || !errors.Is(gotErr, tt.err) {
				t.Errorf("OnRefresh got (%v, %v), want (%v, %v)", gotSrc, gotErr, tt.src, tt.err)
			}
			if len(r.calls) != 1 || r.calls[0] != tt.src {
				t.Errorf("refresher calls = %v", r.calls)
			}
		})
	}
}
