package services

import (
	"time"

	"github.com/studyhive/studyhive/utils"
)

// VerificationSweeper periodically moves pending verification requests past
// their deadline to the expired state. It is constructed and stopped
// explicitly by main; there is no lazily started global.
type VerificationSweeper struct {
	engine   *VerificationEngine
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewVerificationSweeper creates a sweeper that runs every interval.
func NewVerificationSweeper(engine *VerificationEngine, interval time.Duration) *VerificationSweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &VerificationSweeper{
		engine:   engine,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. Failures are logged and retried on the next
// tick; an expired request that lingers a little longer is harmless because
// the vote path also rejects past-deadline requests.
func (s *VerificationSweeper) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := s.engine.SweepExpired(time.Now())
				if err != nil {
					utils.Sugar.Warnf("verification sweep failed: %v", err)
					continue
				}
				if n > 0 {
					utils.Sugar.Infof("expired %d verification request(s)", n)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the loop and waits for the in-flight sweep, if any, to finish.
func (s *VerificationSweeper) Stop() {
	close(s.stop)
	<-s.done
}
