package telegram

import (
	"context"
	"sync"
	"time"
)

// Step is one message in a paced sequence: the delay to wait before
// sending, then the send itself.
type Step struct {
	Delay time.Duration
	Send  func(ctx context.Context)
}

type sequence struct {
	cancel context.CancelFunc
}

// Pacer delivers multi-message sequences to a chat with human-paced
// delays between messages. At most one sequence runs per chat; starting
// a new one cancels whatever is still in flight for that chat.
type Pacer struct {
	mu     sync.Mutex
	active map[int64]*sequence
}

func NewPacer() *Pacer {
	return &Pacer{active: make(map[int64]*sequence)}
}

// Schedule cancels any in-flight sequence for the chat and starts
// delivering steps in order. Delivery runs in its own goroutine and
// holds no locks between steps, so inbound traffic is never blocked
// behind a pending delay.
func (p *Pacer) Schedule(ctx context.Context, chatID int64, steps []Step) {
	ctx, cancel := context.WithCancel(ctx)
	seq := &sequence{cancel: cancel}

	p.mu.Lock()
	if prev, ok := p.active[chatID]; ok {
		prev.cancel()
	}
	p.active[chatID] = seq
	p.mu.Unlock()

	go func() {
		defer p.release(chatID, seq)
		for _, step := range steps {
			if step.Delay > 0 {
				timer := time.NewTimer(step.Delay)
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.C:
				}
			} else if ctx.Err() != nil {
				return
			}
			step.Send(ctx)
		}
	}()
}

// Cancel aborts the in-flight sequence for a chat, if any. Called on
// every inbound event so stale replies never trail a newer exchange.
func (p *Pacer) Cancel(chatID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seq, ok := p.active[chatID]; ok {
		seq.cancel()
		delete(p.active, chatID)
	}
}

// release removes the entry only if it still belongs to this run, so a
// newer sequence scheduled meanwhile is left untouched.
func (p *Pacer) release(chatID int64, seq *sequence) {
	seq.cancel()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active[chatID] == seq {
		delete(p.active, chatID)
	}
}
