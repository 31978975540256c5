package delivery

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"foodtruck-ordering/internal/models"
)

// SessionState names a phase of the address-input flow.
type SessionState string

const (
	StateIdle             SessionState = "idle"
	StateTyping           SessionState = "typing"
	StatePredictionsShown SessionState = "predictions_shown"
	StateValidating       SessionState = "validating"
	StateValidated        SessionState = "validated"
	StateError            SessionState = "error"
)

// Debounce window between the last keystroke and the autocomplete request.
const defaultDebounce = 300 * time.Millisecond

// msgInvalidAddress is shown when manual validation is requested for input
// that is too short to be a plausible address.
const msgInvalidAddress = "Please enter a valid address"

// Scheduler defers a function by a delay and allows cancelling it before it
// fires. The production implementation is a plain timer; tests substitute a
// manual one so no test ever sleeps.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

type timerScheduler struct{}

func (timerScheduler) Schedule(delay time.Duration, fn func()) func() {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

// Session is the address-input controller for one checkout attempt. It owns
// the debounce discipline and the last-input-wins ordering guarantee: every
// text change bumps a generation counter, and an async result is applied only
// if its generation is still current. A response for superseded input is
// discarded, never rendered.
type Session struct {
	svc       ServiceInterface
	scheduler Scheduler
	debounce  time.Duration
	runAsync  func(fn func())

	mu            sync.Mutex
	gen           uint64
	cancelPending func()
	onChange      func(SessionSnapshot)

	state       SessionState
	input       string
	predictions []models.AddressPrediction
	result      *models.AddressValidation
	message     string
}

// SessionSnapshot is an immutable view of the session for rendering.
type SessionSnapshot struct {
	State       SessionState               `json:"state"`
	Input       string                     `json:"input"`
	Predictions []models.AddressPrediction `json:"predictions"`
	Result      *models.AddressValidation  `json:"result,omitempty"`
	Message     string                     `json:"message,omitempty"`
}

// NewSession creates an idle address session.
func NewSession(svc ServiceInterface) *Session {
	return &Session{
		svc:       svc,
		scheduler: timerScheduler{},
		debounce:  defaultDebounce,
		runAsync:  func(fn func()) { go fn() },
		state:     StateIdle,
	}
}

// OnChange registers a callback invoked with a fresh snapshot whenever an
// asynchronous result (predictions or a finished validation) is applied. The
// callback runs outside the session lock. Synchronous transitions are not
// reported; the caller already observes those through Snapshot.
func (s *Session) OnChange(fn func(SessionSnapshot)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Input handles a text change. It supersedes any in-flight prediction or
// validation work, clears previous results and errors, and schedules a
// debounced prediction fetch once the input is long enough.
func (s *Session) Input(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.cancelPendingLocked()

	s.state = StateTyping
	s.input = text
	s.predictions = nil
	s.result = nil
	s.message = ""

	if utf8.RuneCountInString(text) < 3 {
		return
	}

	gen := s.gen
	s.cancelPending = s.scheduler.Schedule(s.debounce, func() {
		s.fetchPredictions(gen, text)
	})
}

// SelectPrediction replaces the input with the prediction's description and
// starts validation.
func (s *Session) SelectPrediction(p models.AddressPrediction) {
	s.mu.Lock()
	s.gen++
	s.cancelPendingLocked()
	s.input = p.Description
	s.predictions = nil
	s.result = nil
	s.message = ""
	s.state = StateValidating
	gen := s.gen
	text := s.input
	s.mu.Unlock()

	s.runAsync(func() { s.validate(gen, text) })
}

// ValidateTyped validates the raw typed text, bypassing predictions. Very
// short input is rejected up front without a network call.
func (s *Session) ValidateTyped() {
	s.mu.Lock()
	if utf8.RuneCountInString(s.input) < 5 {
		s.state = StateError
		s.message = msgInvalidAddress
		s.mu.Unlock()
		return
	}
	s.gen++
	s.cancelPendingLocked()
	s.predictions = nil
	s.result = nil
	s.message = ""
	s.state = StateValidating
	gen := s.gen
	text := s.input
	s.mu.Unlock()

	s.runAsync(func() { s.validate(gen, text) })
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() SessionSnapshot {
	snap := SessionSnapshot{
		State:   s.state,
		Input:   s.input,
		Result:  s.result,
		Message: s.message,
	}
	snap.Predictions = append(snap.Predictions, s.predictions...)
	return snap
}

// Result returns the validated address and estimate, if validation completed.
func (s *Session) Result() *models.AddressValidation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func (s *Session) fetchPredictions(gen uint64, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	predictions, _ := s.svc.GetPredictions(ctx, text)

	s.mu.Lock()
	if gen != s.gen {
		// Superseded by newer input; never overwrite its predictions.
		s.mu.Unlock()
		return
	}
	s.predictions = predictions
	if len(predictions) > 0 {
		s.state = StatePredictionsShown
	}
	s.notifyAndUnlock()
}

func (s *Session) validate(gen uint64, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	result, err := s.svc.ValidateAddress(ctx, text)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}

	if err != nil {
		s.state = StateError
		s.message = userMessage(err)
		s.result = nil
	} else {
		s.state = StateValidated
		s.result = result
		s.input = result.Address.FormattedAddress
	}
	s.notifyAndUnlock()
}

// notifyAndUnlock invokes the change callback outside the lock; the lock must
// be held on entry and is released here.
func (s *Session) notifyAndUnlock() {
	notify := s.onChange
	snap := s.snapshotLocked()
	s.mu.Unlock()
	if notify != nil {
		notify(snap)
	}
}

func (s *Session) cancelPendingLocked() {
	if s.cancelPending != nil {
		s.cancelPending()
		s.cancelPending = nil
	}
}

// userMessage maps pipeline failures onto the message shown next to the
// address field. Unknown errors get a generic message rather than leaking
// internals.
func userMessage(err error) string {
	var outOfArea *models.OutOfServiceAreaError
	switch {
	case errors.As(err, &outOfArea):
		return outOfArea.Error()
	case errors.Is(err, models.ErrAddressNotFound):
		return models.ErrAddressNotFound.Error()
	case errors.Is(err, models.ErrRouteNotFound):
		return models.ErrRouteNotFound.Error()
	case errors.Is(err, models.ErrServiceUnavailable):
		return models.ErrServiceUnavailable.Error()
	default:
		return "Failed to validate address"
	}
}
