package delivery

import (
	"context"
	"testing"
	"time"

	"foodtruck-ordering/internal/models"
)

// manualScheduler records scheduled work so tests can fire the debounce
// window deterministically instead of sleeping.
type manualScheduler struct {
	pending   []func()
	cancelled int
}

func (m *manualScheduler) Schedule(_ time.Duration, fn func()) func() {
	idx := len(m.pending)
	m.pending = append(m.pending, fn)
	return func() {
		if m.pending[idx] != nil {
			m.pending[idx] = nil
			m.cancelled++
		}
	}
}

// fire runs every still-pending callback, as if all quiet windows elapsed.
// Fired slots are kept so late cancels of already-fired timers stay no-ops.
func (m *manualScheduler) fire() {
	for i, fn := range m.pending {
		if fn != nil {
			m.pending[i] = nil
			fn()
		}
	}
}

type stubSessionService struct {
	predictions   map[string][]models.AddressPrediction
	predictCalls  []string
	validations   map[string]*models.AddressValidation
	validateErrs  map[string]error
	validateCalls []string
}

func (f *stubSessionService) GetPredictions(_ context.Context, input string) ([]models.AddressPrediction, error) {
	f.predictCalls = append(f.predictCalls, input)
	return f.predictions[input], nil
}

func (f *stubSessionService) ValidateAddress(_ context.Context, address string) (*models.AddressValidation, error) {
	f.validateCalls = append(f.validateCalls, address)
	if err := f.validateErrs[address]; err != nil {
		return nil, err
	}
	return f.validations[address], nil
}

func (f *stubSessionService) Estimate(_ context.Context, _ models.Coordinates) (*models.DeliveryEstimate, error) {
	return nil, nil
}

func marienValidation() *models.AddressValidation {
	return &models.AddressValidation{
		Address: models.ValidatedAddress{
			FormattedAddress: "Marienplatz 1, 80331 München, Germany",
			Coordinates:      models.Coordinates{Lat: 48.1374, Lng: 11.5755},
			PlaceID:          "marienplatz",
		},
		Estimate: models.DeliveryEstimate{DeliveryFee: 5.99},
	}
}

// newTestSession wires a session with a manual scheduler and synchronous
// async execution so every test is deterministic.
func newTestSession(svc ServiceInterface) (*Session, *manualScheduler) {
	sched := &manualScheduler{}
	s := NewSession(svc)
	s.scheduler = sched
	s.runAsync = func(fn func()) { fn() }
	return s, sched
}

func TestSession_StartsIdle(t *testing.T) {
	s, _ := newTestSession(&stubSessionService{})
	if snap := s.Snapshot(); snap.State != StateIdle {
		t.Fatalf("expected idle, got %s", snap.State)
	}
}

func TestSession_ShortInputSchedulesNothing(t *testing.T) {
	svc := &stubSessionService{}
	s, sched := newTestSession(svc)

	s.Input("ab")
	sched.fire()

	snap := s.Snapshot()
	if snap.State != StateTyping {
		t.Fatalf("expected typing, got %s", snap.State)
	}
	if len(snap.Predictions) != 0 || len(svc.predictCalls) != 0 {
		t.Fatalf("short input must not fetch predictions: calls=%v", svc.predictCalls)
	}
}

func TestSession_DebounceCoalescesKeystrokes(t *testing.T) {
	svc := &stubSessionService{
		predictions: map[string][]models.AddressPrediction{
			"Marien": {{PlaceID: "p1", Description: "Marienplatz 1, München", MainText: "Marienplatz 1"}},
		},
	}
	s, sched := newTestSession(svc)

	for _, text := range []string{"M", "Ma", "Mar", "Mari", "Marien"} {
		s.Input(text)
	}
	sched.fire()

	if len(svc.predictCalls) != 1 {
		t.Fatalf("expected exactly one prediction request, got %v", svc.predictCalls)
	}
	if svc.predictCalls[0] != "Marien" {
		t.Fatalf("prediction request must use the final text, got %q", svc.predictCalls[0])
	}
	snap := s.Snapshot()
	if snap.State != StatePredictionsShown || len(snap.Predictions) != 1 {
		t.Fatalf("expected predictions shown, got %s with %d predictions", snap.State, len(snap.Predictions))
	}
}

func TestSession_StalePredictionsAreDiscarded(t *testing.T) {
	svc := &stubSessionService{
		predictions: map[string][]models.AddressPrediction{
			"Marienplatz": {{PlaceID: "a", MainText: "Marienplatz"}},
			"Odeonsplatz": {{PlaceID: "b", MainText: "Odeonsplatz"}},
		},
	}
	s, sched := newTestSession(svc)

	s.Input("Marienplatz")
	// Simulate the first request already being in flight when the input
	// changes: grab its callback before the new keystroke cancels the timer.
	stale := sched.pending[0]

	s.Input("Odeonsplatz")
	sched.fire() // newer request resolves first

	stale() // the superseded response arrives late

	snap := s.Snapshot()
	if len(snap.Predictions) != 1 || snap.Predictions[0].PlaceID != "b" {
		t.Fatalf("stale response overwrote newer predictions: %+v", snap.Predictions)
	}
	if snap.Input != "Odeonsplatz" {
		t.Fatalf("unexpected input: %q", snap.Input)
	}
}

func TestSession_SelectPredictionValidates(t *testing.T) {
	svc := &stubSessionService{
		validations: map[string]*models.AddressValidation{
			"Marienplatz 1, München": marienValidation(),
		},
	}
	s, _ := newTestSession(svc)

	s.Input("Marien")
	s.SelectPrediction(models.AddressPrediction{PlaceID: "p1", Description: "Marienplatz 1, München"})

	snap := s.Snapshot()
	if snap.State != StateValidated {
		t.Fatalf("expected validated, got %s (message %q)", snap.State, snap.Message)
	}
	if snap.Result == nil || snap.Result.Estimate.DeliveryFee != 5.99 {
		t.Fatalf("expected validation result, got %+v", snap.Result)
	}
	// The entry text is replaced with the geocoder's formatted address.
	if snap.Input != "Marienplatz 1, 80331 München, Germany" {
		t.Fatalf("unexpected input after validation: %q", snap.Input)
	}
	if len(snap.Predictions) != 0 {
		t.Fatalf("predictions must be discarded on selection")
	}
}

func TestSession_ManualValidationRequiresLength(t *testing.T) {
	svc := &stubSessionService{}
	s, _ := newTestSession(svc)

	s.Input("Mari")
	s.ValidateTyped()

	snap := s.Snapshot()
	if snap.State != StateError || snap.Message != msgInvalidAddress {
		t.Fatalf("expected error %q, got %s %q", msgInvalidAddress, snap.State, snap.Message)
	}
	if len(svc.validateCalls) != 0 {
		t.Fatalf("short input must not reach the geocoder")
	}
}

func TestSession_ValidationErrorsSurfaceMessages(t *testing.T) {
	cases := []struct {
		err     error
		message string
	}{
		{models.ErrAddressNotFound, "address not found or invalid"},
		{models.ErrRouteNotFound, "no route found to destination"},
		{&models.OutOfServiceAreaError{MaxRadiusKm: 15}, "address is outside our delivery zone (max 15km)"},
		{models.ErrServiceUnavailable, "address service is unavailable"},
	}
	for _, tc := range cases {
		svc := &stubSessionService{validateErrs: map[string]error{"Somewhere far away 99": tc.err}}
		s, _ := newTestSession(svc)

		s.Input("Somewhere far away 99")
		s.ValidateTyped()

		snap := s.Snapshot()
		if snap.State != StateError {
			t.Fatalf("%v: expected error state, got %s", tc.err, snap.State)
		}
		if snap.Message != tc.message {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.message, snap.Message)
		}
		if snap.Result != nil {
			t.Fatalf("%v: error state must not carry a result", tc.err)
		}
	}
}

func TestSession_StaleValidationNeverOverwritesNewerTyping(t *testing.T) {
	svc := &stubSessionService{
		validations: map[string]*models.AddressValidation{"Marienplatz 1": marienValidation()},
	}
	s, _ := newTestSession(svc)

	// Capture the validation work instead of running it, as if the network
	// call were still in flight.
	var inflight []func()
	s.runAsync = func(fn func()) { inflight = append(inflight, fn) }

	s.Input("Marienplatz 1")
	s.ValidateTyped()
	s.Input("Odeonspl") // user keeps typing while validation is in flight

	for _, fn := range inflight {
		fn() // the stale validation now completes
	}

	snap := s.Snapshot()
	if snap.State != StateTyping {
		t.Fatalf("stale validation must not change state, got %s", snap.State)
	}
	if snap.Result != nil {
		t.Fatalf("stale validation must not attach a result")
	}
	if snap.Input != "Odeonspl" {
		t.Fatalf("unexpected input: %q", snap.Input)
	}
}

func TestSession_AsyncResultsAreAnnounced(t *testing.T) {
	svc := &stubSessionService{
		predictions: map[string][]models.AddressPrediction{
			"Marien": {{PlaceID: "p1", MainText: "Marienplatz"}},
		},
		validations: map[string]*models.AddressValidation{"Marien": marienValidation()},
	}
	s, sched := newTestSession(svc)

	var announced []SessionSnapshot
	s.OnChange(func(snap SessionSnapshot) { announced = append(announced, snap) })

	s.Input("Marien")
	if len(announced) != 0 {
		t.Fatalf("typing alone must not announce, got %d snapshots", len(announced))
	}

	sched.fire()
	if len(announced) != 1 || announced[0].State != StatePredictionsShown {
		t.Fatalf("expected predictions announcement, got %+v", announced)
	}

	s.ValidateTyped()
	if len(announced) != 2 || announced[1].State != StateValidated {
		t.Fatalf("expected validation announcement, got %+v", announced)
	}
	if announced[1].Result == nil || announced[1].Result.Estimate.DeliveryFee != 5.99 {
		t.Fatalf("announcement must carry the result: %+v", announced[1].Result)
	}
}

func TestSession_StaleResultsAreNotAnnounced(t *testing.T) {
	svc := &stubSessionService{
		predictions: map[string][]models.AddressPrediction{
			"Marienplatz": {{PlaceID: "a"}},
			"Odeonsplatz": {{PlaceID: "b"}},
		},
	}
	s, sched := newTestSession(svc)

	var announced []SessionSnapshot
	s.OnChange(func(snap SessionSnapshot) { announced = append(announced, snap) })

	s.Input("Marienplatz")
	stale := sched.pending[0]
	s.Input("Odeonsplatz")
	sched.fire()
	stale()

	if len(announced) != 1 {
		t.Fatalf("superseded work must stay silent, got %d announcements", len(announced))
	}
	if announced[0].Predictions[0].PlaceID != "b" {
		t.Fatalf("unexpected announcement: %+v", announced[0])
	}
}

func TestSession_LengthGatesCountRunesNotBytes(t *testing.T) {
	svc := &stubSessionService{}
	s, sched := newTestSession(svc)

	// "Mü" is 3 bytes but only 2 characters; no fetch may be scheduled.
	s.Input("Mü")
	sched.fire()
	if len(svc.predictCalls) != 0 {
		t.Fatalf("2-character input must not fetch predictions: %v", svc.predictCalls)
	}

	// "Müß" is 5 bytes but only 3 characters; too short for manual validation.
	s.Input("Müß")
	s.ValidateTyped()
	if len(svc.validateCalls) != 0 {
		t.Fatalf("3-character input must not reach the geocoder: %v", svc.validateCalls)
	}
	if snap := s.Snapshot(); snap.State != StateError || snap.Message != msgInvalidAddress {
		t.Fatalf("expected length error, got %s %q", snap.State, snap.Message)
	}
}

func TestSession_TypingClearsValidatedState(t *testing.T) {
	svc := &stubSessionService{
		validations: map[string]*models.AddressValidation{"Marienplatz 1": marienValidation()},
	}
	s, _ := newTestSession(svc)

	s.Input("Marienplatz 1")
	s.ValidateTyped()
	if snap := s.Snapshot(); snap.State != StateValidated {
		t.Fatalf("setup failed: %s", snap.State)
	}

	s.Input("Marienplatz 12")

	snap := s.Snapshot()
	if snap.State != StateTyping || snap.Result != nil || snap.Message != "" {
		t.Fatalf("typing must clear prior validation: %+v", snap)
	}
}
