package simulation

import (
	"fmt"
	"math"
	"sync"
	"time"

	"flightmap/internal/config"
	"flightmap/internal/game/aircraft"
	"flightmap/internal/game/airspace"
	"flightmap/internal/game/conflict"
	"flightmap/internal/logging"
	"flightmap/pkg/types"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"
)

const STATUS_EVERY_TICKS = 60

// Simulation owns a bounded population of aircraft flying random
// great-circle routes between directory airports. Every exported method is
// atomic with respect to Tick.
type Simulation struct {
	mu sync.Mutex

	cfg     config.SimConfig
	dir     *airspace.Directory
	rng     *Rand
	paths   *PathCache
	sprites SpriteFactory
	metrics Recorder
	logger  *log.Logger
	status  rate.Sometimes
	events  *EventLog
	monitor *conflict.Monitor
	runID   string

	aircraft   []*aircraft.Aircraft
	target     int
	multiplier float64
	running    bool
	disposed   bool
	ticks      uint64
}

type Option func(*Simulation)

func WithSpriteFactory(f SpriteFactory) Option {
	return func(s *Simulation) {
		if f != nil {
			s.sprites = f
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Simulation) {
		if r != nil {
			s.metrics = r
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithRand(r *Rand) Option {
	return func(s *Simulation) {
		if r != nil {
			s.rng = r
		}
	}
}

// NewSimulation creates a stopped simulation over dir. The initial
// population from cfg is built on the first Start.
func NewSimulation(cfg config.SimConfig, dir *airspace.Directory, opts ...Option) (*Simulation, error) {
	config.SetSimDefaults(&cfg)

	paths, err := NewPathCache(cfg.PathCacheSize)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:        cfg,
		dir:        dir,
		rng:        NewRand(cfg.Seed),
		paths:      paths,
		sprites:    noopSprites{},
		metrics:    noopRecorder{},
		logger:     logging.New("sim"),
		status:     rate.Sometimes{Every: STATUS_EVERY_TICKS},
		events:     NewEventLog(cfg.EventLogSize),
		monitor:    conflict.NewMonitor(cfg.SeparationKm),
		runID:      uuid.NewString(),
		target:     clampInt(cfg.InitialAircraft, 0, cfg.MaxAircraft),
		multiplier: cfg.SpeedMultiplier,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.metrics.SetSpeedMultiplier(s.multiplier)
	s.logger.Infof("simulation %s ready: %d airports, max %d aircraft", s.runID, dir.Len(), cfg.MaxAircraft)
	return s, nil
}

func (s *Simulation) RunID() string {
	return s.runID
}

// SetPopulationSize resizes the population to n clamped to [0, MaxAircraft].
// New aircraft are appended; removed aircraft are popped from the tail and
// their sprites released. On a stopped simulation the size is remembered
// and applied by Start.
func (s *Simulation) SetPopulationSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n = clampInt(n, 0, s.cfg.MaxAircraft)
	if n == s.target && (!s.running || n == len(s.aircraft)) {
		return
	}
	s.target = n
	if s.running {
		s.resizeLocked()
	}
}

func (s *Simulation) resizeLocked() {
	before := len(s.aircraft)

	for len(s.aircraft) > s.target {
		last := len(s.aircraft) - 1
		ac := s.aircraft[last]
		ac.ReleaseSprite()
		s.aircraft[last] = nil
		s.aircraft = s.aircraft[:last]
	}

	for len(s.aircraft) < s.target {
		id := types.AircraftID(len(s.aircraft) + 1)
		ac := aircraft.NewAircraft(id, s.rng.FloatInRange(s.cfg.BaseSpeedMin, s.cfg.BaseSpeedMax))
		if !s.assignLocked(ac, 0) {
			s.logger.Warnf("directory has fewer than two airports, cannot add aircraft")
			break
		}
		s.aircraft = append(s.aircraft, ac)
	}

	if after := len(s.aircraft); after != before {
		s.events.Add(Event{Tick: s.ticks, Kind: POPULATION, Message: populationMessage(before, after)})
		s.logger.Infof("population %d -> %d", before, after)
	}
	s.metrics.SetPopulation(len(s.aircraft))
}

// assignLocked sends ac on a fresh random route. It reports false when the
// directory cannot supply two distinct airports.
func (s *Simulation) assignLocked(ac *aircraft.Aircraft, progress float64) bool {
	origin, destination, ok := s.pickPairLocked()
	if !ok {
		return false
	}

	path := s.paths.Get(origin, destination, s.cfg.StepsPerSegment)
	ac.ReleaseSprite()
	ac.Assign(origin, destination, path, progress, s.sprites.NewSprite(ac.ID, path))

	s.events.Add(Event{Tick: s.ticks, Kind: ROUTE_ASSIGNED, AircraftID: ac.ID, Message: ac.RouteLabel()})
	s.logger.Debugf("aircraft #%d assigned %s", ac.ID, ac.RouteLabel())
	return true
}

// pickPairLocked draws origin and destination independently and uniformly,
// redrawing until they differ.
func (s *Simulation) pickPairLocked() (airspace.Airport, airspace.Airport, bool) {
	n := s.dir.Len()
	if n < 2 {
		return airspace.Airport{}, airspace.Airport{}, false
	}
	for {
		o, d := s.rng.Intn(n), s.rng.Intn(n)
		if o != d {
			return s.dir.At(o), s.dir.At(d), true
		}
	}
}

// SetSpeedMultiplier scales every aircraft's per-tick progress from the next
// tick on without touching current progress. 0 freezes the fleet; negative
// and NaN values are ignored.
func (s *Simulation) SetSpeedMultiplier(x float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		s.logger.Warnf("ignoring speed multiplier %v", x)
		return
	}
	s.multiplier = x
	s.metrics.SetSpeedMultiplier(x)
}

func (s *Simulation) SpeedMultiplier() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.multiplier
}

// Tick advances every aircraft once. Aircraft reaching the end of their path
// are reassigned before their position for this tick is sampled, so no
// aircraft is left with progress >= 1.
func (s *Simulation) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickLocked()
}

func (s *Simulation) tickLocked() {
	if len(s.aircraft) == 0 {
		return
	}

	start := time.Now()
	s.ticks++

	for _, ac := range s.aircraft {
		if ac.Advance(ac.Speed * s.multiplier) {
			s.events.Add(Event{Tick: s.ticks, Kind: ARRIVAL, AircraftID: ac.ID, Message: "arrived at " + string(ac.Destination.Code)})
			progress := 0.0
			if s.cfg.RandomizeStart {
				progress = s.rng.Float64()
			}
			s.assignLocked(ac, progress)
			s.metrics.IncReassignments()
			continue
		}
		ac.Resample()
	}
	s.checkSeparationLocked()

	s.status.Do(func() {
		s.logger.Infof("tick %d: %s", s.ticks, s.aircraft[0])
	})
	s.metrics.ObserveTick(time.Since(start), len(s.aircraft))
}

// checkSeparationLocked logs a warning for each pair of aircraft that has
// just come closer than SeparationKm.
func (s *Simulation) checkSeparationLocked() {
	if !s.monitor.Enabled() {
		return
	}
	for _, loss := range s.monitor.Check(s.aircraft) {
		msg := fmt.Sprintf("#%d and #%d within %.1f km", loss.A, loss.B, loss.DistanceKm)
		s.events.Add(Event{Tick: s.ticks, Kind: WARNING, AircraftID: loss.A, Message: msg})
		s.logger.Debugf("separation lost: %s", msg)
	}
	s.metrics.SetSeparationLosses(s.monitor.Active())
}

// Frame is the host frame callback. It ticks only while the simulation is
// running and reports whether it did.
func (s *Simulation) Frame() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return false
	}
	s.tickLocked()
	return true
}

// Start builds the remembered population with fresh routes and lets Frame
// tick again.
func (s *Simulation) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	if s.disposed {
		s.logger.Warnf("start on disposed simulation %s", s.runID)
		return
	}
	s.running = true
	s.events.Add(Event{Tick: s.ticks, Kind: LIFECYCLE, Message: "simulation started"})
	s.logger.Infof("simulation %s started", s.runID)
	s.resizeLocked()
}

// Stop releases every sprite and discards the population. Once Stop returns
// no further tick runs until Start.
func (s *Simulation) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Simulation) stopLocked() {
	if !s.running {
		return
	}
	s.running = false
	for i, ac := range s.aircraft {
		ac.ReleaseSprite()
		s.aircraft[i] = nil
	}
	s.aircraft = s.aircraft[:0]
	s.monitor.Reset()
	s.metrics.SetPopulation(0)
	s.metrics.SetSeparationLosses(0)
	s.events.Add(Event{Tick: s.ticks, Kind: LIFECYCLE, Message: "simulation stopped"})
	s.logger.Infof("simulation %s stopped after %d ticks", s.runID, s.ticks)
}

func (s *Simulation) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Dispose stops the simulation and drops its directory and caches. A
// disposed simulation cannot be started again.
func (s *Simulation) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.disposed = true
	s.dir = nil
	s.paths.Purge()
}

func (s *Simulation) Population() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.aircraft)
}

// TargetPopulation is the size the population has, or will have on Start.
func (s *Simulation) TargetPopulation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

func (s *Simulation) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

func (s *Simulation) Aircraft(id types.AircraftID) (AircraftSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := int(id) - 1
	if i < 0 || i >= len(s.aircraft) {
		return AircraftSnapshot{}, false
	}
	return snapshotOf(s.aircraft[i]), true
}

func (s *Simulation) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		RunID:           s.runID,
		Tick:            s.ticks,
		SpeedMultiplier: s.multiplier,
		Running:         s.running,
		Aircraft:        make([]AircraftSnapshot, len(s.aircraft)),
	}
	for i, ac := range s.aircraft {
		snap.Aircraft[i] = snapshotOf(ac)
	}
	return snap
}

func (s *Simulation) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.Events()
}

func (s *Simulation) PathCacheStats() (hits, misses int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paths.Stats()
}

func populationMessage(before, after int) string {
	if after > before {
		return fmt.Sprintf("added %d aircraft, now %d", after-before, after)
	}
	return fmt.Sprintf("removed %d aircraft, now %d", before-after, after)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
