package screen

import (
	"context"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/i474232898/weather-screen/internal/device"
	"github.com/i474232898/weather-screen/internal/metrics"
	"github.com/i474232898/weather-screen/internal/store"
	"github.com/i474232898/weather-screen/internal/weather"
)

const (
	// DefaultSearchDelay is the quiet period before a typed query is sent.
	DefaultSearchDelay = 1200 * time.Millisecond
	// queries shorter than this clear the result list instead of searching
	minQueryLen = 3
)

// Notifier raises a one-off alert to the user.
type Notifier interface {
	Notify(title, message string)
}

// LogNotifier surfaces alerts in the log.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(title, message string) {
	n.Logger.Warn(message, "alert", title)
}

// Config holds the fixed cities and timings of the screen.
type Config struct {
	DefaultCity    string // permission denied, or refresh with nothing persisted
	FallbackCity   string // permission or geolocation error
	ForecastDays   int
	SearchDelay    time.Duration
	RequestTimeout time.Duration // per outbound call; 0 means no extra deadline
}

// Deps are the collaborators of a Controller. Suggester, Notifier, Logger
// and Metrics may be nil.
type Deps struct {
	Weather   weather.Client
	Suggester weather.Suggester
	Locator   device.Locator
	Store     store.KV
	Notifier  Notifier
	Logger    *slog.Logger
	Metrics   *metrics.Collector
	Now       func() time.Time
}

// Controller owns the screen state and runs every location-resolution flow:
// mount, search selection and refresh. Each flow gets a sequence number and
// only the newest flow may write weather or suggestions.
type Controller struct {
	cfg       Config
	weather   weather.Client
	suggester weather.Suggester
	locator   device.Locator
	store     store.KV
	notifier  Notifier
	logger    *slog.Logger
	metrics   *metrics.Collector
	now       func() time.Time
	debounce  *Debouncer

	mu          sync.Mutex
	state       State
	seq         uint64
	loadingN    int
	refreshingN int
	denied      bool
	closed      bool

	tasks sync.WaitGroup
	bg    context.Context
	stop  context.CancelFunc
}

func New(cfg Config, d Deps) *Controller {
	if cfg.SearchDelay <= 0 {
		cfg.SearchDelay = DefaultSearchDelay
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	bg, stop := context.WithCancel(context.Background())
	return &Controller{
		cfg:       cfg,
		weather:   d.Weather,
		suggester: d.Suggester,
		locator:   d.Locator,
		store:     d.Store,
		notifier:  d.Notifier,
		logger:    d.Logger,
		metrics:   d.Metrics,
		now:       d.Now,
		debounce:  NewDebouncer(cfg.SearchDelay),
		state:     State{Phase: PhaseIdle, Suggestions: []string{}},
		bg:        bg,
		stop:      stop,
	}
}

// State returns a copy of the current screen state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	c.state.UpdatedAt = c.now()
}

func (c *Controller) beginFlow(trigger string, fn func(s *State)) uint64 {
	c.mu.Lock()
	c.seq++
	flow := c.seq
	c.state.Flow = flow
	fn(&c.state)
	c.state.UpdatedAt = c.now()
	c.mu.Unlock()

	c.metrics.RecordFlow(trigger)
	c.logger.Debug("flow started", "flow", flow, "trigger", trigger)
	return flow
}

func (c *Controller) endLoading() {
	c.update(func(s *State) {
		c.loadingN--
		s.Loading = c.loadingN > 0
	})
}

func (c *Controller) endRefreshing() {
	c.update(func(s *State) {
		c.refreshingN--
		s.Refreshing = c.refreshingN > 0
	})
}

// setError writes the single error slot; last write wins.
func setError(s *State, flow uint64, msg string) {
	s.Err = msg
	s.errFlow = flow
}

func (c *Controller) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.RequestTimeout > 0 {
		return context.WithTimeout(ctx, c.cfg.RequestTimeout)
	}
	return context.WithCancel(ctx)
}

// Mount resolves the device location and loads its weather. Until the
// fetch returns, the last persisted weather (if any) is shown.
func (c *Controller) Mount(ctx context.Context) {
	prevWeather := c.lastWeather(ctx)
	prevLoc := c.lastLocation(ctx)

	flow := c.beginFlow("mount", func(s *State) {
		s.Phase = PhaseLocating
		c.loadingN++
		s.Loading = true
		if s.Weather == nil && prevWeather != nil {
			s.Weather = prevWeather
			s.Location = prevLoc
		}
	})
	defer c.endLoading()

	query := c.locate(ctx, flow)
	c.fetchAndSuggest(ctx, flow, query, nil)
}

// locate returns the provider query for the device position, or one of the
// configured cities when the position can't be used.
func (c *Controller) locate(ctx context.Context, flow uint64) string {
	perm, err := c.locator.RequestPermission(ctx)
	if err != nil {
		c.logger.Warn("location permission request failed", "flow", flow, "err", err, "city", c.cfg.FallbackCity)
		c.update(func(s *State) { setError(s, flow, ErrMsgLocation) })
		return c.cfg.FallbackCity
	}
	if perm != device.PermissionGranted {
		c.logger.Info("location permission denied", "flow", flow, "city", c.cfg.DefaultCity)
		c.notifyDenied()
		return c.cfg.DefaultCity
	}

	coords, err := c.locator.CurrentPosition(ctx)
	if err != nil {
		c.logger.Warn("geolocation failed", "flow", flow, "err", err, "city", c.cfg.FallbackCity)
		c.update(func(s *State) { setError(s, flow, ErrMsgLocation) })
		return c.cfg.FallbackCity
	}
	return coords.Query()
}

// notifyDenied raises the permission alert at most once per controller.
func (c *Controller) notifyDenied() {
	c.mu.Lock()
	first := !c.denied
	c.denied = true
	if first {
		c.state.Notice = NoticePermissionDenied
		c.state.UpdatedAt = c.now()
	}
	c.mu.Unlock()

	if first && c.notifier != nil {
		c.notifier.Notify("Permission denied", NoticePermissionDenied)
	}
}

// fetchAndSuggest is the shared tail of every flow: fetch, publish, persist,
// then start the suggestion task. chosen overrides the location derived from
// the payload.
func (c *Controller) fetchAndSuggest(ctx context.Context, flow uint64, query string, chosen *weather.Location) {
	fctx, cancel := c.withTimeout(ctx)
	snap, err := c.weather.FetchForecast(fctx, query, c.cfg.ForecastDays)
	cancel()

	if err != nil || !snap.Valid() {
		c.logger.Warn("no weather data", "flow", flow, "q", query, "err", err)
		c.mu.Lock()
		if flow == c.seq {
			setError(&c.state, flow, ErrMsgWeather)
			if c.state.Weather == nil {
				c.state.Phase = PhaseIdle
			} else {
				c.state.Phase = PhaseLoaded
			}
			c.state.UpdatedAt = c.now()
		}
		c.mu.Unlock()
		return
	}

	loc := snap.Location.Location()
	if chosen != nil {
		loc = *chosen
	}

	c.mu.Lock()
	if flow != c.seq {
		c.mu.Unlock()
		c.metrics.RecordStale("weather")
		c.logger.Debug("dropping stale weather", "flow", flow, "current", c.currentFlow())
		return
	}
	s := &c.state
	s.Phase = PhaseLoaded
	s.Weather = snap
	s.Location = &loc
	s.Suggestions = []string{}
	if s.errFlow < flow {
		s.Err = ""
		s.errFlow = 0
	}
	s.UpdatedAt = c.now()
	startTask := !c.closed && c.suggester != nil
	if startTask {
		c.tasks.Add(1)
	}
	c.mu.Unlock()

	c.saveLocation(ctx, loc)
	c.saveWeather(ctx, snap)

	if startTask {
		go c.suggest(flow, snap)
	}
}

func (c *Controller) currentFlow() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// suggest runs detached from the flow that started it and merges its result
// only if that flow is still the newest.
func (c *Controller) suggest(flow uint64, snap *weather.Snapshot) {
	defer c.tasks.Done()

	ctx, cancel := c.withTimeout(c.bg)
	defer cancel()

	req := weather.NewSuggestionRequest(snap, c.timeOfDay(snap))
	lines := c.suggester.GetSuggestion(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if flow != c.seq {
		c.metrics.RecordStale("suggestion")
		return
	}
	c.state.Suggestions = lines
	c.state.UpdatedAt = c.now()
}

// timeOfDay prefers the place's own local time over the device clock.
func (c *Controller) timeOfDay(snap *weather.Snapshot) weather.TimeOfDay {
	if t, err := time.Parse("2006-01-02 15:04", snap.Location.Localtime); err == nil {
		return weather.TimeOfDayAt(t)
	}
	return weather.TimeOfDayAt(c.now())
}

// ToggleSearch opens or collapses the search box.
func (c *Controller) ToggleSearch() {
	c.update(func(s *State) { s.SearchOpen = !s.SearchOpen })
}

// TextChanged handles a keystroke in the search box. Queries of three or
// more characters are searched after the debounce window; shorter ones
// clear the results right away.
func (c *Controller) TextChanged(text string) {
	short := utf8.RuneCountInString(text) < minQueryLen
	c.update(func(s *State) {
		s.Query = text
		if short {
			s.Results = nil
			s.Searching = false
		}
	})

	if short {
		c.debounce.Cancel()
		return
	}
	c.debounce.Call(func() { c.search(text) })
}

func (c *Controller) search(query string) {
	c.update(func(s *State) { s.Searching = true })

	ctx, cancel := c.withTimeout(c.bg)
	defer cancel()
	locs, err := c.weather.SearchLocations(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Query != query {
		c.metrics.RecordStale("search")
		return
	}
	c.state.Searching = false
	c.state.UpdatedAt = c.now()
	if err != nil {
		setError(&c.state, c.seq, ErrMsgSearch)
		return
	}
	c.state.Results = locs
}

// Select loads the weather for a search result and remembers it as the
// last location.
func (c *Controller) Select(ctx context.Context, loc weather.Location) {
	c.debounce.Cancel()
	flow := c.beginFlow("select", func(s *State) {
		s.SearchOpen = false
		s.Searching = false
		s.Query = ""
		s.Results = nil
		c.loadingN++
		s.Loading = true
	})
	defer c.endLoading()

	c.fetchAndSuggest(ctx, flow, loc.Query(), &loc)
}

// Refresh reloads the last persisted location, or the default city when
// nothing usable is stored. It only drives the Refreshing flag.
func (c *Controller) Refresh(ctx context.Context) {
	flow := c.beginFlow("refresh", func(s *State) {
		c.refreshingN++
		s.Refreshing = true
	})
	defer c.endRefreshing()

	query := c.cfg.DefaultCity
	var chosen *weather.Location
	if loc := c.lastLocation(ctx); loc != nil {
		query = loc.Query()
		chosen = loc
	}
	c.fetchAndSuggest(ctx, flow, query, chosen)
}

// DismissNotice clears the permission notice once the user has seen it.
func (c *Controller) DismissNotice() {
	c.update(func(s *State) { s.Notice = "" })
}

// Wait blocks until all started suggestion tasks have finished.
func (c *Controller) Wait() {
	c.tasks.Wait()
}

// Close cancels pending searches and background tasks and waits for them.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.debounce.Cancel()
	c.stop()
	c.tasks.Wait()
}
