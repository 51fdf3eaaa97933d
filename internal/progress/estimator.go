package progress

import (
	"math"
	"sync"
	"time"
)

// Stage は走査のフェーズを表します。list は候補ファイルの列挙、
// scan はファイル本体の走査です。
type Stage string

const (
	StageList Stage = "list"
	StageScan Stage = "scan"
)

// Snapshot is a point-in-time view of the estimator. All rate and ETA
// fields refer to the current stage only.
type Snapshot struct {
	Stage     Stage         `json:"stage"`
	Total     int           `json:"total"`
	Done      int           `json:"done"`
	Remaining int           `json:"remaining"`
	RateEMA   float64       `json:"rate_per_sec"`
	RateP50   float64       `json:"rate_p50"`
	RateP10   float64       `json:"rate_p10"`
	ETAP50    time.Duration `json:"eta_p50"`
	ETAP90    time.Duration `json:"eta_p90"`
	Warmup    bool          `json:"warmup"`
	StartedAt time.Time     `json:"started_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Elapsed   time.Duration `json:"elapsed"`
}

type Config struct {
	Alpha          float64
	WindowSize     int
	WarmupSamples  int
	WarmupDuration time.Duration
	NotifyInterval time.Duration
	SlowFallback   float64
}

func DefaultConfig() Config {
	return Config{
		Alpha:          0.2,
		WindowSize:     60,
		WarmupSamples:  20,
		WarmupDuration: 2 * time.Second,
		NotifyInterval: 250 * time.Millisecond,
		SlowFallback:   0.6,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Alpha <= 0 {
		c.Alpha = def.Alpha
	}
	if c.WindowSize <= 0 {
		c.WindowSize = def.WindowSize
	}
	if c.WarmupSamples <= 0 {
		c.WarmupSamples = def.WarmupSamples
	}
	if c.WarmupDuration <= 0 {
		c.WarmupDuration = def.WarmupDuration
	}
	if c.NotifyInterval <= 0 {
		c.NotifyInterval = def.NotifyInterval
	}
	if c.SlowFallback <= 0 {
		c.SlowFallback = def.SlowFallback
	}
	return c
}

// Estimator は処理レートの EMA と分位点から残り時間を見積もります。
// レートの統計はステージごとに独立です。
type Estimator struct {
	mu         sync.Mutex
	cfg        Config
	startedAt  time.Time
	lastTick   time.Time
	lastNotify time.Time
	stage      Stage
	total      int
	done       int
	rates      map[Stage]*rateTracker
}

type rateTracker struct {
	ema    float64
	recent *rateWindow
}

func NewEstimator(total int, cfg Config) *Estimator {
	now := time.Now()
	return &Estimator{
		cfg:       cfg.withDefaults(),
		startedAt: now,
		lastTick:  now,
		stage:     StageScan,
		total:     total,
		rates:     make(map[Stage]*rateTracker),
	}
}

func (e *Estimator) SetTotal(total int) {
	e.mu.Lock()
	e.total = total
	e.mu.Unlock()
}

// Stage switches the estimator to a new stage. The boolean reports whether
// the stage actually changed, so callers can publish transitions eagerly.
func (e *Estimator) Stage(stage Stage) (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := time.Now()
	if stage == e.stage {
		return e.snapshotLocked(now), false
	}
	e.stage = stage
	e.lastNotify = now
	return e.snapshotLocked(now), true
}

// Advance records delta finished units. The boolean reports whether enough
// time has passed since the last notification (or the work just finished)
// that the caller should publish this snapshot.
func (e *Estimator) Advance(delta int) (Snapshot, bool) {
	if delta <= 0 {
		return e.Snapshot(), false
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	if now.Before(e.lastTick) {
		now = e.lastTick
	}
	dt := now.Sub(e.lastTick).Seconds()
	if dt <= 0 {
		dt = 1e-6
	}
	e.done += delta
	e.lastTick = now

	instant := float64(delta) / dt
	if math.IsNaN(instant) || math.IsInf(instant, 0) || instant < 0 {
		instant = 0
	}
	tr := e.trackerLocked(e.stage)
	if tr.ema == 0 {
		tr.ema = instant
	} else {
		tr.ema = e.cfg.Alpha*instant + (1-e.cfg.Alpha)*tr.ema
	}
	tr.recent.Add(instant)

	snap := e.snapshotLocked(now)
	notify := snap.Remaining == 0 || now.Sub(e.lastNotify) >= e.cfg.NotifyInterval
	if notify {
		e.lastNotify = now
	}
	return snap, notify
}

func (e *Estimator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(time.Now())
}

// Complete clamps done to total and returns the final snapshot.
func (e *Estimator) Complete() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := time.Now()
	if e.total >= 0 && e.done < e.total {
		e.done = e.total
	}
	e.lastNotify = now
	return e.snapshotLocked(now)
}

func (e *Estimator) trackerLocked(stage Stage) *rateTracker {
	tr := e.rates[stage]
	if tr == nil {
		tr = &rateTracker{recent: newRateWindow(e.cfg.WindowSize)}
		e.rates[stage] = tr
	}
	return tr
}

func (e *Estimator) snapshotLocked(now time.Time) Snapshot {
	tr := e.trackerLocked(e.stage)
	remain := -1
	if e.total >= 0 {
		remain = e.total - e.done
		if remain < 0 {
			remain = 0
		}
	}
	elapsed := now.Sub(e.startedAt)
	warm := e.done >= e.cfg.WarmupSamples && elapsed >= e.cfg.WarmupDuration

	p50 := tr.recent.Quantile(0.50)
	if p50 <= 0 {
		p50 = tr.ema
	}
	p10 := tr.recent.Quantile(0.10)
	if p10 <= 0 {
		p10 = p50 * e.cfg.SlowFallback
	}

	var eta50, eta90 time.Duration
	if warm && remain > 0 {
		eta50 = etaFor(remain, p50)
		eta90 = etaFor(remain, p10)
	}
	return Snapshot{
		Stage:     e.stage,
		Total:     e.total,
		Done:      e.done,
		Remaining: remain,
		RateEMA:   tr.ema,
		RateP50:   p50,
		RateP10:   p10,
		ETAP50:    eta50,
		ETAP90:    eta90,
		Warmup:    !warm,
		StartedAt: e.startedAt,
		UpdatedAt: now,
		Elapsed:   elapsed,
	}
}

func etaFor(remain int, rate float64) time.Duration {
	if rate <= 0 || remain <= 0 {
		return 0
	}
	sec := float64(remain) / rate
	if math.IsNaN(sec) || math.IsInf(sec, 0) {
		return 0
	}
	if sec > math.MaxInt64/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(sec * float64(time.Second))
}
