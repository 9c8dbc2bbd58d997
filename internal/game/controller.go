// Package game orchestrates level sessions, progress and localization for a
// single player. A Controller is owned by one UI loop and is not safe for
// concurrent use.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-turnip/internal/catalog"
	"github.com/vovakirdan/tui-turnip/internal/engine"
	"github.com/vovakirdan/tui-turnip/internal/locale"
	"github.com/vovakirdan/tui-turnip/internal/progress"
)

var (
	// ErrUnknownLevel is returned when navigating to a level outside the catalog.
	ErrUnknownLevel = errors.New("unknown level")
	// ErrNoActiveSession is returned by session operations outside a level.
	ErrNoActiveSession = errors.New("no active level session")
)

// Deps are the collaborators of a Controller. Characters, Levels, Progress
// and Locales are required; the rest may be left zero.
type Deps struct {
	Characters *catalog.CharacterCatalog
	Levels     *catalog.LevelCatalog
	Progress   *progress.Store
	Locales    *locale.Catalog
	Curve      engine.StrengthCurve
	Observer   Observer
	Recorder   AttemptRecorder
	Logger     *log.Logger
	Now        func() time.Time
}

func (d *Deps) validate() error {
	switch {
	case d.Characters == nil:
		return errors.New("game: character catalog is required")
	case d.Levels == nil:
		return errors.New("game: level catalog is required")
	case d.Progress == nil:
		return errors.New("game: progress store is required")
	case d.Locales == nil:
		return errors.New("game: locale catalog is required")
	}
	return nil
}

// Advance tells the UI where to go after a successful pull.
type Advance struct {
	Unlocked     int // level unlocked by this success, 0 if none
	NextLevel    int // level to start next, 0 when the game is complete
	GameComplete bool
}

// Controller drives one player's game.
type Controller struct {
	chars    *catalog.CharacterCatalog
	levels   *catalog.LevelCatalog
	store    *progress.Store
	locales  *locale.Catalog
	curve    engine.StrengthCurve
	observer Observer
	recorder AttemptRecorder
	logger   *log.Logger
	now      func() time.Time

	session *engine.Session
}

// New builds a controller and loads the player's progress.
func New(ctx context.Context, deps Deps) (*Controller, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		chars:    deps.Characters,
		levels:   deps.Levels,
		store:    deps.Progress,
		locales:  deps.Locales,
		curve:    deps.Curve,
		observer: deps.Observer,
		recorder: deps.Recorder,
		logger:   deps.Logger,
		now:      deps.Now,
	}
	if c.curve.IsZero() {
		c.curve = engine.DefaultCurve()
	}
	if c.observer == nil {
		c.observer = NopObserver{}
	}
	if c.recorder == nil {
		c.recorder = nopRecorder{}
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.now == nil {
		c.now = time.Now
	}

	p := c.store.Load(ctx)
	c.logger.Debug("progress loaded",
		"profile", c.store.Profile(),
		"language", p.Language,
		"level", p.CurrentLevel,
		"unlocked", len(p.UnlockedLevels),
	)
	return c, nil
}

// Characters returns the character catalog.
func (c *Controller) Characters() *catalog.CharacterCatalog { return c.chars }

// Levels returns the level catalog.
func (c *Controller) Levels() *catalog.LevelCatalog { return c.levels }

// Locales returns the locale catalog.
func (c *Controller) Locales() *locale.Catalog { return c.locales }

// Progress returns a copy of the player's progress.
func (c *Controller) Progress() progress.Progress { return c.store.Get() }

// Session returns the active session, or nil outside a level.
func (c *Controller) Session() *engine.Session { return c.session }

// RequiredStrength returns the requirement for levelID under the active curve.
func (c *Controller) RequiredStrength(levelID int) int { return c.curve.Required(levelID) }

// TurnipScale returns the turnip's visual scale on levelID.
func (c *Controller) TurnipScale(levelID int) float64 { return c.curve.TurnipScale(levelID) }

// Language returns the effective UI language.
func (c *Controller) Language() string {
	return c.locales.Resolve(c.store.Get().Language)
}

// T translates key into the current language. params are name/value pairs.
func (c *Controller) T(key string, params ...string) string {
	var m map[string]string
	if len(params) > 1 {
		m = make(map[string]string, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			m[params[i]] = params[i+1]
		}
	}
	return c.locales.Lookup(key, c.Language(), m)
}

// StartLevel discards any active session and starts level id from scratch.
// The level becomes the player's current level.
func (c *Controller) StartLevel(ctx context.Context, id int) (*engine.Session, error) {
	lvl, err := c.levels.Get(id)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", id, ErrUnknownLevel)
	}

	s, err := engine.NewSession(lvl, c.chars, c.curve)
	if err != nil {
		return nil, fmt.Errorf("start level %d: %w", id, err)
	}
	c.session = s

	c.save(ctx, func(p *progress.Progress) { p.CurrentLevel = id })
	c.logger.Info("level started", "level", id, "session", s.ID(), "required", s.RequiredStrength())
	c.observer.LevelStarted(lvl, s.RequiredStrength())
	return s, nil
}

// Continue starts the player's current level, or level 1 if it no longer exists.
func (c *Controller) Continue(ctx context.Context) (*engine.Session, error) {
	id := c.store.Get().CurrentLevel
	if _, err := c.levels.Get(id); err != nil {
		id = progress.DefaultLevel
	}
	return c.StartLevel(ctx, id)
}

// ExitLevel abandons the active session.
func (c *Controller) ExitLevel() {
	if c.session != nil {
		c.logger.Debug("level exited", "level", c.session.Level().ID, "session", c.session.ID())
	}
	c.session = nil
}

// Place puts characterID into slot of the active session.
// Rejections are returned as engine errors and leave the session unchanged.
func (c *Controller) Place(slot int, characterID string) (engine.PlaceResult, error) {
	if c.session == nil {
		return engine.PlaceResult{}, ErrNoActiveSession
	}
	res, err := c.session.Place(slot, characterID)
	if err != nil {
		c.logger.Debug("placement rejected", "slot", slot, "character", characterID, "error", err)
		return res, err
	}
	c.observer.CharacterPlaced(c.session.Level(), res)
	return res, nil
}

// Pull attempts to pull the turnip. On success the next level is unlocked
// and the returned Advance says what comes next. A won session cannot be
// pulled again.
func (c *Controller) Pull(ctx context.Context) (engine.PullOutcome, Advance, error) {
	if c.session == nil {
		return engine.PullOutcome{}, Advance{}, ErrNoActiveSession
	}

	s := c.session
	if s.Phase() == engine.PhaseResolvedSuccess {
		return engine.PullOutcome{}, Advance{}, engine.ErrSessionResolved
	}
	out := s.AttemptPull()
	if out.Result != engine.PullNoCharactersPlaced {
		c.record(ctx, s, out)
	}
	c.observer.PullResolved(s.Level(), out)

	c.logger.Info("pull attempted",
		"level", s.Level().ID,
		"result", out.Result.String(),
		"total", out.Total,
		"required", out.Required,
	)

	if out.Result != engine.PullSuccess {
		return out, Advance{}, nil
	}
	return out, c.OnPullSuccess(ctx, s), nil
}

// OnPullSuccess applies the consequences of a won session: it unlocks the
// following level (current level is untouched) and signals completion on the
// final level.
func (c *Controller) OnPullSuccess(ctx context.Context, s *engine.Session) Advance {
	lvl := s.Level()
	var adv Advance

	next := lvl.ID + 1
	if lvl.ID < c.levels.Last().ID && !c.store.Get().IsUnlocked(next) {
		c.save(ctx, func(p *progress.Progress) { p.Unlock(next) })
		adv.Unlocked = next
		c.observer.LevelUnlocked(next)
		c.logger.Info("level unlocked", "level", next)
	}

	if lvl.IsFinal {
		adv.GameComplete = true
		c.observer.GameCompleted()
		c.logger.Info("game complete", "profile", c.store.Profile())
		return adv
	}

	adv.NextLevel = lvl.ID + 1
	return adv
}

// ChangeLanguage switches the UI language. Unknown codes silently select the
// default language. It returns the code actually applied.
func (c *Controller) ChangeLanguage(ctx context.Context, code string) string {
	resolved := c.locales.Resolve(code)
	c.save(ctx, func(p *progress.Progress) { p.Language = resolved })
	return resolved
}

// MarkIntroViewed records that the story intro was seen or skipped.
func (c *Controller) MarkIntroViewed(ctx context.Context) {
	c.save(ctx, func(p *progress.Progress) { p.IntroViewed = true })
}

// ResetProgress wipes the player's record.
func (c *Controller) ResetProgress(ctx context.Context) error {
	c.session = nil
	return c.store.Reset(ctx)
}

// save applies fn and writes through. Failures are logged; play continues
// on the in-memory state.
func (c *Controller) save(ctx context.Context, fn func(p *progress.Progress)) {
	if err := c.store.Update(ctx, fn); err != nil {
		c.logger.Warn("progress not persisted", "error", err)
	}
}

func (c *Controller) record(ctx context.Context, s *engine.Session, out engine.PullOutcome) {
	rec := AttemptRecord{
		Profile:   c.store.Profile(),
		SessionID: s.ID(),
		LevelID:   s.Level().ID,
		Placed:    s.OccupiedCount(),
		Total:     out.Total,
		Required:  out.Required,
		Outcome:   out.Result.String(),
		At:        c.now(),
	}
	if err := c.recorder.RecordAttempt(ctx, rec); err != nil {
		c.logger.Warn("pull attempt not recorded", "level", rec.LevelID, "error", err)
	}
}

// LevelLabel formats a short "Level N" label in the current language.
func (c *Controller) LevelLabel(id int) string {
	return c.T("ui.level") + " " + strconv.Itoa(id)
}
