package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/itchan-dev/forumstate/shared/domain"
	internal_errors "github.com/itchan-dev/forumstate/shared/errors"
	"github.com/itchan-dev/forumstate/shared/jwt"
	"github.com/itchan-dev/forumstate/shared/logger"
	"golang.org/x/sync/errgroup"
)

// Coordinator owns every store and is the only way to mutate them.
//
// Intents may be issued from any goroutine. Backend calls run without the
// lock; completion handlers run under it, one at a time, in the order the
// calls resolve.
type Coordinator struct {
	backend  Backend
	renderer Renderer
	log      *slog.Logger
	now      func() time.Time

	mu          sync.Mutex
	table       *entityTable
	list        *ThreadListStore
	detail      *ThreadDetailStore
	auth        *AuthStore
	leaderboard *LeaderboardStore
	fence       *fence
	subscribers map[int]chan Event
	nextSub     int
}

type Option func(*Coordinator)

func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// WithRenderer renders thread bodies and comments before they are submitted.
func WithRenderer(r Renderer) Option {
	return func(c *Coordinator) { c.renderer = r }
}

// WithClock overrides the clock used to check access token expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func NewCoordinator(backend Backend, opts ...Option) *Coordinator {
	table := newEntityTable()
	c := &Coordinator{
		backend:     backend,
		log:         logger.Log.With("component", "state"),
		now:         time.Now,
		table:       table,
		list:        newThreadListStore(table),
		detail:      newThreadDetailStore(table),
		auth:        &AuthStore{},
		leaderboard: &LeaderboardStore{},
		fence:       newFence(),
		subscribers: make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init runs the app start fetches: the own profile when a token is present,
// and threads with users. Both run concurrently; the first error is returned.
func (c *Coordinator) Init(ctx context.Context) error {
	c.mu.Lock()
	hasToken := c.auth.token != ""
	c.mu.Unlock()

	var g errgroup.Group
	if hasToken {
		g.Go(func() error {
			_, err := c.FetchProfile(ctx)
			return err
		})
	}
	g.Go(func() error {
		_, err := c.FetchThreadsAndUsers(ctx)
		return err
	})
	return g.Wait()
}

// Restore installs a previously obtained access token. The user stays
// unknown until FetchProfile resolves.
func (c *Coordinator) Restore(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth.token = token
	c.backend.PutAccessToken(token)
	c.hook(StoreAuth, "restore")
}

// Logout forgets the user and the token and closes the open thread.
func (c *Coordinator) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth.logout()
	c.backend.PutAccessToken("")
	c.detail.Clear()
	c.hook(StoreAuth, "logout")
	c.hook(StoreDetail, "clear")
}

// LeaveThread closes the open thread. Responses still in flight for it
// will find nothing to apply to.
func (c *Coordinator) LeaveThread() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detail.Clear()
	c.hook(StoreDetail, "clear")
}

// Reset returns every store to its initial state and drops the token.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list.reset()
	c.detail.reset()
	c.auth.reset()
	c.leaderboard.reset()
	c.backend.PutAccessToken("")
	for _, store := range []StoreName{StoreThreads, StoreDetail, StoreAuth, StoreLeaderboard} {
		c.hook(store, "reset")
	}
}

func (c *Coordinator) hook(store StoreName, name string) {
	c.log.Debug("store hook", "store", store, "hook", name)
	c.publish(Event{Store: store, Operation: name, Phase: PhaseFulfilled})
}

// Subscribe returns a channel of change events. Events are dropped, not
// queued, when the subscriber falls more than buffer events behind.
func (c *Coordinator) Subscribe(buffer int) (<-chan Event, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	ch := make(chan Event, buffer)
	c.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subscribers, id)
			close(ch)
		})
	}
}

// publish must be called with c.mu held.
func (c *Coordinator) publish(e Event) {
	for _, ch := range c.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
}

// currentUser returns the authenticated user, nil when there is none or the
// token has expired. c.mu must be held.
func (c *Coordinator) currentUser() *domain.User {
	if c.auth.user == nil || jwt.Expired(c.auth.token, c.now()) {
		return nil
	}
	u := *c.auth.user
	return &u
}

func (c *Coordinator) requireUser(intent string) (domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	user := c.currentUser()
	if user == nil {
		c.log.Debug("intent short-circuited", "intent", intent, "error", internal_errors.ErrAuthRequired)
		return domain.User{}, internal_errors.ErrAuthRequired
	}
	return *user, nil
}

func (c *Coordinator) render(text string) string {
	if c.renderer == nil {
		return text
	}
	return c.renderer.Render(text)
}

func (c *Coordinator) Threads() ThreadList {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Snapshot()
}

func (c *Coordinator) Detail() Detail {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detail.Snapshot()
}

func (c *Coordinator) Auth() Auth {
	c.mu.Lock()
	defer c.mu.Unlock()
	a := c.auth.Snapshot()
	a.Authenticated = c.currentUser() != nil
	return a
}

func (c *Coordinator) Leaderboard() Leaderboard {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leaderboard.Snapshot()
}

// State is every store at one instant.
type State struct {
	Threads     ThreadList  `json:"threads"`
	Detail      Detail      `json:"detail"`
	Auth        Auth        `json:"auth"`
	Leaderboard Leaderboard `json:"leaderboard"`
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	a := c.auth.Snapshot()
	a.Authenticated = c.currentUser() != nil
	return State{
		Threads:     c.list.Snapshot(),
		Detail:      c.detail.Snapshot(),
		Auth:        a,
		Leaderboard: c.leaderboard.Snapshot(),
	}
}

// cachedEntities reports how many threads the views currently hold.
func (c *Coordinator) cachedEntities() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.size()
}

func (c *Coordinator) listSlot(b *busy) slot {
	return slot{store: StoreThreads, busy: b, err: &c.list.err}
}

func (c *Coordinator) detailSlot(b *busy) slot {
	return slot{store: StoreDetail, busy: b, err: &c.detail.err}
}
