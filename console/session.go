package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"pkt.systems/boxchat/core"
	"pkt.systems/boxchat/internal/logx"
	"pkt.systems/boxchat/schema"
	"pkt.systems/pslog"
)

type mode int

const (
	modeUsername mode = iota
	modeMessage
	modeLookup
)

func (m mode) String() string {
	switch m {
	case modeUsername:
		return "username"
	case modeMessage:
		return "message"
	case modeLookup:
		return "lookup"
	default:
		return "unknown"
	}
}

// Session is the single-threaded controller: it polls for keys, routes them
// to the active editor and renders commits into the region. The lookup
// prompt is a modal state; while it is open the message editor keeps its
// buffer but receives no input.
type Session struct {
	cfg      Config
	input    keySource
	surface  surface
	region   *region
	geo      geometry
	registry *core.Registry

	quit      keySet
	cancel    keySet
	lookupKey key

	mode   mode
	main   lineEditor
	lookup lineEditor
	user   *schema.User

	ctx context.Context
	err error
}

// NewSession builds a session drawing on t and registering users in registry.
func NewSession(cfg Config, t *Terminal, registry *core.Registry) (*Session, error) {
	theme := themeForName(cfg.Theme)
	return newSession(cfg, t.input, newScreen(t.out, theme.Color), t.cols, t.rows, registry)
}

func newSession(cfg Config, input keySource, s surface, cols, rows int, registry *core.Registry) (*Session, error) {
	if registry == nil {
		return nil, errors.New("registry is required")
	}
	geo, err := newGeometry(cols, rows)
	if err != nil {
		return nil, err
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Overflow, err = schema.NormalizeOverflowPolicy(string(cfg.Overflow)); err != nil {
		return nil, err
	}
	quit, err := parseKeys(cfg.Keys.Quit)
	if err != nil {
		return nil, fmt.Errorf("quit keys: %w", err)
	}
	cancel, err := parseKeys(cfg.Keys.Cancel)
	if err != nil {
		return nil, fmt.Errorf("cancel keys: %w", err)
	}
	lookupKey, err := parseKey(cfg.Keys.Lookup)
	if err != nil {
		return nil, fmt.Errorf("lookup key: %w", err)
	}
	return &Session{
		cfg:       cfg,
		input:     input,
		surface:   s,
		region:    newRegion(s, geo, themeForName(cfg.Theme), cfg.Title),
		geo:       geo,
		registry:  registry,
		quit:      quit,
		cancel:    cancel,
		lookupKey: lookupKey,
	}, nil
}

func (s *Session) log() pslog.Logger {
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if s.user == nil {
		return logx.Ctx(ctx)
	}
	return logx.WithUser(ctx, s.user.ID)
}

// User returns the user registered at the username prompt, if any.
func (s *Session) User() *schema.User {
	return s.user
}

// Run draws the screen and processes keys until a quit key, end of input or
// context cancellation. Only a failure to read input or write output is
// returned as an error.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx = ctx
	s.start()
	if err := s.surface.Flush(); err != nil {
		return err
	}
	s.log().Info("console session start", "cols", s.geo.cols, "rows", s.geo.rows, "region_lines", s.region.Height(), "mode", s.mode)

	for {
		if ctx.Err() != nil {
			s.log().Info("console exit", "reason", "context")
			return nil
		}
		keys, err := s.input.Poll(s.cfg.PollInterval)
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log().Info("console exit", "reason", "eof")
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		for _, k := range keys {
			if s.handleKey(k) {
				if err := s.surface.Flush(); err != nil && s.err == nil {
					s.err = err
				}
				return s.err
			}
		}
		if err := s.surface.Flush(); err != nil {
			return err
		}
	}
}

func (s *Session) start() {
	s.region.Draw()
	if s.cfg.PromptUsername {
		s.mode = modeUsername
		s.main = newLineEditor(s.cfg.Prompts.Username, s.geo, s.cfg.Overflow)
	} else {
		s.mode = modeMessage
		s.main = newLineEditor(s.cfg.Prompts.Message, s.geo, s.cfg.Overflow)
	}
	s.main.redraw(s.region)
}

// handleKey dispatches one key and reports whether the session should end.
func (s *Session) handleKey(k key) bool {
	if s.quit.has(k) {
		s.log().Info("console exit", "reason", "quit", "mode", s.mode)
		return true
	}
	switch s.mode {
	case modeUsername:
		return s.handleUsernameKey(k)
	case modeLookup:
		s.handleLookupKey(k)
	default:
		s.handleMessageKey(k)
	}
	return false
}

func (s *Session) handleUsernameKey(k key) bool {
	switch k.kind {
	case keyEnter:
		name := s.main.String()
		if _, err := schema.NormalizeUserName(name); err != nil {
			return false
		}
		user, err := s.registry.Add(name)
		if err != nil {
			s.err = fmt.Errorf("register user: %w", err)
			s.log().Error("user registration failed", "err", err)
			return true
		}
		s.user = user
		s.log().Info("username registered", "name", user.Name)
		s.region.SetLabel("Username: " + user.Name)
		s.mode = modeMessage
		s.main = newLineEditor(s.cfg.Prompts.Message, s.geo, s.cfg.Overflow)
		s.main.redraw(s.region)
	default:
		s.editKey(&s.main, k)
	}
	return false
}

func (s *Session) handleMessageKey(k key) {
	if k == s.lookupKey {
		s.openLookup()
		return
	}
	switch k.kind {
	case keyEnter:
		s.commitMessage(s.main.Commit())
	default:
		s.editKey(&s.main, k)
	}
}

func (s *Session) handleLookupKey(k key) {
	if s.cancel.has(k) {
		s.log().Debug("lookup cancelled")
		s.closeLookup()
		return
	}
	switch k.kind {
	case keyEnter:
		s.commitLookup(s.lookup.Commit())
	default:
		s.editKey(&s.lookup, k)
	}
}

// editKey applies printable runes and backspace to e; anything else is ignored.
func (s *Session) editKey(e *lineEditor, k key) {
	switch k.kind {
	case keyRune:
		if isPrintable(k.r) {
			e.typeRune(k.r, s.surface)
		}
	case keyBackspace:
		if e.Backspace() {
			e.redraw(s.region)
		}
	}
}

func (s *Session) commitMessage(text string) {
	if s.region.CommitLine(text) {
		s.log().Debug("region wrapped", "wraps", s.region.Wraps())
	}
	if s.user != nil && s.cfg.ChatLog && text != "" {
		s.registry.Record(s.user, text)
	}
	s.main.redraw(s.region)
}

func (s *Session) openLookup() {
	s.mode = modeLookup
	s.lookup = newLineEditor(s.cfg.Prompts.Lookup, s.geo, s.cfg.Overflow)
	s.lookup.redraw(s.region)
	s.log().Debug("lookup opened", "draft_len", s.main.Len())
}

func (s *Session) commitLookup(id string) {
	line := "You entered ID: " + id
	if user, err := s.registry.Lookup(id); err == nil {
		line += " (user: " + user.Name + ")"
	}
	if s.region.CommitNotice(line) {
		s.log().Debug("region wrapped", "wraps", s.region.Wraps())
	}
	s.log().Debug("lookup committed", "id", strings.TrimSpace(id))
	s.closeLookup()
}

func (s *Session) closeLookup() {
	s.mode = modeMessage
	s.lookup = lineEditor{}
	s.main.redraw(s.region)
}
