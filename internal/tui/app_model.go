package tui

import (
	"context"
	"io"
	"time"

	"studybuddy/internal/assistant"
	"studybuddy/internal/model"
	"studybuddy/internal/mutate"
	"studybuddy/internal/store"
	"studybuddy/internal/views"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sirupsen/logrus"
)

const minibufferAutoClearAfter = 3 * time.Second

// Options carries the clock, id source, logger and assistant client; zero
// values mean wall clock, UUIDs, no logging and no assistant.
type Options struct {
	Env       mutate.Env
	Log       logrus.FieldLogger
	Assistant *assistant.Client
}

type view int

const (
	viewDashboard view = iota
	viewDetail
	viewAssistant
)

type pane int

const (
	paneSubjects pane = iota
	paneEntries
)

type appModel struct {
	ctx  context.Context
	sess *store.Session
	env  mutate.Env
	log  logrus.FieldLogger

	width  int
	height int

	view view
	pane pane

	subjectsList list.Model
	entriesList  list.Model

	search    textinput.Model
	searching bool

	// openKind/openID name the note or assignment shown in viewDetail.
	openKind    entryKind
	openID      string
	detailWidth int

	theme model.Theme
	guard ToggleGuard

	assistant *assistant.Client
	askInput  textinput.Model
	// askPending is the token of the request in flight, 0 when idle.
	askPending uint64
	askPrompt  string
	askReply   string

	minibufferText  string
	minibufferSetAt time.Time
}

func newAppModel(ctx context.Context, sess *store.Session, theme model.Theme, opts Options) appModel {
	env := opts.Env
	if env.IDs == nil || env.Now == nil {
		def := mutate.DefaultEnv()
		if env.IDs == nil {
			env.IDs = def.IDs
		}
		if env.Now == nil {
			env.Now = def.Now
		}
	}
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if theme == "" {
		theme = model.ThemeLight
	}
	applyTheme(theme)

	sl := list.New(nil, newRowDelegate(true), 0, 0)
	sl.Title = "Subjects"
	el := list.New(nil, newRowDelegate(false), 0, 0)
	el.Title = "Notes & assignments"
	for _, l := range []*list.Model{&sl, &el} {
		l.SetShowHelp(false)
		l.SetShowStatusBar(false)
		l.SetFilteringEnabled(false)
		l.DisableQuitKeybindings()
	}

	in := textinput.New()
	in.Placeholder = "Search notes & assignments"
	in.Prompt = "/ "
	in.CharLimit = 200

	ask := textinput.New()
	ask.Placeholder = "Ask Study Buddy AI..."
	ask.Prompt = "? "
	ask.CharLimit = 2000

	m := appModel{
		ctx:          ctx,
		sess:         sess,
		env:          env,
		log:          log,
		subjectsList: sl,
		entriesList:  el,
		search:       in,
		theme:        theme,
		guard:        NewToggleGuard(),
		assistant:    opts.Assistant,
		askInput:     ask,
	}
	m.refresh()
	return m
}

func (m appModel) now() time.Time { return m.env.Now() }

func (m appModel) root() model.Root { return m.sess.Root() }

// refresh rebuilds both lists from the session, keeping the selection index
// where possible.
func (m *appModel) refresh() {
	root := m.root()
	si := m.subjectsList.Index()
	m.subjectsList.SetItems(subjectItems(root))
	if si >= len(root.Subjects) {
		si = len(root.Subjects) - 1
	}
	if si < 0 {
		si = 0
	}
	m.subjectsList.Select(si)

	ei := m.entriesList.Index()
	if m.searching {
		m.entriesList.SetItems(searchItems(views.SearchHits(root, m.search.Value())))
	} else if s, ok := root.ActiveSubject(); ok {
		m.entriesList.SetItems(entryItems(s, m.now()))
	} else {
		m.entriesList.SetItems(nil)
	}
	if n := len(m.entriesList.Items()); ei >= n {
		ei = n - 1
	}
	if ei < 0 {
		ei = 0
	}
	m.entriesList.Select(ei)
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = text
	m.minibufferSetAt = m.now()
}

// apply runs op through the session and reports failures in the minibuffer.
func (m *appModel) apply(op store.Op) (bool, error) {
	changed, err := m.sess.Apply(m.ctx, op)
	if err != nil {
		m.log.WithError(err).Warn("tui: saving failed")
		m.showMinibuffer("Save failed: " + err.Error())
	}
	m.refresh()
	return changed, err
}

func (m appModel) selectedSubject() (subjectItem, bool) {
	it, ok := m.subjectsList.SelectedItem().(subjectItem)
	return it, ok
}

func (m appModel) selectedEntry() (entryItem, bool) {
	it, ok := m.entriesList.SelectedItem().(entryItem)
	return it, ok
}
