package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Birkbeck/mobile-computing-project-sabbas16/internal/db"
	"github.com/Birkbeck/mobile-computing-project-sabbas16/internal/writer"
)

// Screen identifies the screen currently shown.
type Screen int

const (
	ScreenSplash Screen = iota
	ScreenList
	ScreenAdd
	ScreenDetail
	ScreenEdit
)

// Toast texts.
const (
	MsgFillAllFields = "Please fill all fields"
	MsgSaved         = "Recipe Saved!"
	MsgUpdated       = "Recipe updated"
	MsgDeleted       = "Recipe deleted"
	MsgNotFound      = "Recipe not found"
	MsgFailed        = "Something went wrong"
)

const toastDuration = 3 * time.Second

// Store is the read side of the recipe store used by the screens.
type Store interface {
	Watch(ctx context.Context) *db.Subscription
	GetByID(ctx context.Context, id int64) (*db.Recipe, error)
}

// Writer queues recipe writes off the update loop.
type Writer interface {
	Insert(r db.Recipe) <-chan writer.Result
	Update(r db.Recipe) <-chan writer.Result
	Delete(r db.Recipe) <-chan writer.Result
}

// Options tunes a Model.
type Options struct {
	Splash time.Duration
	Logger *zap.Logger
}

// Model is the root bubbletea model for the recipe app.
type Model struct {
	store  Store
	writes Writer
	log    *zap.Logger
	splash time.Duration

	screen Screen

	// List
	sub      *db.Subscription
	recipes  []db.Recipe
	loaded   bool
	selected int

	// Detail
	detailID      int64
	detail        *db.Recipe
	confirmDelete bool

	// Add / edit
	form recipeForm

	// Toast
	toast    string
	toastErr bool
	toastSeq int

	// UI state
	width  int
	height int
}

// New creates a Model showing the splash screen.
func New(store Store, writes Writer, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return Model{
		store:  store,
		writes: writes,
		log:    log,
		splash: opts.Splash,
		screen: ScreenSplash,
	}
}

// Init starts the splash timer and opens the live listing.
func (m Model) Init() tea.Cmd {
	return tea.Batch(splashCmd(m.splash), watchCmd(m.store))
}

// splashCmd fires SplashDoneMsg after d.
func splashCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return SplashDoneMsg{} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return SplashDoneMsg{}
	})
}

// watchCmd subscribes to the live listing.
func watchCmd(store Store) tea.Cmd {
	return func() tea.Msg {
		return WatchStartedMsg{Sub: store.Watch(context.Background())}
	}
}

// nextRecipesCmd waits for the next listing from the subscription.
func nextRecipesCmd(sub *db.Subscription) tea.Cmd {
	return func() tea.Msg {
		recipes, ok := <-sub.Recipes()
		if !ok {
			return WatchClosedMsg{}
		}
		return RecipesMsg{Recipes: recipes}
	}
}

// loadRecipeCmd reads one recipe by id.
func loadRecipeCmd(store Store, id int64) tea.Cmd {
	return func() tea.Msg {
		r, err := store.GetByID(context.Background(), id)
		return RecipeLoadedMsg{ID: id, Recipe: r, Err: err}
	}
}

// awaitWriteCmd reports a queued write once it finishes. The write itself
// does not depend on this command being run.
func awaitWriteCmd(done <-chan writer.Result) tea.Cmd {
	return func() tea.Msg {
		return WriteResultMsg{Result: <-done}
	}
}

// clearToastCmd fires after a delay to clear the toast with the given seq.
func clearToastCmd(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return ClearToastMsg{Seq: seq}
	})
}

func (m *Model) showToast(text string, isErr bool) tea.Cmd {
	m.toastSeq++
	m.toast = text
	m.toastErr = isErr
	return clearToastCmd(m.toastSeq)
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SplashDoneMsg:
		if m.screen == ScreenSplash {
			m.screen = ScreenList
		}
		return m, nil

	case WatchStartedMsg:
		m.sub = msg.Sub
		return m, nextRecipesCmd(m.sub)

	case RecipesMsg:
		m.recipes = msg.Recipes
		m.loaded = true
		if m.selected >= len(m.recipes) {
			m.selected = max(0, len(m.recipes)-1)
		}
		if m.sub == nil {
			return m, nil
		}
		return m, nextRecipesCmd(m.sub)

	case WatchClosedMsg:
		m.sub = nil
		return m, nil

	case RecipeLoadedMsg:
		if msg.ID != m.detailID || (m.screen != ScreenDetail && m.screen != ScreenEdit) {
			return m, nil
		}
		if msg.Err != nil {
			m.log.Error("load recipe", zap.Int64("id", msg.ID), zap.Error(msg.Err))
			m.screen = ScreenList
			m.detail = nil
			cmd := m.showToast(MsgFailed, true)
			return m, cmd
		}
		if msg.Recipe == nil {
			m.screen = ScreenList
			m.detail = nil
			cmd := m.showToast(MsgNotFound, true)
			return m, cmd
		}
		m.detail = msg.Recipe
		return m, nil

	case WriteResultMsg:
		r := msg.Result
		if r.Err != nil {
			m.log.Error("write failed", zap.String("op", string(r.Op)), zap.Int64("id", r.ID), zap.Error(r.Err))
			text := MsgFailed
			if errors.Is(r.Err, db.ErrNotFound) {
				text = MsgNotFound
				if r.ID == m.detailID && (m.screen == ScreenDetail || m.screen == ScreenEdit) {
					m.screen = ScreenList
					m.detail = nil
					m.confirmDelete = false
				}
			}
			cmd := m.showToast(text, true)
			return m, cmd
		}
		if r.Op == writer.OpUpdate && m.screen == ScreenDetail && r.ID == m.detailID {
			return m, loadRecipeCmd(m.store, m.detailID)
		}
		return m, nil

	case ClearToastMsg:
		if msg.Seq == m.toastSeq {
			m.toast = ""
			m.toastErr = false
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes key presses for the current screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == KeyCtrlC {
		return m.quit()
	}

	switch m.screen {
	case ScreenSplash:
		if msg.String() == KeyQuit {
			return m.quit()
		}
		return m, nil
	case ScreenList:
		return m.handleListKey(msg)
	case ScreenDetail:
		return m.handleDetailKey(msg)
	case ScreenAdd, ScreenEdit:
		return m.handleFormKey(msg)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.sub != nil {
		m.sub.Cancel()
	}
	return m, tea.Quit
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit:
		return m.quit()

	case KeyJ, KeyDown:
		if m.selected < len(m.recipes)-1 {
			m.selected++
		}
		return m, nil

	case KeyK, KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case KeyEnter:
		if m.selected < len(m.recipes) {
			return m.openDetail(m.recipes[m.selected].ID)
		}
		return m, nil

	case KeyNew:
		m.form = newForm()
		m.screen = ScreenAdd
		return m, nil
	}
	return m, nil
}

// openDetail navigates to the detail screen carrying only the recipe id.
func (m Model) openDetail(id int64) (tea.Model, tea.Cmd) {
	m.screen = ScreenDetail
	m.detailID = id
	m.detail = nil
	m.confirmDelete = false
	return m, loadRecipeCmd(m.store, id)
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete {
		switch msg.String() {
		case KeyConfirm:
			m.confirmDelete = false
			if m.detail == nil {
				return m, nil
			}
			done := m.writes.Delete(*m.detail)
			m.screen = ScreenList
			m.detail = nil
			cmd := m.showToast(MsgDeleted, false)
			return m, tea.Batch(cmd, awaitWriteCmd(done))
		case KeyCancel, KeyEsc:
			m.confirmDelete = false
		}
		return m, nil
	}

	switch msg.String() {
	case KeyQuit:
		return m.quit()

	case KeyEsc, KeyBackspace:
		m.screen = ScreenList
		m.detail = nil
		return m, nil

	case KeyEdit:
		if m.detail != nil {
			m.form = editForm(*m.detail)
			m.screen = ScreenEdit
		}
		return m, nil

	case KeyDelete:
		if m.detail != nil {
			m.confirmDelete = true
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		if m.screen == ScreenEdit {
			m.screen = ScreenDetail
		} else {
			m.screen = ScreenList
		}
		return m, nil

	case KeySave:
		return m.saveForm()
	}

	m.form.handleKey(msg)
	return m, nil
}

// saveForm validates the form and queues the write. The success toast is
// shown without waiting for the write to land.
func (m Model) saveForm() (tea.Model, tea.Cmd) {
	r, err := m.form.recipe()
	if err != nil {
		cmd := m.showToast(MsgFillAllFields, true)
		return m, cmd
	}

	if m.screen == ScreenEdit {
		done := m.writes.Update(r)
		m.detail = &r
		m.screen = ScreenDetail
		cmd := m.showToast(MsgUpdated, false)
		return m, tea.Batch(cmd, awaitWriteCmd(done))
	}

	done := m.writes.Insert(r)
	m.screen = ScreenList
	cmd := m.showToast(MsgSaved, false)
	return m, tea.Batch(cmd, awaitWriteCmd(done))
}
