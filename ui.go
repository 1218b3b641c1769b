package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sebastiantruijens/popkornpick/internal/browse"
	"github.com/sebastiantruijens/popkornpick/internal/catalog"
	"github.com/sebastiantruijens/popkornpick/internal/favorites"
)

// catalogClient is the part of the TMDB client the UI needs.
type catalogClient interface {
	ListGenres(ctx context.Context) ([]catalog.Genre, error)
	SearchOrDiscover(ctx context.Context, term string, page, genre int) (catalog.ResultPage, error)
	GetDetail(ctx context.Context, id int) (catalog.MovieDetail, error)
	PosterURL(posterPath string) string
}

// Screens
type screen int

const (
	screenBrowse screen = iota
	screenDetail
	screenFavorites
)

type focusArea int

const (
	focusSearch focusArea = iota
	focusList
)

// Rows used by everything on the browse screen that is not the result list.
const browseChrome = 14

// Rows used by everything on the favorites screen that is not the list.
const favoritesChrome = 10

// Options configures the UI model.
type Options struct {
	Catalog         catalogClient
	Favorites       *favorites.Manager
	Clock           browse.Clock
	Debounce        time.Duration
	ScrollThreshold int
	Logger          *slog.Logger
}

// Model represents the application state
type Model struct {
	screen screen
	focus  focusArea
	keys   keyMap

	catalog   catalogClient
	favorites *favorites.Manager
	browse    *browse.Controller
	debouncer *browse.Debouncer
	threshold int
	logger    *slog.Logger

	textInput textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model

	genres   []catalog.Genre
	genreIdx int // 0 = all genres, otherwise genres[genreIdx-1]
	genreErr error

	cursor int
	offset int

	detailID     int
	detail       *catalog.MovieDetail
	detailErr    error
	detailReturn screen

	favSeq     uint64
	favLoading bool
	favMovies  []catalog.MovieDetail
	favErr     error
	favCursor  int
	favOffset  int

	status string
	width  int
	height int
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.ScrollThreshold < 0 {
		opts.ScrollThreshold = browse.DefaultScrollThreshold
	}

	// Set up text input for search
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	// Create explicit key mappings for Option+Backspace (Alt+Backspace)
	ti.KeyMap.DeleteWordBackward = key.NewBinding(
		key.WithKeys("alt+backspace", "ctrl+w"),
	)

	// Set up spinner for loading states
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	// Set up viewport for the detail screen
	vp := viewport.New(80, 16)

	return Model{
		screen:    screenBrowse,
		focus:     focusSearch,
		keys:      defaultKeyMap(),
		catalog:   opts.Catalog,
		favorites: opts.Favorites,
		browse:    browse.New(),
		debouncer: browse.NewDebouncer(opts.Debounce, opts.Clock),
		threshold: opts.ScrollThreshold,
		logger:    opts.Logger,
		textInput: ti,
		spinner:   sp,
		viewport:  vp,
		width:     80,
		height:    24,
	}
}

// Init loads the genre list and the first discover page.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick, fetchGenresCmd(m.catalog)}
	if req, ok := m.browse.SetQuery(browse.Query{}); ok {
		cmds = append(cmds, fetchPageCmd(m.catalog, req))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and user input
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.screen {
		case screenDetail:
			return m.updateDetail(msg)
		case screenFavorites:
			return m.updateFavorites(msg)
		default:
			if m.focus == focusSearch {
				return m.updateSearch(msg)
			}
			return m.updateList(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8
		if m.detail != nil {
			m.viewport.SetContent(m.formatMovieDetails())
		}
		m.clampCursor()
		m.clampFavCursor()
		return m, m.checkScroll()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case genresMsg:
		if msg.err != nil {
			m.logger.Warn("failed to load genres", "error", msg.err)
			m.genreErr = msg.err
			return m, nil
		}
		m.genres = msg.genres
		m.genreErr = nil
		return m, nil

	case debounceMsg:
		term, ok := m.debouncer.Expire(msg.seq)
		if !ok {
			return m, nil
		}
		return m, m.applyTerm(term)

	case pageMsg:
		if !m.browse.Resolve(msg.token, msg.page, msg.err) {
			m.logger.Debug("discarded stale page", "token", msg.token, "page", msg.page.Page)
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("failed to load movies", "query", m.browse.Query().Term, "page", m.browse.Page(), "error", msg.err)
		}
		m.clampCursor()
		if msg.err != nil {
			return m, nil
		}
		// A short page may not fill the list.
		return m, m.checkScroll()

	case detailMsg:
		if m.screen != screenDetail || msg.id != m.detailID {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("failed to load movie details", "id", msg.id, "error", msg.err)
			m.detailErr = msg.err
			return m, nil
		}
		m.detail = &msg.detail
		m.viewport.SetContent(m.formatMovieDetails())
		m.viewport.GotoTop()
		return m, nil

	case favoritesMsg:
		if msg.seq != m.favSeq {
			return m, nil
		}
		m.favLoading = false
		if msg.err != nil {
			m.logger.Warn("failed to load favorite movies", "error", msg.err)
			m.favErr = msg.err
			return m, nil
		}
		m.favErr = nil
		m.favMovies = m.favMovies[:0:0]
		for _, movie := range msg.movies {
			if m.favorites.IsFavorite(movie.ID) {
				m.favMovies = append(m.favMovies, movie)
			}
		}
		m.clampFavCursor()
		return m, nil

	case openBrowserMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = "Opened in browser"
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.focusList()
		if term, ok := m.debouncer.Flush(); ok {
			return m, m.applyTerm(term)
		}
		return m, nil
	case "down", "tab", "esc":
		m.focusList()
		return m, nil
	}

	before := m.textInput.Value()
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if value := m.textInput.Value(); value != before {
		return m, tea.Batch(cmd, debounceCmd(m.debouncer.Input(value)))
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.focusSearch()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Up):
		if m.cursor == 0 {
			m.focusSearch()
			return m, textinput.Blink
		}
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.listHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.listHeight())
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-m.browse.Len())
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(m.browse.Len())
	case key.Matches(msg, m.keys.NextGenre):
		return m, m.cycleGenre(1)
	case key.Matches(msg, m.keys.PrevGenre):
		return m, m.cycleGenre(-1)
	case key.Matches(msg, m.keys.Favorite):
		if movie, ok := m.browse.At(m.cursor); ok {
			m.favorites.Toggle(movie.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Favorites):
		return m, m.openFavorites()
	case key.Matches(msg, m.keys.Retry):
		if req, ok := m.browse.Retry(); ok {
			return m, tea.Batch(m.spinner.Tick, fetchPageCmd(m.catalog, req))
		}
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if movie, ok := m.browse.At(m.cursor); ok {
			return m, m.openDetail(movie.ID, screenBrowse)
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.focusSearch()
		return m, textinput.Blink
	default:
		return m, nil
	}

	// Every cursor movement is a scroll event.
	return m, m.checkScroll()
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		return m, m.closeDetail()
	case key.Matches(msg, m.keys.Favorite):
		if m.detailID != 0 && !errors.Is(m.detailErr, catalog.ErrNotFound) {
			m.favorites.Toggle(m.detailID)
			if m.detail != nil {
				m.viewport.SetContent(m.formatMovieDetails())
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if m.detail != nil {
			return m, openBrowserCmd(catalog.PageURL(m.detail.ID))
		}
		return m, nil
	case key.Matches(msg, m.keys.Retry):
		if m.detailErr != nil && !errors.Is(m.detailErr, catalog.ErrNotFound) {
			return m, m.openDetail(m.detailID, m.detailReturn)
		}
		return m, nil
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateFavorites(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = screenBrowse
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveFavCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFavCursor(1)
	case key.Matches(msg, m.keys.Retry):
		return m, m.openFavorites()
	case key.Matches(msg, m.keys.Remove), key.Matches(msg, m.keys.Favorite):
		if !m.favLoading && m.favCursor < len(m.favMovies) {
			id := m.favMovies[m.favCursor].ID
			m.favorites.Remove(id)
			if !m.favorites.IsFavorite(id) {
				m.dropFavorite(id)
			}
		}
	case key.Matches(msg, m.keys.Select):
		if !m.favLoading && m.favCursor < len(m.favMovies) {
			return m, m.openDetail(m.favMovies[m.favCursor].ID, screenFavorites)
		}
	}
	return m, nil
}

// applyTerm makes a committed search term the current query.
func (m *Model) applyTerm(term string) tea.Cmd {
	req, ok := m.browse.SetTerm(term)
	if !ok {
		return nil
	}
	m.cursor, m.offset = 0, 0
	return tea.Batch(m.spinner.Tick, fetchPageCmd(m.catalog, req))
}

// cycleGenre moves the genre filter by delta and applies it immediately.
func (m *Model) cycleGenre(delta int) tea.Cmd {
	n := len(m.genres) + 1
	m.genreIdx = ((m.genreIdx+delta)%n + n) % n

	req, ok := m.browse.SetGenre(m.selectedGenre().ID)
	if !ok {
		return nil
	}
	m.cursor, m.offset = 0, 0
	return tea.Batch(m.spinner.Tick, fetchPageCmd(m.catalog, req))
}

// selectedGenre returns the active genre filter; ID 0 means all genres.
func (m Model) selectedGenre() catalog.Genre {
	if m.genreIdx == 0 || m.genreIdx > len(m.genres) {
		return catalog.Genre{Name: "All Genres"}
	}
	return m.genres[m.genreIdx-1]
}

func (m *Model) checkScroll() tea.Cmd {
	if !browse.NearBottom(m.offset, m.listHeight(), m.browse.Len(), m.threshold) {
		return nil
	}
	req, ok := m.browse.ScrollThresholdReached()
	if !ok {
		return nil
	}
	return tea.Batch(m.spinner.Tick, fetchPageCmd(m.catalog, req))
}

func (m *Model) openDetail(id int, from screen) tea.Cmd {
	m.screen = screenDetail
	m.detailReturn = from
	m.detailID = id
	m.detail = nil
	m.detailErr = nil
	m.status = ""
	return tea.Batch(m.spinner.Tick, fetchDetailCmd(m.catalog, id))
}

func (m *Model) closeDetail() tea.Cmd {
	m.screen = m.detailReturn
	m.detailID = 0
	m.detail = nil
	m.detailErr = nil
	m.status = ""

	if m.screen != screenFavorites {
		return nil
	}
	// Favorites may have changed on the detail screen.
	kept := m.favMovies[:0:0]
	for _, movie := range m.favMovies {
		if m.favorites.IsFavorite(movie.ID) {
			kept = append(kept, movie)
		}
	}
	if len(kept) != m.favorites.Len() {
		return m.openFavorites()
	}
	m.favMovies = kept
	m.clampFavCursor()
	return nil
}

func (m *Model) openFavorites() tea.Cmd {
	m.screen = screenFavorites
	m.favSeq++
	m.favErr = nil
	m.favMovies = nil
	m.favCursor, m.favOffset = 0, 0
	m.status = ""

	ids := m.favorites.IDs()
	if len(ids) == 0 {
		m.favLoading = false
		return nil
	}
	m.favLoading = true
	return tea.Batch(m.spinner.Tick, fetchFavoritesCmd(m.catalog, m.favSeq, ids))
}

func (m *Model) dropFavorite(id int) {
	kept := m.favMovies[:0:0]
	for _, movie := range m.favMovies {
		if movie.ID != id {
			kept = append(kept, movie)
		}
	}
	m.favMovies = kept
	m.clampFavCursor()
}

func (m *Model) focusSearch() {
	m.focus = focusSearch
	m.textInput.Focus()
}

func (m *Model) focusList() {
	m.focus = focusList
	m.textInput.Blur()
}

func (m Model) listHeight() int {
	return max(1, m.height-browseChrome)
}

func (m Model) favListHeight() int {
	return max(1, m.height-favoritesChrome)
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// clampCursor keeps the cursor on a result and inside the visible window.
func (m *Model) clampCursor() {
	m.cursor, m.offset = clampWindow(m.cursor, m.offset, m.browse.Len(), m.listHeight())
}

func (m *Model) moveFavCursor(delta int) {
	m.favCursor += delta
	m.clampFavCursor()
}

func (m *Model) clampFavCursor() {
	m.favCursor, m.favOffset = clampWindow(m.favCursor, m.favOffset, len(m.favMovies), m.favListHeight())
}

func clampWindow(cursor, offset, total, visible int) (int, int) {
	if total == 0 {
		return 0, 0
	}
	cursor = min(max(cursor, 0), total-1)
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+visible {
		offset = cursor - visible + 1
	}
	offset = min(max(offset, 0), max(total-visible, 0))
	return cursor, offset
}
