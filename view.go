package main

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sebastiantruijens/popkornpick/internal/browse"
	"github.com/sebastiantruijens/popkornpick/internal/catalog"
)

// Styling constants
var (
	// Colors
	primaryColor   = lipgloss.Color("#F5C518") // Popcorn yellow
	secondaryColor = lipgloss.Color("#F5F5F1") // Light cream color
	accentColor    = lipgloss.Color("#564D4D") // Dark gray
	favoriteColor  = lipgloss.Color("#E50914")

	// Text styles
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	normalTextStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	dimTextStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	highlightedTextStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	scoreStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	heartStyle = lipgloss.NewStyle().
			Foreground(favoriteColor)

	// Component styles
	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1).
			Width(40)

	blurredInputStyle = inputStyle.
				BorderForeground(accentColor)

	movieListStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1).
			Width(60)

	focusedListStyle = movieListStyle.
				BorderForeground(primaryColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

const (
	heart      = "♥"
	emptyHeart = "♡"
)

// View renders the current screen.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("🍿 PopkornPick"))
	sb.WriteString("\n")

	switch m.screen {
	case screenDetail:
		sb.WriteString(m.detailView())
	case screenFavorites:
		sb.WriteString(m.favoritesView())
	default:
		sb.WriteString(m.browseView())
	}

	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(dimTextStyle.Render(m.status))
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(sb.String())
}

func (m Model) browseView() string {
	var sb strings.Builder

	input := inputStyle
	list := movieListStyle
	if m.focus == focusList {
		input = blurredInputStyle
		list = focusedListStyle
	}
	sb.WriteString(input.Render(m.textInput.View()))
	sb.WriteString("\n")

	genre := "Genre: " + m.selectedGenre().Name
	if m.genreErr != nil {
		genre += " (genres unavailable)"
	}
	sb.WriteString(subtitleStyle.Render(genre))
	sb.WriteString("\n")

	sb.WriteString(list.Render(m.movieList()))
	sb.WriteString("\n")
	sb.WriteString(m.browseStatus())
	sb.WriteString("\n")

	if m.focus == focusSearch {
		sb.WriteString(dimTextStyle.Render("Type to search • Enter/↓: Results • Ctrl+C: Quit"))
	} else {
		sb.WriteString(dimTextStyle.Render("↑/↓: Navigate • Enter: Details • f: Favorite • [/]: Genre • F: Favorites • /: Search • q: Quit"))
	}
	return sb.String()
}

func (m Model) movieList() string {
	results := m.browse.Results()
	if len(results) == 0 {
		return dimTextStyle.Render("Nothing to show yet")
	}

	end := min(m.offset+m.listHeight(), len(results))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		movie := results[i]
		mark := emptyHeart
		if m.favorites.IsFavorite(movie.ID) {
			mark = heartStyle.Render(heart)
		}
		item := fmt.Sprintf("%s %4.1f  %s", mark, movie.VoteAverage, movie.Title)
		if i == m.cursor && m.focus == focusList {
			lines = append(lines, highlightedTextStyle.Render("> "+item))
		} else {
			lines = append(lines, normalTextStyle.Render("  "+item))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) browseStatus() string {
	switch m.browse.State() {
	case browse.StateLoading:
		label := "Loading more movies..."
		if m.browse.Len() == 0 {
			label = "Loading movies..."
		}
		return m.spinner.View() + " " + normalTextStyle.Render(label)
	case browse.StateFailed:
		return errorStyle.Render("Error: "+m.browse.Err().Error()) + dimTextStyle.Render("  (r: retry)")
	case browse.StateExhausted:
		if m.browse.Len() == 0 {
			return dimTextStyle.Render("No movies found.")
		}
		return dimTextStyle.Render("No more results")
	default:
		return dimTextStyle.Render(fmt.Sprintf("%d movies", m.browse.Len()))
	}
}

func (m Model) detailView() string {
	var sb strings.Builder

	switch {
	case errors.Is(m.detailErr, catalog.ErrNotFound):
		sb.WriteString(errorStyle.Render("Movie not found."))
		sb.WriteString("\n\n")
		sb.WriteString(dimTextStyle.Render("Esc: Back • q: Quit"))
	case m.detailErr != nil:
		sb.WriteString(errorStyle.Render("Error: " + m.detailErr.Error()))
		sb.WriteString("\n\n")
		sb.WriteString(dimTextStyle.Render("r: Retry • Esc: Back • q: Quit"))
	case m.detail == nil:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(normalTextStyle.Render("Loading movie details..."))
	default:
		sb.WriteString(m.viewport.View())
		sb.WriteString("\n\n")
		sb.WriteString(dimTextStyle.Render("↑/↓: Scroll • f: Favorite • o: Open in Browser • Esc: Back • q: Quit"))
	}
	return sb.String()
}

func (m Model) formatMovieDetails() string {
	if m.detail == nil {
		return "No movie details available"
	}
	d := m.detail

	var sb strings.Builder

	mark := emptyHeart
	if m.favorites.IsFavorite(d.ID) {
		mark = heartStyle.Render(heart)
	}
	title := d.Title
	if year, _, ok := strings.Cut(d.ReleaseDate, "-"); ok && year != "" {
		title += " (" + year + ")"
	}
	sb.WriteString(titleStyle.Render(title) + " " + mark)
	sb.WriteString("\n")

	if d.OriginalTitle != "" && d.OriginalTitle != d.Title {
		sb.WriteString(normalTextStyle.Render("Original title: " + d.OriginalTitle))
		sb.WriteString("\n")
	}
	if len(d.Genres) > 0 {
		names := make([]string, 0, len(d.Genres))
		for _, g := range d.Genres {
			names = append(names, g.Name)
		}
		sb.WriteString(normalTextStyle.Render(strings.Join(names, ", ")))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(subtitleStyle.Render("Overview:"))
	sb.WriteString("\n")
	maxWidth := m.viewport.Width - 8
	if maxWidth < 20 {
		maxWidth = 60
	}
	overview := d.Overview
	if overview == "" {
		overview = "No overview available."
	}
	sb.WriteString(normalTextStyle.Render(wrapText(overview, maxWidth)))
	sb.WriteString("\n\n")

	sb.WriteString(subtitleStyle.Render("Ratings:"))
	sb.WriteString("\n")
	sb.WriteString(scoreStyle.Render(fmt.Sprintf("Rating: %.1f/10 (%s votes)", d.VoteAverage, humanize.Comma(int64(d.VoteCount)))))
	sb.WriteString("\n")
	sb.WriteString(scoreStyle.Render(fmt.Sprintf("Popularity: %d", int(math.Round(d.Popularity)))))
	sb.WriteString("\n")
	releaseDate := d.ReleaseDate
	if releaseDate == "" {
		releaseDate = "Unknown"
	}
	sb.WriteString(normalTextStyle.Render("Release date: " + releaseDate))
	sb.WriteString("\n\n")

	sb.WriteString(subtitleStyle.Render("More Info:"))
	sb.WriteString("\n")
	if poster := m.catalog.PosterURL(d.PosterPath); poster != "" {
		sb.WriteString(normalTextStyle.Render("Poster: " + poster))
		sb.WriteString("\n")
	}
	sb.WriteString(normalTextStyle.Render(catalog.PageURL(d.ID)))

	return sb.String()
}

func (m Model) favoritesView() string {
	var sb strings.Builder

	sb.WriteString(subtitleStyle.Render("Your Bucket List"))
	sb.WriteString("\n")

	switch {
	case m.favErr != nil:
		sb.WriteString(errorStyle.Render("Error: " + m.favErr.Error()))
		sb.WriteString("\n\n")
		sb.WriteString(dimTextStyle.Render("r: Retry • Esc: Back • q: Quit"))
		return sb.String()
	case m.favLoading:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(normalTextStyle.Render("Loading favorites..."))
		return sb.String()
	case len(m.favMovies) == 0:
		sb.WriteString(movieListStyle.Render(dimTextStyle.Render("No favorite movies yet.")))
		sb.WriteString("\n\n")
		sb.WriteString(dimTextStyle.Render("Esc: Back • q: Quit"))
		return sb.String()
	}

	end := min(m.favOffset+m.favListHeight(), len(m.favMovies))
	lines := make([]string, 0, end-m.favOffset)
	for i := m.favOffset; i < end; i++ {
		movie := m.favMovies[i]
		item := fmt.Sprintf("%s %4.1f  %s", heartStyle.Render(heart), movie.VoteAverage, movie.Title)
		if i == m.favCursor {
			lines = append(lines, highlightedTextStyle.Render("> "+item))
		} else {
			lines = append(lines, normalTextStyle.Render("  "+item))
		}
	}
	sb.WriteString(focusedListStyle.Render(strings.Join(lines, "\n")))
	sb.WriteString("\n\n")
	sb.WriteString(dimTextStyle.Render("↑/↓: Navigate • Enter: Details • x: Remove • Esc: Back • q: Quit"))
	return sb.String()
}

// wrapText wraps text to fit within a given width
func wrapText(text string, width int) string {
	if width <= 1 {
		return text
	}

	var result strings.Builder
	var lineLength int

	for _, word := range strings.Fields(text) {
		runes := []rune(word)

		// Break words that cannot fit on any line
		for len(runes) > width {
			if lineLength > 0 {
				result.WriteString("\n")
			}
			result.WriteString(string(runes[:width-1]) + "-\n")
			runes = runes[width-1:]
			lineLength = 0
		}

		switch {
		case lineLength == 0:
		case lineLength+1+len(runes) > width:
			result.WriteString("\n")
			lineLength = 0
		default:
			result.WriteString(" ")
			lineLength++
		}

		result.WriteString(string(runes))
		lineLength += len(runes)
	}

	return result.String()
}
