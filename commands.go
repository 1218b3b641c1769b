package main

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/sebastiantruijens/popkornpick/internal/browse"
	"github.com/sebastiantruijens/popkornpick/internal/catalog"
)

// How many favorite details are fetched at once.
const favoritesFetchLimit = 4

type genresMsg struct {
	genres []catalog.Genre
	err    error
}

type pageMsg struct {
	token uint64
	page  catalog.ResultPage
	err   error
}

type debounceMsg struct {
	seq uint64
}

type detailMsg struct {
	id     int
	detail catalog.MovieDetail
	err    error
}

type favoritesMsg struct {
	seq    uint64
	movies []catalog.MovieDetail
	err    error
}

type openBrowserMsg struct {
	err error
}

func fetchGenresCmd(c catalogClient) tea.Cmd {
	return func() tea.Msg {
		genres, err := c.ListGenres(context.Background())
		return genresMsg{genres: genres, err: err}
	}
}

func fetchPageCmd(c catalogClient, req browse.Request) tea.Cmd {
	return func() tea.Msg {
		page, err := c.SearchOrDiscover(context.Background(), req.Query.Term, req.Page, req.Query.Genre)
		return pageMsg{token: req.Token, page: page, err: err}
	}
}

func debounceCmd(p browse.Pending) tea.Cmd {
	return tea.Tick(p.Delay, func(time.Time) tea.Msg {
		return debounceMsg{seq: p.Seq}
	})
}

func fetchDetailCmd(c catalogClient, id int) tea.Cmd {
	return func() tea.Msg {
		detail, err := c.GetDetail(context.Background(), id)
		return detailMsg{id: id, detail: detail, err: err}
	}
}

// fetchFavoritesCmd loads the detail of every favorite, keeping favorites
// order. Movies the catalog no longer knows are skipped.
func fetchFavoritesCmd(c catalogClient, seq uint64, ids []int) tea.Cmd {
	return func() tea.Msg {
		details := make([]*catalog.MovieDetail, len(ids))

		g, ctx := errgroup.WithContext(context.Background())
		g.SetLimit(favoritesFetchLimit)
		for i, id := range ids {
			g.Go(func() error {
				d, err := c.GetDetail(ctx, id)
				if errors.Is(err, catalog.ErrNotFound) {
					return nil
				}
				if err != nil {
					return err
				}
				details[i] = &d
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return favoritesMsg{seq: seq, err: err}
		}

		movies := make([]catalog.MovieDetail, 0, len(ids))
		for _, d := range details {
			if d != nil {
				movies = append(movies, *d)
			}
		}
		return favoritesMsg{seq: seq, movies: movies}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := openBrowser(url); err != nil {
			return openBrowserMsg{err: fmt.Errorf("failed to open browser: %w", err)}
		}
		return openBrowserMsg{}
	}
}

// openBrowser opens a URL in the default browser
func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start"}
	case "darwin":
		cmd = "open"
	default: // "linux", "freebsd", etc.
		cmd = "xdg-open"
	}
	args = append(args, url)

	return exec.Command(cmd, args...).Start()
}
