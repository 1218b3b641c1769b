package catalog

// Genre is a TMDB movie genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieSummary is a movie as it appears in search and discover listings.
type MovieSummary struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	GenreIDs    []int   `json:"genre_ids"`
	VoteAverage float64 `json:"vote_average"`
}

// MovieDetail is the full record returned by the movie endpoint.
type MovieDetail struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	ReleaseDate   string  `json:"release_date"`
	Popularity    float64 `json:"popularity"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Genres        []Genre `json:"genres"`
}

// Summary projects the detail back onto the listing shape.
func (d MovieDetail) Summary() MovieSummary {
	ids := make([]int, 0, len(d.Genres))
	for _, g := range d.Genres {
		ids = append(ids, g.ID)
	}
	return MovieSummary{
		ID:          d.ID,
		Title:       d.Title,
		PosterPath:  d.PosterPath,
		GenreIDs:    ids,
		VoteAverage: d.VoteAverage,
	}
}

// ResultPage is one page of a search or discover listing.
type ResultPage struct {
	Movies       []MovieSummary `json:"results"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// HasMore reports whether the catalog has pages after this one.
func (p ResultPage) HasMore() bool {
	return p.Page < p.TotalPages
}

type genreListResponse struct {
	Genres []Genre `json:"genres"`
}
