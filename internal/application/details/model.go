package details

// Catalog values served for every movie id
const (
	Title    = "Interstellar"
	Studio   = "Paramount Pictures, Warner Bros. Pictures"
	Runtime  = 169
	Genre    = "Sci-Fi, Drama"
	Language = "English"
)

// HealthyStatus is the status reported by the liveness endpoint
const HealthyStatus = "Movie Details is healthy"

// MovieDetails represents the catalog record for a movie
type MovieDetails struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Studio   string `json:"studio"`
	Runtime  int    `json:"runtime"`
	Genre    string `json:"genre"`
	Language string `json:"language"`
}

// HealthStatus represents a liveness response
type HealthStatus struct {
	Status string `json:"status"`
}

// NewMovieDetails builds the catalog record for id
func NewMovieDetails(id int64) *MovieDetails {
	return &MovieDetails{
		ID:       id,
		Title:    Title,
		Studio:   Studio,
		Runtime:  Runtime,
		Genre:    Genre,
		Language: Language,
	}
}

// Healthy returns the liveness response
func Healthy() HealthStatus {
	return HealthStatus{Status: HealthyStatus}
}
