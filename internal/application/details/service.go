package details

import (
	"net/http"

	"github.com/aescanero/details/internal/propagation"
	"go.uber.org/zap"
)

// MetricsCollector records details lookups
type MetricsCollector interface {
	RecordInvalidMovieID()
	RecordForwardedHeaders(names []string)
}

// Service serves movie details lookups
type Service struct {
	validator *Validator
	metrics   MetricsCollector
	logger    *zap.Logger
}

// NewService creates a new details service
func NewService(validator *Validator, metrics MetricsCollector, logger *zap.Logger) *Service {
	if validator == nil {
		validator = NewValidator()
	}
	if metrics == nil {
		metrics = nopCollector{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		validator: validator,
		metrics:   metrics,
		logger:    logger,
	}
}

// GetDetails resolves the movie id from path and returns its catalog record.
// The forwardable headers of the request are captured for the lookup; the
// catalog is local, so they are recorded but not sent anywhere.
func (s *Service) GetDetails(path string, header http.Header) (*MovieDetails, error) {
	id, err := s.validator.ParsePath(path)
	if err != nil {
		s.metrics.RecordInvalidMovieID()
		s.logger.Debug("rejected movie id",
			zap.String("path", path),
			zap.Error(err))
		return nil, err
	}

	fwd := propagation.Extract(header)
	return s.lookup(id, fwd), nil
}

// lookup builds the record for id. fwd carries the headers an upstream
// catalog call would need.
func (s *Service) lookup(id int64, fwd propagation.Headers) *MovieDetails {
	names := fwd.Names()
	s.metrics.RecordForwardedHeaders(names)

	s.logger.Debug("movie details lookup",
		zap.Int64("movie_id", id),
		zap.Strings("forward_headers", names))

	return NewMovieDetails(id)
}

type nopCollector struct{}

func (nopCollector) RecordInvalidMovieID() {}
func (nopCollector) RecordForwardedHeaders([]string) {}
