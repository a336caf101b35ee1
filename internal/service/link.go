package service

import (
	"time"

	"imgvault/internal/repository"
)

// LinkService resolves expiring links. Expiry is evaluated against the
// configured deployment timezone, never ambient local time, and is computed
// on read: expired rows are kept, not deleted.
type LinkService struct {
	linkRepo repository.LinkRepository
	location *time.Location
	now      func() time.Time
}

func NewLinkService(linkRepo repository.LinkRepository, location *time.Location) *LinkService {
	return &LinkService{
		linkRepo: linkRepo,
		location: location,
		now:      time.Now,
	}
}

// Resolution is the outcome of resolving a link id that exists. Expired
// links are a normal result, not an error.
type Resolution struct {
	URL     string
	Expired bool
}

// Resolve looks up a link and checks its validity: valid strictly before
// createdAt+TTL, expired from that instant on.
func (s *LinkService) Resolve(id string) (*Resolution, error) {
	link, err := s.linkRepo.ByID(id)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.location)
	if link.Expired(now) {
		return &Resolution{Expired: true}, nil
	}

	return &Resolution{URL: link.URL}, nil
}
