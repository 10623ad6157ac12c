package pipeline

import (
	"racs-notifier/internal/directory"
	"racs-notifier/internal/domain"
)

type directoryResolver struct {
	dir *directory.Directory
}

// NewDirectoryResolver builds a Resolver over the loaded PIRG mapping.
func NewDirectoryResolver(dir *directory.Directory) Resolver {
	return &directoryResolver{dir: dir}
}

func (r *directoryResolver) Resolve(ticketID, pirg string) (*domain.ApproverMapping, error) {
	mapping, ok := r.dir.Lookup(pirg)
	if !ok {
		return nil, &ResolutionError{TicketID: ticketID, PIRG: pirg}
	}
	return &mapping, nil
}
