package memory

import (
	"sync"

	"dropout-srv/internal/alert/repository"
	"dropout-srv/internal/model"
	pkgLog "dropout-srv/pkg/log"
)

// entry guards one alert. Transitions on different alerts never contend.
type entry struct {
	mu    sync.Mutex
	alert model.Alert
}

type implRepository struct {
	l pkgLog.Logger

	mu     sync.RWMutex
	alerts map[string]*entry
}

var _ repository.Repository = &implRepository{}

// New returns an in-process alert store for single-replica deployments and tests.
func New(l pkgLog.Logger) repository.Repository {
	return &implRepository{
		l:      l,
		alerts: make(map[string]*entry),
	}
}
