// Package storage archives generated editions in a local sqlite database.
package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/almanac/internal/models"
)

var ErrNotFound = errors.New("edition not found")

// Summary is one row of the edition list.
type Summary struct {
	ID          string
	Locale      models.Locale
	GeneratedAt time.Time
	Seed        uint64
	Weeks       int
	Errors      int
	Warnings    int
}

type Provider interface {
	Init() error
	Load() error
	Close() error

	SaveEdition(models.Edition) error
	GetEdition(id string) (models.Edition, error)
	ListEditions() ([]Summary, error)
	DeleteEdition(id string) error

	Path() string
}
