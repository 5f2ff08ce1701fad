package gconf

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// ReadStore is the part of a store needed to load a configuration.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of a store needed to save a configuration.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is the settings object of a single extension.
type Configuration interface {
	tokenswap.Persistent
	Validate() error
}

// Every extension owns exactly one configuration entry.
func confKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save writes the configuration of extension pkg. Invalid configurations
// are rejected.
func Save(db Store, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s configuration", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot serialize %s configuration", pkg)
	}
	return db.Set(confKey(pkg), raw)
}

// Load reads the configuration of extension pkg into conf. It fails with
// ErrNotFound when nothing was saved.
func Load(db ReadStore, pkg string, conf Configuration) error {
	raw, err := db.Get(confKey(pkg))
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration", pkg)
	}
	if err := conf.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot parse %s configuration", pkg)
	}
	return nil
}

// InitConfig saves the configuration declared for extension pkg in the
// "conf" section of the genesis app state:
//
//	{"conf": {"swap": {...}}}
//
// ErrNotFound is returned when the genesis has no entry for pkg, so that
// the caller can fall back to defaults.
func InitConfig(db Store, opts tokenswap.Options, pkg string, conf Configuration) error {
	var all tokenswap.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if _, ok := all[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration in genesis", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return err
	}
	return Save(db, pkg, conf)
}
